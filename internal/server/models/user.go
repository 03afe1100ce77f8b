// Package models defines the records kept by the development backend.
package models

import "time"

// Student is a registered account. PasswordHash is a bcrypt hash.
type Student struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash []byte
	InstituteID  string
	CourseID     string
	IsVerified   bool
	CreatedAt    time.Time
}

// OTP is a pending password reset for one student.
type OTP struct {
	StudentID string
	Code      string
	Expires   time.Time
	Verified  bool
}
