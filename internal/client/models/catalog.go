package models

import "time"

type Institute struct {
	ID            string      `json:"_id"`
	InstituteName string      `json:"instituteName"`
	InstituteLogo *Attachment `json:"instituteLogo,omitempty"`
	CreatedAt     time.Time   `json:"createAt,omitempty"`
}

type Course struct {
	ID         string    `json:"_id"`
	CourseName string    `json:"courseName"`
	CreatedAt  time.Time `json:"createAt,omitempty"`
}

type Subject struct {
	ID                string `json:"_id"`
	SubjectName       string `json:"subjectName"`
	InstituteCourseID string `json:"instituteCourseId,omitempty"`
}
