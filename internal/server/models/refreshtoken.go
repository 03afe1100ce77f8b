package models

import "time"

// RefreshToken is an opaque, single-use token that lets a student obtain a
// new access token. It is deleted when rotated or when the password changes.
type RefreshToken struct {
	ID        string
	StudentID string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the token can no longer be exchanged at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}
