package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Attachment is a stored file reference (question image, profile picture).
type Attachment struct {
	URI      string `json:"uri"`
	Type     string `json:"type,omitempty"`
	Size     int64  `json:"size,omitempty"`
	PublicID string `json:"publicId,omitempty"`
}

// User is a student account.
type User struct {
	ID         string      `json:"_id"`
	Name       string      `json:"name"`
	Username   string      `json:"username,omitempty"`
	Email      string      `json:"email"`
	Institute  *Institute  `json:"institute,omitempty"`
	Course     *Course     `json:"course,omitempty"`
	ProfilePic *Attachment `json:"profilePic,omitempty"`
	IsVerified bool        `json:"isVerified"`
	CreatedAt  time.Time   `json:"createdAt,omitempty"`
}

// DisplayName prefers the username, then the name, then the e-mail.
func (u User) DisplayName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

// Owner is the author of a question. The backend sends either the bare
// user id or the populated user document.
type Owner struct {
	User
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &o.ID)
	}
	return json.Unmarshal(data, &o.User)
}

// Session is what login returns.
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Contributor is one row of the top-contributors board.
type Contributor struct {
	Owner         User `json:"owner"`
	TotalReads    int  `json:"totalReads"`
	QuestionCount int  `json:"questionCount"`
}
