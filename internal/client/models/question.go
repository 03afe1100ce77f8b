package models

import (
	"errors"
	"strings"
	"time"
)

type Question struct {
	ID          string       `json:"_id"`
	Owner       Owner        `json:"owner"`
	Title       string       `json:"title"`
	Subject     Subject      `json:"subject"`
	Institute   *Institute   `json:"institute,omitempty"`
	Course      *Course      `json:"course,omitempty"`
	Marks       int          `json:"marks"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Content     string       `json:"content"`
	Reads       int          `json:"reads"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// QuestionFilter narrows a question list. Empty fields match everything.
type QuestionFilter struct {
	Term        string
	SubjectID   string
	InstituteID string
	CourseID    string
}

// Match reports whether q passes f. Term matches the title, ignoring case.
func (f QuestionFilter) Match(q Question) bool {
	if f.Term != "" && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(strings.TrimSpace(f.Term))) {
		return false
	}
	if f.SubjectID != "" && q.Subject.ID != f.SubjectID {
		return false
	}
	if f.InstituteID != "" && (q.Institute == nil || q.Institute.ID != f.InstituteID) {
		return false
	}
	if f.CourseID != "" && (q.Course == nil || q.Course.ID != f.CourseID) {
		return false
	}
	return true
}

// Filter returns the questions that pass f, keeping their order.
func (f QuestionFilter) Filter(qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if f.Match(q) {
			out = append(out, q)
		}
	}
	return out
}

// ErrIncompleteDraft reports a draft without a title, subject or content.
var ErrIncompleteDraft = errors.New("title, subject and content are required")

// ErrNegativeMarks reports a draft with marks below zero.
var ErrNegativeMarks = errors.New("marks must not be negative")

// QuestionDraft is what a student writes when posting or editing a question.
type QuestionDraft struct {
	Title     string `json:"title"`
	SubjectID string `json:"subjectId"`
	Marks     int    `json:"marks"`
	Content   string `json:"content"`
}

// DraftOf returns the editable fields of q.
func DraftOf(q *Question) QuestionDraft {
	return QuestionDraft{Title: q.Title, SubjectID: q.Subject.ID, Marks: q.Marks, Content: q.Content}
}

// Normalize trims the text fields and checks the draft can be sent.
func (d *QuestionDraft) Normalize() error {
	d.Title = strings.TrimSpace(d.Title)
	d.SubjectID = strings.TrimSpace(d.SubjectID)
	d.Content = strings.TrimSpace(d.Content)
	if d.Title == "" || d.SubjectID == "" || d.Content == "" {
		return ErrIncompleteDraft
	}
	if d.Marks < 0 {
		return ErrNegativeMarks
	}
	return nil
}
