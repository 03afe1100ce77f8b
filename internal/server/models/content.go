package models

import "time"

type Institute struct {
	ID        string
	Name      string
	LogoURI   string
	CreatedAt time.Time
}

type Course struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// InstituteCourse links a course to an institute that offers it. Subjects
// hang off this link rather than off the course.
type InstituteCourse struct {
	ID          string
	InstituteID string
	CourseID    string
}

type Subject struct {
	ID                string
	Name              string
	InstituteCourseID string
}

type Question struct {
	ID          string
	OwnerID     string
	Title       string
	SubjectID   string
	InstituteID string
	CourseID    string
	Marks       int
	Content     string
	Attachments []string
	Reads       int
	CreatedAt   time.Time
}

// Withdrawal statuses.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

type Withdrawal struct {
	ID        string
	StudentID string
	UPIID     string
	Amount    float64
	Status    string
	CreatedAt time.Time
}
