// Package content stores the catalog (institutes, courses, subjects), the
// shared questions and the withdrawal history of the development backend.
package content

import (
	"context"

	"github.com/dmitrijs2005/examhub/internal/server/models"
)

type Repository interface {
	CreateInstitute(ctx context.Context, i *models.Institute) error
	CreateCourse(ctx context.Context, c *models.Course) error
	LinkCourse(ctx context.Context, ic *models.InstituteCourse) error
	CreateSubject(ctx context.Context, s *models.Subject) error
	CreateQuestion(ctx context.Context, q *models.Question) error
	CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error

	Institutes(ctx context.Context) ([]models.Institute, error)
	Courses(ctx context.Context) ([]models.Course, error)
	// InstituteCourses returns the courses offered by instituteID.
	InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	SubjectsByInstituteCourse(ctx context.Context, instituteCourseID string) ([]models.Subject, error)

	// Questions returns every question, newest first.
	Questions(ctx context.Context) ([]models.Question, error)
	QuestionsByOwner(ctx context.Context, ownerID string) ([]models.Question, error)
	Question(ctx context.Context, id string) (*models.Question, error)
	IncrementReads(ctx context.Context, id string) error
	// UpdateQuestion rewrites the editable fields of q: title, subject,
	// institute, course, marks and content.
	UpdateQuestion(ctx context.Context, q *models.Question) error
	// SubjectPlacement returns the institute course a subject belongs to.
	SubjectPlacement(ctx context.Context, subjectID string) (*models.InstituteCourse, error)

	// Withdrawals returns the requests of studentID, newest first.
	Withdrawals(ctx context.Context, studentID string) ([]models.Withdrawal, error)
}
