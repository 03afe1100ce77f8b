package client

import (
	"context"

	"github.com/dmitrijs2005/examhub/internal/client/models"
)

type API interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Signup(ctx context.Context, name, email, password string) (*models.User, error)
	GetUserDetails(ctx context.Context, userID string) (*models.User, error)
	StudentPosts(ctx context.Context, userID string) ([]models.Question, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	GenerateOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, studentID, otp string) error
	ResetPassword(ctx context.Context, studentID, newPassword string) error

	Questions(ctx context.Context) ([]models.Question, error)
	QuestionDetails(ctx context.Context, questionID string) (*models.Question, error)
	PostQuestion(ctx context.Context, d models.QuestionDraft) (*models.Question, error)
	UpdateQuestion(ctx context.Context, questionID string, d models.QuestionDraft) (*models.Question, error)
	Institutes(ctx context.Context) ([]models.Institute, error)
	InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	SubjectsByCourse(ctx context.Context, instituteCourseID string) ([]models.Subject, error)
	TopContributors(ctx context.Context) ([]models.Contributor, error)

	Analytics(ctx context.Context, userID string) (*models.Analytics, error)
	RecentActivity(ctx context.Context, userID string) ([]models.Question, error)
	WithdrawalRequests(ctx context.Context, userID string) ([]models.WithdrawalRequest, error)
}

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}
