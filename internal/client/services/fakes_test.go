package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/models"
)

// ---- fake API ----

// fakeAPI implements client.API for service unit tests. Unset results
// come back as zero values.
type fakeAPI struct {
	mu sync.Mutex

	LoginRet *models.Session
	LoginErr error

	SignupRet *models.User
	SignupErr error

	UserRet *models.User
	UserErr error

	PostsRet []models.Question
	PostsErr error

	UpdateRet *models.User
	UpdateErr error

	ChangePasswordErr error

	OTPStudentID string
	OTPErr       error
	VerifyErr    error
	ResetErr     error

	QuestionsRet []models.Question
	QuestionsErr error
	QuestionRet  *models.Question
	QuestionErr  error
	DraftRet     *models.Question
	DraftErr     error

	InstitutesRet   []models.Institute
	CoursesRet      []models.Course
	SubjectsRet     []models.Subject
	ContributorsRet []models.Contributor
	CatalogErr      error

	AnalyticsRet   *models.Analytics
	AnalyticsErr   error
	RecentRet      []models.Question
	RecentErr      error
	WithdrawalsRet []models.WithdrawalRequest
	WithdrawalsErr error

	// captured arguments
	LastEmail       string
	LastPassword    string
	LastOldPassword string
	LastUserID      string
	LastStudentID   string
	LastOTP         string
	LastUpdate      client.ProfileUpdate
	LastDraft       models.QuestionDraft
	LastQuestionID  string
	Calls           []string
}

var _ client.API = (*fakeAPI)(nil)

func (f *fakeAPI) record(name, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, name)
	if userID != "" {
		f.LastUserID = userID
	}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.Session, error) {
	f.record("Login", "")
	f.LastEmail, f.LastPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	f.record("Signup", "")
	f.LastEmail, f.LastPassword = email, password
	return f.SignupRet, f.SignupErr
}

func (f *fakeAPI) GetUserDetails(ctx context.Context, userID string) (*models.User, error) {
	f.record("GetUserDetails", userID)
	return f.UserRet, f.UserErr
}

func (f *fakeAPI) StudentPosts(ctx context.Context, userID string) ([]models.Question, error) {
	f.record("StudentPosts", userID)
	return f.PostsRet, f.PostsErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, userID string, upd client.ProfileUpdate) (*models.User, error) {
	f.record("UpdateProfile", userID)
	f.LastUpdate = upd
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	f.record("ChangePassword", "")
	f.LastOldPassword, f.LastPassword = oldPassword, newPassword
	return f.ChangePasswordErr
}

func (f *fakeAPI) GenerateOTP(ctx context.Context, email string) (string, error) {
	f.record("GenerateOTP", "")
	f.LastEmail = email
	return f.OTPStudentID, f.OTPErr
}

func (f *fakeAPI) VerifyOTP(ctx context.Context, studentID, otp string) error {
	f.record("VerifyOTP", "")
	f.LastStudentID, f.LastOTP = studentID, otp
	return f.VerifyErr
}

func (f *fakeAPI) ResetPassword(ctx context.Context, studentID, newPassword string) error {
	f.record("ResetPassword", "")
	f.LastStudentID, f.LastPassword = studentID, newPassword
	return f.ResetErr
}

func (f *fakeAPI) Questions(ctx context.Context) ([]models.Question, error) {
	f.record("Questions", "")
	return f.QuestionsRet, f.QuestionsErr
}

func (f *fakeAPI) QuestionDetails(ctx context.Context, questionID string) (*models.Question, error) {
	f.record("QuestionDetails", "")
	return f.QuestionRet, f.QuestionErr
}

func (f *fakeAPI) PostQuestion(ctx context.Context, d models.QuestionDraft) (*models.Question, error) {
	f.record("PostQuestion", "")
	f.mu.Lock()
	f.LastDraft = d
	f.mu.Unlock()
	return f.DraftRet, f.DraftErr
}

func (f *fakeAPI) UpdateQuestion(ctx context.Context, questionID string, d models.QuestionDraft) (*models.Question, error) {
	f.record("UpdateQuestion", "")
	f.mu.Lock()
	f.LastDraft, f.LastQuestionID = d, questionID
	f.mu.Unlock()
	return f.DraftRet, f.DraftErr
}

func (f *fakeAPI) Institutes(ctx context.Context) ([]models.Institute, error) {
	f.record("Institutes", "")
	return f.InstitutesRet, f.CatalogErr
}

func (f *fakeAPI) InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error) {
	f.record("InstituteCourses", "")
	return f.CoursesRet, f.CatalogErr
}

func (f *fakeAPI) Courses(ctx context.Context) ([]models.Course, error) {
	f.record("Courses", "")
	return f.CoursesRet, f.CatalogErr
}

func (f *fakeAPI) Subjects(ctx context.Context) ([]models.Subject, error) {
	f.record("Subjects", "")
	return f.SubjectsRet, f.CatalogErr
}

func (f *fakeAPI) SubjectsByCourse(ctx context.Context, instituteCourseID string) ([]models.Subject, error) {
	f.record("SubjectsByCourse", "")
	return f.SubjectsRet, f.CatalogErr
}

func (f *fakeAPI) TopContributors(ctx context.Context) ([]models.Contributor, error) {
	f.record("TopContributors", "")
	return f.ContributorsRet, f.CatalogErr
}

func (f *fakeAPI) Analytics(ctx context.Context, userID string) (*models.Analytics, error) {
	f.record("Analytics", userID)
	return f.AnalyticsRet, f.AnalyticsErr
}

func (f *fakeAPI) RecentActivity(ctx context.Context, userID string) ([]models.Question, error) {
	f.record("RecentActivity", userID)
	return f.RecentRet, f.RecentErr
}

func (f *fakeAPI) WithdrawalRequests(ctx context.Context, userID string) ([]models.WithdrawalRequest, error) {
	f.record("WithdrawalRequests", userID)
	return f.WithdrawalsRet, f.WithdrawalsErr
}
