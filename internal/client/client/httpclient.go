package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/client/transport"
)

// Requester is the part of transport.Client the API needs.
type Requester interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...transport.RequestOption) error
}

type HTTPClient struct {
	r Requester
}

var _ API = (*HTTPClient)(nil)

func NewHTTPClient(r Requester) *HTTPClient {
	return &HTTPClient{r: r}
}

type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

func call[T any](ctx context.Context, r Requester, method, path string, body any) (T, error) {
	var env envelope[T]
	if err := r.Do(ctx, method, path, body, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

func seg(s string) string {
	return url.PathEscape(s)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body := map[string]string{"email": strings.ToLower(strings.TrimSpace(email)), "password": password}
	s, err := call[models.Session](ctx, c.r, http.MethodPost, "/student/login/", body)
	if err != nil {
		return nil, err
	}
	if s.User.ID == "" || s.AccessToken == "" || s.RefreshToken == "" {
		return nil, fmt.Errorf("%w: login", ErrIncompleteResponse)
	}
	return &s, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	body := map[string]string{
		"name":     strings.TrimSpace(name),
		"email":    strings.ToLower(strings.TrimSpace(email)),
		"password": password,
	}
	u, err := call[models.User](ctx, c.r, http.MethodPost, "/student/signup", body)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetUserDetails(ctx context.Context, userID string) (*models.User, error) {
	u, err := call[models.User](ctx, c.r, http.MethodGet, "/student/getUserDetails/"+seg(userID), nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) StudentPosts(ctx context.Context, userID string) ([]models.Question, error) {
	return call[[]models.Question](ctx, c.r, http.MethodGet, "/student/student-posts/"+seg(userID), nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.User, error) {
	u, err := call[models.User](ctx, c.r, http.MethodPatch, "/student/updateUserProfile/"+seg(userID), upd)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.r.Do(ctx, http.MethodPost, "/student/changePassword", body, nil)
}

// GenerateOTP sends a reset code to email and returns the student id the
// following reset steps refer to.
func (c *HTTPClient) GenerateOTP(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": strings.ToLower(strings.TrimSpace(email))}
	out, err := call[struct {
		StudentID string `json:"studentId"`
	}](ctx, c.r, http.MethodPost, "/student/generateOtp", body)
	if err != nil {
		return "", err
	}
	if out.StudentID == "" {
		return "", fmt.Errorf("%w: generate otp", ErrIncompleteResponse)
	}
	return out.StudentID, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, studentID, otp string) error {
	body := map[string]string{"studentId": studentID, "otp": otp}
	return c.r.Do(ctx, http.MethodPost, "/student/verifyOtp", body, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, studentID, newPassword string) error {
	body := map[string]string{"studentId": studentID, "newPassword": newPassword}
	return c.r.Do(ctx, http.MethodPost, "/student/resetPassword", body, nil)
}

func (c *HTTPClient) Questions(ctx context.Context) ([]models.Question, error) {
	return call[[]models.Question](ctx, c.r, http.MethodGet, "/question/getAllQuestions", nil)
}

func (c *HTTPClient) QuestionDetails(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := call[models.Question](ctx, c.r, http.MethodGet, "/question/getQuestionDetails/"+seg(questionID), nil)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *HTTPClient) PostQuestion(ctx context.Context, d models.QuestionDraft) (*models.Question, error) {
	q, err := call[models.Question](ctx, c.r, http.MethodPost, "/question/postQuestion", d)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion edits questionID. The backend names the question in the
// body rather than the path.
func (c *HTTPClient) UpdateQuestion(ctx context.Context, questionID string, d models.QuestionDraft) (*models.Question, error) {
	body := struct {
		ID string `json:"id"`
		models.QuestionDraft
	}{ID: questionID, QuestionDraft: d}
	q, err := call[models.Question](ctx, c.r, http.MethodPatch, "/question/updateQuestionDetails", body)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *HTTPClient) Institutes(ctx context.Context) ([]models.Institute, error) {
	return call[[]models.Institute](ctx, c.r, http.MethodGet, "/institute/getAllInstitutes", nil)
}

func (c *HTTPClient) InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error) {
	return call[[]models.Course](ctx, c.r, http.MethodGet, "/instituteCourse/getInstituteCourses/"+seg(instituteID), nil)
}

func (c *HTTPClient) Courses(ctx context.Context) ([]models.Course, error) {
	return call[[]models.Course](ctx, c.r, http.MethodGet, "/course/getAllCourses", nil)
}

func (c *HTTPClient) Subjects(ctx context.Context) ([]models.Subject, error) {
	return call[[]models.Subject](ctx, c.r, http.MethodGet, "/subject/getAllSubjects/", nil)
}

func (c *HTTPClient) SubjectsByCourse(ctx context.Context, instituteCourseID string) ([]models.Subject, error) {
	return call[[]models.Subject](ctx, c.r, http.MethodGet, "/subject/getByCourse/"+seg(instituteCourseID), nil)
}

func (c *HTTPClient) TopContributors(ctx context.Context) ([]models.Contributor, error) {
	return call[[]models.Contributor](ctx, c.r, http.MethodGet, "/student/getTopContributors/", nil)
}

func (c *HTTPClient) Analytics(ctx context.Context, userID string) (*models.Analytics, error) {
	a, err := call[models.Analytics](ctx, c.r, http.MethodGet, "/student/analytics/"+seg(userID), nil)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) RecentActivity(ctx context.Context, userID string) ([]models.Question, error) {
	return call[[]models.Question](ctx, c.r, http.MethodGet, "/question/getRecentActivity/"+seg(userID), nil)
}

func (c *HTTPClient) WithdrawalRequests(ctx context.Context, userID string) ([]models.WithdrawalRequest, error) {
	return call[[]models.WithdrawalRequest](ctx, c.r, http.MethodGet, "/withdraw/requests/"+seg(userID), nil)
}
