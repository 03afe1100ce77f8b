package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/logging"
)

func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	user *models.User
	err  error

	email     string
	password  string
	passwords []string
	otp       string
	upd       client.ProfileUpdate
	loggedOut bool
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.User, error) {
	f.email, f.password = email, string(password)
	return f.user, f.err
}
func (f *fakeAuth) Register(_ context.Context, name, email string, password []byte) (*models.User, error) {
	f.email, f.password = email, string(password)
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{Name: name, Email: email}, nil
}
func (f *fakeAuth) Logout(context.Context) error {
	f.loggedOut = true
	return f.err
}
func (f *fakeAuth) CurrentUser(context.Context) (*models.User, error) { return f.user, f.err }
func (f *fakeAuth) UpdateProfile(_ context.Context, upd client.ProfileUpdate) (*models.User, error) {
	f.upd = upd
	if f.err != nil {
		return nil, f.err
	}
	u := *f.user
	u.Username = upd.Username
	return &u, nil
}
func (f *fakeAuth) ChangePassword(_ context.Context, oldPassword, newPassword []byte) error {
	f.passwords = append(f.passwords, string(oldPassword), string(newPassword))
	return f.err
}
func (f *fakeAuth) RequestPasswordReset(_ context.Context, email string) (string, error) {
	f.email = email
	return "stu-1", f.err
}
func (f *fakeAuth) VerifyOTP(_ context.Context, _ string, otp string) error {
	f.otp = otp
	return f.err
}
func (f *fakeAuth) ResetPassword(_ context.Context, _ string, newPassword []byte) error {
	f.password = string(newPassword)
	return f.err
}

type fakeContent struct {
	questions    []models.Question
	institutes   []models.Institute
	courses      []models.Course
	subjects     []models.Subject
	contributors []models.Contributor
	err          error
	draftErr     error

	instituteID string
	drafts      []models.QuestionDraft
	editedID    string
}

func (f *fakeContent) Questions(context.Context) ([]models.Question, error) {
	return f.questions, f.err
}
func (f *fakeContent) Question(_ context.Context, id string) (*models.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i], nil
		}
	}
	return nil, io.EOF
}
func (f *fakeContent) Post(_ context.Context, d models.QuestionDraft) (*models.Question, error) {
	f.drafts = append(f.drafts, d)
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return &models.Question{ID: "q-new", Title: d.Title, Marks: d.Marks, Content: d.Content}, nil
}
func (f *fakeContent) Edit(_ context.Context, id string, d models.QuestionDraft) (*models.Question, error) {
	f.drafts = append(f.drafts, d)
	f.editedID = id
	if f.draftErr != nil {
		return nil, f.draftErr
	}
	return &models.Question{ID: id, Title: d.Title, Marks: d.Marks, Content: d.Content}, nil
}
func (f *fakeContent) Search(_ context.Context, flt models.QuestionFilter) ([]models.Question, error) {
	return flt.Filter(f.questions), f.err
}
func (f *fakeContent) Institutes(context.Context) ([]models.Institute, error) {
	return f.institutes, f.err
}
func (f *fakeContent) InstituteCourses(_ context.Context, id string) ([]models.Course, error) {
	f.instituteID = id
	return f.courses[:1], f.err
}
func (f *fakeContent) Courses(context.Context) ([]models.Course, error) { return f.courses, f.err }
func (f *fakeContent) Subjects(context.Context) ([]models.Subject, error) {
	return f.subjects, f.err
}
func (f *fakeContent) Contributors(context.Context) ([]models.Contributor, error) {
	return f.contributors, f.err
}

type fakeDashboard struct {
	dashboard *models.Dashboard
	profile   *models.Profile
	err       error
	profileID string
}

func (f *fakeDashboard) Dashboard(context.Context) (*models.Dashboard, error) {
	return f.dashboard, f.err
}
func (f *fakeDashboard) Profile(_ context.Context, id string) (*models.Profile, error) {
	f.profileID = id
	return f.profile, f.err
}

func newTestApp(auth *fakeAuth, content *fakeContent, dash *fakeDashboard) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		logger:           logging.Nop(),
		authService:      auth,
		contentService:   content,
		dashboardService: dash,
		reader:           rdr(""),
		out:              &out,
	}, &out
}
