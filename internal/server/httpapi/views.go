package httpapi

import (
	"time"

	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/services"
)

type attachmentView struct {
	URI string `json:"uri"`
}

type instituteView struct {
	ID            string          `json:"_id"`
	InstituteName string          `json:"instituteName"`
	InstituteLogo *attachmentView `json:"instituteLogo,omitempty"`
	CreatedAt     time.Time       `json:"createAt"`
}

type courseView struct {
	ID         string    `json:"_id"`
	CourseName string    `json:"courseName"`
	CreatedAt  time.Time `json:"createAt"`
}

type subjectView struct {
	ID                string `json:"_id"`
	SubjectName       string `json:"subjectName"`
	InstituteCourseID string `json:"instituteCourseId"`
}

type userView struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

type questionView struct {
	ID          string           `json:"_id"`
	Owner       any              `json:"owner"`
	Title       string           `json:"title"`
	Subject     subjectView      `json:"subject"`
	Institute   *instituteView   `json:"institute,omitempty"`
	Course      *courseView      `json:"course,omitempty"`
	Marks       int              `json:"marks"`
	Attachments []attachmentView `json:"attachments"`
	Content     string           `json:"content"`
	Reads       int              `json:"reads"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type contributorView struct {
	Owner         userView `json:"owner"`
	TotalReads    int      `json:"totalReads"`
	QuestionCount int      `json:"questionCount"`
}

type analyticsView struct {
	TotalReads       int     `json:"totalReads"`
	TotalQuestions   int     `json:"totalQuestions"`
	TotalEarnings    float64 `json:"totalEarnings"`
	AvailableBalance float64 `json:"availableBalance"`
}

type withdrawalView struct {
	ID        string    `json:"_id"`
	StudentID string    `json:"studentId"`
	UPIID     string    `json:"upiId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionView struct {
	User         userView `json:"user"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

type tokensView struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func toUser(s *models.Student) userView {
	return userView{
		ID:         s.ID,
		Name:       s.Name,
		Username:   s.Username,
		Email:      s.Email,
		IsVerified: s.IsVerified,
		CreatedAt:  s.CreatedAt,
	}
}

func toInstitute(i *models.Institute) *instituteView {
	if i == nil {
		return nil
	}
	v := &instituteView{ID: i.ID, InstituteName: i.Name, CreatedAt: i.CreatedAt}
	if i.LogoURI != "" {
		v.InstituteLogo = &attachmentView{URI: i.LogoURI}
	}
	return v
}

func toCourse(c *models.Course) *courseView {
	if c == nil {
		return nil
	}
	return &courseView{ID: c.ID, CourseName: c.Name, CreatedAt: c.CreatedAt}
}

func toSubject(s *models.Subject) subjectView {
	return subjectView{ID: s.ID, SubjectName: s.Name, InstituteCourseID: s.InstituteCourseID}
}

// toQuestion populates owner and subject when they resolve. An unresolved
// owner is sent as its bare id, an unresolved subject carries only its id.
func toQuestion(q services.QuestionView) questionView {
	v := questionView{
		ID:          q.ID,
		Owner:       q.OwnerID,
		Title:       q.Title,
		Subject:     subjectView{ID: q.SubjectID},
		Institute:   toInstitute(q.Institute),
		Course:      toCourse(q.Course),
		Marks:       q.Marks,
		Attachments: make([]attachmentView, 0, len(q.Attachments)),
		Content:     q.Content,
		Reads:       q.Reads,
		CreatedAt:   q.CreatedAt,
	}
	if q.Owner != nil {
		v.Owner = toUser(q.Owner)
	}
	if q.Subject != nil {
		v.Subject = toSubject(q.Subject)
	}
	for _, uri := range q.Attachments {
		v.Attachments = append(v.Attachments, attachmentView{URI: uri})
	}
	return v
}

func mapSlice[T, V any](in []T, f func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
