package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/content"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/repomanager"
)

const (
	// EarningsPerRead is what a student earns each time one of their
	// questions is opened.
	EarningsPerRead = 0.10

	DefaultContributorsLimit   = 10
	DefaultRecentActivityLimit = 5
)

// QuestionView is a question with its references resolved. Nil pointers
// mean the referenced record no longer exists.
type QuestionView struct {
	models.Question
	Owner     *models.Student
	Subject   *models.Subject
	Institute *models.Institute
	Course    *models.Course
}

type Contributor struct {
	Owner         models.Student
	TotalReads    int
	QuestionCount int
}

type Analytics struct {
	TotalReads       int
	TotalQuestions   int
	TotalEarnings    float64
	AvailableBalance float64
}

// QuestionInput holds the fields a student writes when posting or editing
// a question. Attachments are not handled here.
type QuestionInput struct {
	Title     string
	SubjectID string
	Marks     int
	Content   string
}

func (in *QuestionInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.SubjectID = strings.TrimSpace(in.SubjectID)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.SubjectID == "" || in.Content == "" {
		return ErrMissingFields
	}
	if in.Marks < 0 {
		return ErrInvalidMarks
	}
	return nil
}

type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repomanager: m}
}

func (s *ContentService) Institutes(ctx context.Context) ([]models.Institute, error) {
	return s.repomanager.Content(s.db).Institutes(ctx)
}

func (s *ContentService) InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error) {
	return s.repomanager.Content(s.db).InstituteCourses(ctx, instituteID)
}

func (s *ContentService) Courses(ctx context.Context) ([]models.Course, error) {
	return s.repomanager.Content(s.db).Courses(ctx)
}

func (s *ContentService) Subjects(ctx context.Context) ([]models.Subject, error) {
	return s.repomanager.Content(s.db).Subjects(ctx)
}

func (s *ContentService) SubjectsByCourse(ctx context.Context, instituteCourseID string) ([]models.Subject, error) {
	return s.repomanager.Content(s.db).SubjectsByInstituteCourse(ctx, instituteCourseID)
}

// Questions returns every question, newest first.
func (s *ContentService) Questions(ctx context.Context) ([]QuestionView, error) {
	qs, err := s.repomanager.Content(s.db).Questions(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, qs)
}

// StudentPosts returns the questions shared by studentID, newest first.
func (s *ContentService) StudentPosts(ctx context.Context, studentID string) ([]QuestionView, error) {
	qs, err := s.repomanager.Content(s.db).QuestionsByOwner(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, qs)
}

// QuestionDetails counts a read and returns the question.
func (s *ContentService) QuestionDetails(ctx context.Context, id string) (*QuestionView, error) {
	repo := s.repomanager.Content(s.db)
	if err := repo.IncrementReads(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	q, err := repo.Question(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	views, err := s.expand(ctx, []models.Question{*q})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// PostQuestion shares a new question owned by ownerID. Institute and course
// are taken from the subject.
func (s *ContentService) PostQuestion(ctx context.Context, ownerID string, in QuestionInput) (*QuestionView, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	q := &models.Question{
		OwnerID:   ownerID,
		Title:     in.Title,
		SubjectID: in.SubjectID,
		Marks:     in.Marks,
		Content:   in.Content,
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Content(tx)
		if err := place(ctx, repo, q); err != nil {
			return err
		}
		return repo.CreateQuestion(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, q.ID)
}

// UpdateQuestion rewrites the text fields of questionID. Only its owner may
// edit it; reads, attachments and creation time are kept.
func (s *ContentService) UpdateQuestion(ctx context.Context, ownerID, questionID string, in QuestionInput) (*QuestionView, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Content(tx)
		q, err := repo.Question(ctx, questionID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrQuestionNotFound
			}
			return err
		}
		if q.OwnerID != ownerID {
			return ErrForbidden
		}

		q.Title = in.Title
		q.SubjectID = in.SubjectID
		q.Marks = in.Marks
		q.Content = in.Content
		if err := place(ctx, repo, q); err != nil {
			return err
		}
		return repo.UpdateQuestion(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, questionID)
}

// place fills the institute and course of q from its subject.
func place(ctx context.Context, repo content.Repository, q *models.Question) error {
	ic, err := repo.SubjectPlacement(ctx, q.SubjectID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	q.InstituteID = ic.InstituteID
	q.CourseID = ic.CourseID
	return nil
}

// view loads one question without counting a read.
func (s *ContentService) view(ctx context.Context, id string) (*QuestionView, error) {
	q, err := s.repomanager.Content(s.db).Question(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.expand(ctx, []models.Question{*q})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// RecentActivity returns the latest limit questions of studentID.
func (s *ContentService) RecentActivity(ctx context.Context, studentID string, limit int) ([]QuestionView, error) {
	views, err := s.StudentPosts(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}

// TopContributors ranks students by the total reads of their questions.
// Students without questions are left out.
func (s *ContentService) TopContributors(ctx context.Context, limit int) ([]Contributor, error) {
	qs, err := s.repomanager.Content(s.db).Questions(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Contributor, len(students))
	for _, st := range students {
		byID[st.ID] = &Contributor{Owner: st}
	}
	for _, q := range qs {
		c, ok := byID[q.OwnerID]
		if !ok {
			continue
		}
		c.TotalReads += q.Reads
		c.QuestionCount++
	}

	out := make([]Contributor, 0, len(byID))
	for _, c := range byID {
		if c.QuestionCount > 0 {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalReads != out[j].TotalReads {
			return out[i].TotalReads > out[j].TotalReads
		}
		if out[i].QuestionCount != out[j].QuestionCount {
			return out[i].QuestionCount > out[j].QuestionCount
		}
		return out[i].Owner.ID < out[j].Owner.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Analytics sums the reads of studentID's questions. Pending and approved
// withdrawals are subtracted from the earnings.
func (s *ContentService) Analytics(ctx context.Context, studentID string) (*Analytics, error) {
	repo := s.repomanager.Content(s.db)

	qs, err := repo.QuestionsByOwner(ctx, studentID)
	if err != nil {
		return nil, err
	}
	ws, err := repo.Withdrawals(ctx, studentID)
	if err != nil {
		return nil, err
	}

	a := &Analytics{TotalQuestions: len(qs)}
	for _, q := range qs {
		a.TotalReads += q.Reads
	}
	a.TotalEarnings = round2(float64(a.TotalReads) * EarningsPerRead)

	var withdrawn float64
	for _, w := range ws {
		if w.Status != models.WithdrawalRejected {
			withdrawn += w.Amount
		}
	}
	a.AvailableBalance = round2(math.Max(0, a.TotalEarnings-withdrawn))
	return a, nil
}

func (s *ContentService) Withdrawals(ctx context.Context, studentID string) ([]models.Withdrawal, error) {
	return s.repomanager.Content(s.db).Withdrawals(ctx, studentID)
}

// expand resolves owners, subjects, institutes and courses of qs.
func (s *ContentService) expand(ctx context.Context, qs []models.Question) ([]QuestionView, error) {
	repo := s.repomanager.Content(s.db)

	students, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading owners: %w", err)
	}
	subjects, err := repo.Subjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading subjects: %w", err)
	}
	institutes, err := repo.Institutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading institutes: %w", err)
	}
	courses, err := repo.Courses(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading courses: %w", err)
	}

	ownerByID := index(students, func(v models.Student) string { return v.ID })
	subjectByID := index(subjects, func(v models.Subject) string { return v.ID })
	instituteByID := index(institutes, func(v models.Institute) string { return v.ID })
	courseByID := index(courses, func(v models.Course) string { return v.ID })

	out := make([]QuestionView, 0, len(qs))
	for _, q := range qs {
		out = append(out, QuestionView{
			Question:  q,
			Owner:     ownerByID[q.OwnerID],
			Subject:   subjectByID[q.SubjectID],
			Institute: instituteByID[q.InstituteID],
			Course:    courseByID[q.CourseID],
		})
	}
	return out, nil
}

func index[T any](items []T, key func(T) string) map[string]*T {
	m := make(map[string]*T, len(items))
	for i := range items {
		m[key(items[i])] = &items[i]
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
