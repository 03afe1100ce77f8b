package services

import (
	"context"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/models"
)

// ContentService serves the question feed and the catalog.
type ContentService interface {
	Questions(ctx context.Context) ([]models.Question, error)
	Question(ctx context.Context, id string) (*models.Question, error)
	// Post shares a new question. Drafts are checked before any request.
	Post(ctx context.Context, d models.QuestionDraft) (*models.Question, error)
	// Edit rewrites a question the current student owns.
	Edit(ctx context.Context, id string, d models.QuestionDraft) (*models.Question, error)
	// Search filters the full question list locally.
	Search(ctx context.Context, f models.QuestionFilter) ([]models.Question, error)
	Institutes(ctx context.Context) ([]models.Institute, error)
	InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	Contributors(ctx context.Context) ([]models.Contributor, error)
}

type contentService struct {
	api client.API
}

func NewContentService(api client.API) ContentService {
	return &contentService{api: api}
}

func (s *contentService) Questions(ctx context.Context) ([]models.Question, error) {
	return s.api.Questions(ctx)
}

func (s *contentService) Question(ctx context.Context, id string) (*models.Question, error) {
	return s.api.QuestionDetails(ctx, id)
}

func (s *contentService) Post(ctx context.Context, d models.QuestionDraft) (*models.Question, error) {
	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return s.api.PostQuestion(ctx, d)
}

func (s *contentService) Edit(ctx context.Context, id string, d models.QuestionDraft) (*models.Question, error) {
	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return s.api.UpdateQuestion(ctx, id, d)
}

func (s *contentService) Search(ctx context.Context, f models.QuestionFilter) ([]models.Question, error) {
	qs, err := s.api.Questions(ctx)
	if err != nil {
		return nil, err
	}
	return f.Filter(qs), nil
}

func (s *contentService) Institutes(ctx context.Context) ([]models.Institute, error) {
	return s.api.Institutes(ctx)
}

func (s *contentService) InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error) {
	return s.api.InstituteCourses(ctx, instituteID)
}

func (s *contentService) Courses(ctx context.Context) ([]models.Course, error) {
	return s.api.Courses(ctx)
}

func (s *contentService) Subjects(ctx context.Context) ([]models.Subject, error) {
	return s.api.Subjects(ctx)
}

func (s *contentService) Contributors(ctx context.Context) ([]models.Contributor, error) {
	return s.api.TopContributors(ctx)
}
