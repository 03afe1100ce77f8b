// Package users stores student accounts of the development backend.
package users

import (
	"context"

	"github.com/dmitrijs2005/examhub/internal/server/models"
)

type Repository interface {
	// Create inserts s, assigning an id when s.ID is empty. A taken e-mail
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, s *models.Student) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	UpdateProfile(ctx context.Context, id, name, username string) error
	UpdatePassword(ctx context.Context, id string, hash []byte) error
}
