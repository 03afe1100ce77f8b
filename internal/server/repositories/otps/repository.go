// Package otps keeps one pending password-reset code per student.
package otps

import (
	"context"

	"github.com/dmitrijs2005/examhub/internal/server/models"
)

type Repository interface {
	// Upsert replaces any pending code of otp.StudentID.
	Upsert(ctx context.Context, otp *models.OTP) error
	Find(ctx context.Context, studentID string) (*models.OTP, error)
	MarkVerified(ctx context.Context, studentID string) error
	Delete(ctx context.Context, studentID string) error
}
