package otps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Upsert(ctx context.Context, otp *models.OTP) error {
	query := `
		INSERT INTO otps (student_id, code, expires_at, verified) VALUES (?, ?, ?, ?)
		ON CONFLICT(student_id) DO UPDATE SET
			code = excluded.code,
			expires_at = excluded.expires_at,
			verified = excluded.verified
	`
	if _, err := r.db.ExecContext(ctx, query, otp.StudentID, otp.Code, otp.Expires.UTC(), otp.Verified); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Find(ctx context.Context, studentID string) (*models.OTP, error) {
	otp := &models.OTP{}
	err := r.db.QueryRowContext(ctx, `SELECT student_id, code, expires_at, verified FROM otps WHERE student_id = ?`, studentID).
		Scan(&otp.StudentID, &otp.Code, &otp.Expires, &otp.Verified)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return otp, nil
}

func (r *SQLRepository) MarkVerified(ctx context.Context, studentID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE otps SET verified = TRUE WHERE student_id = ?`, studentID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, studentID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM otps WHERE student_id = ?`, studentID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
