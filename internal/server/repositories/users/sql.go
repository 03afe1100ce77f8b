package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/google/uuid"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

const selectStudent = `
	SELECT id, name, username, email, password_hash, institute_id, course_id, is_verified, created_at
	FROM students
`

func (r *SQLRepository) Create(ctx context.Context, s *models.Student) (*models.Student, error) {
	out := *s
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO students (id, name, username, email, password_hash, institute_id, course_id, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		out.ID, out.Name, out.Username, out.Email, out.PasswordHash, out.InstituteID, out.CourseID, out.IsVerified, out.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &out, nil
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, selectStudent+` WHERE email = ?`, email)
}

func (r *SQLRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	return r.getOne(ctx, selectStudent+` WHERE id = ?`, id)
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Student, error) {
	rows, err := r.db.QueryContext(ctx, selectStudent+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Student
	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) UpdateProfile(ctx context.Context, id, name, username string) error {
	return r.update(ctx, `UPDATE students SET name = ?, username = ? WHERE id = ?`, name, username, id)
}

func (r *SQLRepository) UpdatePassword(ctx context.Context, id string, hash []byte) error {
	return r.update(ctx, `UPDATE students SET password_hash = ? WHERE id = ?`, hash, id)
}

func (r *SQLRepository) update(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg string) (*models.Student, error) {
	s := &models.Student{}
	if err := scanStudent(r.db.QueryRowContext(ctx, query, arg), s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner, s *models.Student) error {
	return row.Scan(&s.ID, &s.Name, &s.Username, &s.Email, &s.PasswordHash,
		&s.InstituteID, &s.CourseID, &s.IsVerified, &s.CreatedAt)
}
