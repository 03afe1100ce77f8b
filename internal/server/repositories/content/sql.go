package content

import (
	"context"
	"database/sql"
	"encoding/json"
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

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func ensureTime(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}

func (r *SQLRepository) exec(ctx context.Context, query string, args ...any) error {
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) CreateInstitute(ctx context.Context, i *models.Institute) error {
	ensureID(&i.ID)
	ensureTime(&i.CreatedAt)
	return r.exec(ctx, `INSERT INTO institutes (id, name, logo_uri, created_at) VALUES (?, ?, ?, ?)`,
		i.ID, i.Name, i.LogoURI, i.CreatedAt)
}

func (r *SQLRepository) CreateCourse(ctx context.Context, c *models.Course) error {
	ensureID(&c.ID)
	ensureTime(&c.CreatedAt)
	return r.exec(ctx, `INSERT INTO courses (id, name, created_at) VALUES (?, ?, ?)`, c.ID, c.Name, c.CreatedAt)
}

func (r *SQLRepository) LinkCourse(ctx context.Context, ic *models.InstituteCourse) error {
	ensureID(&ic.ID)
	return r.exec(ctx, `INSERT INTO institute_courses (id, institute_id, course_id) VALUES (?, ?, ?)`,
		ic.ID, ic.InstituteID, ic.CourseID)
}

func (r *SQLRepository) CreateSubject(ctx context.Context, s *models.Subject) error {
	ensureID(&s.ID)
	return r.exec(ctx, `INSERT INTO subjects (id, name, institute_course_id) VALUES (?, ?, ?)`,
		s.ID, s.Name, s.InstituteCourseID)
}

func (r *SQLRepository) CreateQuestion(ctx context.Context, q *models.Question) error {
	ensureID(&q.ID)
	ensureTime(&q.CreatedAt)
	attachments, err := json.Marshal(nonNil(q.Attachments))
	if err != nil {
		return fmt.Errorf("failed to encode attachments: %w", err)
	}
	return r.exec(ctx, `
		INSERT INTO questions (id, owner_id, title, subject_id, institute_id, course_id, marks, content, attachments, reads, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.OwnerID, q.Title, q.SubjectID, q.InstituteID, q.CourseID, q.Marks, q.Content, string(attachments), q.Reads, q.CreatedAt)
}

func (r *SQLRepository) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	ensureID(&w.ID)
	ensureTime(&w.CreatedAt)
	if w.Status == "" {
		w.Status = models.WithdrawalPending
	}
	return r.exec(ctx, `INSERT INTO withdrawals (id, student_id, upi_id, amount, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.StudentID, w.UPIID, w.Amount, w.Status, w.CreatedAt)
}

func (r *SQLRepository) Institutes(ctx context.Context) ([]models.Institute, error) {
	return list(ctx, r.db, `SELECT id, name, logo_uri, created_at FROM institutes ORDER BY name`, nil,
		func(s scanner, i *models.Institute) error { return s.Scan(&i.ID, &i.Name, &i.LogoURI, &i.CreatedAt) })
}

func scanCourse(s scanner, c *models.Course) error {
	return s.Scan(&c.ID, &c.Name, &c.CreatedAt)
}

func (r *SQLRepository) Courses(ctx context.Context) ([]models.Course, error) {
	return list(ctx, r.db, `SELECT id, name, created_at FROM courses ORDER BY name`, nil, scanCourse)
}

func (r *SQLRepository) InstituteCourses(ctx context.Context, instituteID string) ([]models.Course, error) {
	return list(ctx, r.db, `
		SELECT c.id, c.name, c.created_at
		FROM courses c
		JOIN institute_courses ic ON ic.course_id = c.id
		WHERE ic.institute_id = ?
		ORDER BY c.name
	`, []any{instituteID}, scanCourse)
}

func scanSubject(s scanner, sub *models.Subject) error {
	return s.Scan(&sub.ID, &sub.Name, &sub.InstituteCourseID)
}

func (r *SQLRepository) Subjects(ctx context.Context) ([]models.Subject, error) {
	return list(ctx, r.db, `SELECT id, name, institute_course_id FROM subjects ORDER BY name`, nil, scanSubject)
}

func (r *SQLRepository) SubjectsByInstituteCourse(ctx context.Context, instituteCourseID string) ([]models.Subject, error) {
	return list(ctx, r.db, `SELECT id, name, institute_course_id FROM subjects WHERE institute_course_id = ? ORDER BY name`,
		[]any{instituteCourseID}, scanSubject)
}

const selectQuestion = `
	SELECT id, owner_id, title, subject_id, institute_id, course_id, marks, content, attachments, reads, created_at
	FROM questions
`

func scanQuestion(s scanner, q *models.Question) error {
	var attachments string
	if err := s.Scan(&q.ID, &q.OwnerID, &q.Title, &q.SubjectID, &q.InstituteID, &q.CourseID,
		&q.Marks, &q.Content, &attachments, &q.Reads, &q.CreatedAt); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(attachments), &q.Attachments); err != nil {
		return fmt.Errorf("failed to decode attachments of %s: %w", q.ID, err)
	}
	return nil
}

func (r *SQLRepository) Questions(ctx context.Context) ([]models.Question, error) {
	return list(ctx, r.db, selectQuestion+` ORDER BY created_at DESC`, nil, scanQuestion)
}

func (r *SQLRepository) QuestionsByOwner(ctx context.Context, ownerID string) ([]models.Question, error) {
	return list(ctx, r.db, selectQuestion+` WHERE owner_id = ? ORDER BY created_at DESC`, []any{ownerID}, scanQuestion)
}

func (r *SQLRepository) Question(ctx context.Context, id string) (*models.Question, error) {
	q := &models.Question{}
	if err := scanQuestion(r.db.QueryRowContext(ctx, selectQuestion+` WHERE id = ?`, id), q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return q, nil
}

func (r *SQLRepository) IncrementReads(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET reads = reads + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) UpdateQuestion(ctx context.Context, q *models.Question) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE questions
		SET title = ?, subject_id = ?, institute_id = ?, course_id = ?, marks = ?, content = ?
		WHERE id = ?
	`, q.Title, q.SubjectID, q.InstituteID, q.CourseID, q.Marks, q.Content, q.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) SubjectPlacement(ctx context.Context, subjectID string) (*models.InstituteCourse, error) {
	ic := &models.InstituteCourse{}
	err := r.db.QueryRowContext(ctx, `
		SELECT ic.id, ic.institute_id, ic.course_id
		FROM subjects s
		JOIN institute_courses ic ON ic.id = s.institute_course_id
		WHERE s.id = ?
	`, subjectID).Scan(&ic.ID, &ic.InstituteID, &ic.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ic, nil
}

func (r *SQLRepository) Withdrawals(ctx context.Context, studentID string) ([]models.Withdrawal, error) {
	return list(ctx, r.db, `
		SELECT id, student_id, upi_id, amount, status, created_at
		FROM withdrawals
		WHERE student_id = ?
		ORDER BY created_at DESC
	`, []any{studentID}, func(s scanner, w *models.Withdrawal) error {
		return s.Scan(&w.ID, &w.StudentID, &w.UPIID, &w.Amount, &w.Status, &w.CreatedAt)
	})
}

type scanner interface {
	Scan(dest ...any) error
}

// list runs query and scans every row with scan. It never returns a nil
// slice on success.
func list[T any](ctx context.Context, db dbx.DBTX, query string, args []any, scan func(scanner, *T) error) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
