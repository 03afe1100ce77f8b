package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/repomanager"
)

// DemoPassword is the password of every seeded student.
const DemoPassword = "password123"

// DemoEmails lists the seeded students.
var DemoEmails = []string{"ada@examhub.dev", "grace@examhub.dev", "alan@examhub.dev"}

// Seed loads demo institutes, courses, subjects, students, questions and
// withdrawals. It does nothing when the catalog already has institutes.
func Seed(ctx context.Context, db *sql.DB, m repomanager.RepositoryManager, us *UserService) error {
	existing, err := m.Content(db).Institutes(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	names := []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}
	students := make([]*models.Student, len(DemoEmails))
	for i, email := range DemoEmails {
		st, err := us.Register(ctx, names[i], email, DemoPassword)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		students[i] = st
	}

	base := time.Now().UTC().Add(-30 * 24 * time.Hour).Truncate(time.Second)

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.Content(tx)

		mit := &models.Institute{Name: "Massachusetts Institute of Technology", CreatedAt: base}
		iit := &models.Institute{Name: "IIT Bombay", CreatedAt: base}
		cs := &models.Course{Name: "Computer Science", CreatedAt: base}
		ee := &models.Course{Name: "Electrical Engineering", CreatedAt: base}
		for _, i := range []*models.Institute{mit, iit} {
			if err := repo.CreateInstitute(ctx, i); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		for _, c := range []*models.Course{cs, ee} {
			if err := repo.CreateCourse(ctx, c); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		mitCS := &models.InstituteCourse{InstituteID: mit.ID, CourseID: cs.ID}
		iitCS := &models.InstituteCourse{InstituteID: iit.ID, CourseID: cs.ID}
		iitEE := &models.InstituteCourse{InstituteID: iit.ID, CourseID: ee.ID}
		for _, ic := range []*models.InstituteCourse{mitCS, iitCS, iitEE} {
			if err := repo.LinkCourse(ctx, ic); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		algorithms := &models.Subject{Name: "Algorithms", InstituteCourseID: mitCS.ID}
		opsys := &models.Subject{Name: "Operating Systems", InstituteCourseID: iitCS.ID}
		circuits := &models.Subject{Name: "Circuit Theory", InstituteCourseID: iitEE.ID}
		for _, sub := range []*models.Subject{algorithms, opsys, circuits} {
			if err := repo.CreateSubject(ctx, sub); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		questions := []*models.Question{
			{OwnerID: students[0].ID, Title: "Prove Dijkstra's algorithm is correct", SubjectID: algorithms.ID,
				InstituteID: mit.ID, CourseID: cs.ID, Marks: 10, Reads: 42,
				Content: "Show that each vertex leaves the queue with its final shortest distance."},
			{OwnerID: students[0].ID, Title: "Amortized cost of a dynamic array", SubjectID: algorithms.ID,
				InstituteID: mit.ID, CourseID: cs.ID, Marks: 5, Reads: 17,
				Content: "Use the potential method to bound append."},
			{OwnerID: students[1].ID, Title: "Explain the dining philosophers problem", SubjectID: opsys.ID,
				InstituteID: iit.ID, CourseID: cs.ID, Marks: 8, Reads: 63,
				Content: "Describe a deadlock-free solution."},
			{OwnerID: students[2].ID, Title: "Thevenin equivalent of a bridge circuit", SubjectID: circuits.ID,
				InstituteID: iit.ID, CourseID: ee.ID, Marks: 12, Reads: 8,
				Content:     "Find the equivalent seen from terminals a-b.",
				Attachments: []string{"https://cdn.examhub.dev/questions/bridge.png"}},
		}
		for i, q := range questions {
			q.CreatedAt = base.Add(time.Duration(i+1) * 24 * time.Hour)
			if err := repo.CreateQuestion(ctx, q); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		withdrawals := []*models.Withdrawal{
			{StudentID: students[0].ID, UPIID: "ada@upi", Amount: 2.5, Status: models.WithdrawalApproved, CreatedAt: base.Add(20 * 24 * time.Hour)},
			{StudentID: students[0].ID, UPIID: "ada@upi", Amount: 1, Status: models.WithdrawalRejected, CreatedAt: base.Add(25 * 24 * time.Hour)},
			{StudentID: students[1].ID, UPIID: "grace@upi", Amount: 3, CreatedAt: base.Add(26 * 24 * time.Hour)},
		}
		for _, w := range withdrawals {
			if err := repo.CreateWithdrawal(ctx, w); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}
		return nil
	})
}
