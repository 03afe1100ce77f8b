package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/examhub/internal/client/models"
)

func (a *App) Questions(ctx context.Context) error {
	qs, err := a.contentService.Questions(ctx)
	if err != nil {
		return a.report(err)
	}
	printQuestions(a.out, qs)
	return nil
}

func (a *App) Question(ctx context.Context, id string) error {
	q, err := a.contentService.Question(ctx, id)
	if err != nil {
		return a.report(err)
	}
	printQuestion(a.out, q)
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	qs, err := a.contentService.Search(ctx, models.QuestionFilter{Term: term})
	if err != nil {
		return a.report(err)
	}
	if len(qs) == 0 {
		fmt.Fprintf(a.out, "Nothing matches %q\n", term)
		return nil
	}
	printQuestions(a.out, qs)
	return nil
}

func (a *App) Institutes(ctx context.Context) error {
	is, err := a.contentService.Institutes(ctx)
	if err != nil {
		return a.report(err)
	}
	printTable(a.out, []string{"ID", "INSTITUTE"}, is, func(i models.Institute) []string {
		return []string{i.ID, i.InstituteName}
	})
	return nil
}

// Courses lists every course, or only those of one institute.
func (a *App) Courses(ctx context.Context, instituteID string) error {
	var (
		cs  []models.Course
		err error
	)
	if instituteID == "" {
		cs, err = a.contentService.Courses(ctx)
	} else {
		cs, err = a.contentService.InstituteCourses(ctx, instituteID)
	}
	if err != nil {
		return a.report(err)
	}
	printTable(a.out, []string{"ID", "COURSE"}, cs, func(c models.Course) []string {
		return []string{c.ID, c.CourseName}
	})
	return nil
}

func (a *App) Subjects(ctx context.Context) error {
	ss, err := a.contentService.Subjects(ctx)
	if err != nil {
		return a.report(err)
	}
	printTable(a.out, []string{"ID", "SUBJECT"}, ss, func(s models.Subject) []string {
		return []string{s.ID, s.SubjectName}
	})
	return nil
}

func (a *App) Contributors(ctx context.Context) error {
	cs, err := a.contentService.Contributors(ctx)
	if err != nil {
		return a.report(err)
	}
	rank := 0
	printTable(a.out, []string{"#", "STUDENT", "READS", "QUESTIONS"}, cs, func(c models.Contributor) []string {
		rank++
		return []string{fmt.Sprint(rank), c.Owner.DisplayName(), fmt.Sprint(c.TotalReads), fmt.Sprint(c.QuestionCount)}
	})
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.dashboardService.Dashboard(ctx)
	if err != nil {
		return a.report(err)
	}
	printDashboard(a.out, d)
	return nil
}

// Profile shows a student with their posts; an empty id means the
// logged-in student.
func (a *App) Profile(ctx context.Context, id string) error {
	p, err := a.dashboardService.Profile(ctx, id)
	if err != nil {
		return a.report(err)
	}
	printUser(a.out, &p.User)
	fmt.Fprintln(a.out)
	printQuestions(a.out, p.Questions)
	return nil
}

// readDraft prompts for each field of d. An empty answer keeps the value
// already in d.
func (a *App) readDraft(d models.QuestionDraft) (models.QuestionDraft, error) {
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Title", &d.Title},
		{"Subject ID", &d.SubjectID},
	}
	for _, f := range fields {
		s, err := getSimpleText(a.reader, withDefault(f.prompt, *f.value), a.out)
		if err != nil {
			return d, err
		}
		if s != "" {
			*f.value = s
		}
	}

	marks, err := getSimpleText(a.reader, withDefault("Marks", strconv.Itoa(d.Marks)), a.out)
	if err != nil {
		return d, err
	}
	if marks != "" {
		n, err := strconv.Atoi(marks)
		if err != nil {
			return d, fmt.Errorf("marks %q is not a number", marks)
		}
		d.Marks = n
	}

	content, err := getSimpleText(a.reader, withDefault("Content", d.Content), a.out)
	if err != nil {
		return d, err
	}
	if content != "" {
		d.Content = content
	}
	return d, nil
}

func withDefault(prompt, current string) string {
	if current == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, current)
}

// Post asks for a new question and shares it.
func (a *App) Post(ctx context.Context) error {
	d, err := a.readDraft(models.QuestionDraft{})
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	q, err := a.contentService.Post(ctx, d)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Question posted: %s\n", q.ID)
	return nil
}

// Edit loads question id and lets its owner rewrite it field by field.
func (a *App) Edit(ctx context.Context, id string) error {
	q, err := a.contentService.Question(ctx, id)
	if err != nil {
		return a.report(err)
	}
	d, err := a.readDraft(models.DraftOf(q))
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}
	q, err = a.contentService.Edit(ctx, id, d)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Question updated")
	printQuestion(a.out, q)
	return nil
}
