package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/client/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent() *fakeContent {
	posted := time.Now().Add(-48 * time.Hour)
	return &fakeContent{
		questions: []models.Question{
			{ID: "q1", Title: "Amortized cost of a dynamic array", Owner: models.Owner{User: *ada},
				Subject: models.Subject{SubjectName: "Algorithms"}, Reads: 1700, Marks: 5, CreatedAt: posted,
				Institute: &models.Institute{InstituteName: "MIT"}, Content: "Use the potential method.",
				Attachments: []models.Attachment{{URI: "https://cdn.examhub.dev/a.png"}}},
			{ID: "q2", Title: "Dining philosophers", Subject: models.Subject{SubjectName: "Operating Systems"}, Reads: 63, CreatedAt: posted},
		},
		institutes: []models.Institute{{ID: "i1", InstituteName: "MIT"}},
		courses:    []models.Course{{ID: "c1", CourseName: "Computer Science"}, {ID: "c2", CourseName: "Electrical"}},
		subjects:   []models.Subject{{ID: "s1", SubjectName: "Algorithms"}},
		contributors: []models.Contributor{
			{Owner: models.User{Name: "Grace Hopper"}, TotalReads: 63, QuestionCount: 1},
			{Owner: models.User{Name: "Ada Lovelace"}, TotalReads: 59, QuestionCount: 2},
		},
	}
}

func TestQuestions(t *testing.T) {
	a, out := newTestApp(nil, sampleContent(), nil)

	require.NoError(t, a.Questions(context.Background()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Amortized cost of a dynamic array")
	assert.Contains(t, lines[1], "1,700")
	assert.Contains(t, lines[1], "2 days ago")
}

func TestQuestion(t *testing.T) {
	a, out := newTestApp(nil, sampleContent(), nil)

	require.NoError(t, a.Question(context.Background(), "q1"))
	s := out.String()
	assert.Contains(t, s, "Subject: Algorithms  Marks: 5  Reads: 1,700")
	assert.Contains(t, s, "Institute: MIT")
	assert.Contains(t, s, "Posted by Ada Lovelace")
	assert.Contains(t, s, "Attachment: https://cdn.examhub.dev/a.png")
}

func TestSearch(t *testing.T) {
	a, out := newTestApp(nil, sampleContent(), nil)

	require.NoError(t, a.Search(context.Background(), "DINING"))
	assert.Contains(t, out.String(), "Dining philosophers")
	assert.NotContains(t, out.String(), "Amortized")

	out.Reset()
	require.NoError(t, a.Search(context.Background(), "heap"))
	assert.Equal(t, "Nothing matches \"heap\"\n", out.String())
}

func TestCatalog(t *testing.T) {
	content := sampleContent()
	a, out := newTestApp(nil, content, nil)
	ctx := context.Background()

	require.NoError(t, a.Institutes(ctx))
	assert.Contains(t, out.String(), "MIT")

	out.Reset()
	require.NoError(t, a.Courses(ctx, ""))
	assert.Contains(t, out.String(), "Electrical")

	out.Reset()
	require.NoError(t, a.Courses(ctx, "i1"))
	assert.Equal(t, "i1", content.instituteID)
	assert.NotContains(t, out.String(), "Electrical")

	out.Reset()
	require.NoError(t, a.Subjects(ctx))
	assert.Contains(t, out.String(), "Algorithms")

	out.Reset()
	content.subjects = nil
	require.NoError(t, a.Subjects(ctx))
	assert.Equal(t, "(none)\n", out.String())
}

func TestContributors(t *testing.T) {
	a, out := newTestApp(nil, sampleContent(), nil)

	require.NoError(t, a.Contributors(context.Background()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "Grace Hopper")
	assert.True(t, strings.HasPrefix(lines[2], "2 "))
}

func TestDashboard(t *testing.T) {
	dash := &fakeDashboard{dashboard: &models.Dashboard{
		Analytics:      models.Analytics{TotalReads: 59, TotalQuestions: 2, TotalEarnings: 5.9, AvailableBalance: 3.4},
		RecentActivity: sampleContent().questions[:1],
		Withdrawals: []models.WithdrawalRequest{
			{UPIID: "ada@upi", Amount: 2.5, Status: "approved", CreatedAt: time.Now()},
		},
	}}
	a, out := newTestApp(nil, nil, dash)

	require.NoError(t, a.Dashboard(context.Background()))
	s := out.String()
	assert.Contains(t, s, "Questions: 2  Reads: 59")
	assert.Contains(t, s, "Earnings: 5.90  Available: 3.40")
	assert.Contains(t, s, "Amortized cost of a dynamic array")
	assert.Contains(t, s, "ada@upi")
}

func TestProfile(t *testing.T) {
	dash := &fakeDashboard{profile: &models.Profile{User: *ada, Questions: sampleContent().questions}}
	a, out := newTestApp(nil, nil, dash)

	require.NoError(t, a.Profile(context.Background(), "stu-1"))
	assert.Equal(t, "stu-1", dash.profileID)
	assert.Contains(t, out.String(), "Ada Lovelace <ada@examhub.dev>")
	assert.Contains(t, out.String(), "Dining philosophers")
}

func TestPost(t *testing.T) {
	content := sampleContent()
	a, out := newTestApp(nil, content, nil)
	stubInputs(t, []string{"Heap sort stability", "s1", "5", "Is heap sort stable? Explain."})

	require.NoError(t, a.Post(context.Background()))
	require.Equal(t, []models.QuestionDraft{{Title: "Heap sort stability", SubjectID: "s1", Marks: 5, Content: "Is heap sort stable? Explain."}}, content.drafts)
	assert.Equal(t, "Question posted: q-new\n", out.String())
}

func TestPost_BadMarks(t *testing.T) {
	content := sampleContent()
	a, out := newTestApp(nil, content, nil)
	stubInputs(t, []string{"Heaps", "s1", "five"})

	require.Error(t, a.Post(context.Background()))
	assert.Empty(t, content.drafts)
	assert.Contains(t, out.String(), `marks "five" is not a number`)
}

func TestEdit_KeepsBlankFields(t *testing.T) {
	content := sampleContent()
	content.questions[0].Subject.ID = "s1"
	a, out := newTestApp(nil, content, nil)
	stubInputs(t, []string{"", "", "10", ""})

	require.NoError(t, a.Edit(context.Background(), "q1"))
	require.Equal(t, "q1", content.editedID)
	require.Equal(t, models.QuestionDraft{
		Title:     "Amortized cost of a dynamic array",
		SubjectID: "s1",
		Marks:     10,
		Content:   "Use the potential method.",
	}, content.drafts[0])
	assert.Contains(t, out.String(), "Question updated")
	assert.Contains(t, out.String(), "Marks: 10")
}

func TestEdit_NotOwner(t *testing.T) {
	content := sampleContent()
	content.draftErr = &transport.Error{Kind: transport.ErrAPI, StatusCode: 403, Message: "You can only edit your own questions"}
	a, out := newTestApp(nil, content, nil)
	stubInputs(t, []string{"Mine now", "", "", ""})

	err := a.Edit(context.Background(), "q2")
	require.ErrorIs(t, err, transport.ErrAPI)
	assert.Equal(t, "You can only edit your own questions\n", out.String())
}

func TestEdit_UnknownQuestion(t *testing.T) {
	content := sampleContent()
	a, _ := newTestApp(nil, content, nil)

	require.Error(t, a.Edit(context.Background(), "nope"))
	assert.Empty(t, content.drafts)
}
