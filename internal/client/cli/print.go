package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dustin/go-humanize"
)

func printTable[T any](w io.Writer, header []string, rows []T, cells func(T) []string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(cells(r), "\t"))
	}
	_ = tw.Flush()
}

func printQuestions(w io.Writer, qs []models.Question) {
	printTable(w, []string{"ID", "TITLE", "SUBJECT", "BY", "READS", "POSTED"}, qs, func(q models.Question) []string {
		return []string{q.ID, q.Title, q.Subject.SubjectName, q.Owner.DisplayName(), humanize.Comma(int64(q.Reads)), humanize.Time(q.CreatedAt)}
	})
}

func printQuestion(w io.Writer, q *models.Question) {
	fmt.Fprintf(w, "%s\n%s\n", q.Title, strings.Repeat("=", len(q.Title)))
	fmt.Fprintf(w, "Subject: %s  Marks: %d  Reads: %s\n", q.Subject.SubjectName, q.Marks, humanize.Comma(int64(q.Reads)))
	if q.Institute != nil {
		fmt.Fprintf(w, "Institute: %s\n", q.Institute.InstituteName)
	}
	if q.Course != nil {
		fmt.Fprintf(w, "Course: %s\n", q.Course.CourseName)
	}
	fmt.Fprintf(w, "Posted by %s %s\n\n%s\n", q.Owner.DisplayName(), humanize.Time(q.CreatedAt), q.Content)
	for _, at := range q.Attachments {
		fmt.Fprintf(w, "Attachment: %s\n", at.URI)
	}
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "%s <%s>\n", u.Name, u.Email)
	if u.Username != "" {
		fmt.Fprintf(w, "Username: %s\n", u.Username)
	}
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Member since %s\n", humanize.Time(u.CreatedAt))
	}
}

func printDashboard(w io.Writer, d *models.Dashboard) {
	an := d.Analytics
	fmt.Fprintf(w, "Questions: %d  Reads: %s\n", an.TotalQuestions, humanize.Comma(int64(an.TotalReads)))
	fmt.Fprintf(w, "Earnings: %.2f  Available: %.2f\n\n", an.TotalEarnings, an.AvailableBalance)

	fmt.Fprintln(w, "Recent activity")
	printQuestions(w, d.RecentActivity)

	fmt.Fprintln(w, "\nWithdrawals")
	printTable(w, []string{"AMOUNT", "UPI", "STATUS", "REQUESTED"}, d.Withdrawals, func(r models.WithdrawalRequest) []string {
		return []string{fmt.Sprintf("%.2f", r.Amount), r.UPIID, r.Status, humanize.Time(r.CreatedAt)}
	})
}
