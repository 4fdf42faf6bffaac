package formatter

import (
	"fmt"
	"strings"

	"sprintsense/internal/service"
)

// FormatEvaluation renders a task evaluation report grouped by verdict.
func FormatEvaluation(report *service.EvaluationReport) string {
	var b strings.Builder
	eval := report.Evaluation

	b.WriteString(Header(fmt.Sprintf("#%d %s", report.Story.ID, report.Story.Title)))
	b.WriteString("\n")
	if report.AvailableHours > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d existing tasks · %s available in the planned window\n",
			len(report.Tasks), FormatHours(report.AvailableHours))))
	} else {
		b.WriteString(Dim(fmt.Sprintf("%d existing tasks · no planned window\n", len(report.Tasks))))
	}
	b.WriteString("\n")

	for _, v := range eval.Correct {
		b.WriteString(fmt.Sprintf("%s #%d %s\n", StyleGreen.Render("✔ keep"), v.ID, v.Title))
		if v.Reason != "" {
			b.WriteString(Dim("    "+v.Reason) + "\n")
		}
	}
	for _, r := range eval.ToUpdate {
		b.WriteString(fmt.Sprintf("%s #%d %s\n", StyleYellow.Render("✎ update"), r.ID, r.Title))
		if r.Issue != "" {
			b.WriteString(Dim("    issue: "+r.Issue) + "\n")
		}
		if r.Suggestion != "" {
			b.WriteString(Dim("    suggestion: "+r.Suggestion) + "\n")
		}
	}
	for _, v := range eval.ToDelete {
		b.WriteString(fmt.Sprintf("%s #%d %s\n", StyleRed.Render("✖ delete"), v.ID, v.Title))
		if v.Reason != "" {
			b.WriteString(Dim("    "+v.Reason) + "\n")
		}
	}
	for _, t := range eval.NewTasks {
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", StyleBlue.Render("+ add"), t.Title, FormatHours(t.Hours)))
		if t.Reason != "" {
			b.WriteString(Dim("    "+t.Reason) + "\n")
		}
	}

	if eval.Summary != "" {
		b.WriteString("\n")
		b.WriteString(RenderBox("summary", eval.Summary))
		b.WriteString("\n")
	}

	return b.String()
}
