package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"sprintsense/internal/service"
)

// FormatInsights renders a backlog scan as a table plus per-item detail
// for everything that needs attention.
func FormatInsights(report *service.InsightsReport) string {
	var b strings.Builder

	if report.ItemsChecked == 0 {
		return Dim("No work items to check.") + "\n"
	}

	headers := []string{"ID", "TYPE", "TITLE", "HEALTH", "ISSUES"}
	rows := make([][]string, 0, len(report.Items))
	for _, item := range report.Items {
		res := item.Result
		issues := Dim("--")
		if n := len(res.FieldsToFix); n > 0 {
			issues = StyleYellow.Render(strconv.Itoa(n))
		}
		rows = append(rows, []string{
			Bold(strconv.Itoa(res.ID)),
			TypeBadge(res.Type),
			Truncate(res.Title, 40),
			HealthPill(res.IsComplete, res.TimelineWarning),
			issues,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")

	for _, item := range report.Items {
		res := item.Result
		if !res.HasIssues {
			continue
		}

		b.WriteString(Header(fmt.Sprintf("#%d %s", res.ID, res.Title)))
		b.WriteString("\n")
		for _, f := range res.MissingFields {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("missing"), f))
		}
		for _, msg := range res.InvalidFields {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("invalid"), msg))
		}
		if res.TimelineWarning != "" {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("warning"), res.TimelineWarning))
		}

		switch {
		case item.Fixed:
			b.WriteString(fmt.Sprintf("  %s %d fields updated\n", StyleGreen.Render("fixed"), len(item.FixPlan)))
		case item.FixError != "":
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("fix failed"), item.FixError))
		case len(item.FixPlan) > 0:
			for _, fv := range item.FixPlan {
				b.WriteString(fmt.Sprintf("  %s %s = %v\n", StyleBlue.Render("suggest"), shortRef(fv.FieldRef), fv.Value))
			}
		}
		b.WriteString("\n")
	}

	complete := report.ItemsChecked - report.ItemsWithIssues
	b.WriteString(RenderProgress(float64(complete)/float64(report.ItemsChecked), 10))
	b.WriteString(Dim(" complete") + "\n")

	summary := fmt.Sprintf("%d checked", report.ItemsChecked)
	if report.ItemsWithIssues > 0 {
		summary += Dim(" · ") + StyleYellow.Render(fmt.Sprintf("%d with issues", report.ItemsWithIssues))
	} else {
		summary += Dim(" · ") + StyleGreen.Render("all consistent")
	}
	if report.ItemsFixed > 0 {
		summary += Dim(" · ") + StyleGreen.Render(fmt.Sprintf("%d fixed (%d fields)", report.ItemsFixed, report.FieldsUpdated))
	}
	if report.FixFailures > 0 {
		summary += Dim(" · ") + StyleRed.Render(fmt.Sprintf("%d fix failures", report.FixFailures))
	}
	b.WriteString(summary)
	b.WriteString("\n")

	return b.String()
}
