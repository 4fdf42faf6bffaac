package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"sprintsense/internal/domain"
	"sprintsense/internal/service"
)

// FormatBreakdownPlan renders generated tasks for review before creation.
func FormatBreakdownPlan(plan *service.BreakdownPlan) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("#%d %s", plan.Story.ID, plan.Story.Title)))
	b.WriteString("\n")

	if len(plan.Tasks) == 0 {
		b.WriteString(Dim("No tasks generated.") + "\n")
		return b.String()
	}

	headers := []string{"", "TITLE", "HOURS", "PRIORITY", "ACTIVITY"}
	rows := make([][]string, 0, len(plan.Tasks))
	var total float64
	for _, t := range plan.Tasks {
		mark := Dim("·")
		if t.Selected {
			mark = StyleGreen.Render("✔")
			total += t.Hours
		}
		rows = append(rows, []string{
			mark,
			Truncate(t.Title, 48),
			StyleFg.Render(FormatHours(t.Hours)),
			PriorityPill(t.Priority),
			StylePurple.Render(t.Activity),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s selected, %s total\n",
		Bold(strconv.Itoa(countSelected(plan.Tasks))), Bold(FormatHours(total))))

	return b.String()
}

func countSelected(tasks []domain.GeneratedTask) int {
	n := 0
	for _, t := range tasks {
		if t.Selected {
			n++
		}
	}
	return n
}

// FormatCreateReport summarizes a bulk task creation.
func FormatCreateReport(report *service.CreateReport) string {
	var b strings.Builder

	if report.Created > 0 {
		b.WriteString(StyleGreen.Render(fmt.Sprintf("✔ %d tasks created", report.Created)))
	}
	if report.Failed > 0 {
		if report.Created > 0 {
			b.WriteString(Dim(" · "))
		}
		b.WriteString(StyleRed.Render(fmt.Sprintf("✖ %d failed", report.Failed)))
	}
	if report.Created == 0 && report.Failed == 0 {
		b.WriteString(Dim("Nothing to create."))
	}
	b.WriteString("\n")

	for _, e := range report.Errors {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("error"), e))
	}

	return b.String()
}
