package formatter

import (
	"strconv"
	"strings"

	"sprintsense/internal/domain"
)

// FormatHistory renders past run records as a table, newest first.
func FormatHistory(recs []*domain.RunRecord) string {
	if len(recs) == 0 {
		return Dim("No runs recorded yet.") + "\n"
	}

	headers := []string{"WHEN", "KIND", "ITEM", "RESULT"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		item := Dim("--")
		if r.WorkItemID != 0 {
			item = Bold("#" + strconv.Itoa(r.WorkItemID))
		}
		rows = append(rows, []string{
			Dim(HumanTimestamp(r.StartedAt)),
			kindBadge(r.Kind),
			item,
			Truncate(r.Summary, 60),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

func kindBadge(k domain.RunKind) string {
	switch k {
	case domain.RunBreakdown:
		return StyleBlue.Render(string(k))
	case domain.RunEvaluation:
		return StylePurple.Render(string(k))
	case domain.RunInsights:
		return StyleGreen.Render(string(k))
	default:
		return StyleDim.Render(string(k))
	}
}
