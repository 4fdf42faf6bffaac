package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sprintsense/internal/domain"
	"sprintsense/internal/service"
	"sprintsense/internal/validation"
)

func TestFormatInsights_Empty(t *testing.T) {
	out := FormatInsights(&service.InsightsReport{})
	assert.Contains(t, out, "No work items to check")
}

func TestFormatInsights_CleanBacklog(t *testing.T) {
	report := &service.InsightsReport{
		Items: []service.ItemInsight{{
			Result: validation.Result{ID: 1, Title: "Implement login", Type: domain.TypeTask, IsComplete: true},
		}},
		ItemsChecked: 1,
	}

	out := FormatInsights(report)

	assert.Contains(t, out, "Implement login")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "all consistent")
	assert.NotContains(t, out, "missing")
}

func TestFormatInsights_ItemWithIssues(t *testing.T) {
	report := &service.InsightsReport{
		Items: []service.ItemInsight{{
			Result: validation.Result{
				ID:            2,
				Title:         "Fix typo",
				Type:          domain.TypeTask,
				MissingFields: []string{"Priority", "Activity"},
				InvalidFields: []string{"Start Date is after Finish Date"},
				FieldsToFix:   []string{"Priority", "Activity", "Start Date"},
				HasIssues:     true,
			},
			FixPlan: []validation.FieldValue{
				{FieldRef: domain.FieldPriority, Value: 2},
			},
		}},
		ItemsChecked:    1,
		ItemsWithIssues: 1,
	}

	out := FormatInsights(report)

	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "Priority")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "Start Date is after Finish Date")
	assert.Contains(t, out, "suggest")
	assert.Contains(t, out, "1 with issues")
}

func TestFormatInsights_FixedAndFailed(t *testing.T) {
	report := &service.InsightsReport{
		Items: []service.ItemInsight{
			{
				Result:  validation.Result{ID: 3, Title: "A", HasIssues: true, FieldsToFix: []string{"Priority"}},
				FixPlan: []validation.FieldValue{{FieldRef: domain.FieldPriority, Value: 2}},
				Fixed:   true,
			},
			{
				Result:   validation.Result{ID: 4, Title: "B", HasIssues: true, FieldsToFix: []string{"Activity"}},
				FixPlan:  []validation.FieldValue{{FieldRef: domain.FieldActivity, Value: "Development"}},
				FixError: "TF401027: permission denied",
			},
		},
		ItemsChecked:    2,
		ItemsWithIssues: 2,
		ItemsFixed:      1,
		FieldsUpdated:   1,
		FixFailures:     1,
	}

	out := FormatInsights(report)

	assert.Contains(t, out, "1 fields updated")
	assert.Contains(t, out, "fix failed")
	assert.Contains(t, out, "TF401027")
	assert.Contains(t, out, "1 fix failures")
}
