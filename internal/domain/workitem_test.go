package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringField(t *testing.T) {
	w := &WorkItem{Fields: map[string]any{
		FieldTitle:      "Login page",
		FieldPriority:   float64(2),
		FieldAssignedTo: map[string]any{"displayName": "Jane Doe", "uniqueName": "jane@example.com"},
	}}

	assert.Equal(t, "Login page", w.StringField(FieldTitle))
	assert.Equal(t, "2", w.StringField(FieldPriority))
	assert.Equal(t, "jane@example.com", w.StringField(FieldAssignedTo))
	assert.Equal(t, "", w.StringField(FieldState))
}

func TestNumberField(t *testing.T) {
	w := &WorkItem{Fields: map[string]any{
		FieldOriginalEstimate: float64(7.5),
		FieldStoryPoints:      "3",
		FieldRisk:             "2 - Medium",
	}}

	assert.Equal(t, 7.5, w.NumberField(FieldOriginalEstimate))
	assert.Equal(t, 3.0, w.NumberField(FieldStoryPoints))
	assert.Equal(t, 0.0, w.NumberField(FieldRisk))
	assert.Equal(t, 0.0, w.NumberField(FieldCompletedWork))
}

func TestNumberField_NilItem(t *testing.T) {
	var w *WorkItem
	assert.Equal(t, 0.0, w.NumberField(FieldEffort))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2025-03-10T00:00:00Z", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"with millis", "2025-03-10T08:30:00.000Z", time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), true},
		{"plain date", "2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "not-a-date", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"non-string", float64(42), time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestParseWorkItemType(t *testing.T) {
	got, ok := ParseWorkItemType("User Story")
	assert.True(t, ok)
	assert.Equal(t, TypeUserStory, got)

	_, ok = ParseWorkItemType("Epic")
	assert.False(t, ok)
}

func TestNormalizeActivity(t *testing.T) {
	assert.Equal(t, "Testing", NormalizeActivity("Testing"))
	assert.Equal(t, "Development", NormalizeActivity("Coding"))
	assert.Equal(t, "Development", NormalizeActivity(""))
}
