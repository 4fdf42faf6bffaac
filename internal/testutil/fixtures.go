package testutil

import (
	"time"

	"github.com/google/uuid"

	"sprintsense/internal/domain"
)

// RunOption mutates a test run record before use.
type RunOption func(*domain.RunRecord)

func WithRunKind(k domain.RunKind) RunOption {
	return func(r *domain.RunRecord) {
		r.Kind = k
	}
}

func WithWorkItemID(id int) RunOption {
	return func(r *domain.RunRecord) {
		r.WorkItemID = id
	}
}

func WithStartedAt(t time.Time) RunOption {
	return func(r *domain.RunRecord) {
		r.StartedAt = t
		r.FinishedAt = t.Add(2 * time.Second)
	}
}

func WithSummary(s string) RunOption {
	return func(r *domain.RunRecord) {
		r.Summary = s
	}
}

// NewTestRun builds an insights run record with sane defaults.
func NewTestRun(opts ...RunOption) *domain.RunRecord {
	now := time.Now().UTC().Truncate(time.Second)
	r := &domain.RunRecord{
		ID:              uuid.New().String(),
		Kind:            domain.RunInsights,
		ItemsChecked:    12,
		ItemsWithIssues: 3,
		Summary:         "12 items checked, 3 with issues",
		StartedAt:       now,
		FinishedAt:      now.Add(2 * time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestWorkItem builds a work item with a complete field map of the
// given type.
func NewTestWorkItem(id int, t domain.WorkItemType, fields map[string]any) *domain.WorkItem {
	if fields == nil {
		fields = map[string]any{}
	}
	fields[domain.FieldWorkItemType] = string(t)
	return &domain.WorkItem{
		ID:     id,
		Type:   t,
		Title:  "Test item",
		State:  "Active",
		Fields: fields,
	}
}
