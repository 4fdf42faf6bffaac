package domain

import "time"

// RunKind identifies which assistant command produced a run record.
type RunKind string

const (
	RunBreakdown  RunKind = "breakdown"
	RunEvaluation RunKind = "evaluation"
	RunInsights   RunKind = "insights"
)

// RunRecord is one logged invocation of an assistant command, kept so
// `history` can show what was scanned, created and fixed over time.
type RunRecord struct {
	ID              string
	Kind            RunKind
	WorkItemID      int // 0 for whole-backlog scans
	ItemsChecked    int
	ItemsWithIssues int
	TasksCreated    int
	TasksFailed     int
	FieldsUpdated   int
	Summary         string
	StartedAt       time.Time
	FinishedAt      time.Time
}
