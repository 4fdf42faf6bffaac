package service

import (
	"context"
	"time"

	"sprintsense/internal/azdo"
	"sprintsense/internal/domain"
	"sprintsense/internal/intelligence"
	"sprintsense/internal/validation"
)

// Gateway is the slice of the Azure DevOps client the services need.
// *azdo.Client satisfies it; tests substitute fakes.
type Gateway interface {
	GetWorkItem(ctx context.Context, id int) (*domain.WorkItem, error)
	GetWorkItems(ctx context.Context, ids []int) ([]*domain.WorkItem, error)
	QueryAssignedIDs(ctx context.Context, user string) ([]int, error)
	GetChildTasks(ctx context.Context, id int) ([]*domain.WorkItem, error)
	CreateTask(ctx context.Context, spec azdo.NewTaskSpec) (*domain.WorkItem, error)
	UpdateWorkItemFields(ctx context.Context, id int, ops []azdo.PatchOp) (*domain.WorkItem, error)
	TestConnection(ctx context.Context) error
}

// TaskGenerator produces a task breakdown for a work item.
type TaskGenerator interface {
	GenerateTasks(ctx context.Context, req intelligence.BreakdownRequest) ([]domain.GeneratedTask, error)
}

// TaskEvaluator reviews a story's existing child tasks.
type TaskEvaluator interface {
	Evaluate(ctx context.Context, req intelligence.EvaluationRequest) (*domain.TaskEvaluation, error)
}

// ItemInsight is the validation outcome for one work item, with the fix
// plan that would repair it and the result of applying that plan.
type ItemInsight struct {
	Result   validation.Result
	FixPlan  []validation.FieldValue
	Fixed    bool
	FixError string
}

// InsightsRequest scopes a backlog scan. IDs wins over User; with
// neither the scan fails.
type InsightsRequest struct {
	User    string
	IDs     []int
	AutoFix bool
	Now     time.Time // zero means time.Now
}

// InsightsReport is the result of scanning and optionally fixing a set
// of work items.
type InsightsReport struct {
	Items           []ItemInsight
	ItemsChecked    int
	ItemsWithIssues int
	ItemsFixed      int
	FieldsUpdated   int
	FixFailures     int
}

type InsightsService interface {
	Scan(ctx context.Context, req InsightsRequest) (*InsightsReport, error)
}

// BreakdownPlan is a generated breakdown awaiting user review.
type BreakdownPlan struct {
	Story *domain.WorkItem
	Tasks []domain.GeneratedTask
}

// CreateReport counts the outcome of a bulk task creation.
type CreateReport struct {
	Created int
	Failed  int
	Errors  []string
}

type BreakdownFlow interface {
	// Plan generates tasks for a story. Stories that already have child
	// tasks are refused unless force is set.
	Plan(ctx context.Context, storyID int, level intelligence.ExperienceLevel, days int, force bool) (*BreakdownPlan, error)

	// Create pushes the selected tasks to Azure DevOps as children of the
	// story. Failures are counted per task, not fatal.
	Create(ctx context.Context, plan *BreakdownPlan, assignTo string) (*CreateReport, error)
}

// EvaluationReport pairs a story's evaluation with the inputs that
// produced it.
type EvaluationReport struct {
	Story          *domain.WorkItem
	Tasks          []domain.ChildTask
	AvailableHours float64
	Evaluation     *domain.TaskEvaluation
}

// HistoryService exposes past run records for the history command.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]*domain.RunRecord, error)
	ByKind(ctx context.Context, kind domain.RunKind, limit int) ([]*domain.RunRecord, error)
	ForWorkItem(ctx context.Context, workItemID int) ([]*domain.RunRecord, error)
}

type EvaluationFlow interface {
	Evaluate(ctx context.Context, storyID int) (*EvaluationReport, error)

	// CreateSuggested pushes the evaluation's proposed new tasks to Azure
	// DevOps as children of the story.
	CreateSuggested(ctx context.Context, report *EvaluationReport, tasks []domain.SuggestedTask, assignTo string) (*CreateReport, error)
}
