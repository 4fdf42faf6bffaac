package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sprintsense/internal/azdo"
	"sprintsense/internal/domain"
	"sprintsense/internal/intelligence"
	"sprintsense/internal/repository"
	"sprintsense/internal/validation"
)

type evaluationFlow struct {
	gateway   Gateway
	evaluator TaskEvaluator
	runs      repository.RunRepo
}

// NewEvaluationFlow creates the evaluation orchestrator. The run
// repository may be nil; runs are then not recorded.
func NewEvaluationFlow(gateway Gateway, evaluator TaskEvaluator, runs repository.RunRepo) EvaluationFlow {
	return &evaluationFlow{gateway: gateway, evaluator: evaluator, runs: runs}
}

func (f *evaluationFlow) Evaluate(ctx context.Context, storyID int) (*EvaluationReport, error) {
	started := time.Now().UTC()

	story, err := f.gateway.GetWorkItem(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("fetching work item %d: %w", storyID, err)
	}

	children, err := f.gateway.GetChildTasks(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("fetching child tasks for %d: %w", storyID, err)
	}

	tasks := make([]domain.ChildTask, 0, len(children))
	for _, c := range children {
		tasks = append(tasks, domain.ChildTask{
			ID:          c.ID,
			Title:       c.Title,
			Description: stripHTML(c.StringField(domain.FieldDescription)),
			Estimate:    c.NumberField(domain.FieldOriginalEstimate),
			Activity:    c.StringField(domain.FieldActivity),
			State:       c.State,
		})
	}

	var hours float64
	res := validation.Validate(story)
	if res.PlannedStartDate != nil && res.PlannedEndDate != nil {
		hours = intelligence.AvailableHoursForWindow(*res.PlannedStartDate, *res.PlannedEndDate)
	}

	eval, err := f.evaluator.Evaluate(ctx, intelligence.EvaluationRequest{
		Title:          story.Title,
		Description:    stripHTML(story.StringField(domain.FieldDescription)),
		Tasks:          tasks,
		AvailableHours: hours,
	})
	if err != nil {
		return nil, err
	}

	report := &EvaluationReport{
		Story:          story,
		Tasks:          tasks,
		AvailableHours: hours,
		Evaluation:     eval,
	}

	f.record(ctx, storyID, report, 0, 0, started)
	return report, nil
}

func (f *evaluationFlow) CreateSuggested(ctx context.Context, report *EvaluationReport, tasks []domain.SuggestedTask, assignTo string) (*CreateReport, error) {
	if report == nil || report.Story == nil {
		return nil, fmt.Errorf("evaluation report is empty")
	}

	started := time.Now().UTC()
	story := report.Story
	if assignTo == "" {
		assignTo = story.StringField(domain.FieldAssignedTo)
	}

	out := &CreateReport{}
	for _, task := range tasks {
		spec := azdo.NewTaskSpec{
			Title:          task.Title,
			Description:    task.Description,
			EstimatedHours: task.Hours,
			Priority:       domain.PriorityHigh,
			AreaPath:       story.StringField(domain.FieldAreaPath),
			IterationPath:  story.StringField(domain.FieldIterationPath),
			AssignedTo:     assignTo,
			ParentURL:      story.URL,
		}
		if err := spec.Validate(); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, err.Error())
			continue
		}
		if _, err := f.gateway.CreateTask(ctx, spec); err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", task.Title, err))
			continue
		}
		out.Created++
	}

	f.record(ctx, story.ID, report, out.Created, out.Failed, started)
	return out, nil
}

func (f *evaluationFlow) record(ctx context.Context, storyID int, report *EvaluationReport, created, failed int, started time.Time) {
	if f.runs == nil {
		return
	}

	issues := 0
	summary := ""
	if report.Evaluation != nil {
		issues = len(report.Evaluation.ToUpdate) + len(report.Evaluation.ToDelete)
		summary = report.Evaluation.Summary
	}

	rec := &domain.RunRecord{
		ID:              uuid.New().String(),
		Kind:            domain.RunEvaluation,
		WorkItemID:      storyID,
		ItemsChecked:    len(report.Tasks),
		ItemsWithIssues: issues,
		TasksCreated:    created,
		TasksFailed:     failed,
		Summary:         summary,
		StartedAt:       started,
		FinishedAt:      time.Now().UTC(),
	}
	_ = f.runs.Create(ctx, rec)
}
