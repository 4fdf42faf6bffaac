package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"sprintsense/internal/azdo"
	"sprintsense/internal/domain"
	"sprintsense/internal/intelligence"
	"sprintsense/internal/repository"
	"sprintsense/internal/validation"
)

// ErrTasksExist is returned when a story already has child tasks and the
// breakdown was not forced.
var ErrTasksExist = errors.New("work item already has child tasks")

type breakdownFlow struct {
	gateway   Gateway
	generator TaskGenerator
	runs      repository.RunRepo
}

// NewBreakdownFlow creates the breakdown orchestrator. The run
// repository may be nil; runs are then not recorded.
func NewBreakdownFlow(gateway Gateway, generator TaskGenerator, runs repository.RunRepo) BreakdownFlow {
	return &breakdownFlow{gateway: gateway, generator: generator, runs: runs}
}

func (f *breakdownFlow) Plan(ctx context.Context, storyID int, level intelligence.ExperienceLevel, days int, force bool) (*BreakdownPlan, error) {
	story, err := f.gateway.GetWorkItem(ctx, storyID)
	if err != nil {
		return nil, fmt.Errorf("fetching work item %d: %w", storyID, err)
	}

	if !force {
		children, err := f.gateway.GetChildTasks(ctx, storyID)
		if err != nil {
			return nil, fmt.Errorf("checking existing tasks for %d: %w", storyID, err)
		}
		if len(children) > 0 {
			return nil, fmt.Errorf("work item %d: %w (%d found)", storyID, ErrTasksExist, len(children))
		}
	}

	if days <= 0 {
		days = plannedDays(story)
	}

	tasks, err := f.generator.GenerateTasks(ctx, intelligence.BreakdownRequest{
		Title:          story.Title,
		Description:    stripHTML(story.StringField(domain.FieldDescription)),
		Level:          level,
		DaysToComplete: days,
	})
	if err != nil {
		return nil, err
	}

	return &BreakdownPlan{Story: story, Tasks: tasks}, nil
}

func (f *breakdownFlow) Create(ctx context.Context, plan *BreakdownPlan, assignTo string) (*CreateReport, error) {
	if plan == nil || plan.Story == nil {
		return nil, fmt.Errorf("breakdown plan is empty")
	}

	started := time.Now().UTC()
	story := plan.Story
	if assignTo == "" {
		assignTo = story.StringField(domain.FieldAssignedTo)
	}

	report := &CreateReport{}
	for _, task := range plan.Tasks {
		if !task.Selected {
			continue
		}
		spec := azdo.NewTaskSpec{
			Title:          task.Title,
			Description:    task.Description,
			EstimatedHours: task.Hours,
			Priority:       task.Priority,
			Activity:       task.Activity,
			AreaPath:       story.StringField(domain.FieldAreaPath),
			IterationPath:  story.StringField(domain.FieldIterationPath),
			AssignedTo:     assignTo,
			ParentURL:      story.URL,
		}
		if err := spec.Validate(); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		if _, err := f.gateway.CreateTask(ctx, spec); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", task.Title, err))
			continue
		}
		report.Created++
	}

	f.record(ctx, story.ID, report, started)
	return report, nil
}

func (f *breakdownFlow) record(ctx context.Context, storyID int, report *CreateReport, started time.Time) {
	if f.runs == nil {
		return
	}
	rec := &domain.RunRecord{
		ID:           uuid.New().String(),
		Kind:         domain.RunBreakdown,
		WorkItemID:   storyID,
		TasksCreated: report.Created,
		TasksFailed:  report.Failed,
		Summary:      fmt.Sprintf("%d tasks created, %d failed", report.Created, report.Failed),
		StartedAt:    started,
		FinishedAt:   time.Now().UTC(),
	}
	_ = f.runs.Create(ctx, rec)
}

// plannedDays derives the inclusive calendar length of the story's
// planned window, or 0 when the window is unknown.
func plannedDays(story *domain.WorkItem) int {
	res := validation.Validate(story)
	if res.PlannedStartDate == nil || res.PlannedEndDate == nil {
		return 0
	}
	hours := res.PlannedEndDate.Sub(*res.PlannedStartDate).Hours()
	if hours < 0 {
		return 0
	}
	return int(math.Ceil(hours/24)) + 1
}
