// Package intelligence holds the LLM-backed services: breaking a work
// item down into child tasks and evaluating the tasks a story already
// has. Both produce structured output extracted from model text.
package intelligence

import (
	"context"
	"fmt"
	"math"

	"sprintsense/internal/domain"
	"sprintsense/internal/llm"
)

// productiveHoursPerDay converts calendar days into plannable hours.
const productiveHoursPerDay = 6

// BreakdownRequest describes the work item to decompose.
type BreakdownRequest struct {
	Title          string
	Description    string
	Level          ExperienceLevel
	DaysToComplete int // defaults to 5
}

// BreakdownService turns a work item into a reviewed list of child tasks.
type BreakdownService struct {
	client llm.Client
}

// NewBreakdownService creates a BreakdownService backed by the given client.
func NewBreakdownService(client llm.Client) *BreakdownService {
	return &BreakdownService{client: client}
}

// rawTask is the shape the model is asked to emit per task.
type rawTask struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	Priority    int     `json:"priority"`
	Activity    string  `json:"activity"`
}

// GenerateTasks asks the model for a task breakdown sized to the
// developer's experience level. The model plans in mid-level hours; the
// returned estimates are scaled back up by the level's multiplier.
func (s *BreakdownService) GenerateTasks(ctx context.Context, req BreakdownRequest) ([]domain.GeneratedTask, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("work item title is required")
	}

	days := req.DaysToComplete
	if days <= 0 {
		days = 5
	}
	level := req.Level
	if _, err := ParseExperienceLevel(string(level)); err != nil {
		level = LevelMid
	}

	multiplier := level.Multiplier()
	totalHours := float64(days * productiveHoursPerDay)
	hoursForAI := int(math.Floor(totalHours / multiplier))

	prompt := buildBreakdownPrompt(req.Title, req.Description, level.promptContext(), hoursForAI)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskDecompose,
		SystemPrompt: breakdownSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generating task breakdown: %w", err)
	}

	raw, err := llm.ExtractJSONArray[rawTask](resp.Text, validateRawTasks)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.GeneratedTask, len(raw))
	for i, rt := range raw {
		priority := rt.Priority
		if priority < domain.PriorityCritical || priority > domain.PriorityLow {
			priority = domain.PriorityHigh
		}
		tasks[i] = domain.GeneratedTask{
			ID:            i + 1,
			Title:         rt.Title,
			Description:   rt.Description,
			Hours:         math.Round(rt.Hours*multiplier*10) / 10,
			OriginalHours: rt.Hours,
			Priority:      priority,
			Activity:      domain.NormalizeActivity(rt.Activity),
			Selected:      true,
		}
	}
	return tasks, nil
}

func validateRawTasks(tasks []rawTask) error {
	if len(tasks) == 0 {
		return fmt.Errorf("model returned no tasks")
	}
	for i, t := range tasks {
		if t.Title == "" {
			return fmt.Errorf("task %d has no title", i+1)
		}
		if t.Hours <= 0 {
			return fmt.Errorf("task %q has a non-positive hour estimate", t.Title)
		}
	}
	return nil
}
