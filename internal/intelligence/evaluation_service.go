package intelligence

import (
	"context"
	"fmt"
	"math"
	"time"

	"sprintsense/internal/domain"
	"sprintsense/internal/llm"
)

// EvaluationRequest describes a story and its existing child tasks.
type EvaluationRequest struct {
	Title       string
	Description string
	Tasks       []domain.ChildTask

	// AvailableHours caps suggested new tasks; 0 means the story has no
	// planned window and no time constraint is applied.
	AvailableHours float64
}

// EvaluationService reviews a story's existing child tasks and proposes
// updates, deletions and additions.
type EvaluationService struct {
	client llm.Client
}

// NewEvaluationService creates an EvaluationService backed by the given client.
func NewEvaluationService(client llm.Client) *EvaluationService {
	return &EvaluationService{client: client}
}

// Evaluate asks the model to sort existing tasks into correct, needs
// update and delete buckets, plus any missing tasks that fit the
// remaining hours.
func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) (*domain.TaskEvaluation, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("story title is required")
	}

	prompt := buildEvaluationPrompt(req.Title, req.Description, req.Tasks, req.AvailableHours)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskEvaluate,
		SystemPrompt: evaluationSystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluating tasks: %w", err)
	}

	eval, err := llm.ExtractJSON[domain.TaskEvaluation](resp.Text, validateEvaluation)
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func validateEvaluation(e domain.TaskEvaluation) error {
	for _, t := range e.NewTasks {
		if t.Title == "" {
			return fmt.Errorf("suggested task has no title")
		}
		if t.Hours <= 0 {
			return fmt.Errorf("suggested task %q has a non-positive hour estimate", t.Title)
		}
	}
	return nil
}

// AvailableHoursForWindow computes the plannable hours in an inclusive
// planned date window, at 6 productive hours per day.
func AvailableHoursForWindow(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	return float64(days * productiveHoursPerDay)
}
