package intelligence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintsense/internal/domain"
	"sprintsense/internal/llm"
)

const evaluationJSON = `{
  "correct": [{"id":101,"title":"Design login form","reason":"covers the UI work"}],
  "toUpdate": [{"id":102,"title":"Auth endpoint","issue":"no estimate","suggestion":"estimate 5h"}],
  "toDelete": [{"id":103,"title":"Duplicate task","reason":"same as 102"}],
  "newTasks": [{"title":"Add rate limiting","description":"Protect the login endpoint","hours":3,"reason":"security gap"}],
  "summary": "Coverage is decent but estimates need attention."
}`

func evalTasks() []domain.ChildTask {
	return []domain.ChildTask{
		{ID: 101, Title: "Design login form", Estimate: 3, Activity: "Design", State: "Active"},
		{ID: 102, Title: "Auth endpoint", Estimate: 5, Activity: "Development", State: "New"},
	}
}

func TestEvaluate(t *testing.T) {
	fake := &fakeLLM{text: evaluationJSON}
	svc := NewEvaluationService(fake)

	eval, err := svc.Evaluate(context.Background(), EvaluationRequest{
		Title:       "Implement login",
		Description: "Users sign in with email and password",
		Tasks:       evalTasks(),
	})

	require.NoError(t, err)
	assert.Equal(t, llm.TaskEvaluate, fake.last.Task)
	assert.Contains(t, fake.last.UserPrompt, "Title: Implement login")
	assert.Contains(t, fake.last.UserPrompt, "Design login form")

	require.Len(t, eval.Correct, 1)
	assert.Equal(t, 101, eval.Correct[0].ID)
	require.Len(t, eval.ToUpdate, 1)
	assert.Equal(t, "estimate 5h", eval.ToUpdate[0].Suggestion)
	require.Len(t, eval.NewTasks, 1)
	assert.Equal(t, 3.0, eval.NewTasks[0].Hours)
	assert.NotEmpty(t, eval.Summary)
}

func TestEvaluate_TimeConstraintInPrompt(t *testing.T) {
	fake := &fakeLLM{text: evaluationJSON}
	svc := NewEvaluationService(fake)

	_, err := svc.Evaluate(context.Background(), EvaluationRequest{
		Title:          "Implement login",
		Tasks:          evalTasks(),
		AvailableHours: 30,
	})

	require.NoError(t, err)
	assert.Contains(t, fake.last.UserPrompt, "Total available hours: 30h")
	assert.Contains(t, fake.last.UserPrompt, "Existing tasks total: 8h")
	assert.Contains(t, fake.last.UserPrompt, "Remaining hours for new tasks: 22h")
}

func TestEvaluate_OverbookedWindowClampsToZero(t *testing.T) {
	fake := &fakeLLM{text: evaluationJSON}
	svc := NewEvaluationService(fake)

	_, err := svc.Evaluate(context.Background(), EvaluationRequest{
		Title:          "Implement login",
		Tasks:          evalTasks(),
		AvailableHours: 6,
	})

	require.NoError(t, err)
	assert.Contains(t, fake.last.UserPrompt, "Remaining hours for new tasks: 0h")
}

func TestEvaluate_NoTasksFound(t *testing.T) {
	fake := &fakeLLM{text: evaluationJSON}
	svc := NewEvaluationService(fake)

	_, err := svc.Evaluate(context.Background(), EvaluationRequest{Title: "Implement login"})

	require.NoError(t, err)
	assert.Contains(t, fake.last.UserPrompt, "No tasks found")
	assert.NotContains(t, fake.last.UserPrompt, "TIME CONSTRAINT")
}

func TestEvaluate_RequiresTitle(t *testing.T) {
	svc := NewEvaluationService(&fakeLLM{text: evaluationJSON})
	_, err := svc.Evaluate(context.Background(), EvaluationRequest{})
	assert.Error(t, err)
}

func TestEvaluate_RejectsBadSuggestedTasks(t *testing.T) {
	raw := `{"correct":[],"toUpdate":[],"toDelete":[],"newTasks":[{"title":"","hours":2}],"summary":"s"}`
	svc := NewEvaluationService(&fakeLLM{text: raw})

	_, err := svc.Evaluate(context.Background(), EvaluationRequest{Title: "Story"})
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestAvailableHoursForWindow(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	// Five inclusive days at 6 productive hours each.
	assert.Equal(t, 30.0, AvailableHoursForWindow(start, end))
	assert.Equal(t, 6.0, AvailableHoursForWindow(start, start))
	assert.Equal(t, 0.0, AvailableHoursForWindow(end, start))
	assert.Equal(t, 0.0, AvailableHoursForWindow(time.Time{}, end))
}
