package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintsense/internal/domain"
	"sprintsense/internal/intelligence"
)

func generatedTasks() []domain.GeneratedTask {
	return []domain.GeneratedTask{
		{ID: 1, Title: "Set up login form", Description: "Build the form", Hours: 3, Priority: 2, Activity: "Development", Selected: true},
		{ID: 2, Title: "Write login tests", Description: "Cover the happy path", Hours: 4, Priority: 2, Activity: "Testing", Selected: true},
		{ID: 3, Title: "Polish copy", Description: "Tweak wording", Hours: 1, Priority: 3, Activity: "Design", Selected: false},
	}
}

func TestBreakdownPlan_GeneratesFromStory(t *testing.T) {
	gw := newFakeGateway()
	gw.items[10] = plannedStory(10)
	gen := &fakeGenerator{tasks: generatedTasks()}
	flow := NewBreakdownFlow(gw, gen, nil)

	plan, err := flow.Plan(context.Background(), 10, intelligence.LevelMid, 0, false)

	require.NoError(t, err)
	assert.Equal(t, "Customer login", gen.last.Title)
	assert.Equal(t, "Allow customers to log in with email.", gen.last.Description)
	assert.Equal(t, intelligence.LevelMid, gen.last.Level)
	// March 3 through March 7 inclusive.
	assert.Equal(t, 5, gen.last.DaysToComplete)
	assert.Len(t, plan.Tasks, 3)
	assert.Equal(t, 10, plan.Story.ID)
}

func TestBreakdownPlan_ExplicitDaysWin(t *testing.T) {
	gw := newFakeGateway()
	gw.items[10] = plannedStory(10)
	gen := &fakeGenerator{tasks: generatedTasks()}
	flow := NewBreakdownFlow(gw, gen, nil)

	_, err := flow.Plan(context.Background(), 10, intelligence.LevelMid, 3, false)

	require.NoError(t, err)
	assert.Equal(t, 3, gen.last.DaysToComplete)
}

func TestBreakdownPlan_NoWindowLeavesDaysToGenerator(t *testing.T) {
	gw := newFakeGateway()
	story := plannedStory(10)
	delete(story.Fields, domain.FieldStartDate)
	gw.items[10] = story
	gen := &fakeGenerator{tasks: generatedTasks()}
	flow := NewBreakdownFlow(gw, gen, nil)

	_, err := flow.Plan(context.Background(), 10, intelligence.LevelMid, 0, false)

	require.NoError(t, err)
	assert.Equal(t, 0, gen.last.DaysToComplete)
}

func TestBreakdownPlan_RefusesExistingTasks(t *testing.T) {
	gw := newFakeGateway()
	gw.items[10] = plannedStory(10)
	gw.children[10] = []*domain.WorkItem{completeTask(11)}
	flow := NewBreakdownFlow(gw, &fakeGenerator{}, nil)

	_, err := flow.Plan(context.Background(), 10, intelligence.LevelMid, 0, false)
	assert.ErrorIs(t, err, ErrTasksExist)
}

func TestBreakdownPlan_ForceOverridesExistingTasks(t *testing.T) {
	gw := newFakeGateway()
	gw.items[10] = plannedStory(10)
	gw.children[10] = []*domain.WorkItem{completeTask(11)}
	flow := NewBreakdownFlow(gw, &fakeGenerator{tasks: generatedTasks()}, nil)

	plan, err := flow.Plan(context.Background(), 10, intelligence.LevelMid, 0, true)

	require.NoError(t, err)
	assert.Len(t, plan.Tasks, 3)
}

func TestBreakdownCreate_OnlySelectedTasks(t *testing.T) {
	gw := newFakeGateway()
	runs := &memRuns{}
	flow := NewBreakdownFlow(gw, nil, runs)
	plan := &BreakdownPlan{Story: plannedStory(10), Tasks: generatedTasks()}

	report, err := flow.Create(context.Background(), plan, "")

	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 0, report.Failed)
	require.Len(t, gw.created, 2)

	first := gw.created[0]
	assert.Equal(t, "Set up login form", first.Title)
	assert.Equal(t, 3.0, first.EstimatedHours)
	assert.Equal(t, "webshop\\checkout", first.AreaPath)
	assert.Equal(t, "webshop\\sprint-12", first.IterationPath)
	assert.Equal(t, "dana@contoso.com", first.AssignedTo) // from the story
	assert.Equal(t, plan.Story.URL, first.ParentURL)

	require.Len(t, runs.records, 1)
	assert.Equal(t, domain.RunBreakdown, runs.records[0].Kind)
	assert.Equal(t, 10, runs.records[0].WorkItemID)
	assert.Equal(t, 2, runs.records[0].TasksCreated)
}

func TestBreakdownCreate_ExplicitAssignee(t *testing.T) {
	gw := newFakeGateway()
	flow := NewBreakdownFlow(gw, nil, nil)
	plan := &BreakdownPlan{Story: plannedStory(10), Tasks: generatedTasks()[:1]}

	_, err := flow.Create(context.Background(), plan, "lee@contoso.com")

	require.NoError(t, err)
	assert.Equal(t, "lee@contoso.com", gw.created[0].AssignedTo)
}

func TestBreakdownCreate_CountsFailures(t *testing.T) {
	gw := newFakeGateway()
	gw.createErr["Write login tests"] = assert.AnError
	runs := &memRuns{}
	flow := NewBreakdownFlow(gw, nil, runs)
	plan := &BreakdownPlan{Story: plannedStory(10), Tasks: generatedTasks()}

	report, err := flow.Create(context.Background(), plan, "")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Write login tests")
	assert.Equal(t, 1, runs.records[0].TasksFailed)
}

func TestBreakdownCreate_RejectsInvalidSpec(t *testing.T) {
	gw := newFakeGateway()
	flow := NewBreakdownFlow(gw, nil, nil)
	plan := &BreakdownPlan{
		Story: plannedStory(10),
		Tasks: []domain.GeneratedTask{{Title: "No estimate", Hours: 0, Selected: true}},
	}

	report, err := flow.Create(context.Background(), plan, "")

	require.NoError(t, err)
	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, gw.created)
}

func TestBreakdownCreate_EmptyPlan(t *testing.T) {
	flow := NewBreakdownFlow(newFakeGateway(), nil, nil)

	_, err := flow.Create(context.Background(), nil, "")
	assert.Error(t, err)
}
