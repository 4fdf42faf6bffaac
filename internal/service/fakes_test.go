package service

import (
	"context"
	"fmt"

	"sprintsense/internal/azdo"
	"sprintsense/internal/domain"
	"sprintsense/internal/intelligence"
)

// fakeGateway is an in-memory Gateway for service tests.
type fakeGateway struct {
	items    map[int]*domain.WorkItem
	children map[int][]*domain.WorkItem
	assigned []int

	queryErr  error
	getErr    error
	createErr map[string]error // by task title
	updateErr map[int]error    // by work item id

	queries []string
	created []azdo.NewTaskSpec
	updated map[int][]azdo.PatchOp
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		items:     map[int]*domain.WorkItem{},
		children:  map[int][]*domain.WorkItem{},
		createErr: map[string]error{},
		updateErr: map[int]error{},
		updated:   map[int][]azdo.PatchOp{},
	}
}

func (g *fakeGateway) GetWorkItem(ctx context.Context, id int) (*domain.WorkItem, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	item, ok := g.items[id]
	if !ok {
		return nil, fmt.Errorf("work item %d not found", id)
	}
	return item, nil
}

func (g *fakeGateway) GetWorkItems(ctx context.Context, ids []int) ([]*domain.WorkItem, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	var out []*domain.WorkItem
	for _, id := range ids {
		if item, ok := g.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (g *fakeGateway) QueryAssignedIDs(ctx context.Context, user string) ([]int, error) {
	g.queries = append(g.queries, user)
	if g.queryErr != nil {
		return nil, g.queryErr
	}
	return g.assigned, nil
}

func (g *fakeGateway) GetChildTasks(ctx context.Context, id int) ([]*domain.WorkItem, error) {
	return g.children[id], nil
}

func (g *fakeGateway) CreateTask(ctx context.Context, spec azdo.NewTaskSpec) (*domain.WorkItem, error) {
	if err := g.createErr[spec.Title]; err != nil {
		return nil, err
	}
	g.created = append(g.created, spec)
	return &domain.WorkItem{ID: 9000 + len(g.created), Type: domain.TypeTask, Title: spec.Title}, nil
}

func (g *fakeGateway) UpdateWorkItemFields(ctx context.Context, id int, ops []azdo.PatchOp) (*domain.WorkItem, error) {
	if err := g.updateErr[id]; err != nil {
		return nil, err
	}
	g.updated[id] = append(g.updated[id], ops...)
	return g.items[id], nil
}

func (g *fakeGateway) TestConnection(ctx context.Context) error {
	return nil
}

// fakeGenerator returns canned tasks and captures the request.
type fakeGenerator struct {
	tasks []domain.GeneratedTask
	err   error
	last  intelligence.BreakdownRequest
}

func (f *fakeGenerator) GenerateTasks(ctx context.Context, req intelligence.BreakdownRequest) ([]domain.GeneratedTask, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

// fakeEvaluator returns a canned evaluation and captures the request.
type fakeEvaluator struct {
	eval *domain.TaskEvaluation
	err  error
	last intelligence.EvaluationRequest
}

func (f *fakeEvaluator) Evaluate(ctx context.Context, req intelligence.EvaluationRequest) (*domain.TaskEvaluation, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.eval, nil
}

// memRuns is an in-memory RunRepo capturing created records.
type memRuns struct {
	records   []*domain.RunRecord
	lastLimit int
	createErr error
}

func (m *memRuns) Create(ctx context.Context, r *domain.RunRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, r)
	return nil
}

func (m *memRuns) GetByID(ctx context.Context, id string) (*domain.RunRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("run %s not found", id)
}

func (m *memRuns) ListRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	m.lastLimit = limit
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func (m *memRuns) ListByKind(ctx context.Context, kind domain.RunKind, limit int) ([]*domain.RunRecord, error) {
	m.lastLimit = limit
	var out []*domain.RunRecord
	for _, r := range m.records {
		if r.Kind == kind && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRuns) ListByWorkItem(ctx context.Context, workItemID int) ([]*domain.RunRecord, error) {
	var out []*domain.RunRecord
	for _, r := range m.records {
		if r.WorkItemID == workItemID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRuns) Delete(ctx context.Context, id string) error {
	for i, r := range m.records {
		if r.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// completeTask builds a Task that passes every validation rule.
func completeTask(id int) *domain.WorkItem {
	item := &domain.WorkItem{
		ID:    id,
		Type:  domain.TypeTask,
		Title: "Implement login",
		State: "Active",
		Fields: map[string]any{
			domain.FieldWorkItemType:     string(domain.TypeTask),
			domain.FieldPriority:         2.0,
			domain.FieldActivity:         "Development",
			domain.FieldOriginalEstimate: 8.0,
			domain.FieldRemainingWork:    3.0,
			domain.FieldCompletedWork:    5.0,
			domain.FieldStartDate:        "2025-03-03T00:00:00Z",
			domain.FieldFinishDate:       "2025-03-07T00:00:00Z",
		},
	}
	return item
}

// emptyTask builds a Task with no planning fields at all.
func emptyTask(id int) *domain.WorkItem {
	return &domain.WorkItem{
		ID:     id,
		Type:   domain.TypeTask,
		Title:  "Fix typo in footer",
		State:  "New",
		Fields: map[string]any{domain.FieldWorkItemType: string(domain.TypeTask)},
	}
}

// plannedStory builds a User Story with a five day planned window.
func plannedStory(id int) *domain.WorkItem {
	return &domain.WorkItem{
		ID:    id,
		Type:  domain.TypeUserStory,
		Title: "Customer login",
		State: "Active",
		URL:   fmt.Sprintf("https://dev.azure.com/contoso/_apis/wit/workItems/%d", id),
		Fields: map[string]any{
			domain.FieldWorkItemType:  string(domain.TypeUserStory),
			domain.FieldDescription:   "<div>Allow customers to log&nbsp;in with email.</div>",
			domain.FieldAssignedTo:    map[string]any{"uniqueName": "dana@contoso.com"},
			domain.FieldAreaPath:      "webshop\\checkout",
			domain.FieldIterationPath: "webshop\\sprint-12",
			domain.FieldStartDate:     "2025-03-03T00:00:00Z",
			domain.FieldFinishDate:    "2025-03-07T00:00:00Z",
		},
	}
}
