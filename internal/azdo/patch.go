package azdo

import (
	"fmt"

	"sprintsense/internal/domain"
	"sprintsense/internal/validation"
)

// PatchOp is one JSON-Patch operation in a work item create or update body.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// AddField builds an add operation for a work item field reference.
func AddField(ref string, value any) PatchOp {
	return PatchOp{Op: "add", Path: "/fields/" + ref, Value: value}
}

// FixPlanOps converts a synthesis plan into JSON-Patch operations.
func FixPlanOps(plan []validation.FieldValue) []PatchOp {
	ops := make([]PatchOp, 0, len(plan))
	for _, fv := range plan {
		ops = append(ops, AddField(fv.FieldRef, fv.Value))
	}
	return ops
}

// NewTaskSpec describes a child Task to create under a parent work item.
type NewTaskSpec struct {
	Title          string
	Description    string
	EstimatedHours float64
	Priority       int
	Activity       string
	AreaPath       string
	IterationPath  string
	AssignedTo     string
	ParentURL      string
}

// NewTaskOps builds the JSON-Patch body for creating a child Task. A fresh
// task starts with remaining work equal to the estimate and nothing
// completed, linked to its parent through a reverse hierarchy relation.
func NewTaskOps(spec NewTaskSpec) []PatchOp {
	ops := []PatchOp{
		AddField(domain.FieldTitle, spec.Title),
		AddField(domain.FieldDescription, spec.Description),
		AddField(domain.FieldOriginalEstimate, spec.EstimatedHours),
		AddField(domain.FieldRemainingWork, spec.EstimatedHours),
		AddField(domain.FieldCompletedWork, 0),
		AddField(domain.FieldPriority, spec.Priority),
		AddField(domain.FieldActivity, domain.NormalizeActivity(spec.Activity)),
	}
	if spec.AreaPath != "" {
		ops = append(ops, AddField(domain.FieldAreaPath, spec.AreaPath))
	}
	if spec.IterationPath != "" {
		ops = append(ops, AddField(domain.FieldIterationPath, spec.IterationPath))
	}
	if spec.AssignedTo != "" {
		ops = append(ops, AddField(domain.FieldAssignedTo, spec.AssignedTo))
	}
	if spec.ParentURL != "" {
		ops = append(ops, PatchOp{
			Op:   "add",
			Path: "/relations/-",
			Value: map[string]any{
				"rel": "System.LinkTypes.Hierarchy-Reverse",
				"url": spec.ParentURL,
			},
		})
	}
	return ops
}

// Validate rejects specs that would produce an unusable task.
func (s NewTaskSpec) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if s.EstimatedHours <= 0 {
		return fmt.Errorf("task %q needs a positive hour estimate", s.Title)
	}
	return nil
}
