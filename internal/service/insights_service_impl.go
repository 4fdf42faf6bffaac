package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sprintsense/internal/azdo"
	"sprintsense/internal/domain"
	"sprintsense/internal/repository"
	"sprintsense/internal/validation"
)

type insightsService struct {
	gateway Gateway
	runs    repository.RunRepo
}

// NewInsightsService creates the backlog scanning service. The run
// repository may be nil; runs are then not recorded.
func NewInsightsService(gateway Gateway, runs repository.RunRepo) InsightsService {
	return &insightsService{gateway: gateway, runs: runs}
}

func (s *insightsService) Scan(ctx context.Context, req InsightsRequest) (*InsightsReport, error) {
	started := time.Now().UTC()

	now := req.Now
	if now.IsZero() {
		now = started
	}

	ids := req.IDs
	if len(ids) == 0 {
		if req.User == "" {
			return nil, fmt.Errorf("nothing to scan: provide work item ids or an assignee")
		}
		var err error
		ids, err = s.gateway.QueryAssignedIDs(ctx, req.User)
		if err != nil {
			return nil, fmt.Errorf("querying assigned work items: %w", err)
		}
	}

	report := &InsightsReport{}
	if len(ids) == 0 {
		s.record(ctx, req, report, started)
		return report, nil
	}

	items, err := s.gateway.GetWorkItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching work items: %w", err)
	}

	for _, item := range items {
		res := validation.Validate(item)
		insight := ItemInsight{Result: res}

		if len(res.FieldsToFix) > 0 {
			sctx := validation.BuildContext(item, res, now)
			insight.FixPlan = validation.SynthesizeDefaults(res.FieldsToFix, item.Type, sctx)
		}

		report.ItemsChecked++
		if res.HasIssues {
			report.ItemsWithIssues++
		}

		// Fix failures stay per item so one rejected update does not
		// abort the rest of the scan.
		if req.AutoFix && len(insight.FixPlan) > 0 {
			ops := azdo.FixPlanOps(insight.FixPlan)
			updated, err := s.gateway.UpdateWorkItemFields(ctx, item.ID, ops)
			if err != nil {
				insight.FixError = err.Error()
				report.FixFailures++
			} else {
				insight.Fixed = true
				report.ItemsFixed++
				report.FieldsUpdated += len(insight.FixPlan)
				if updated != nil {
					insight.Result = validation.Validate(updated)
				}
			}
		}

		report.Items = append(report.Items, insight)
	}

	s.record(ctx, req, report, started)
	return report, nil
}

func (s *insightsService) record(ctx context.Context, req InsightsRequest, report *InsightsReport, started time.Time) {
	if s.runs == nil {
		return
	}

	workItemID := 0
	if len(req.IDs) == 1 {
		workItemID = req.IDs[0]
	}

	rec := &domain.RunRecord{
		ID:              uuid.New().String(),
		Kind:            domain.RunInsights,
		WorkItemID:      workItemID,
		ItemsChecked:    report.ItemsChecked,
		ItemsWithIssues: report.ItemsWithIssues,
		FieldsUpdated:   report.FieldsUpdated,
		Summary: fmt.Sprintf("%d items checked, %d with issues, %d fixed",
			report.ItemsChecked, report.ItemsWithIssues, report.ItemsFixed),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}

	// Run history is best effort; a full disk must not fail the scan.
	_ = s.runs.Create(ctx, rec)
}
