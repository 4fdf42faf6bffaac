package service

import (
	"context"
	"fmt"

	"sprintsense/internal/domain"
	"sprintsense/internal/repository"
)

const defaultHistoryLimit = 20

type historyService struct {
	runs repository.RunRepo
}

// NewHistoryService creates the run history service.
func NewHistoryService(runs repository.RunRepo) HistoryService {
	return &historyService{runs: runs}
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	recs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return recs, nil
}

func (s *historyService) ByKind(ctx context.Context, kind domain.RunKind, limit int) ([]*domain.RunRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	recs, err := s.runs.ListByKind(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("listing %s runs: %w", kind, err)
	}
	return recs, nil
}

func (s *historyService) ForWorkItem(ctx context.Context, workItemID int) ([]*domain.RunRecord, error) {
	recs, err := s.runs.ListByWorkItem(ctx, workItemID)
	if err != nil {
		return nil, fmt.Errorf("listing runs for work item %d: %w", workItemID, err)
	}
	return recs, nil
}
