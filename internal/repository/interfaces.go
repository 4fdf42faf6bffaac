package repository

import (
	"context"
	"errors"

	"sprintsense/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// RunRepo persists assistant run records for the history command.
type RunRepo interface {
	Create(ctx context.Context, r *domain.RunRecord) error
	GetByID(ctx context.Context, id string) (*domain.RunRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error)
	ListByKind(ctx context.Context, kind domain.RunKind, limit int) ([]*domain.RunRecord, error)
	ListByWorkItem(ctx context.Context, workItemID int) ([]*domain.RunRecord, error)
	Delete(ctx context.Context, id string) error
}
