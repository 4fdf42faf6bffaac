package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintsense/internal/domain"
	"sprintsense/internal/testutil"
)

func runTestRepo(t *testing.T) *SQLiteRunRepo {
	t.Helper()
	return NewSQLiteRunRepo(testutil.NewTestDB(t))
}

func TestRunRepo_CreateAndGetByID(t *testing.T) {
	repo := runTestRepo(t)
	ctx := context.Background()

	rec := testutil.NewTestRun(testutil.WithSummary("backlog scan"))
	require.NoError(t, repo.Create(ctx, rec))

	fetched, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, fetched.ID)
	assert.Equal(t, domain.RunInsights, fetched.Kind)
	assert.Equal(t, 12, fetched.ItemsChecked)
	assert.Equal(t, 3, fetched.ItemsWithIssues)
	assert.Equal(t, "backlog scan", fetched.Summary)
	assert.True(t, fetched.StartedAt.Equal(rec.StartedAt))
	assert.True(t, fetched.FinishedAt.Equal(rec.FinishedAt))
}

func TestRunRepo_GetByID_NotFound(t *testing.T) {
	repo := runTestRepo(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepo_ListRecent(t *testing.T) {
	repo := runTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := testutil.NewTestRun(testutil.WithStartedAt(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, repo.Create(ctx, rec))
	}

	recent, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	assert.True(t, recent[0].StartedAt.After(recent[1].StartedAt))
	assert.True(t, recent[1].StartedAt.After(recent[2].StartedAt))
}

func TestRunRepo_ListByKind(t *testing.T) {
	repo := runTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(testutil.WithRunKind(domain.RunBreakdown))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(testutil.WithRunKind(domain.RunBreakdown))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(testutil.WithRunKind(domain.RunEvaluation))))

	breakdowns, err := repo.ListByKind(ctx, domain.RunBreakdown, 10)
	require.NoError(t, err)
	assert.Len(t, breakdowns, 2)

	evals, err := repo.ListByKind(ctx, domain.RunEvaluation, 10)
	require.NoError(t, err)
	assert.Len(t, evals, 1)
}

func TestRunRepo_ListByWorkItem(t *testing.T) {
	repo := runTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(testutil.WithWorkItemID(42))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(testutil.WithWorkItemID(42))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestRun(testutil.WithWorkItemID(7))))

	runs, err := repo.ListByWorkItem(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunRepo_Delete(t *testing.T) {
	repo := runTestRepo(t)
	ctx := context.Background()

	rec := testutil.NewTestRun()
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err := repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
