package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintsense/internal/domain"
	"sprintsense/internal/testutil"
)

func TestHistoryRecent_DefaultLimit(t *testing.T) {
	runs := &memRuns{}
	for i := 0; i < 3; i++ {
		require.NoError(t, runs.Create(context.Background(), testutil.NewTestRun()))
	}
	svc := NewHistoryService(runs)

	recs, err := svc.Recent(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, recs, 3)
	assert.Equal(t, defaultHistoryLimit, runs.lastLimit)
}

func TestHistoryByKind(t *testing.T) {
	runs := &memRuns{}
	require.NoError(t, runs.Create(context.Background(), testutil.NewTestRun(testutil.WithRunKind(domain.RunBreakdown))))
	require.NoError(t, runs.Create(context.Background(), testutil.NewTestRun(testutil.WithRunKind(domain.RunInsights))))
	svc := NewHistoryService(runs)

	recs, err := svc.ByKind(context.Background(), domain.RunBreakdown, 5)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.RunBreakdown, recs[0].Kind)
}

func TestHistoryForWorkItem(t *testing.T) {
	runs := &memRuns{}
	require.NoError(t, runs.Create(context.Background(), testutil.NewTestRun(testutil.WithWorkItemID(42))))
	require.NoError(t, runs.Create(context.Background(), testutil.NewTestRun(testutil.WithWorkItemID(7))))
	svc := NewHistoryService(runs)

	recs, err := svc.ForWorkItem(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 42, recs[0].WorkItemID)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "just text", "just text"},
		{"tags", "<div><b>bold</b> move</div>", "bold move"},
		{"entities", "a&nbsp;&amp;&nbsp;b", "a & b"},
		{"whitespace", "  a\n\n b ", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.in))
		})
	}
}
