package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveRun_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	started := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	run := &RunRecord{
		ID:              uuid.NewString(),
		StartedAt:       started,
		FinishedAt:      started.Add(2 * time.Second),
		Status:          StatusSuccess,
		NewCount:        3,
		TotalCount:      12,
		LedgerRewritten: true,
	}
	require.NoError(t, store.SaveRun(run))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, StatusSuccess, runs[0].Status)
	assert.Equal(t, 3, runs[0].NewCount)
	assert.Equal(t, 12, runs[0].TotalCount)
	assert.True(t, runs[0].LedgerRewritten)
	assert.True(t, runs[0].StartedAt.Equal(started))
}

func TestSaveRun_Upsert(t *testing.T) {
	store := newTestStore(t)

	run := &RunRecord{
		ID:         uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Status:     StatusFailed,
	}
	require.NoError(t, store.SaveRun(run))

	run.Status = StatusSuccess
	run.NewCount = 1
	require.NoError(t, store.SaveRun(run))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1, "same id replaces, does not duplicate")
	assert.Equal(t, StatusSuccess, runs[0].Status)
}

func TestListRuns_OrderAndLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveRun(&RunRecord{
			ID:         uuid.NewString(),
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Second),
			Status:     StatusSuccess,
			NewCount:   i,
		}))
	}

	runs, err := store.ListRuns(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, 4, runs[0].NewCount, "newest run first")
	assert.Equal(t, 2, runs[2].NewCount)

	all, err := store.ListRuns(0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit uses the default")
}

func TestGetStats(t *testing.T) {
	store := newTestStore(t)

	empty, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalRuns)

	now := time.Now().UTC()
	require.NoError(t, store.SaveRun(&RunRecord{
		ID: uuid.NewString(), StartedAt: now, FinishedAt: now,
		Status: StatusSuccess, NewCount: 2, LedgerRewritten: true,
	}))
	require.NoError(t, store.SaveRun(&RunRecord{
		ID: uuid.NewString(), StartedAt: now.Add(time.Minute), FinishedAt: now.Add(time.Minute),
		Status: StatusSuccess, NewCount: 5, LedgerRewritten: true,
	}))
	require.NoError(t, store.SaveRun(&RunRecord{
		ID: uuid.NewString(), StartedAt: now.Add(2 * time.Minute), FinishedAt: now.Add(2 * time.Minute),
		Status: StatusFailed, ErrorMessage: "no ledger file found",
	}))

	stats, err := store.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalRuns)
	assert.Equal(t, 2, stats.SuccessCount)
	assert.Equal(t, 1, stats.FailedCount)
	assert.Equal(t, 7, stats.TotalNewRecords)
	assert.Equal(t, 2, stats.RewriteCount)
}
