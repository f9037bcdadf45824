package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundai-club/sundai-backend/models"
)

// fakeRanker serves canned rails keyed by window and can fail
// selected windows.
type fakeRanker struct {
	calls     atomic.Int64
	failWeek  bool
	weekRail  []models.Project
	monthRail []models.Project
	allRail   []models.Project
}

func (f *fakeRanker) TopLiked(since *time.Time, limit int) ([]models.Project, error) {
	f.calls.Add(1)
	switch {
	case since == nil:
		return f.allRail, nil
	case time.Since(*since) < 10*24*time.Hour:
		if f.failWeek {
			return nil, errors.New("window query failed")
		}
		return f.weekRail, nil
	default:
		return f.monthRail, nil
	}
}

func someProjects(n int) []models.Project {
	out := make([]models.Project, n)
	for i := range out {
		out[i] = models.Project{ID: uuid.New(), Title: "p"}
	}
	return out
}

func TestSnapshotFetchesAllThreeWindows(t *testing.T) {
	ranker := &fakeRanker{
		weekRail:  someProjects(2),
		monthRail: someProjects(5),
		allRail:   someProjects(8),
	}
	svc := NewTrendingService(ranker, 10, time.Minute)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Week, 2)
	assert.Len(t, snap.Month, 5)
	assert.Len(t, snap.AllTime, 8)
	assert.False(t, snap.UpdatedAt.IsZero())
	assert.EqualValues(t, 3, ranker.calls.Load())
}

func TestFailedWindowDegradesToEmptyRail(t *testing.T) {
	ranker := &fakeRanker{
		failWeek:  true,
		monthRail: someProjects(3),
		allRail:   someProjects(4),
	}
	svc := NewTrendingService(ranker, 10, time.Minute)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err, "one failed window must not fail the snapshot")

	assert.Empty(t, snap.Week)
	assert.NotNil(t, snap.Week, "degraded rail is an empty list, not null")
	assert.Len(t, snap.Month, 3)
	assert.Len(t, snap.AllTime, 4)
}

func TestSnapshotIsCachedUntilStale(t *testing.T) {
	ranker := &fakeRanker{allRail: someProjects(1)}
	svc := NewTrendingService(ranker, 10, time.Hour)

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, ranker.calls.Load(), "second call must hit the cache")
}

func TestRangeTruncatesToRequestedLimit(t *testing.T) {
	ranker := &fakeRanker{monthRail: someProjects(7)}
	svc := NewTrendingService(ranker, 10, time.Minute)

	rail, err := svc.Range(context.Background(), RangeMonth, 3)
	require.NoError(t, err)
	assert.Len(t, rail, 3)

	all, err := svc.Range(context.Background(), RangeMonth, 0)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestValidTrendingRange(t *testing.T) {
	assert.True(t, ValidTrendingRange(RangeWeek))
	assert.True(t, ValidTrendingRange(RangeAllTime))
	assert.False(t, ValidTrendingRange(TrendingRange("year")))
}
