package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/sundai-club/sundai-backend/models"
)

// TrendingRange selects one of the three fixed ranking windows.
type TrendingRange string

const (
	RangeWeek    TrendingRange = "week"
	RangeMonth   TrendingRange = "month"
	RangeAllTime TrendingRange = "all"
)

// ValidTrendingRange reports whether r names a known window.
func ValidTrendingRange(r TrendingRange) bool {
	return r == RangeWeek || r == RangeMonth || r == RangeAllTime
}

// projectRanker is the slice of the project repo the trending service
// needs; tests substitute a fake.
type projectRanker interface {
	TopLiked(since *time.Time, limit int) ([]models.Project, error)
}

// TrendingSnapshot holds the three ranked rails as of UpdatedAt.
type TrendingSnapshot struct {
	Week    []models.Project `json:"week"`
	Month   []models.Project `json:"month"`
	AllTime []models.Project `json:"all"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TrendingService maintains a cached snapshot of the three trending
// windows. The windows are fetched in parallel and a failed window
// degrades to an empty rail without failing the others. Refreshes are
// deduplicated with singleflight: an interval fire or request that
// arrives while a recompute is running joins it instead of starting
// another.
type TrendingService struct {
	ranker projectRanker
	logger zerolog.Logger
	limit  int
	maxAge time.Duration

	mu       sync.RWMutex
	snapshot TrendingSnapshot

	group  singleflight.Group
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewTrendingService(ranker projectRanker, limit int, maxAge time.Duration) *TrendingService {
	return &TrendingService{
		ranker: ranker,
		logger: log.With().Str("service", "trending").Logger(),
		limit:  limit,
		maxAge: maxAge,
		stopCh: make(chan struct{}),
	}
}

// Snapshot returns the cached snapshot, refreshing first if it is
// stale or has never been computed.
func (s *TrendingService) Snapshot(ctx context.Context) (TrendingSnapshot, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()

	if !snap.UpdatedAt.IsZero() && time.Since(snap.UpdatedAt) < s.maxAge {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Range returns one rail from the snapshot, truncated to limit when
// limit is lower than the configured rail size.
func (s *TrendingService) Range(ctx context.Context, r TrendingRange, limit int) ([]models.Project, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var rail []models.Project
	switch r {
	case RangeWeek:
		rail = snap.Week
	case RangeMonth:
		rail = snap.Month
	default:
		rail = snap.AllTime
	}
	if limit > 0 && limit < len(rail) {
		rail = rail[:limit]
	}
	return rail, nil
}

// Refresh recomputes the snapshot. Concurrent callers share one
// computation.
func (s *TrendingService) Refresh(ctx context.Context) (TrendingSnapshot, error) {
	v, err, _ := s.group.Do("trending", func() (any, error) {
		snap := s.compute(ctx)
		s.mu.Lock()
		s.snapshot = snap
		s.mu.Unlock()
		return snap, nil
	})
	if err != nil {
		return TrendingSnapshot{}, err
	}
	return v.(TrendingSnapshot), nil
}

// compute fetches the three windows in parallel. Each window failure
// is logged and leaves that rail empty; the group itself never errors.
func (s *TrendingService) compute(ctx context.Context) TrendingSnapshot {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	snap := TrendingSnapshot{
		Week:    []models.Project{},
		Month:   []models.Project{},
		AllTime: []models.Project{},
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if projects, err := s.ranker.TopLiked(&weekAgo, s.limit); err != nil {
			s.logger.Error().Err(err).Str("range", "week").Msg("trending window failed")
		} else {
			snap.Week = projects
		}
		return nil
	})
	g.Go(func() error {
		if projects, err := s.ranker.TopLiked(&monthAgo, s.limit); err != nil {
			s.logger.Error().Err(err).Str("range", "month").Msg("trending window failed")
		} else {
			snap.Month = projects
		}
		return nil
	})
	g.Go(func() error {
		if projects, err := s.ranker.TopLiked(nil, s.limit); err != nil {
			s.logger.Error().Err(err).Str("range", "all").Msg("trending window failed")
		} else {
			snap.AllTime = projects
		}
		return nil
	})
	_ = g.Wait()

	snap.UpdatedAt = now
	return snap
}

// Start launches the background refresher. Ticks that land while a
// refresh is still running coalesce into it via singleflight rather
// than piling up.
func (s *TrendingService) Start(interval time.Duration) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if _, err := s.Refresh(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("initial trending refresh failed")
		}

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				if _, err := s.Refresh(context.Background()); err != nil {
					s.logger.Error().Err(err).Msg("trending refresh failed")
				}
			}
		}
	}()
}

// Stop halts the background refresher and waits for it to exit.
func (s *TrendingService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
