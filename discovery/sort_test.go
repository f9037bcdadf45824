package discovery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundai-club/sundai-backend/models"
)

func withLikes(n int) func(*models.Project) {
	return func(p *models.Project) {
		for i := 0; i < n; i++ {
			p.Likes = append(p.Likes, models.Like{ID: uuid.New(), ProjectID: p.ID, HackerID: uuid.New()})
		}
	}
}

func titles(projects []models.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestAlphabeticalOrderIsCaseInsensitiveAndDeterministic(t *testing.T) {
	projects := []models.Project{
		projectWith("Banana", ""),
		projectWith("apple", ""),
		projectWith("Cherry", ""),
	}

	SortProjects(projects, SortAlphabetical, time.Now())

	assert.Equal(t, []string{"apple", "Banana", "Cherry"}, titles(projects))
}

func TestLikesAndNewestAndTrendingOrders(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	p1 := projectWith("P1", "", withStart(now.AddDate(0, 0, -30)), withLikes(10))
	p2 := projectWith("P2", "", withStart(now), withLikes(2))

	byLikes := []models.Project{p2, p1}
	SortProjects(byLikes, SortLikes, now)
	assert.Equal(t, []string{"P1", "P2"}, titles(byLikes))

	byNewest := []models.Project{p1, p2}
	SortProjects(byNewest, SortNewest, now)
	assert.Equal(t, []string{"P2", "P1"}, titles(byNewest))

	// Trending must follow the formula, not intuition:
	// P1: ln(11)·e^-1 ≈ 0.882, P2: ln(3)·e^0 ≈ 1.099 → P2 first.
	s1 := TrendingScore(10, now.AddDate(0, 0, -30), now)
	s2 := TrendingScore(2, now, now)
	require.Greater(t, s2, s1)

	byTrending := []models.Project{p1, p2}
	SortProjects(byTrending, SortTrending, now)
	assert.Equal(t, []string{"P2", "P1"}, titles(byTrending))
}

func TestOldestOrdersAscending(t *testing.T) {
	now := time.Now()
	old := projectWith("old", "", withStart(now.AddDate(0, -2, 0)))
	recent := projectWith("recent", "", withStart(now))

	projects := []models.Project{recent, old}
	SortProjects(projects, SortOldest, now)

	assert.Equal(t, []string{"old", "recent"}, titles(projects))
}

func TestMissingStartDatesKeepRelativePosition(t *testing.T) {
	now := time.Now()
	a := projectWith("a", "")
	b := projectWith("b", "", withStart(now.AddDate(0, 0, -1)))
	c := projectWith("c", "")

	// a and c have no start date: they compare equal to everything, so
	// the stable sort leaves them where they were instead of pushing
	// them to either end.
	projects := []models.Project{a, b, c}
	SortProjects(projects, SortNewest, now)

	assert.Equal(t, []string{"a", "b", "c"}, titles(projects))
}

func TestRecentlyUpdatedOrdersByUpdateTimestamp(t *testing.T) {
	now := time.Now()
	stale := projectWith("stale", "")
	stale.UpdatedAt = now.AddDate(0, 0, -14)
	fresh := projectWith("fresh", "")
	fresh.UpdatedAt = now

	projects := []models.Project{stale, fresh}
	SortProjects(projects, SortUpdated, now)

	assert.Equal(t, []string{"fresh", "stale"}, titles(projects))
}

func TestUnknownSortKeyFallsBackToTrending(t *testing.T) {
	now := time.Now()
	hot := projectWith("hot", "", withStart(now), withLikes(5))
	cold := projectWith("cold", "", withStart(now.AddDate(0, -6, 0)), withLikes(1))

	projects := []models.Project{cold, hot}
	SortProjects(projects, SortKey("bogus"), now)

	assert.Equal(t, []string{"hot", "cold"}, titles(projects))
}
