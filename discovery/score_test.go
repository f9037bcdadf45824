package discovery

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrendingScoreDecaysWithAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s0 := TrendingScore(5, now, now)
	s30 := TrendingScore(5, now.AddDate(0, 0, -30), now)
	s90 := TrendingScore(5, now.AddDate(0, 0, -90), now)

	assert.Greater(t, s0, s30)
	assert.Greater(t, s30, s90)
	assert.GreaterOrEqual(t, s90, 0.0)
}

func TestTrendingScoreIncreasesWithLikes(t *testing.T) {
	now := time.Now()
	start := now.AddDate(0, 0, -10)

	assert.Greater(t, TrendingScore(10, start, now), TrendingScore(2, start, now))
	assert.Greater(t, TrendingScore(1, start, now), TrendingScore(0, start, now))
}

func TestTrendingScoreMatchesFormula(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -30)

	want := math.Log(11) * math.Exp(-30.0/30.0)
	assert.InDelta(t, want, TrendingScore(10, start, now), 1e-9)
}

func TestTrendingScoreGuards(t *testing.T) {
	now := time.Now()

	assert.Zero(t, TrendingScore(5, time.Time{}, now), "zero start date scores zero")
	assert.Zero(t, TrendingScore(-3, now, now), "negative like count scores zero")
	assert.Zero(t, TrendingScore(0, now.AddDate(0, 0, -5), now), "no likes scores zero")

	// Future start dates clamp to age zero instead of boosting the score.
	future := TrendingScore(5, now.AddDate(0, 0, 7), now)
	assert.InDelta(t, math.Log(6), future, 1e-9)
}

func TestTrendingScoreAgeIsFlooredToWholeDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 23 hours old floors to age 0, same as brand new.
	almostADay := TrendingScore(5, now.Add(-23*time.Hour), now)
	fresh := TrendingScore(5, now, now)
	assert.Equal(t, fresh, almostADay)

	// 25 hours old floors to age 1.
	overADay := TrendingScore(5, now.Add(-25*time.Hour), now)
	assert.Less(t, overADay, fresh)
}
