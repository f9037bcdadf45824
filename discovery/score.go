package discovery

import (
	"math"
	"time"
)

// decayDays is the trending half-life-like decay constant: a project
// loses ~63% of its score every 30 days.
const decayDays = 30.0

const millisPerDay = 86_400_000

// TrendingScore computes the decay-weighted popularity of a project:
// ln(likes+1) × exp(−ageDays/30). Age is floored to whole days from
// the millisecond delta between now and the start date.
//
// A zero-value start date scores 0 rather than propagating a
// non-finite age into the comparator; future start dates clamp to age
// 0. The result is always finite and non-negative.
func TrendingScore(likeCount int, startDate, now time.Time) float64 {
	if startDate.IsZero() || likeCount < 0 {
		return 0
	}

	ageDays := math.Floor(float64(now.Sub(startDate).Milliseconds()) / millisPerDay)
	if ageDays < 0 {
		ageDays = 0
	}

	score := math.Log(float64(likeCount)+1) * math.Exp(-ageDays/decayDays)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}
