package discovery

import (
	"sort"
	"strings"
	"time"

	"github.com/sundai-club/sundai-backend/models"
)

// SortKey names a user-selectable ordering of the project listing.
type SortKey string

const (
	SortTrending     SortKey = "trending"
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortLikes        SortKey = "likes"
	SortUpdated      SortKey = "updated"
	SortAlphabetical SortKey = "alphabetical"
)

// ValidSortKey reports whether key names a known comparator.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortTrending, SortNewest, SortOldest, SortLikes, SortUpdated, SortAlphabetical:
		return true
	}
	return false
}

// scoredProject carries the precomputed trending score so the
// comparator never recomputes it per pair.
type scoredProject struct {
	project models.Project
	score   float64
}

// SortProjects orders projects by the named comparator, stably, in
// place. Unknown keys fall back to trending. Data is sanitized up
// front (missing dates compare equal, scores are always finite) so
// every comparator is a total, deterministic order.
func SortProjects(projects []models.Project, key SortKey, now time.Time) {
	switch key {
	case SortNewest:
		sort.SliceStable(projects, func(i, j int) bool {
			return compareStart(projects[i], projects[j]) > 0
		})
	case SortOldest:
		sort.SliceStable(projects, func(i, j int) bool {
			return compareStart(projects[i], projects[j]) < 0
		})
	case SortLikes:
		sort.SliceStable(projects, func(i, j int) bool {
			return len(projects[i].Likes) > len(projects[j].Likes)
		})
	case SortUpdated:
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
		})
	case SortAlphabetical:
		sort.SliceStable(projects, func(i, j int) bool {
			return compareTitles(projects[i].Title, projects[j].Title) < 0
		})
	default:
		sortByTrending(projects, now)
	}
}

func sortByTrending(projects []models.Project, now time.Time) {
	scored := make([]scoredProject, len(projects))
	for i, p := range projects {
		var start time.Time
		if p.StartDate != nil {
			start = *p.StartDate
		}
		scored[i] = scoredProject{project: p, score: TrendingScore(len(p.Likes), start, now)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	for i, s := range scored {
		projects[i] = s.project
	}
}

// compareStart orders by start date; a project missing its start date
// compares equal to anything so it keeps its relative position instead
// of jumping to either end of the listing.
func compareStart(a, b models.Project) int {
	if a.StartDate == nil || b.StartDate == nil {
		return 0
	}
	switch {
	case a.StartDate.After(*b.StartDate):
		return 1
	case a.StartDate.Before(*b.StartDate):
		return -1
	}
	return 0
}

// compareTitles is the deterministic casing rule for alphabetical
// order: case-insensitive first, exact bytes as tiebreaker.
func compareTitles(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a, b)
}
