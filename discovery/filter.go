package discovery

import (
	"strings"
	"time"

	"github.com/sundai-club/sundai-backend/models"
)

// FilterState holds every user-adjustable input of the discovery
// pipeline. Callers pass it explicitly; there is no ambient state.
type FilterState struct {
	Search     string
	Statuses   []models.ProjectStatus
	TechTags   []string
	DomainTags []string

	// Inclusive bounds on the project's start date, each "" or a
	// zero-padded YYYY-MM-DD string.
	FromDate string
	ToDate   string

	// Broken projects are hidden unless toggled on.
	ShowBroken bool

	Sort SortKey
}

// DefaultFilterState is the listing's initial view: approved projects
// sorted by trending, broken hidden.
func DefaultFilterState() FilterState {
	return FilterState{
		Statuses: []models.ProjectStatus{models.ProjectApproved},
		Sort:     SortTrending,
	}
}

// Matches reports whether the project passes every active predicate.
// Predicates are ANDed; an unset predicate passes everything.
func (f FilterState) Matches(p models.Project) bool {
	return f.matchesSearch(p) &&
		f.matchesStatus(p) &&
		f.matchesTags(p) &&
		f.matchesDateRange(p) &&
		f.matchesBroken(p)
}

func (f FilterState) matchesSearch(p models.Project) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Preview), q)
}

func (f FilterState) matchesStatus(p models.Project) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if p.Status == s {
			return true
		}
	}
	return false
}

// matchesTags requires the project to carry ALL selected tags of each
// type: tag filters narrow progressively rather than widening.
func (f FilterState) matchesTags(p models.Project) bool {
	if len(f.TechTags) > 0 {
		have := make(map[string]bool, len(p.TechTags))
		for _, t := range p.TechTags {
			have[t.Name] = true
		}
		for _, want := range f.TechTags {
			if !have[want] {
				return false
			}
		}
	}
	if len(f.DomainTags) > 0 {
		have := make(map[string]bool, len(p.DomainTags))
		for _, t := range p.DomainTags {
			have[t.Name] = true
		}
		for _, want := range f.DomainTags {
			if !have[want] {
				return false
			}
		}
	}
	return true
}

// matchesDateRange compares the start date, normalized to a local
// YYYY-MM-DD string, lexicographically against the bounds. Both bounds
// are inclusive. Projects without a start date only pass when no bound
// is set.
func (f FilterState) matchesDateRange(p models.Project) bool {
	if f.FromDate == "" && f.ToDate == "" {
		return true
	}
	if p.StartDate == nil {
		return false
	}
	key := DateKey(*p.StartDate)
	if f.FromDate != "" && key < f.FromDate {
		return false
	}
	if f.ToDate != "" && key > f.ToDate {
		return false
	}
	return true
}

func (f FilterState) matchesBroken(p models.Project) bool {
	return f.ShowBroken || !p.IsBroken
}

// DateKey normalizes a time to the zero-padded YYYY-MM-DD form the
// date-range predicate and URL parameters use. Zero padding keeps
// lexicographic comparison equivalent to chronological comparison.
func DateKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
