package discovery

import (
	"time"

	"github.com/sundai-club/sundai-backend/models"
)

// Apply runs the full discovery pipeline: every predicate in the
// filter state ANDed over the collection, then the selected sort.
// The input slice is never mutated; an empty input yields an empty
// (non-nil) result.
func Apply(projects []models.Project, state FilterState, now time.Time) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if state.Matches(p) {
			out = append(out, p)
		}
	}
	SortProjects(out, state.Sort, now)
	return out
}

// TagCounts tallies how many projects carry each tech and domain tag.
// Counts come from the full unfiltered collection so the badges show
// global popularity, not current-view popularity.
func TagCounts(projects []models.Project) (tech, domain map[string]int) {
	tech = make(map[string]int)
	domain = make(map[string]int)
	for _, p := range projects {
		for _, t := range p.TechTags {
			tech[t.Name]++
		}
		for _, t := range p.DomainTags {
			domain[t.Name]++
		}
	}
	return tech, domain
}
