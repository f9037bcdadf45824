package discovery

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundai-club/sundai-backend/models"
)

func projectWith(title, preview string, opts ...func(*models.Project)) models.Project {
	p := models.Project{
		ID:      uuid.New(),
		Title:   title,
		Preview: preview,
		Status:  models.ProjectApproved,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withTechTags(names ...string) func(*models.Project) {
	return func(p *models.Project) {
		for _, n := range names {
			p.TechTags = append(p.TechTags, models.TechTag{ID: uuid.New(), Name: n})
		}
	}
}

func withStart(t time.Time) func(*models.Project) {
	return func(p *models.Project) {
		p.StartDate = &t
	}
}

func TestSearchMatchesTitleOrPreviewCaseInsensitively(t *testing.T) {
	f := FilterState{Search: "ROBOT"}

	assert.True(t, f.Matches(projectWith("Robot Chef", "cooks for you")))
	assert.True(t, f.Matches(projectWith("Chef", "a robot that cooks")))
	assert.False(t, f.Matches(projectWith("Chef", "just a chef")))
}

func TestStatusFilterEmptySetIsWildcard(t *testing.T) {
	pending := projectWith("p", "")
	pending.Status = models.ProjectPending

	assert.True(t, FilterState{}.Matches(pending))
	assert.False(t, FilterState{Statuses: []models.ProjectStatus{models.ProjectApproved}}.Matches(pending))
	assert.True(t, FilterState{Statuses: []models.ProjectStatus{models.ProjectApproved, models.ProjectPending}}.Matches(pending))
}

func TestTagFilterUsesIntersectionSemantics(t *testing.T) {
	p1 := projectWith("P1", "", withTechTags("A"))
	p2 := projectWith("P2", "", withTechTags("A", "B"))
	p3 := projectWith("P3", "", withTechTags("B"))

	f := FilterState{TechTags: []string{"A", "B"}}
	got := Apply([]models.Project{p1, p2, p3}, f, time.Now())

	require.Len(t, got, 1)
	assert.Equal(t, "P2", got[0].Title)
}

func TestDateRangeIsInclusiveAtBothBounds(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 10, 0, 0, 0, time.Local)
	}

	f := FilterState{FromDate: "2025-03-05", ToDate: "2025-03-10"}

	assert.True(t, f.Matches(projectWith("on from", "", withStart(day(5)))))
	assert.True(t, f.Matches(projectWith("on to", "", withStart(day(10)))))
	assert.True(t, f.Matches(projectWith("inside", "", withStart(day(7)))))
	assert.False(t, f.Matches(projectWith("before", "", withStart(day(4)))))
	assert.False(t, f.Matches(projectWith("after", "", withStart(day(11)))))
	assert.False(t, f.Matches(projectWith("no date", "")))
}

func TestBrokenProjectsHiddenUnlessToggled(t *testing.T) {
	broken := projectWith("b", "")
	broken.IsBroken = true

	assert.False(t, FilterState{}.Matches(broken))
	assert.True(t, FilterState{ShowBroken: true}.Matches(broken))
}

func TestApplyOnEmptyInputReturnsEmptyList(t *testing.T) {
	got := Apply(nil, DefaultFilterState(), time.Now())

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTagCountsComeFromUnfilteredCollection(t *testing.T) {
	projects := []models.Project{
		projectWith("P1", "", withTechTags("React")),
		projectWith("P2", "", withTechTags("React", "Go")),
	}

	tech, domain := TagCounts(projects)

	assert.Equal(t, 2, tech["React"])
	assert.Equal(t, 1, tech["Go"])
	assert.Empty(t, domain)
}
