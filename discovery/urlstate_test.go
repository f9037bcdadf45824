package discovery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sundai-club/sundai-backend/models"
)

func TestQueryRoundTrip(t *testing.T) {
	f := FilterState{
		Search:   "foo",
		TechTags: []string{"React"},
		Sort:     SortLikes,
	}

	got := DecodeQuery(f.EncodeQuery())

	assert.Equal(t, f.Search, got.Search)
	assert.Equal(t, f.TechTags, got.TechTags)
	assert.Equal(t, f.Sort, got.Sort)
	assert.Empty(t, got.Statuses)

	// Encoding the decoded state reproduces the same parameters.
	assert.Equal(t, f.EncodeQuery(), got.EncodeQuery())
}

func TestDefaultSortIsOmittedFromURL(t *testing.T) {
	f := FilterState{Search: "x", Sort: SortTrending}

	v := f.EncodeQuery()
	assert.False(t, v.Has("sort"))

	assert.Equal(t, SortTrending, DecodeQuery(v).Sort)
}

func TestDecodeDegradesGracefully(t *testing.T) {
	v := url.Values{
		"sort":      {"explode"},
		"from_date": {"03/05/2025"},
		"to_date":   {"2025-03-10"},
		"status":    {"APPROVED", "PENDING"},
	}

	got := DecodeQuery(v)

	assert.Equal(t, SortTrending, got.Sort, "unknown sort keys fall back to the default")
	assert.Empty(t, got.FromDate, "malformed dates are dropped")
	assert.Equal(t, "2025-03-10", got.ToDate)
	assert.Equal(t, []models.ProjectStatus{models.ProjectApproved, models.ProjectPending}, got.Statuses)
}

func TestRepeatedTagsSurviveRoundTrip(t *testing.T) {
	f := FilterState{
		TechTags:   []string{"Go", "Postgres"},
		DomainTags: []string{"Health"},
		FromDate:   "2025-01-01",
		ToDate:     "2025-02-01",
		Sort:       SortNewest,
	}

	got := DecodeQuery(f.EncodeQuery())

	assert.Equal(t, f.TechTags, got.TechTags)
	assert.Equal(t, f.DomainTags, got.DomainTags)
	assert.Equal(t, f.FromDate, got.FromDate)
	assert.Equal(t, f.ToDate, got.ToDate)
	assert.Equal(t, f.Sort, got.Sort)
}
