package discovery

import (
	"net/url"
	"time"

	"github.com/sundai-club/sundai-backend/models"
)

// Query parameter names owned by the discovery pipeline. Listing URLs
// built from these are shareable and reconstruct the same view.
const (
	paramSearch    = "search"
	paramTechTag   = "tech_tag"
	paramDomainTag = "domain_tag"
	paramStatus    = "status"
	paramFromDate  = "from_date"
	paramToDate    = "to_date"
	paramSort      = "sort"
)

// EncodeQuery mirrors the filter state into URL query parameters.
// Unset fields are omitted, as is the sort key when it equals the
// default "trending", so default views produce clean URLs.
func (f FilterState) EncodeQuery() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set(paramSearch, f.Search)
	}
	for _, t := range f.TechTags {
		v.Add(paramTechTag, t)
	}
	for _, t := range f.DomainTags {
		v.Add(paramDomainTag, t)
	}
	for _, s := range f.Statuses {
		v.Add(paramStatus, string(s))
	}
	if f.FromDate != "" {
		v.Set(paramFromDate, f.FromDate)
	}
	if f.ToDate != "" {
		v.Set(paramToDate, f.ToDate)
	}
	if f.Sort != "" && f.Sort != SortTrending {
		v.Set(paramSort, string(f.Sort))
	}
	return v
}

// DecodeQuery reconstructs a filter state from URL query parameters.
// Malformed dates and unknown sort keys degrade to their defaults
// rather than erroring, so stale bookmarks still load.
func DecodeQuery(v url.Values) FilterState {
	f := FilterState{
		Search:     v.Get(paramSearch),
		TechTags:   v[paramTechTag],
		DomainTags: v[paramDomainTag],
		FromDate:   normalizeDateParam(v.Get(paramFromDate)),
		ToDate:     normalizeDateParam(v.Get(paramToDate)),
		Sort:       SortTrending,
	}
	for _, s := range v[paramStatus] {
		f.Statuses = append(f.Statuses, models.ProjectStatus(s))
	}
	if key := SortKey(v.Get(paramSort)); ValidSortKey(key) {
		f.Sort = key
	}
	return f
}

// normalizeDateParam keeps only well-formed YYYY-MM-DD values.
func normalizeDateParam(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}
