package engine

import (
	"strings"

	"github.com/spektr-org/finlit/province"
)

// ============================================================================
// FILTERS — Respondent filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy.
// Province and education values are canonicalized first, so "Jabar"
// selects the same respondents as "Jawa Barat".
// ============================================================================

// ApplyFilters returns a view of records matching all dimension filters.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// A filter on a dimension the view does not carry is ignored, so one
// Filters value applies to survey and profile views alike.
func ApplyFilters(view RecordView, filters Filters, norm *province.Normalizer) RecordView {
	dims := filters.dimensions()
	if len(dims) == 0 {
		return view
	}

	available := make(map[string]bool)
	for _, k := range view.DimensionKeys() {
		available[k] = true
	}

	// Pre-build lowercase lookup sets for each dimension filter
	sets := make(map[string]map[string]bool)
	for dim, allowed := range dims {
		if !available[dim] {
			continue
		}
		switch {
		case dim == DimProvince && norm != nil:
			allowed = canonical(allowed, norm.Normalize)
		case dim == DimEducation:
			allowed = canonical(allowed, ShortEducation)
		}
		sets[dim] = toLowerSet(allowed)
	}

	if len(sets) == 0 {
		return view
	}

	// Single pass — record passes if it matches ALL dimension filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			val := strings.ToLower(view.Dimension(i, dim))
			if !set[val] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

func canonical(vals []string, fn func(string) string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fn(v)
	}
	return out
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
