package engine

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// ============================================================================

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
func GroupAndAggregate(
	view RecordView,
	groupBy []string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if len(groupBy) == 0 {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else if len(groupBy) == 1 {
		groups = groupBySingle(view, groupBy[0])
	} else {
		groups = groupByMulti(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
		for j := range groups[i].SubGroups {
			aggregateGroup(&groups[i].SubGroups[j], measure, aggregation)
		}
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

func groupByMulti(view RecordView, dimensions []string) []Group {
	primaryGroups := groupBySingle(view, dimensions[0])
	for i := range primaryGroups {
		primaryGroups[i].SubGroups = groupBySingle(primaryGroups[i].View, dimensions[1])
	}
	return primaryGroups
}

// ============================================================================
// FILTERING ON MEASURES
// ============================================================================

// FilterMeasure keeps records whose measure satisfies keep.
func FilterMeasure(view RecordView, measure string, keep func(float64) bool) RecordView {
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		if keep(view.Measure(i, measure)) {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices)
}

// Positive is the usual FilterMeasure predicate: 0 means "no data".
func Positive(v float64) bool { return v > 0 }

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case "sum":
		group.Value = SumMeasure(group.View, measure)
	case "count":
		group.Value = float64(group.Count)
	case "avg":
		group.Value = AvgMeasure(group.View, measure)
	case "max":
		group.Value = MaxMeasure(group.View, measure)
	case "min":
		group.Value = MinMeasure(group.View, measure)
	case "none":
		// pass through
	default:
		group.Value = AvgMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) float64 {
	var total float64
	for i := 0; i < view.Len(); i++ {
		total += view.Measure(i, measure)
	}
	return total
}

// AvgMeasure computes average of a named measure.
func AvgMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	return SumMeasure(view, measure) / float64(n)
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(-1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v > m {
			m = v
		}
	}
	return m
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) float64 {
	n := view.Len()
	if n == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := 0; i < n; i++ {
		if v := view.Measure(i, measure); v < m {
			m = v
		}
	}
	return m
}

// Values collects a measure across a view.
func Values(view RecordView, measure string) []float64 {
	out := make([]float64, view.Len())
	for i := range out {
		out[i] = view.Measure(i, measure)
	}
	return out
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode. Ties keep
// grouping order. "order:a|b|c" sorts by that explicit key order, unknown
// keys last.
func SortGroups(groups []Group, sortBy string) {
	if rest, ok := strings.CutPrefix(sortBy, "order:"); ok {
		SortByOrder(groups, strings.Split(rest, "|"))
		return
	}
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case "value_asc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value < groups[j].Value })
	case "count_desc":
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	case "label_asc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key) })
	case "label_desc":
		sort.SliceStable(groups, func(i, j int) bool { return strings.ToLower(groups[i].Key) > strings.ToLower(groups[j].Key) })
	default:
		// preserve grouping order
	}
}

// SortByOrder sorts groups by the position of their key in order.
func SortByOrder(groups []Group, order []string) {
	rank := make(map[string]int, len(order))
	for i, k := range order {
		rank[k] = i
	}
	pos := func(k string) int {
		if r, ok := rank[k]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(groups, func(i, j int) bool { return pos(groups[i].Key) < pos(groups[j].Key) })
}

// TopBottom splits value-descending groups into the n best and the n worst
// (worst first). The halves overlap when there are fewer than 2n groups.
func TopBottom(groups []Group, n int) (top, bottom []Group) {
	if n <= 0 || len(groups) == 0 {
		return nil, nil
	}
	sorted := make([]Group, len(groups))
	copy(sorted, groups)
	SortGroups(sorted, "value_desc")

	if n > len(sorted) {
		n = len(sorted)
	}
	top = sorted[:n]
	bottom = make([]Group, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		bottom = append(bottom, sorted[i])
	}
	return top, bottom
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah formats an amount the Indonesian way: "Rp1.234.567".
func FormatRupiah(amount float64) string {
	if amount < 0 {
		return "-" + FormatRupiah(-amount)
	}
	return idPrinter.Sprintf("Rp%d", int64(math.Round(amount)))
}

// FormatMillions formats a Rupiah amount in millions: "Rp2,5 jt".
func FormatMillions(amount float64) string {
	return idPrinter.Sprintf("Rp%.1f jt", amount/1e6)
}

// FormatInt formats an integer with Indonesian thousands separators.
func FormatInt(n int) string {
	return idPrinter.Sprintf("%d", n)
}

// FormatScore formats a score with two decimals.
func FormatScore(v float64) string {
	return idPrinter.Sprintf("%.2f", v)
}

// FormatPercent formats a percentage with one decimal.
func FormatPercent(v float64) string {
	return idPrinter.Sprintf("%.1f%%", v)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// LabelForDimension turns a key into a heading: "age_group" → "Age Group".
func LabelForDimension(dimension string) string {
	words := strings.Fields(strings.ReplaceAll(dimension, "_", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case "sum":
		return "Total"
	case "count":
		return "Count"
	case "avg":
		return "Average"
	case "max":
		return "Maximum"
	case "min":
		return "Minimum"
	default:
		return "Value"
	}
}
