package helpers

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spektr-org/finlit/engine"
	"github.com/spektr-org/finlit/province"
	"github.com/spektr-org/finlit/schema"
)

// ============================================================================
// EXPLORE — Ad-hoc group/aggregate over a discovered CSV
// ============================================================================

var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrUnknownMeasure   = errors.New("unknown measure")
)

// ExploreRequest groups a discovered file by up to two dimensions.
type ExploreRequest struct {
	GroupBy       []string
	Measure       string // "" = record_count
	Aggregation   string // "" = the measure's default
	SortBy        string // "" = value_desc
	Limit         int
	Filters       engine.Filters
	ReferenceYear int
}

// Explore discovers data's schema, parses it and runs one
// GroupAndAggregate. The returned Config is what discovery found.
func Explore(data []byte, req ExploreRequest) (*engine.Result, *schema.Config, error) {
	sch, err := schema.DiscoverFromCSV(data)
	if err != nil {
		return nil, nil, fmt.Errorf("discover schema: %w", err)
	}

	dims := sch.DimensionKeys()
	for _, d := range req.GroupBy {
		if !slices.Contains(dims, d) {
			return nil, sch, fmt.Errorf("%w %q (have: %s)", ErrUnknownDimension, d, strings.Join(dims, ", "))
		}
	}
	if len(req.GroupBy) > 2 {
		return nil, sch, fmt.Errorf("group by at most two dimensions (got %d)", len(req.GroupBy))
	}

	measureKey := req.Measure
	if measureKey == "" {
		measureKey = engine.MeasureRecordCount
	}
	var measure *schema.MeasureMeta
	for i := range sch.Measures {
		if sch.Measures[i].Key == measureKey {
			measure = &sch.Measures[i]
			break
		}
	}
	if measure == nil {
		return nil, sch, fmt.Errorf("%w %q (have: %s)", ErrUnknownMeasure, measureKey, strings.Join(sch.MeasureKeys(), ", "))
	}

	agg := req.Aggregation
	if agg == "" {
		agg = measure.DefaultAggregation
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "value_desc"
	}

	view, err := ParseCSVView(data, *sch, req.ReferenceYear)
	if err != nil {
		return nil, sch, err
	}
	view = engine.ApplyFilters(view, req.Filters, province.New())

	groups := engine.GroupAndAggregate(view, req.GroupBy, measure.Key, agg, sortBy, req.Limit)

	title := fmt.Sprintf("%s %s", engine.LabelForAggregation(agg), measure.DisplayName)
	if len(req.GroupBy) > 0 {
		labels := make([]string, len(req.GroupBy))
		for i, d := range req.GroupBy {
			labels[i] = engine.LabelForDimension(d)
		}
		title += " by " + strings.Join(labels, " and ")
	}

	groupLabel := "Group"
	if len(req.GroupBy) > 0 {
		groupLabel = engine.LabelForDimension(req.GroupBy[0])
	}

	res := &engine.Result{
		Success:     true,
		Metric:      "explore",
		Type:        "chart",
		Title:       title,
		ChartConfig: engine.BuildChart("bar", title, groupLabel, measure.DisplayName, groups),
		TableData:   engine.BuildGroupTable(title, groupLabel, engine.LabelForAggregation(agg), groups, formatFor(measure.Unit, agg)),
		Data:        groups,
		Records:     view.Len(),
	}
	res.Summary = fmt.Sprintf("%d groups from %s records of %s.", len(groups), engine.FormatInt(view.Len()), sch.Name)
	if len(groups) == 0 {
		res.Summary = "No records match the selected filters."
	}
	return res, sch, nil
}

func formatFor(unit, agg string) func(float64) string {
	if agg == "count" {
		return func(v float64) string { return engine.FormatInt(int(v)) }
	}
	switch unit {
	case "rupiah":
		return engine.FormatRupiah
	case "percent":
		return engine.FormatPercent
	default:
		return engine.FormatScore
	}
}
