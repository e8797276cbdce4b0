package engine

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Groups, Buckets or Correlations
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildChart produces a ChartConfig from aggregated groups. Groups with
// SubGroups become one series per sub-key.
func BuildChart(chartType, title, xAxis, yAxis string, groups []Group) *ChartConfig {
	if len(groups) == 0 {
		return nil
	}
	if chartType == "" {
		chartType = "bar"
	}

	config := &ChartConfig{
		ChartType:  chartType,
		Title:      title,
		XAxis:      xAxis,
		YAxis:      yAxis,
		ShowLegend: true,
		ShowGrid:   chartType != "pie" && chartType != "radar",
	}

	if hasSubGroups(groups) {
		config.Series = buildMultiSeries(groups)
	} else {
		config.Series = buildSingleSeries(groups, yAxis)
	}

	config.Colors = assignColors(len(config.Series))
	return config
}

// BuildBucketChart charts a fixed-order distribution by count.
func BuildBucketChart(chartType, title, xAxis string, buckets []Bucket) *ChartConfig {
	groups := make([]Group, 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, Group{Key: b.Name, Label: b.Name, Value: float64(b.Count), Count: b.Count})
	}
	return BuildChart(chartType, title, xAxis, "Respondents", groups)
}

// BuildScatterChart plots correlation samples with the fitted trendline
// as a second series. Nil when there are no points.
func BuildScatterChart(title string, c Correlation) *ChartConfig {
	if len(c.Points) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(c.Points))
	for i, p := range c.Points {
		label := ""
		if i < len(c.Labels) {
			label = c.Labels[i]
		}
		points = append(points, ChartPoint{Label: label, Value: RoundTo2(p.Y), X: ptr(RoundTo2(p.X))})
	}
	series := []ChartSeries{{Name: c.YLabel, Data: points}}

	if c.Valid && len(c.Trendline) > 0 {
		trend := make([]ChartPoint, 0, len(c.Trendline))
		for _, p := range c.Trendline {
			trend = append(trend, ChartPoint{Value: RoundTo2(p.Y), X: ptr(RoundTo2(p.X))})
		}
		series = append(series, ChartSeries{Name: "Trend", Data: trend})
	}

	config := &ChartConfig{
		ChartType:  "scatter",
		Title:      title,
		XAxis:      c.XLabel,
		YAxis:      c.YLabel,
		Series:     series,
		ShowLegend: len(series) > 1,
		ShowGrid:   true,
	}
	config.Colors = assignColors(len(series))
	for i := range config.Series {
		config.Series[i].Color = config.Colors[i]
	}
	return config
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildSingleSeries(groups []Group, seriesName string) []ChartSeries {
	if seriesName == "" {
		seriesName = "Value"
	}

	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: RoundTo2(g.Value),
		})
	}

	return []ChartSeries{{
		Name: seriesName,
		Data: points,
	}}
}

// buildMultiSeries emits series in order of first appearance so output is
// stable across runs.
func buildMultiSeries(groups []Group) []ChartSeries {
	var subKeys []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, sg := range g.SubGroups {
			if !seen[sg.Key] {
				seen[sg.Key] = true
				subKeys = append(subKeys, sg.Key)
			}
		}
	}

	seriesMap := make(map[string][]ChartPoint)
	for _, key := range subKeys {
		seriesMap[key] = make([]ChartPoint, 0, len(groups))
	}

	for _, g := range groups {
		sgLookup := make(map[string]float64)
		for _, sg := range g.SubGroups {
			sgLookup[sg.Key] = sg.Value
		}

		for _, key := range subKeys {
			seriesMap[key] = append(seriesMap[key], ChartPoint{
				Label: g.Label,
				Value: RoundTo2(sgLookup[key]),
			})
		}
	}

	series := make([]ChartSeries, 0, len(subKeys))
	for i, key := range subKeys {
		series = append(series, ChartSeries{
			Name:  key,
			Data:  seriesMap[key],
			Color: defaultColors[i%len(defaultColors)],
		})
	}

	return series
}

func hasSubGroups(groups []Group) bool {
	for _, g := range groups {
		if len(g.SubGroups) > 0 {
			return true
		}
	}
	return false
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func ptr(v float64) *float64 { return &v }
