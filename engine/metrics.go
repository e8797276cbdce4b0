package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/scoring"
	"github.com/spektr-org/finlit/stats"
)

// ============================================================================
// METRICS — One function per catalogue entry
// ============================================================================
// Every metric reads the snapshot through filtered RecordViews and returns
// a partially filled Result; Execute stamps Metric, Title and Success.
// Scores are skipped when 0 (no answers), amounts when they did not parse.
// ============================================================================

type metricEnv struct {
	cfg   *config
	req   Request
	snap  *dataset.Snapshot
	title string
}

func (e *metricEnv) surveyView() RecordView {
	return ApplyFilters(surveyAdapter(e.cfg).Bind(e.snap.Survey), e.req.Filters, e.cfg.Normalizer)
}

func (e *metricEnv) profileView() RecordView {
	return ApplyFilters(profileAdapter(e.cfg).Bind(e.snap.Profiles), e.req.Filters, e.cfg.Normalizer)
}

// regionalView honours only the province filter; the regional table has
// no respondent dimensions.
func (e *metricEnv) regionalView() RecordView {
	return ApplyFilters(regionalAdapter(e.cfg).Bind(e.snap.Regional), e.req.Filters, e.cfg.Normalizer)
}

func (e *metricEnv) limit(def int) int {
	if e.req.Limit > 0 {
		return e.req.Limit
	}
	return def
}

func (e *metricEnv) sortBy(def string) string {
	if e.req.SortBy != "" {
		return e.req.SortBy
	}
	return def
}

func orderSort(order []string) string {
	return "order:" + strings.Join(order, "|")
}

// ============================================================================
// SURVEY HEADLINES
// ============================================================================

func kpiMetric(e *metricEnv) *Result {
	rows := Rows[dataset.SurveyResponse](e.surveyView())
	k := scoring.KPIs(rows)
	return &Result{
		Type:    "cards",
		Cards:   BuildKPICards(k),
		Data:    k,
		Records: len(rows),
		Summary: fmt.Sprintf("Overall literacy %s of 4 across %s respondents, trend %s.",
			FormatScore(k.Literacy), FormatInt(k.Respondents), TrendText(k.Trend)),
	}
}

func dimensionMetric(e *metricEnv) *Result {
	rows := Rows[dataset.SurveyResponse](e.surveyView())
	if len(rows) == 0 {
		return &Result{Type: "chart", Data: []scoring.DimensionScore{}}
	}
	scores := scoring.DimensionScores(rows, scoring.DimensionScale)

	groups := make([]Group, 0, len(scores))
	for _, d := range scores {
		groups = append(groups, Group{Key: d.Key, Label: d.Name, Value: d.Value, Count: len(rows)})
	}
	weakest := make([]Group, len(groups))
	copy(weakest, groups)
	SortGroups(weakest, "value_asc")

	return &Result{
		Type:        "chart",
		ChartConfig: BuildChart("radar", e.title, "Dimension", "Score (0-25)", groups),
		TableData:   BuildGroupTable(e.title, "Dimension", "Score (0-25)", groups, FormatScore),
		Data:        scores,
		Records:     len(rows),
		Summary: fmt.Sprintf("Strongest dimension: %s (%s). Weakest: %s (%s).",
			weakest[len(weakest)-1].Label, FormatScore(weakest[len(weakest)-1].Value),
			weakest[0].Label, FormatScore(weakest[0].Value)),
	}
}

func questionMetric(e *metricEnv) *Result {
	rows := Rows[dataset.SurveyResponse](e.surveyView())
	scores := scoring.QuestionPerformance(rows)
	if n := e.limit(0); n > 0 && len(scores) > n {
		scores = scores[:n]
	}

	groups := make([]Group, 0, len(scores))
	for _, q := range scores {
		groups = append(groups, Group{Key: q.Question, Label: q.Question, Value: q.Score, Count: len(rows)})
	}

	summary := "No matching records found."
	if len(scores) > 0 {
		summary = fmt.Sprintf("Weakest question: %s (%s, %s).", scores[0].Question, scores[0].Dimension, FormatPercent(scores[0].Percentage))
	}
	return &Result{
		Type:        "table",
		ChartConfig: BuildChart("bar", e.title, "Question", "Average answer", groups),
		TableData:   BuildQuestionTable(e.title, scores),
		Data:        scores,
		Records:     len(rows),
		Summary:     summary,
	}
}

func behaviorScorecardMetric(e *metricEnv) *Result {
	rows := Rows[dataset.SurveyResponse](e.surveyView())
	profiles := e.profileView()

	card := BehaviorScorecard{
		BehaviorScore:     scoring.ScoreDimension(rows, scoring.Behavior.Range, scoring.DefaultScale),
		PoorBehaviorCount: scoring.CountBelow(rows, scoring.Behavior.Range, scoring.PoorBehaviorThreshold),
		Respondents:       len(rows),
		Profiles:          profiles.Len(),
	}
	card.PoorBehaviorPct = percent(card.PoorBehaviorCount, len(rows))

	for i := 0; i < profiles.Len(); i++ {
		income := profiles.Measure(i, MeasureIncome)
		if income > 0 && profiles.Measure(i, MeasureExpense) > income {
			card.DeficitCount++
		}
	}
	card.DeficitPct = percent(card.DeficitCount, profiles.Len())
	card.AverageAnxiety = AvgMeasure(FilterMeasure(profiles, MeasureAnxiety, Positive), MeasureAnxiety)

	return &Result{
		Type:    "cards",
		Cards:   BuildScorecardCards(card),
		Data:    card,
		Records: len(rows) + profiles.Len(),
		Summary: fmt.Sprintf("%s of respondents show poor money habits; %s of profiles spend above income.",
			FormatPercent(card.PoorBehaviorPct), FormatPercent(card.DeficitPct)),
	}
}

// ============================================================================
// LITERACY BREAKDOWNS
// ============================================================================

// literacyBy averages positive literacy scores per value of dim.
func literacyBy(dim, defaultSort string) func(*metricEnv) *Result {
	return func(e *metricEnv) *Result {
		view := FilterMeasure(e.surveyView(), MeasureLiteracy, Positive)
		groups := GroupAndAggregate(view, []string{dim}, MeasureLiteracy, "avg", e.sortBy(defaultSort), e.limit(0))
		label := LabelForDimension(dim)
		return &Result{
			Type:        "chart",
			ChartConfig: BuildChart("bar", e.title, label, "Literacy score", groups),
			TableData:   BuildGroupTable(e.title, label, "Literacy score", groups, FormatScore),
			Data:        groups,
			Records:     view.Len(),
			Summary:     summarizeGroups(groups, "literacy", FormatScore),
		}
	}
}

func topBottomMetric(e *metricEnv) *Result {
	view := FilterMeasure(e.surveyView(), MeasureLiteracy, Positive)
	groups := GroupAndAggregate(view, []string{DimProvince}, MeasureLiteracy, "avg", "value_desc", 0)
	top, bottom := TopBottom(groups, e.limit(5))

	columns := []Column{
		{Key: "position", Label: "Position", Type: "text", Align: "left"},
		{Key: "province", Label: "Province", Type: "text", Align: "left"},
		{Key: "literacy", Label: "Literacy score", Type: "number", Align: "right"},
		{Key: "count", Label: "Respondents", Type: "number", Align: "center"},
	}
	rows := make([][]string, 0, len(top)+len(bottom))
	for i, g := range top {
		rows = append(rows, []string{fmt.Sprintf("Top %d", i+1), g.Label, FormatScore(g.Value), FormatInt(g.Count)})
	}
	for i, g := range bottom {
		rows = append(rows, []string{fmt.Sprintf("Bottom %d", i+1), g.Label, FormatScore(g.Value), FormatInt(g.Count)})
	}

	return &Result{
		Type:      "table",
		TableData: &TableData{Title: e.title, Columns: columns, Rows: rows},
		Data:      TopBottomGroups{Top: top, Bottom: bottom},
		Records:   view.Len(),
		Summary:   summarizeGroups(groups, "literacy", FormatScore),
	}
}

// ============================================================================
// REGIONAL
// ============================================================================

// rankingFields maps ranking sort names to joined-row measures.
var rankingFields = map[string]string{
	"literacy":     MeasureLiteracy,
	"score":        MeasureLiteracy,
	"pdrb":         MeasurePDRB,
	"total_pdrb":   MeasureTotalPDRB,
	"loans":        MeasureLoans,
	"urbanization": MeasureUrbanization,
	"population":   MeasurePopulation,
	"count":        MeasureRecordCount,
}

// rankingSort parses "<field>", "<field>_asc" or "<field>_desc".
func rankingSort(sortBy string) (measure, order string) {
	field, order := strings.ToLower(strings.TrimSpace(sortBy)), "value_desc"
	if f, ok := strings.CutSuffix(field, "_asc"); ok {
		field, order = f, "value_asc"
	} else if f, ok := strings.CutSuffix(field, "_desc"); ok {
		field = f
	}
	if m, ok := rankingFields[field]; ok {
		return m, order
	}
	return MeasureLiteracy, order
}

func provinceAggregates(e *metricEnv) ([]ProvinceAggregate, RecordView) {
	view := FilterMeasure(e.surveyView(), MeasureLiteracy, Positive)
	groups := GroupAndAggregate(view, []string{DimProvince}, MeasureLiteracy, "avg", "label_asc", 0)
	return JoinRegional(groups, e.snap.Regional, e.cfg.Normalizer), view
}

func provinceRankingMetric(e *metricEnv) *Result {
	aggs, view := provinceAggregates(e)

	byProvince := make(map[string]ProvinceAggregate, len(aggs))
	var unmatched []string
	for _, a := range aggs {
		if a.Joined {
			byProvince[a.Province] = a
		} else {
			unmatched = append(unmatched, a.Province)
		}
	}
	if len(unmatched) > 0 {
		e.cfg.Logger.Debug("provinces without regional data", "provinces", unmatched)
	}

	measure, order := rankingSort(e.req.SortBy)
	ranked := GroupAndAggregate(NewSliceView(joinedRecords(aggs)), []string{DimProvince}, measure, "sum", order, e.limit(0))

	rows := make([]ProvinceAggregate, 0, len(ranked))
	for _, g := range ranked {
		rows = append(rows, byProvince[g.Key])
	}

	summary := fmt.Sprintf("%d provinces ranked by %s.", len(rows), LabelForDimension(measure))
	if len(unmatched) > 0 {
		summary += fmt.Sprintf(" %d without regional data: %s.", len(unmatched), strings.Join(unmatched, ", "))
	}
	return &Result{
		Type:      "table",
		TableData: BuildProvinceTable(e.title, rows),
		Data:      rows,
		Records:   view.Len(),
		Summary:   summary,
	}
}

func provinceMapMetric(e *metricEnv) *Result {
	survey := e.surveyView()
	literacy := GroupAndAggregate(FilterMeasure(survey, MeasureLiteracy, Positive),
		[]string{DimProvince}, MeasureLiteracy, "avg", "label_asc", 0)
	digital := GroupAndAggregate(FilterMeasure(survey, MeasureDigital, Positive),
		[]string{DimProvince}, MeasureDigital, "avg", "label_asc", 0)
	gap := GroupAndAggregate(FilterMeasure(e.regionalView(), MeasureInclusionGap, Positive),
		[]string{DimProvince}, MeasureInclusionGap, "avg", "label_asc", 0)

	unmatched := make(map[string]bool)
	layer := func(key, label, unit string, groups []Group) MapLayer {
		l := MapLayer{Key: key, Label: label, Unit: unit, Values: make(map[string]float64, len(groups))}
		for i, g := range groups {
			name, ok := e.cfg.Normalizer.BoundaryKey(g.Key)
			if !ok {
				unmatched[g.Key] = true
				name = g.Key
			}
			l.Values[name] = RoundTo2(g.Value)
			if i == 0 || g.Value < l.Min {
				l.Min = g.Value
			}
			if i == 0 || g.Value > l.Max {
				l.Max = g.Value
			}
		}
		return l
	}

	m := ProvinceMap{Layers: []MapLayer{
		layer("literacy", "Financial literacy", "score", literacy),
		layer("inclusion_gap", "Financial inclusion gap", "%", gap),
		layer("digital", "Digital literacy", "score", digital),
	}}
	for name := range unmatched {
		m.Unmatched = append(m.Unmatched, name)
	}
	sort.Strings(m.Unmatched)
	if len(m.Unmatched) > 0 {
		e.cfg.Logger.Warn("provinces missing from boundary file", "provinces", m.Unmatched)
	}

	return &Result{
		Type:    "map",
		Data:    m,
		Records: survey.Len(),
		Summary: fmt.Sprintf("%d provinces mapped, %d without a boundary match.", len(literacy), len(m.Unmatched)),
	}
}

func urbanizationMetric(e *metricEnv) *Result {
	index, _ := dataset.IndexRegional(e.snap.Regional, e.cfg.Normalizer)
	view := FilterMeasure(e.surveyView(), MeasureLiteracy, Positive)

	records := make([]Record, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		row, ok := index[view.Dimension(i, DimProvince)]
		if !ok {
			continue
		}
		records = append(records, Record{
			Dimensions: map[string]string{DimUrbanBucket: UrbanizationBucket(row.Urbanization)},
			Measures: map[string]float64{
				MeasureLiteracy:     view.Measure(i, MeasureLiteracy),
				MeasureUrbanization: row.Urbanization,
			},
		})
	}

	groups := GroupAndAggregate(NewSliceView(records), []string{DimUrbanBucket}, MeasureLiteracy, "avg",
		orderSort(UrbanizationBucketOrder), 0)

	impact := UrbanizationImpact{Groups: make([]UrbanizationGroup, 0, len(groups))}
	var sum float64
	for _, g := range groups {
		impact.Groups = append(impact.Groups, UrbanizationGroup{
			Category:        g.Key,
			Literacy:        g.Value,
			AvgUrbanization: AvgMeasure(g.View, MeasureUrbanization),
			Count:           g.Count,
		})
		sum += g.Value
		impact.Respondents += g.Count
	}
	if len(groups) > 0 {
		impact.AverageLiteracy = sum / float64(len(groups))
		top, bottom := TopBottom(groups, 1)
		impact.Highest, impact.Lowest = top[0].Key, bottom[0].Key
	}

	return &Result{
		Type:        "chart",
		ChartConfig: BuildChart("bar", e.title, "Urbanization", "Literacy score", groups),
		TableData:   BuildGroupTable(e.title, "Urbanization", "Literacy score", groups, FormatScore),
		Data:        impact,
		Records:     len(records),
		Summary:     summarizeGroups(groups, "literacy", FormatScore),
	}
}

func pdrbLoansMetric(e *metricEnv) *Result {
	view := e.regionalView()
	x := Values(view, MeasureTotalPDRB)
	y := Values(view, MeasureLoans)

	c := correlate("Total PDRB (Rp bn)", "Outstanding loans (Rp bn)", x, y)
	c.Labels = make([]string, view.Len())
	for i := range c.Labels {
		c.Labels[i] = view.Dimension(i, DimProvince)
	}

	data := PDRBLoans{
		Correlation:  c,
		AveragePDRB:  stats.Mean(x),
		AverageLoans: stats.Mean(y),
		Provinces:    view.Len(),
	}
	return &Result{
		Type:        "chart",
		ChartConfig: BuildScatterChart(e.title, c),
		Data:        data,
		Records:     view.Len(),
		Summary:     summarizeCorrelation(c),
	}
}

// ============================================================================
// CORRELATIONS
// ============================================================================

func correlate(xLabel, yLabel string, x, y []float64) Correlation {
	points := make([]stats.Point, 0, len(x))
	for i := range x {
		if i >= len(y) {
			break
		}
		points = append(points, stats.Point{X: x[i], Y: y[i]})
	}
	return Correlation{
		XLabel:            xLabel,
		YLabel:            yLabel,
		CorrelationResult: stats.Analyze(x, y),
		Points:            points,
	}
}

func literacyFintechMetric(e *metricEnv) *Result {
	view := FilterMeasure(FilterMeasure(e.surveyView(), MeasureLiteracy, Positive), MeasureDigital, Positive)
	c := correlate("Financial literacy", "Digital literacy", Values(view, MeasureLiteracy), Values(view, MeasureDigital))
	return &Result{
		Type:        "chart",
		ChartConfig: BuildScatterChart(e.title, c),
		Data:        c,
		Records:     view.Len(),
		Summary:     summarizeCorrelation(c),
	}
}

func digitalAnxietyMetric(e *metricEnv) *Result {
	view := FilterMeasure(e.profileView(), MeasureDigitalTime, Positive)
	c := correlate("Digital time (hours/day)", "Financial anxiety", Values(view, MeasureDigitalTime), Values(view, MeasureAnxiety))
	return &Result{
		Type:        "chart",
		ChartConfig: BuildScatterChart(e.title, c),
		Data:        c,
		Records:     view.Len(),
		Summary:     summarizeCorrelation(c),
	}
}

// ============================================================================
// INCOME AND DEBT
// ============================================================================

func distributionResult(e *metricEnv, view RecordView, dim string, order []string, chartType string) *Result {
	buckets := Distribution(view, dim, order)
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	label := LabelForDimension(dim)
	return &Result{
		Type:        "chart",
		ChartConfig: BuildBucketChart(chartType, e.title, label, buckets),
		TableData:   BuildBucketTable(e.title, label, buckets),
		Data:        buckets,
		Records:     total,
		Summary:     summarizeBuckets(buckets, total),
	}
}

func incomeDistributionMetric(e *metricEnv) *Result {
	view := FilterMeasure(e.profileView(), MeasureIncome, Positive)
	return distributionResult(e, view, DimIncomeBucket, IncomeBucketOrder[:len(IncomeBucketOrder)-1], "bar")
}

func incomeExpenseMetric(e *metricEnv) *Result {
	view := FilterMeasure(FilterMeasure(e.profileView(), MeasureIncome, Positive), MeasureExpense, Positive)

	income := Values(view, MeasureIncome)
	expense := Values(view, MeasureExpense)
	for i := range income {
		income[i] /= 1e6
		expense[i] /= 1e6
	}

	data := IncomeExpense{
		AverageIncome:  stats.Mean(income),
		AverageExpense: stats.Mean(expense),
		Correlation:    correlate("Income (Rp jt)", "Expense (Rp jt)", income, expense),
	}

	groups := GroupAndAggregate(view, []string{DimEducation}, MeasureIncome, "avg", "value_desc", 0)
	chartGroups := make([]Group, 0, len(groups))
	for _, g := range groups {
		avg := EducationAverages{
			Education: g.Key,
			Income:    g.Value / 1e6,
			Expense:   AvgMeasure(g.View, MeasureExpense) / 1e6,
			Count:     g.Count,
		}
		data.ByEducation = append(data.ByEducation, avg)
		chartGroups = append(chartGroups, Group{
			Key:   g.Key,
			Label: g.Label,
			Count: g.Count,
			SubGroups: []Group{
				{Key: "Income", Label: "Income", Value: avg.Income, Count: g.Count},
				{Key: "Expense", Label: "Expense", Value: avg.Expense, Count: g.Count},
			},
		})
	}

	return &Result{
		Type:        "chart",
		ChartConfig: BuildChart("bar", e.title, "Education", "Rp jt / month", chartGroups),
		Data:        data,
		Records:     view.Len(),
		Summary: fmt.Sprintf("Average income %s vs expense %s per month across %s profiles.",
			FormatMillions(data.AverageIncome*1e6), FormatMillions(data.AverageExpense*1e6), FormatInt(view.Len())),
	}
}

func debtToIncomeMetric(e *metricEnv) *Result {
	view := FilterMeasure(FilterMeasure(e.profileView(), MeasureIncome, Positive), MeasureDebt, Positive)
	res := distributionResult(e, view, DimDebtBucket, DebtBucketOrder, "pie")
	if view.Len() > 0 {
		res.Summary += fmt.Sprintf(" Average debt is %s of annual income.", FormatPercent(AvgMeasure(view, MeasureDebtRatio)))
	}
	return res
}

func savingsRateMetric(e *metricEnv) *Result {
	view := FilterMeasure(e.profileView(), MeasureIncome, Positive)
	res := distributionResult(e, view, DimSavingsBucket, SavingsBucketOrder, "pie")
	if view.Len() > 0 {
		res.Summary += fmt.Sprintf(" Average savings rate %s.", FormatPercent(AvgMeasure(view, MeasureSavingsRate)))
	}
	return res
}

func loanPurposeMetric(e *metricEnv) *Result {
	view := e.profileView()
	groups := GroupAndAggregate(view, []string{DimLoanPurpose}, MeasureDebt, "avg", "count_desc", e.limit(0))

	purposes := make([]LoanPurpose, 0, len(groups))
	buckets := make([]Bucket, 0, len(groups))
	for _, g := range groups {
		lp := LoanPurpose{
			Purpose:    g.Key,
			Count:      g.Count,
			Percentage: percent(g.Count, view.Len()),
			AvgDebt:    g.Value / 1e6,
		}
		purposes = append(purposes, lp)
		buckets = append(buckets, Bucket{Name: lp.Purpose, Count: lp.Count, Percentage: lp.Percentage})
	}

	return &Result{
		Type:        "chart",
		ChartConfig: BuildBucketChart("bar", e.title, "Loan purpose", buckets),
		TableData:   BuildGroupTable(e.title, "Loan purpose", "Average debt (Rp jt)", millions(groups), FormatScore),
		Data:        purposes,
		Records:     view.Len(),
		Summary:     summarizeBuckets(buckets, view.Len()),
	}
}

func millions(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		g.Value /= 1e6
		out[i] = g
	}
	return out
}

// ============================================================================
// WELL-BEING AND HABITS
// ============================================================================

func anxietyByAgeMetric(e *metricEnv) *Result {
	view := FilterMeasure(e.profileView(), MeasureAnxiety, Positive)
	all := GroupAndAggregate(view, []string{DimAgeGroup}, MeasureAnxiety, "avg", orderSort(AgeGroupOrder), 0)

	groups := make([]Group, 0, len(all))
	records := 0
	for _, g := range all {
		if g.Key == unknownBucket {
			continue
		}
		groups = append(groups, g)
		records += g.Count
	}

	return &Result{
		Type:        "chart",
		ChartConfig: BuildChart("bar", e.title, "Age group", "Anxiety score", groups),
		TableData:   BuildGroupTable(e.title, "Age group", "Anxiety score", groups, FormatScore),
		Data:        groups,
		Records:     records,
		Summary:     summarizeGroups(groups, "anxiety", FormatScore),
	}
}

func anxietyLevelMetric(e *metricEnv) *Result {
	view := FilterMeasure(e.profileView(), MeasureAnxiety, Positive)
	return distributionResult(e, view, DimAnxietyBucket, AnxietyBucketOrder, "pie")
}

func ewalletMetric(e *metricEnv) *Result {
	return distributionResult(e, e.profileView(), DimEWalletBucket, EWalletBucketOrder, "bar")
}

// shareMetric ranks every value of dim by frequency.
func shareMetric(dim string) func(*metricEnv) *Result {
	return func(e *metricEnv) *Result {
		view := e.profileView()
		buckets := Share(view, dim)
		if n := e.limit(0); n > 0 && len(buckets) > n {
			buckets = buckets[:n]
		}
		label := LabelForDimension(dim)
		return &Result{
			Type:        "chart",
			ChartConfig: BuildBucketChart("pie", e.title, label, buckets),
			TableData:   BuildBucketTable(e.title, label, buckets),
			Data:        buckets,
			Records:     view.Len(),
			Summary:     summarizeBuckets(buckets, view.Len()),
		}
	}
}

var workingStatuses = map[string]bool{
	"private employee":   true,
	"civil servant/bumn": true,
	"entrepreneur":       true,
}

func educationEmploymentMetric(e *metricEnv) *Result {
	view := e.profileView()
	groups := GroupAndAggregate(view, []string{DimEducation, DimEmployment}, MeasureRecordCount, "count", "value_desc", e.limit(0))
	for i := range groups {
		SortGroups(groups[i].SubGroups, "value_desc")
	}

	data := EducationEmployment{Groups: groups, Profiles: view.Len()}
	for i := 0; i < view.Len(); i++ {
		status := strings.ToLower(view.Dimension(i, DimEmployment))
		switch {
		case status == "student":
			data.Students++
		case workingStatuses[status]:
			data.Working++
		}
	}
	for _, g := range groups {
		if g.Key == "SMA" {
			data.SMA = g.Count
		}
	}

	return &Result{
		Type:        "chart",
		ChartConfig: BuildChart("stacked_bar", e.title, "Education", "Respondents", groups),
		TableData:   BuildGroupTable(e.title, "Education", "Respondents", groups, func(v float64) string { return FormatInt(int(v)) }),
		Data:        data,
		Records:     view.Len(),
		Summary: fmt.Sprintf("%s students (%s), %s working (%s).",
			FormatInt(data.Students), FormatPercent(percent(data.Students, view.Len())),
			FormatInt(data.Working), FormatPercent(percent(data.Working, view.Len()))),
	}
}
