package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spektr-org/finlit/dataset"
)

// ============================================================================
// EXECUTOR — Metric catalogue + dispatcher
// ============================================================================
// Entry point: Execute(req, snapshot, opts...)
//
// Pipeline:
//   1. Resolve the metric name against the catalogue
//   2. Bind adapters to the snapshot and apply Request.Filters → SubViews
//   3. Run the metric (group, aggregate, bucket, correlate)
//   4. Builders turn the payload into ChartConfig / TableData / Cards
//
// The snapshot is never modified; concurrent calls on one snapshot are safe.
// ============================================================================

var (
	// ErrUnknownMetric is returned for names not in the catalogue.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrNoSnapshot is returned when Execute is called without data.
	ErrNoSnapshot = errors.New("no snapshot")
)

// Metric describes one catalogue entry.
type Metric struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Dataset     string `json:"dataset"` // survey, profile, regional or a "+" join
	Description string `json:"description"`

	run func(*metricEnv) *Result
}

var catalogue = []Metric{
	{Name: "kpis", Title: "Key Indicators", Dataset: "survey",
		Description: "Headline literacy, digital, behavior and well-being scores with trend", run: kpiMetric},
	{Name: "dimensions", Title: "Literacy Dimensions", Dataset: "survey",
		Description: "The five questionnaire dimensions on a 0-25 scale", run: dimensionMetric},
	{Name: "question_performance", Title: "Question Performance", Dataset: "survey",
		Description: "Average answer per question, weakest first", run: questionMetric},
	{Name: "behavior_scorecard", Title: "Behavior Scorecard", Dataset: "survey+profile",
		Description: "Behavior score, poor money habits, spending deficit and anxiety", run: behaviorScorecardMetric},
	{Name: "literacy_by_province", Title: "Literacy by Province", Dataset: "survey",
		Description: "Average literacy score per province", run: literacyBy(DimProvince, "value_desc")},
	{Name: "literacy_by_age", Title: "Literacy by Age Group", Dataset: "survey",
		Description: "Average literacy score per age group", run: literacyBy(DimAgeGroup, orderSort(AgeGroupOrder))},
	{Name: "literacy_by_education", Title: "Literacy by Education", Dataset: "survey",
		Description: "Average literacy score per education level", run: literacyBy(DimEducation, "value_desc")},
	{Name: "literacy_by_gender", Title: "Literacy by Gender", Dataset: "survey",
		Description: "Average literacy score per gender", run: literacyBy(DimGender, "value_desc")},
	{Name: "top_bottom_provinces", Title: "Top and Bottom Provinces", Dataset: "survey",
		Description: "Best and worst provinces by literacy (limit = n, default 5)", run: topBottomMetric},
	{Name: "province_ranking", Title: "Province Ranking", Dataset: "survey+regional",
		Description: "Provinces with literacy and economic indicators, sortable by field", run: provinceRankingMetric},
	{Name: "province_map", Title: "Province Map", Dataset: "survey+regional",
		Description: "Choropleth layers keyed by boundary-file province name", run: provinceMapMetric},
	{Name: "urbanization_impact", Title: "Urbanization Impact", Dataset: "survey+regional",
		Description: "Literacy across provincial urbanization levels", run: urbanizationMetric},
	{Name: "pdrb_vs_loans", Title: "PDRB vs Loans", Dataset: "regional",
		Description: "Provincial output against outstanding P2P lending", run: pdrbLoansMetric},
	{Name: "literacy_vs_fintech", Title: "Literacy vs Digital Literacy", Dataset: "survey",
		Description: "Correlation of overall and digital literacy per respondent", run: literacyFintechMetric},
	{Name: "digital_time_vs_anxiety", Title: "Digital Time vs Anxiety", Dataset: "profile",
		Description: "Correlation of daily screen time and financial anxiety", run: digitalAnxietyMetric},
	{Name: "income_distribution", Title: "Income Distribution", Dataset: "profile",
		Description: "Profiles per monthly income bracket", run: incomeDistributionMetric},
	{Name: "income_vs_expense", Title: "Income vs Expense", Dataset: "profile",
		Description: "Average income and expense, overall and per education level", run: incomeExpenseMetric},
	{Name: "debt_to_income", Title: "Debt to Income", Dataset: "profile",
		Description: "Outstanding debt relative to annual income", run: debtToIncomeMetric},
	{Name: "savings_rate", Title: "Savings Rate", Dataset: "profile",
		Description: "Share of income not spent", run: savingsRateMetric},
	{Name: "anxiety_by_age", Title: "Anxiety by Age Group", Dataset: "profile",
		Description: "Average financial anxiety per age group", run: anxietyByAgeMetric},
	{Name: "anxiety_levels", Title: "Anxiety Levels", Dataset: "profile",
		Description: "Profiles per anxiety level", run: anxietyLevelMetric},
	{Name: "ewallet_spending", Title: "E-Wallet Spending", Dataset: "profile",
		Description: "Monthly e-wallet spending brackets", run: ewalletMetric},
	{Name: "fintech_apps", Title: "Main Fintech Apps", Dataset: "profile",
		Description: "Share of each main fintech app", run: shareMetric(DimFintechApp)},
	{Name: "investment_types", Title: "Investment Types", Dataset: "profile",
		Description: "Share of each investment product", run: shareMetric(DimInvestment)},
	{Name: "loan_purposes", Title: "Loan Purposes", Dataset: "profile",
		Description: "Loan usage purposes with share and average debt", run: loanPurposeMetric},
	{Name: "education_employment", Title: "Education and Employment", Dataset: "profile",
		Description: "Employment status within each education level", run: educationEmploymentMetric},
}

// Metrics lists the catalogue in display order.
func Metrics() []Metric {
	out := make([]Metric, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupMetric resolves a metric name. Case and "-" vs "_" are ignored.
func LookupMetric(name string) (Metric, bool) {
	key := NormalizeMetricName(name)
	for _, m := range catalogue {
		if m.Name == key {
			return m, true
		}
	}
	return Metric{}, false
}

// NormalizeMetricName folds user spellings onto catalogue keys.
func NormalizeMetricName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}

// Execute computes one metric over a snapshot and returns a render-ready Result.
//
// Options:
//   - WithLogger(l) — diagnostics (default: discard)
//   - WithReferenceYear(y) — age bucketing reference (default 2025)
//   - WithNormalizer(n) — province normalizer (default: built-in + snapshot boundary names)
//   - WithScale(s) — literacy score scale (default 4)
func Execute(req Request, snap *dataset.Snapshot, opts ...Option) (*Result, error) {
	m, ok := LookupMetric(req.Metric)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, req.Metric)
	}
	if snap == nil {
		return nil, ErrNoSnapshot
	}

	cfg := applyOptions(opts)
	cfg.normalizerFor(snap.Boundary)

	title := req.Title
	if title == "" {
		title = m.Title
	}

	cfg.Logger.Debug("executing metric",
		"metric", m.Name,
		"snapshot", snap.ID,
		"filters", req.Filters,
		"survey", len(snap.Survey),
		"profiles", len(snap.Profiles),
		"regional", len(snap.Regional))

	result := m.run(&metricEnv{cfg: cfg, req: req, snap: snap, title: title})
	result.Success = true
	result.Metric = m.Name
	result.Title = title

	if result.Records == 0 {
		result.Summary = "No records match the selected filters."
		cfg.Logger.Info("metric produced no records", "metric", m.Name, "filters", req.Filters)
	}

	cfg.Logger.Debug("metric done", "metric", m.Name, "records", result.Records, "type", result.Type)
	return result, nil
}
