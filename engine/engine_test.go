package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// FIXTURE
// ============================================================================
// Literacy on the 0–4 scale for uniform answers a is (a-1)/3×4:
// 4 → 4, 3.25 → 3, 2.5 → 2, 1.75 → 1, 0 → 0 (skipped).

func answers(v float64) (a [scoring.QuestionCount]float64) {
	for i := range a {
		a[i] = v
	}
	return a
}

func respondent(prov, edu string, birth int, v float64) dataset.SurveyResponse {
	return dataset.SurveyResponse{
		Gender:      "Female",
		Province:    prov,
		Education:   edu,
		BirthYear:   birth,
		IncomeRange: "Rp2.000.000 - Rp4.000.000",
		Answers:     answers(v),
	}
}

func fixture() *dataset.Snapshot {
	survey := []dataset.SurveyResponse{
		respondent("DKI Jakarta", "Bachelor (S1)/Diploma IV", 2001, 4),
		respondent("Jakarta", "Senior High School", 2005, 2.5),
		respondent("Jawa Barat", "Senior High School", 2008, 3.25),
		respondent("Jabar", "Junior High School", 1990, 1.75),
		respondent("Papua", "Elementary School", 2003, 0),
	}
	profiles := []dataset.ProfileRecord{
		{
			UserID: "U1", Gender: "Female", BirthYear: 2004, Province: "DKI Jakarta",
			Education: "Senior High School", Employment: "Student",
			MonthlyIncome: "Rp2.000.000 - Rp4.000.000", MonthlyExpense: "Rp4.000.000 - Rp6.000.000",
			MainFintechApp: "GoPay", EWalletSpend: "< Rp500.000", LoanPurpose: "Education",
			OutstandingLoan: 18_000_000, DigitalTimePerDay: 6, AnxietyScore: 4.5,
		},
		{
			UserID: "U2", Gender: "Male", BirthYear: 1995, Province: "Jawa Barat",
			Education: "Bachelor (S1)/Diploma IV", Employment: "Private Employee",
			MonthlyIncome: "5000000", MonthlyExpense: "3000000",
			MainFintechApp: "OVO", EWalletSpend: "Rp1.000.001 - Rp3.000.000", InvestmentType: "Reksa Dana",
			LoanPurpose: "Business", OutstandingLoan: 36_000_000, DigitalTimePerDay: 3, AnxietyScore: 3.5,
		},
		{
			UserID: "U3", Gender: "Male", Province: "Papua",
			Education: "Senior High School", Employment: "Entrepreneur",
		},
	}
	regional := []dataset.RegionalIndicator{
		{Province: "DKI Jakarta", OutstandingLoan: 25000, Population: 10000, PDRB: 300000, Urbanization: 100},
		{Province: "Jawa Barat", OutstandingLoan: 15000, Population: 50000, PDRB: 50000, Urbanization: 45},
		{Province: "Aceh", OutstandingLoan: 400, Population: 5000, PDRB: 35000, Urbanization: 25},
	}
	snap := dataset.NewSnapshot(survey, profiles, regional)
	snap.Boundary = []string{"DKI JAKARTA", "JAWA BARAT", "PAPUA"}
	return snap
}

func run(t *testing.T, req Request, snap *dataset.Snapshot) *Result {
	t.Helper()
	res, err := Execute(req, snap)
	require.NoError(t, err)
	require.True(t, res.Success)
	return res
}

// ============================================================================
// EXECUTOR
// ============================================================================

func TestExecute_Errors(t *testing.T) {
	t.Parallel()

	_, err := Execute(Request{Metric: "net_worth"}, fixture())
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	_, err = Execute(Request{Metric: "kpis"}, nil)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestExecute_MetricNameSpelling(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: " Literacy-By-Province "}, fixture())
	assert.Equal(t, "literacy_by_province", res.Metric)
	assert.Equal(t, "Literacy by Province", res.Title)

	res = run(t, Request{Metric: "kpis", Title: "Headline"}, fixture())
	assert.Equal(t, "Headline", res.Title)
}

func TestExecute_EveryMetric(t *testing.T) {
	t.Parallel()

	full := fixture()
	empty := dataset.NewSnapshot(nil, nil, nil)

	for _, m := range Metrics() {
		t.Run(m.Name, func(t *testing.T) {
			res := run(t, Request{Metric: m.Name}, full)
			assert.Equal(t, m.Name, res.Metric)
			assert.NotEmpty(t, res.Type)
			assert.NotEmpty(t, res.Summary)
			assert.Positive(t, res.Records)

			res = run(t, Request{Metric: m.Name}, empty)
			assert.Zero(t, res.Records)
			assert.Equal(t, "No records match the selected filters.", res.Summary)
		})
	}
}

func TestExecute_Deterministic(t *testing.T) {
	t.Parallel()

	snap := fixture()
	for _, m := range Metrics() {
		a, err := json.Marshal(run(t, Request{Metric: m.Name}, snap))
		require.NoError(t, err)
		b, err := json.Marshal(run(t, Request{Metric: m.Name}, snap))
		require.NoError(t, err)
		assert.JSONEq(t, string(a), string(b), m.Name)
	}
}

func TestExecute_DoesNotMutateSnapshot(t *testing.T) {
	t.Parallel()

	snap := fixture()
	before, err := json.Marshal(snap)
	require.NoError(t, err)

	for _, m := range Metrics() {
		run(t, Request{Metric: m.Name, Filters: Filters{Province: []string{"Jabar"}}}, snap)
	}

	after, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

// ============================================================================
// SURVEY METRICS
// ============================================================================

func TestLiteracyByProvince(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "literacy_by_province"}, fixture())
	groups := res.Data.([]Group)
	require.Len(t, groups, 2)

	assert.Equal(t, "DKI Jakarta", groups[0].Key)
	assert.InDelta(t, 3.0, groups[0].Value, 1e-9)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, "Jawa Barat", groups[1].Key)
	assert.InDelta(t, 2.0, groups[1].Value, 1e-9)
	assert.Equal(t, 4, res.Records, "zero-score respondent is skipped")

	require.NotNil(t, res.ChartConfig)
	assert.Equal(t, "bar", res.ChartConfig.ChartType)
	require.Len(t, res.ChartConfig.Series, 1)
	assert.Equal(t, "DKI Jakarta", res.ChartConfig.Series[0].Data[0].Label)
	require.NotNil(t, res.TableData)
	assert.Len(t, res.TableData.Rows, 2)
}

func TestLiteracyByProvince_Filters(t *testing.T) {
	t.Parallel()

	res := run(t, Request{
		Metric:  "literacy_by_province",
		Filters: Filters{Province: []string{"jabar"}},
	}, fixture())
	groups := res.Data.([]Group)
	require.Len(t, groups, 1)
	assert.Equal(t, "Jawa Barat", groups[0].Key)

	res = run(t, Request{
		Metric:  "literacy_by_province",
		Filters: Filters{Province: []string{"all"}, Education: []string{"Senior High School"}},
	}, fixture())
	groups = res.Data.([]Group)
	require.Len(t, groups, 2)
	assert.Equal(t, 2, res.Records)

	res = run(t, Request{Metric: "literacy_by_province", Filters: Filters{Gender: []string{"Other"}}}, fixture())
	assert.Zero(t, res.Records)
	assert.Empty(t, res.Data)
}

func TestLiteracyByAge_FixedOrder(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "literacy_by_age"}, fixture())
	groups := res.Data.([]Group)

	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"13-17", "18-20", "24-25", ">25"}, keys)
	assert.InDelta(t, 3.0, groups[0].Value, 1e-9)
	assert.InDelta(t, 1.0, groups[3].Value, 1e-9)
}

func TestLiteracyByEducation_ShortLabels(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "literacy_by_education"}, fixture())
	groups := res.Data.([]Group)
	require.Len(t, groups, 3)
	assert.Equal(t, "Bachelor", groups[0].Key)
	assert.Equal(t, "SMA", groups[1].Key)
	assert.InDelta(t, 2.5, groups[1].Value, 1e-9)
	assert.Equal(t, "SMP", groups[2].Key)
}

func TestTopBottomProvinces(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "top_bottom_provinces", Limit: 1}, fixture())
	tb := res.Data.(TopBottomGroups)
	require.Len(t, tb.Top, 1)
	require.Len(t, tb.Bottom, 1)
	assert.Equal(t, "DKI Jakarta", tb.Top[0].Key)
	assert.Equal(t, "Jawa Barat", tb.Bottom[0].Key)
	assert.Len(t, res.TableData.Rows, 2)
}

func TestKPIs(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "kpis"}, fixture())
	assert.Equal(t, "cards", res.Type)
	k := res.Data.(scoring.KPISummary)
	assert.Equal(t, 5, k.Respondents)
	require.Len(t, res.Cards, 5)
	assert.Equal(t, "literacy", res.Cards[0].Key)
	assert.NotEmpty(t, res.Cards[0].Trend)
	assert.Equal(t, "5", res.Cards[4].Value)
}

func TestDimensions(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "dimensions"}, fixture())
	scores := res.Data.([]scoring.DimensionScore)
	require.Len(t, scores, 5)
	for _, s := range scores {
		assert.Equal(t, scoring.DimensionScale, s.Scale)
	}
	require.NotNil(t, res.ChartConfig)
	assert.Equal(t, "radar", res.ChartConfig.ChartType)
	assert.False(t, res.ChartConfig.ShowGrid)
}

func TestQuestionPerformance_Limit(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "question_performance", Limit: 3}, fixture())
	scores := res.Data.([]scoring.QuestionScore)
	assert.Len(t, scores, 3)
	assert.Len(t, res.TableData.Rows, 3)
}

func TestBehaviorScorecard(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "behavior_scorecard"}, fixture())
	card := res.Data.(BehaviorScorecard)

	// raw behavior averages 4, 2.5, 3.25, 1.75, 0 → mean 2.3
	assert.InDelta(t, (2.3-1)/3*4, card.BehaviorScore, 1e-9)
	assert.Equal(t, 2, card.PoorBehaviorCount)
	assert.InDelta(t, 40, card.PoorBehaviorPct, 1e-9)
	assert.Equal(t, 1, card.DeficitCount)
	assert.InDelta(t, 100.0/3, card.DeficitPct, 1e-9)
	assert.InDelta(t, 4.0, card.AverageAnxiety, 1e-9)
	assert.Len(t, res.Cards, 4)
}

// ============================================================================
// REGIONAL METRICS
// ============================================================================

func TestProvinceRanking(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "province_ranking"}, fixture())
	rows := res.Data.([]ProvinceAggregate)
	require.Len(t, rows, 2)
	assert.Equal(t, "DKI Jakarta", rows[0].Province)
	assert.True(t, rows[0].Joined)
	assert.InDelta(t, 300, rows[0].PDRB, 1e-9)
	assert.InDelta(t, 3000, rows[0].TotalPDRB, 1e-9)
	assert.Equal(t, "DKI JAKARTA", rows[0].BoundaryKey)

	res = run(t, Request{Metric: "province_ranking", SortBy: "urbanization_asc"}, fixture())
	rows = res.Data.([]ProvinceAggregate)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jawa Barat", rows[0].Province)
}

func TestUrbanizationImpact(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "urbanization_impact"}, fixture())
	impact := res.Data.(UrbanizationImpact)

	require.Len(t, impact.Groups, 2)
	assert.Equal(t, "Semi-Urban", impact.Groups[0].Category)
	assert.InDelta(t, 2.0, impact.Groups[0].Literacy, 1e-9)
	assert.InDelta(t, 45, impact.Groups[0].AvgUrbanization, 1e-9)
	assert.Equal(t, "Highly Urban", impact.Groups[1].Category)
	assert.InDelta(t, 3.0, impact.Groups[1].Literacy, 1e-9)

	assert.Equal(t, "Highly Urban", impact.Highest)
	assert.Equal(t, "Semi-Urban", impact.Lowest)
	assert.InDelta(t, 2.5, impact.AverageLiteracy, 1e-9)
	assert.Equal(t, 4, impact.Respondents)
}

func TestPDRBvsLoans(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "pdrb_vs_loans"}, fixture())
	data := res.Data.(PDRBLoans)
	assert.Equal(t, 3, data.Provinces)
	assert.InDelta(t, (3000+2500+175)/3.0, data.AveragePDRB, 1e-9)
	assert.InDelta(t, (25000+15000+400)/3.0, data.AverageLoans, 1e-9)
	assert.True(t, data.Valid)
	assert.Positive(t, data.R)
	assert.Equal(t, []string{"DKI Jakarta", "Jawa Barat", "Aceh"}, data.Labels)

	require.NotNil(t, res.ChartConfig)
	assert.Equal(t, "scatter", res.ChartConfig.ChartType)
	require.Len(t, res.ChartConfig.Series, 2)
	require.NotNil(t, res.ChartConfig.Series[0].Data[0].X)
}

func TestProvinceMap(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "province_map"}, fixture())
	m := res.Data.(ProvinceMap)
	require.Len(t, m.Layers, 3)

	literacy := m.Layers[0]
	assert.Equal(t, "literacy", literacy.Key)
	assert.InDelta(t, 3.0, literacy.Values["DKI JAKARTA"], 1e-9)
	assert.InDelta(t, 2.0, literacy.Values["JAWA BARAT"], 1e-9)
	assert.InDelta(t, 2.0, literacy.Min, 1e-9)
	assert.InDelta(t, 3.0, literacy.Max, 1e-9)

	gap := m.Layers[1]
	assert.InDelta(t, 25000.0/300*100, gap.Values["DKI JAKARTA"], 0.01)

	assert.Equal(t, []string{"Aceh"}, m.Unmatched)
}

func TestJoinRegional_Unmatched(t *testing.T) {
	t.Parallel()

	groups := []Group{
		{Key: "Bali", Value: 2.5, Count: 3},
		{Key: "Jawa Barat", Value: 3, Count: 1},
	}
	aggs := JoinRegional(groups, fixture().Regional, nil)
	require.Len(t, aggs, 2)

	assert.False(t, aggs[0].Joined)
	assert.Zero(t, aggs[0].PDRB)
	assert.Zero(t, aggs[0].Loans)
	assert.Equal(t, 3, aggs[0].Count)

	assert.True(t, aggs[1].Joined)
	assert.InDelta(t, 50, aggs[1].PDRB, 1e-9)
	assert.InDelta(t, 15000, aggs[1].Loans, 1e-9)
	assert.InDelta(t, 45, aggs[1].Urbanization, 1e-9)
}

// ============================================================================
// PROFILE METRICS
// ============================================================================

func bucketCounts(buckets []Bucket) map[string]int {
	out := make(map[string]int, len(buckets))
	for _, b := range buckets {
		out[b.Name] = b.Count
	}
	return out
}

func TestDebtToIncome(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "debt_to_income"}, fixture())
	buckets := res.Data.([]Bucket)
	require.Len(t, buckets, 3)
	assert.Equal(t, "Healthy", buckets[0].Name)
	assert.Equal(t, map[string]int{"Healthy": 0, "Warning": 1, "Critical": 1}, bucketCounts(buckets))
	assert.InDelta(t, 50, buckets[1].Percentage, 1e-9)
}

func TestSavingsRate(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "savings_rate"}, fixture())
	buckets := res.Data.([]Bucket)
	assert.Equal(t, map[string]int{"Deficit": 1, "Low": 0, "Moderate": 0, "High": 1}, bucketCounts(buckets))
}

func TestAnxietyMetrics(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "anxiety_levels"}, fixture())
	assert.Equal(t, map[string]int{"Low": 0, "Moderate": 1, "High": 1}, bucketCounts(res.Data.([]Bucket)))

	res = run(t, Request{Metric: "anxiety_by_age"}, fixture())
	groups := res.Data.([]Group)
	require.Len(t, groups, 2)
	assert.Equal(t, "21-23", groups[0].Key)
	assert.InDelta(t, 4.5, groups[0].Value, 1e-9)
	assert.Equal(t, ">25", groups[1].Key)
}

func TestEWalletSpending_IncludesUnknown(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "ewallet_spending"}, fixture())
	buckets := res.Data.([]Bucket)
	require.Len(t, buckets, len(EWalletBucketOrder))
	counts := bucketCounts(buckets)
	assert.Equal(t, 1, counts["< Rp500.000"])
	assert.Equal(t, 1, counts["Rp1.000.001 - Rp3.000.000"])
	assert.Equal(t, 1, counts["Unknown"])
	assert.InDelta(t, 100.0/3, buckets[0].Percentage, 1e-9)
}

func TestShares(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "investment_types"}, fixture())
	buckets := res.Data.([]Bucket)
	require.Len(t, buckets, 2)
	assert.Equal(t, NoInvestment, buckets[0].Name)
	assert.Equal(t, 2, buckets[0].Count)

	res = run(t, Request{Metric: "fintech_apps", Limit: 2}, fixture())
	buckets = res.Data.([]Bucket)
	require.Len(t, buckets, 2)
	assert.Equal(t, "GoPay", buckets[0].Name, "ties keep first-seen order")
}

func TestLoanPurposes(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "loan_purposes"}, fixture())
	purposes := res.Data.([]LoanPurpose)
	require.Len(t, purposes, 3)

	byName := make(map[string]LoanPurpose)
	for _, p := range purposes {
		byName[p.Purpose] = p
	}
	assert.InDelta(t, 18, byName["Education"].AvgDebt, 1e-9)
	assert.InDelta(t, 36, byName["Business"].AvgDebt, 1e-9)
	assert.InDelta(t, 100.0/3, byName["Unknown"].Percentage, 1e-9)
}

func TestIncomeVsExpense(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "income_vs_expense"}, fixture())
	data := res.Data.(IncomeExpense)
	assert.InDelta(t, 4, data.AverageIncome, 1e-9)
	assert.InDelta(t, 4, data.AverageExpense, 1e-9)
	require.Len(t, data.ByEducation, 2)
	assert.Equal(t, "Bachelor", data.ByEducation[0].Education)
	assert.InDelta(t, 5, data.ByEducation[0].Income, 1e-9)

	require.NotNil(t, res.ChartConfig)
	require.Len(t, res.ChartConfig.Series, 2)
	assert.Equal(t, "Income", res.ChartConfig.Series[0].Name)
}

func TestEducationEmployment(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "education_employment"}, fixture())
	data := res.Data.(EducationEmployment)
	assert.Equal(t, 1, data.Students)
	assert.Equal(t, 2, data.Working)
	assert.Equal(t, 2, data.SMA)
	require.NotEmpty(t, data.Groups)
	assert.Equal(t, "SMA", data.Groups[0].Key)
	assert.Len(t, data.Groups[0].SubGroups, 2)
}

func TestCorrelationMetrics(t *testing.T) {
	t.Parallel()

	res := run(t, Request{Metric: "literacy_vs_fintech"}, fixture())
	c := res.Data.(Correlation)
	assert.Equal(t, 4, c.N)
	assert.True(t, c.Valid)
	assert.InDelta(t, 1.0, c.R, 1e-9, "uniform answers make both scores identical")

	res = run(t, Request{Metric: "digital_time_vs_anxiety"}, fixture())
	c = res.Data.(Correlation)
	assert.Equal(t, 2, c.N)
}
