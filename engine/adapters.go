package engine

import (
	"strings"

	"github.com/spektr-org/finlit/amount"
	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// ADAPTERS — RecordViews over the snapshot datasets
// ============================================================================
// Dimensions are canonical (province normalized, education shortened,
// empty categories filled) so grouping and filtering agree with each other.
// Measures that are not available for a row read as 0.
// ============================================================================

// Dimension keys.
const (
	DimProvince      = "province"
	DimEducation     = "education"
	DimAgeGroup      = "age_group"
	DimGender        = "gender"
	DimIncomeBucket  = "income_bucket"
	DimEmployment    = "employment"
	DimResidence     = "residence"
	DimJob           = "job"
	DimFintechApp    = "fintech_app"
	DimInvestment    = "investment"
	DimLoanPurpose   = "loan_purpose"
	DimEWalletBucket = "ewallet_bucket"
	DimDebtBucket    = "debt_bucket"
	DimSavingsBucket = "savings_bucket"
	DimAnxietyBucket = "anxiety_bucket"
	DimUrbanBucket   = "urbanization_bucket"
)

// Measure keys.
const (
	MeasureLiteracy     = "literacy"
	MeasureKnowledge    = "knowledge"
	MeasureDigital      = "digital"
	MeasureBehavior     = "behavior"
	MeasureDecision     = "decision"
	MeasureWellbeing    = "wellbeing"
	MeasureIncome       = "income"
	MeasureExpense      = "expense"
	MeasureAnxiety      = "anxiety"
	MeasureDebt         = "debt"
	MeasureDigitalTime  = "digital_time"
	MeasureDebtRatio    = "debt_ratio"
	MeasureSavingsRate  = "savings_rate"
	MeasureRecordCount  = "record_count"
	MeasurePDRB         = "pdrb"
	MeasureTotalPDRB    = "total_pdrb"
	MeasureLoans        = "loans"
	MeasureUrbanization = "urbanization"
	MeasurePopulation   = "population"
	MeasureTWP90        = "twp90"
	MeasureInclusionGap = "inclusion_gap"
)

// NoInvestment labels profiles that reported no investment product.
const NoInvestment = "Tidak Berinvestasi"

// ShortEducation maps the survey's long education labels to the short
// forms used on every chart. Unrecognized labels pass through trimmed.
func ShortEducation(label string) string {
	s := strings.TrimSpace(label)
	l := strings.ToLower(s)
	switch {
	case s == "":
		return dataset.Unknown
	case strings.Contains(l, "senior high"):
		return "SMA"
	case strings.Contains(l, "junior high"):
		return "SMP"
	case strings.Contains(l, "elementary"):
		return "SD"
	case strings.Contains(l, "bachelor"), strings.Contains(l, "diploma iv"):
		return "Bachelor"
	case strings.Contains(l, "diploma"):
		return "Diploma"
	case strings.Contains(l, "master"):
		return "Master"
	}
	return s
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func surveyAdapter(cfg *config) *DomainAdapter[dataset.SurveyResponse] {
	score := func(rng scoring.QuestionRange) func(dataset.SurveyResponse) float64 {
		return func(r dataset.SurveyResponse) float64 {
			return scoring.ScoreRespondentScaled(r, rng, cfg.Scale)
		}
	}
	return NewDomainAdapter[dataset.SurveyResponse]().
		Dimension(DimProvince, func(r dataset.SurveyResponse) string { return cfg.Normalizer.Normalize(r.Province) }).
		Dimension(DimEducation, func(r dataset.SurveyResponse) string { return ShortEducation(r.Education) }).
		Dimension(DimAgeGroup, func(r dataset.SurveyResponse) string { return AgeGroup(r.BirthYear, cfg.ReferenceYear) }).
		Dimension(DimGender, func(r dataset.SurveyResponse) string { return orDefault(r.Gender, dataset.Unknown) }).
		Dimension(DimIncomeBucket, func(r dataset.SurveyResponse) string { return IncomeBucket(amount.Value(r.IncomeRange)) }).
		Dimension(DimResidence, func(r dataset.SurveyResponse) string { return orDefault(r.ResidenceStatus, dataset.Unknown) }).
		Dimension(DimJob, func(r dataset.SurveyResponse) string { return orDefault(r.Job, dataset.Unknown) }).
		Measure(MeasureLiteracy, score(scoring.AllQuestions)).
		Measure(MeasureKnowledge, score(scoring.Knowledge.Range)).
		Measure(MeasureDigital, score(scoring.DigitalLiteracy.Range)).
		Measure(MeasureBehavior, score(scoring.Behavior.Range)).
		Measure(MeasureDecision, score(scoring.DecisionMaking.Range)).
		Measure(MeasureWellbeing, score(scoring.Wellbeing.Range)).
		Measure(MeasureIncome, func(r dataset.SurveyResponse) float64 { return amount.Value(r.IncomeRange) }).
		Measure(MeasureExpense, func(r dataset.SurveyResponse) float64 { return amount.Value(r.ExpenseRange) }).
		Measure(MeasureRecordCount, func(dataset.SurveyResponse) float64 { return 1 })
}

func profileAdapter(cfg *config) *DomainAdapter[dataset.ProfileRecord] {
	income := func(p dataset.ProfileRecord) float64 { return amount.Value(p.MonthlyIncome) }
	expense := func(p dataset.ProfileRecord) float64 { return amount.Value(p.MonthlyExpense) }
	return NewDomainAdapter[dataset.ProfileRecord]().
		Dimension(DimProvince, func(p dataset.ProfileRecord) string { return cfg.Normalizer.Normalize(p.Province) }).
		Dimension(DimEducation, func(p dataset.ProfileRecord) string { return ShortEducation(p.Education) }).
		Dimension(DimAgeGroup, func(p dataset.ProfileRecord) string { return AgeGroup(p.BirthYear, cfg.ReferenceYear) }).
		Dimension(DimGender, func(p dataset.ProfileRecord) string { return orDefault(p.Gender, dataset.Unknown) }).
		Dimension(DimIncomeBucket, func(p dataset.ProfileRecord) string { return IncomeBucket(income(p)) }).
		Dimension(DimEmployment, func(p dataset.ProfileRecord) string { return orDefault(p.Employment, dataset.Unknown) }).
		Dimension(DimFintechApp, func(p dataset.ProfileRecord) string { return orDefault(p.MainFintechApp, dataset.Unknown) }).
		Dimension(DimInvestment, func(p dataset.ProfileRecord) string { return orDefault(p.InvestmentType, NoInvestment) }).
		Dimension(DimLoanPurpose, func(p dataset.ProfileRecord) string { return orDefault(p.LoanPurpose, dataset.Unknown) }).
		Dimension(DimEWalletBucket, func(p dataset.ProfileRecord) string { return EWalletBucket(p.EWalletSpend) }).
		Dimension(DimDebtBucket, func(p dataset.ProfileRecord) string {
			return DebtBucket(DebtRatio(income(p), p.OutstandingLoan))
		}).
		Dimension(DimSavingsBucket, func(p dataset.ProfileRecord) string {
			return SavingsBucket(SavingsRate(income(p), expense(p)))
		}).
		Dimension(DimAnxietyBucket, func(p dataset.ProfileRecord) string { return AnxietyBucket(p.AnxietyScore) }).
		Measure(MeasureIncome, income).
		Measure(MeasureExpense, expense).
		Measure(MeasureAnxiety, func(p dataset.ProfileRecord) float64 { return p.AnxietyScore }).
		Measure(MeasureDebt, func(p dataset.ProfileRecord) float64 { return p.OutstandingLoan }).
		Measure(MeasureDigitalTime, func(p dataset.ProfileRecord) float64 { return p.DigitalTimePerDay }).
		Measure(MeasureDebtRatio, func(p dataset.ProfileRecord) float64 { return DebtRatio(income(p), p.OutstandingLoan) }).
		Measure(MeasureSavingsRate, func(p dataset.ProfileRecord) float64 { return SavingsRate(income(p), expense(p)) }).
		Measure(MeasureRecordCount, func(dataset.ProfileRecord) float64 { return 1 })
}

func regionalAdapter(cfg *config) *DomainAdapter[dataset.RegionalIndicator] {
	return NewDomainAdapter[dataset.RegionalIndicator]().
		Dimension(DimProvince, func(r dataset.RegionalIndicator) string { return cfg.Normalizer.Normalize(r.Province) }).
		Dimension(DimUrbanBucket, func(r dataset.RegionalIndicator) string { return UrbanizationBucket(r.Urbanization) }).
		Measure(MeasurePDRB, func(r dataset.RegionalIndicator) float64 { return r.PDRB / 1000 }).
		Measure(MeasureTotalPDRB, func(r dataset.RegionalIndicator) float64 { return TotalPDRB(r) }).
		Measure(MeasureLoans, func(r dataset.RegionalIndicator) float64 { return r.OutstandingLoan }).
		Measure(MeasureUrbanization, func(r dataset.RegionalIndicator) float64 { return r.Urbanization }).
		Measure(MeasurePopulation, func(r dataset.RegionalIndicator) float64 { return r.Population }).
		Measure(MeasureTWP90, func(r dataset.RegionalIndicator) float64 { return r.TWP90 }).
		Measure(MeasureInclusionGap, InclusionGap).
		Measure(MeasureRecordCount, func(dataset.RegionalIndicator) float64 { return 1 })
}

// TotalPDRB scales per-capita PDRB (thousand Rupiah) by population
// (thousands) into the provincial total the regional export reports in
// billion Rupiah.
func TotalPDRB(r dataset.RegionalIndicator) float64 {
	return (r.PDRB / 1000 * r.Population) / 1000
}

// InclusionGap is outstanding lending relative to per-capita output:
// loans (billion Rp) / PDRB (million Rp per capita) × 100. 0 without PDRB.
func InclusionGap(r dataset.RegionalIndicator) float64 {
	pdrb := r.PDRB / 1000
	if pdrb <= 0 {
		return 0
	}
	return r.OutstandingLoan / pdrb * 100
}
