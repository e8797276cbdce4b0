package dataset

import (
	"time"

	"github.com/google/uuid"

	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// DATA MODEL — Typed rows of the three source datasets
// ============================================================================
// Rows are immutable after load. Categorical fields keep the raw spelling;
// the engine canonicalizes provinces at query time so a different
// normalizer can be injected without reloading.
// ============================================================================

// Unknown fills empty categorical fields.
const Unknown = "Unknown"

// SurveyResponse is one Likert questionnaire answer sheet.
type SurveyResponse struct {
	Gender          string                         `json:"gender"`
	Province        string                         `json:"province"`
	ResidenceStatus string                         `json:"residenceStatus,omitempty"`
	Education       string                         `json:"education"`
	Job             string                         `json:"job,omitempty"`
	MaritalStatus   string                         `json:"maritalStatus,omitempty"`
	BirthYear       int                            `json:"birthYear"`
	IncomeRange     string                         `json:"incomeRange,omitempty"`
	ExpenseRange    string                         `json:"expenseRange,omitempty"`
	Answers         [scoring.QuestionCount]float64 `json:"answers"`
}

// Answer returns question q (1-based); out of range → 0.
func (s SurveyResponse) Answer(q int) float64 {
	if q < 1 || q > scoring.QuestionCount {
		return 0
	}
	return s.Answers[q-1]
}

// ProfileRecord is one respondent's self-reported financial profile.
// Income and expense stay as the original free-text labels.
type ProfileRecord struct {
	UserID            string  `json:"userId"`
	Gender            string  `json:"gender"`
	BirthYear         int     `json:"birthYear"`
	Province          string  `json:"province"`
	Education         string  `json:"education"`
	Employment        string  `json:"employment"`
	MonthlyIncome     string  `json:"monthlyIncome"`
	MonthlyExpense    string  `json:"monthlyExpense"`
	MainFintechApp    string  `json:"mainFintechApp"`
	EWalletSpend      string  `json:"ewalletSpend"`
	InvestmentType    string  `json:"investmentType"`
	LoanPurpose       string  `json:"loanPurpose"`
	OutstandingLoan   float64 `json:"outstandingLoan"`
	DigitalTimePerDay float64 `json:"digitalTimePerDay"`
	AnxietyScore      float64 `json:"anxietyScore"`
}

// RegionalIndicator is one province row of the economic indicator table.
type RegionalIndicator struct {
	Province         string  `json:"province"`
	LoanAccounts     float64 `json:"loanAccounts"`
	LoanAmount       float64 `json:"loanAmount"` // billion Rupiah disbursed
	LenderAccounts   float64 `json:"lenderAccounts"`
	BorrowerAccounts float64 `json:"borrowerAccounts"`
	OutstandingLoan  float64 `json:"outstandingLoan"` // billion Rupiah
	TWP90            float64 `json:"twp90"`           // % of loans >90 days overdue
	Population       float64 `json:"population"`      // thousands
	PDRB             float64 `json:"pdrb"`            // thousand Rupiah per capita
	Urbanization     float64 `json:"urbanization"`    // percent
}

// Snapshot is one consistent load of every dataset. The caller owns it;
// the engine only reads.
type Snapshot struct {
	ID       uuid.UUID           `json:"id"`
	LoadedAt time.Time           `json:"loadedAt"`
	Survey   []SurveyResponse    `json:"survey"`
	Profiles []ProfileRecord     `json:"profiles"`
	Regional []RegionalIndicator `json:"regional"`
	Boundary []string            `json:"boundary,omitempty"`
}

// NewSnapshot wraps already-typed rows.
func NewSnapshot(survey []SurveyResponse, profiles []ProfileRecord, regional []RegionalIndicator) *Snapshot {
	return &Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Now(),
		Survey:   survey,
		Profiles: profiles,
		Regional: regional,
	}
}
