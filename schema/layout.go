package schema

import (
	"strings"
	"unicode"
)

// ============================================================================
// LAYOUTS — Canonical columns + header aliases per dataset
// ============================================================================
// Headers are matched on their letters and digits only, case-insensitively:
// "Province of Origin", "province_of_origin" and "PROVINCE OF ORIGIN" are
// the same header.
// ============================================================================

// Kind identifies one of the source datasets.
type Kind string

const (
	KindUnknown  Kind = ""
	KindSurvey   Kind = "survey"
	KindProfile  Kind = "profile"
	KindRegional Kind = "regional"
)

// FieldType tells the loader how to coerce a column.
type FieldType int

const (
	FieldText   FieldType = iota // categorical string
	FieldNumber                  // plain number, decimal comma allowed
	FieldAmount                  // free-text currency label, kept as text
	FieldYear                    // calendar year
)

// Field is a canonical column and the header spellings that map to it.
type Field struct {
	Key     string    `json:"key"`
	Display string    `json:"display"`
	Type    FieldType `json:"type"`
	Unit    string    `json:"unit,omitempty"`
	Aliases []string  `json:"aliases"`
}

// Layout is the canonical column set of one dataset.
type Layout struct {
	Kind   Kind    `json:"kind"`
	Fields []Field `json:"fields"`
	// Questions: every unmapped column is a survey question, in header order.
	Questions bool `json:"questions"`
}

// Survey field keys.
const (
	FieldGender        = "gender"
	FieldProvince      = "province"
	FieldResidence     = "residence_status"
	FieldEducation     = "education_level"
	FieldJob           = "job"
	FieldMaritalStatus = "marital_status"
	FieldBirthYear     = "birth_year"
	FieldIncomeRange   = "income_range"
	FieldExpenseRange  = "expense_range"
)

// Profile field keys.
const (
	FieldUserID         = "user_id"
	FieldEmployment     = "employment_status"
	FieldMonthlyIncome  = "avg_monthly_income"
	FieldMonthlyExpense = "avg_monthly_expense"
	FieldFintechApp     = "main_fintech_app"
	FieldEWallet        = "ewallet_spending"
	FieldInvestment     = "investment_type"
	FieldLoanPurpose    = "loan_usage_purpose"
	FieldOutstanding    = "outstanding_loan"
	FieldDigitalTime    = "digital_time_spent_per_day"
	FieldAnxiety        = "financial_anxiety_score"
)

// Regional field keys.
const (
	FieldLoanAccounts     = "total_loan_accounts"
	FieldLoanAmount       = "total_loan_amount_billion"
	FieldLenderAccounts   = "total_lenders_accounts"
	FieldBorrowerAccounts = "total_borrowers_accounts"
	FieldOutstandingLoan  = "outstanding_loan_billion"
	FieldTWP90            = "twp_90"
	FieldPopulation       = "population_thousands"
	FieldPDRB             = "pdrb_ribu"
	FieldUrbanization     = "urbanization_percent"
)

var (
	SurveyLayout = Layout{
		Kind:      KindSurvey,
		Questions: true,
		Fields: []Field{
			{Key: FieldGender, Display: "Gender", Aliases: []string{"Gender", "Jenis Kelamin"}},
			{Key: FieldProvince, Display: "Province", Aliases: []string{"Province of Origin", "Province", "Provinsi", "Provinsi Asal"}},
			{Key: FieldResidence, Display: "Residence Status", Aliases: []string{"Residence Status", "Status Tempat Tinggal"}},
			{Key: FieldEducation, Display: "Education", Aliases: []string{"Last Education", "education_level", "Pendidikan Terakhir"}},
			{Key: FieldJob, Display: "Job", Aliases: []string{"Job", "Pekerjaan"}},
			{Key: FieldMaritalStatus, Display: "Marital Status", Aliases: []string{"Marital Status", "Status Pernikahan"}},
			{Key: FieldBirthYear, Display: "Year of Birth", Type: FieldYear, Aliases: []string{"Year of Birth", "birth_year", "Tahun Lahir"}},
			{Key: FieldIncomeRange, Display: "Monthly Income", Type: FieldAmount, Unit: "rupiah", Aliases: []string{"Est. Monthly Income", "Estimated Monthly Income"}},
			{Key: FieldExpenseRange, Display: "Monthly Expenditure", Type: FieldAmount, Unit: "rupiah", Aliases: []string{"Est. Monthly Expenditure", "Estimated Monthly Expenditure"}},
		},
	}

	ProfileLayout = Layout{
		Kind: KindProfile,
		Fields: []Field{
			{Key: FieldUserID, Display: "User ID", Aliases: []string{"user_id", "User ID", "id"}},
			{Key: FieldGender, Display: "Gender", Aliases: []string{"gender"}},
			{Key: FieldBirthYear, Display: "Year of Birth", Type: FieldYear, Aliases: []string{"birth_year", "Year of Birth"}},
			{Key: FieldProvince, Display: "Province", Aliases: []string{"province", "Provinsi"}},
			{Key: FieldEducation, Display: "Education", Aliases: []string{"education_level", "Education"}},
			{Key: FieldEmployment, Display: "Employment Status", Aliases: []string{"employment_status", "Employment"}},
			{Key: FieldMonthlyIncome, Display: "Monthly Income", Type: FieldAmount, Unit: "rupiah", Aliases: []string{"avg_monthly_income", "Monthly Income"}},
			{Key: FieldMonthlyExpense, Display: "Monthly Expense", Type: FieldAmount, Unit: "rupiah", Aliases: []string{"avg_monthly_expense", "Monthly Expense"}},
			{Key: FieldFintechApp, Display: "Main Fintech App", Aliases: []string{"main_fintech_app"}},
			{Key: FieldEWallet, Display: "E-Wallet Spending", Type: FieldAmount, Unit: "rupiah", Aliases: []string{"ewallet_spending", "e-wallet spending"}},
			{Key: FieldInvestment, Display: "Investment Type", Aliases: []string{"investment_type"}},
			{Key: FieldLoanPurpose, Display: "Loan Purpose", Aliases: []string{"loan_usage_purpose", "loan_purpose"}},
			{Key: FieldOutstanding, Display: "Outstanding Loan", Type: FieldNumber, Unit: "rupiah", Aliases: []string{"outstanding_loan"}},
			{Key: FieldDigitalTime, Display: "Digital Time per Day", Type: FieldNumber, Unit: "hours", Aliases: []string{"digital_time_spent_per_day", "digital_time"}},
			{Key: FieldAnxiety, Display: "Financial Anxiety", Type: FieldNumber, Unit: "score", Aliases: []string{"financial_anxiety_score", "anxiety_score"}},
		},
	}

	RegionalLayout = Layout{
		Kind: KindRegional,
		Fields: []Field{
			{Key: FieldProvince, Display: "Province", Aliases: []string{"Provinsi", "Province", "province"}},
			{Key: FieldLoanAccounts, Display: "Active Loan Accounts", Type: FieldNumber, Unit: "accounts", Aliases: []string{"Jumlah Rekening Penerima Pinjaman Aktif (entitas)", "total_loan_accounts"}},
			{Key: FieldLoanAmount, Display: "Loans Disbursed", Type: FieldNumber, Unit: "billion rupiah", Aliases: []string{"Jumlah Dana yang Diberikan (Rp miliar)", "total_loan_amount_billion"}},
			{Key: FieldLenderAccounts, Display: "Lender Accounts", Type: FieldNumber, Unit: "accounts", Aliases: []string{"Jumlah Rekening Pemberi Pinjaman (akun)", "total_lenders_accounts"}},
			{Key: FieldBorrowerAccounts, Display: "Borrower Accounts", Type: FieldNumber, Unit: "accounts", Aliases: []string{"Jumlah Penerima Pinjaman (akun)", "total_borrowers_accounts"}},
			{Key: FieldOutstandingLoan, Display: "Outstanding Loans", Type: FieldNumber, Unit: "billion rupiah", Aliases: []string{"Outstanding Pinjaman (Rp miliar)", "outstanding_loan_billion"}},
			{Key: FieldTWP90, Display: "TWP 90%", Type: FieldNumber, Unit: "percent", Aliases: []string{"TWP 90%", "twp_90"}},
			{Key: FieldPopulation, Display: "Population", Type: FieldNumber, Unit: "thousands", Aliases: []string{"Jumlah Penduduk (Ribu)", "population_thousands"}},
			{Key: FieldPDRB, Display: "GRDP per Capita", Type: FieldNumber, Unit: "thousand rupiah", Aliases: []string{"PDRB (Ribu Rp)", "pdrb_ribu"}},
			{Key: FieldUrbanization, Display: "Urbanization", Type: FieldNumber, Unit: "percent", Aliases: []string{"Urbanisasi (%)", "urbanization_percent"}},
		},
	}
)

// Layouts returns the known dataset layouts in detection priority order.
func Layouts() []Layout {
	return []Layout{SurveyLayout, ProfileLayout, RegionalLayout}
}

// LayoutFor returns the layout of kind k.
func LayoutFor(k Kind) (Layout, bool) {
	for _, l := range Layouts() {
		if l.Kind == k {
			return l, true
		}
	}
	return Layout{}, false
}

// Field returns the field with the given key.
func (l Layout) Field(key string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ============================================================================
// MAPPING
// ============================================================================

// Mapping binds a header row to a layout.
type Mapping struct {
	Kind      Kind           `json:"kind"`
	Headers   []string       `json:"headers"`
	Fields    map[string]int `json:"fields"`    // canonical key → column index
	Questions []int          `json:"questions"` // column indices of Q1..Qn, in order
	Unmapped  []int          `json:"unmapped"`  // columns neither a field nor a question
}

// Resolve maps headers onto the layout. The first column matching a field wins.
func (l Layout) Resolve(headers []string) Mapping {
	aliases := make(map[string]string)
	for _, f := range l.Fields {
		aliases[HeaderKey(f.Key)] = f.Key
		for _, a := range f.Aliases {
			aliases[HeaderKey(a)] = f.Key
		}
	}

	m := Mapping{
		Kind:    l.Kind,
		Headers: headers,
		Fields:  make(map[string]int),
	}
	for i, h := range headers {
		key := HeaderKey(h)
		if key == "" {
			continue
		}
		if field, ok := aliases[key]; ok {
			if _, taken := m.Fields[field]; !taken {
				m.Fields[field] = i
				continue
			}
		}
		if l.Questions {
			m.Questions = append(m.Questions, i)
		} else {
			m.Unmapped = append(m.Unmapped, i)
		}
	}
	return m
}

// Has reports whether the header row carries the field.
func (m Mapping) Has(key string) bool {
	_, ok := m.Fields[key]
	return ok
}

// Value returns the trimmed cell of field key, or "" when absent.
func (m Mapping) Value(row []string, key string) string {
	i, ok := m.Fields[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Missing lists the layout fields absent from the header row.
func (m Mapping) Missing(l Layout) []string {
	var out []string
	for _, f := range l.Fields {
		if !m.Has(f.Key) {
			out = append(out, f.Key)
		}
	}
	return out
}

// Detect picks the layout whose fields best match the headers. A survey
// needs at least two demographic matches plus question columns; other
// layouts need two field matches.
func Detect(headers []string) Kind {
	best, bestScore := KindUnknown, 1
	for _, l := range Layouts() {
		m := l.Resolve(headers)
		score := len(m.Fields)
		if l.Questions && len(m.Questions) == 0 {
			continue
		}
		if score > bestScore {
			best, bestScore = l.Kind, score
		}
	}
	return best
}

// HeaderKey reduces a header to lowercase letters and digits.
func HeaderKey(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
