package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/finlit/schema"
	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// CSV READERS — Parse raw exports into typed rows
// ============================================================================
// Headers are resolved through schema layouts, so every spelling the
// exports have used maps onto the same field. Rows whose cells are all
// empty are dropped; malformed rows are skipped.
// ============================================================================

var ErrNoHeader = errors.New("csv has no header row")

// table is a header-resolved CSV body.
type table struct {
	mapping schema.Mapping
	rows    [][]string
}

func readTable(r io.Reader, layout schema.Layout) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read %s headers: %w", layout.Kind, err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	t := &table{mapping: layout.Resolve(headers)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if blank(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// ReadSurvey parses a questionnaire export. Every non-demographic column,
// in header order, becomes the next question; slots past the last
// question stay 0.
func ReadSurvey(r io.Reader) ([]SurveyResponse, error) {
	t, err := readTable(r, schema.SurveyLayout)
	if err != nil {
		return nil, err
	}
	m := t.mapping

	questions := m.Questions
	if len(questions) > scoring.QuestionCount {
		questions = questions[:scoring.QuestionCount]
	}

	out := make([]SurveyResponse, 0, len(t.rows))
	for _, row := range t.rows {
		s := SurveyResponse{
			Gender:          orUnknown(m.Value(row, schema.FieldGender)),
			Province:        orUnknown(m.Value(row, schema.FieldProvince)),
			ResidenceStatus: m.Value(row, schema.FieldResidence),
			Education:       orUnknown(m.Value(row, schema.FieldEducation)),
			Job:             m.Value(row, schema.FieldJob),
			MaritalStatus:   m.Value(row, schema.FieldMaritalStatus),
			BirthYear:       year(m.Value(row, schema.FieldBirthYear)),
			IncomeRange:     m.Value(row, schema.FieldIncomeRange),
			ExpenseRange:    m.Value(row, schema.FieldExpenseRange),
		}
		for q, col := range questions {
			if col < len(row) {
				s.Answers[q] = number(row[col])
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadProfiles parses the financial profile export. A missing user id
// becomes USER_<n> with n the 1-based position among kept rows.
func ReadProfiles(r io.Reader) ([]ProfileRecord, error) {
	t, err := readTable(r, schema.ProfileLayout)
	if err != nil {
		return nil, err
	}
	m := t.mapping

	out := make([]ProfileRecord, 0, len(t.rows))
	for i, row := range t.rows {
		p := ProfileRecord{
			UserID:            m.Value(row, schema.FieldUserID),
			Gender:            orUnknown(m.Value(row, schema.FieldGender)),
			BirthYear:         year(m.Value(row, schema.FieldBirthYear)),
			Province:          orUnknown(m.Value(row, schema.FieldProvince)),
			Education:         orUnknown(m.Value(row, schema.FieldEducation)),
			Employment:        orUnknown(m.Value(row, schema.FieldEmployment)),
			MonthlyIncome:     m.Value(row, schema.FieldMonthlyIncome),
			MonthlyExpense:    m.Value(row, schema.FieldMonthlyExpense),
			MainFintechApp:    m.Value(row, schema.FieldFintechApp),
			EWalletSpend:      m.Value(row, schema.FieldEWallet),
			InvestmentType:    m.Value(row, schema.FieldInvestment),
			LoanPurpose:       m.Value(row, schema.FieldLoanPurpose),
			OutstandingLoan:   number(m.Value(row, schema.FieldOutstanding)),
			DigitalTimePerDay: number(m.Value(row, schema.FieldDigitalTime)),
			AnxietyScore:      number(m.Value(row, schema.FieldAnxiety)),
		}
		if p.UserID == "" {
			p.UserID = fmt.Sprintf("USER_%d", i+1)
		}
		out = append(out, p)
	}
	return out, nil
}

// ReadRegional parses the province indicator table.
func ReadRegional(r io.Reader) ([]RegionalIndicator, error) {
	t, err := readTable(r, schema.RegionalLayout)
	if err != nil {
		return nil, err
	}
	m := t.mapping

	out := make([]RegionalIndicator, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, RegionalIndicator{
			Province:         orUnknown(m.Value(row, schema.FieldProvince)),
			LoanAccounts:     number(m.Value(row, schema.FieldLoanAccounts)),
			LoanAmount:       number(m.Value(row, schema.FieldLoanAmount)),
			LenderAccounts:   number(m.Value(row, schema.FieldLenderAccounts)),
			BorrowerAccounts: number(m.Value(row, schema.FieldBorrowerAccounts)),
			OutstandingLoan:  number(m.Value(row, schema.FieldOutstandingLoan)),
			TWP90:            number(m.Value(row, schema.FieldTWP90)),
			Population:       number(m.Value(row, schema.FieldPopulation)),
			PDRB:             number(m.Value(row, schema.FieldPDRB)),
			Urbanization:     number(m.Value(row, schema.FieldUrbanization)),
		})
	}
	return out, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
