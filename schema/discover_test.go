package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// DISCOVERY TESTS
// ============================================================================

var surveyCSV = []byte(`Gender,Province of Origin,Residence Status,Last Education,Job,Marital Status,Year of Birth,Est. Monthly Income,Est. Monthly Expenditure,I understand inflation,I compare prices before buying,I keep a budget
Female,Jawa Barat,Kos,S1,Mahasiswa,Single,2003,Rp1.000.000 - Rp3.000.000,< Rp1.000.000,4,3,"2,5"
Male,DKI Jakarta,Rumah,SMA,Karyawan,Single,2000,Rp3.000.001 - Rp5.000.000,Rp1.000.000 - Rp3.000.000,3,3,2
Female,Bali,Rumah,S1,Wirausaha,Married,1998,> Rp5.000.000,Rp3.000.001 - Rp5.000.000,4,4,4
,,,,,,,,,,,
Male,Aceh,Kos,D3,Mahasiswa,Single,2004,< Rp1.000.000,< Rp1.000.000,2,1,1
`)

var profileCSV = []byte(`user_id,gender,birth_year,province,education_level,employment_status,avg_monthly_income,avg_monthly_expense,main_fintech_app,ewallet_spending,investment_type,loan_usage_purpose,outstanding_loan,digital_time_spent_per_day,financial_anxiety_score
U1,Female,2002,Jawa Barat,Bachelor,Student,2.5jt,1.5jt,GoPay,< Rp500.000,Reksa Dana,Education,1500000,4.5,3
U2,Male,1999,Bali,Diploma,Employed,7.000.000,5.000.000,OVO,Rp500.001 - Rp1.000.000,,Consumption,0,6,4.2
`)

var regionalCSV = []byte(`Provinsi,Jumlah Rekening Penerima Pinjaman Aktif (entitas),Jumlah Dana yang Diberikan (Rp miliar),Jumlah Rekening Pemberi Pinjaman (akun),Jumlah Penerima Pinjaman (akun),Outstanding Pinjaman (Rp miliar),TWP 90%,Jumlah Penduduk (Ribu),PDRB (Ribu Rp),Urbanisasi (%)
Aceh,120000,"850,5",3000,110000,"420,1","2,1",5407,35000,"32,4"
Bali,340000,"2100,7",8000,300000,"980,2","1,8",4380,52000,"66,1"
`)

func TestDiscoverSurvey(t *testing.T) {
	t.Parallel()

	config, err := DiscoverFromCSV(surveyCSV)
	require.NoError(t, err)

	assert.Equal(t, KindSurvey, config.Kind)
	assert.Equal(t, "Financial Literacy Survey", config.Name)
	assert.Equal(t, 4, config.Rows, "blank rows are not counted")
	assert.Empty(t, config.MissingFields)

	dims := config.DimensionKeys()
	assert.Subset(t, dims, []string{FieldGender, FieldProvince, FieldEducation, FieldIncomeRange, "age_group", "income_bucket"})

	meas := config.MeasureKeys()
	assert.Subset(t, meas, []string{"q1", "q2", "q3", "income_range_value", "record_count"})
	assert.NotContains(t, meas, "q4")

	for _, m := range config.Measures {
		if m.Key == "q1" {
			assert.Equal(t, "I understand inflation", m.DisplayName)
			assert.Equal(t, "score", m.Unit)
		}
	}
}

func TestDiscoverProfile(t *testing.T) {
	t.Parallel()

	config, err := DiscoverFromCSV(profileCSV)
	require.NoError(t, err)

	assert.Equal(t, KindProfile, config.Kind)
	assert.Subset(t, config.MeasureKeys(), []string{FieldOutstanding, FieldDigitalTime, FieldAnxiety})
	assert.Subset(t, config.DimensionKeys(), []string{FieldFintechApp, FieldInvestment, FieldEWallet, "income_bucket"})

	for _, d := range config.Dimensions {
		if d.Key == "income_bucket" {
			assert.Equal(t, FieldMonthlyIncome, d.DerivedFrom)
		}
	}
}

func TestDiscoverRegional(t *testing.T) {
	t.Parallel()

	config, err := DiscoverFromCSV(regionalCSV)
	require.NoError(t, err)

	assert.Equal(t, KindRegional, config.Kind)
	assert.Equal(t, []string{FieldProvince}, config.DimensionKeys())
	assert.Subset(t, config.MeasureKeys(), []string{FieldPDRB, FieldUrbanization, FieldTWP90, FieldPopulation})
}

func TestDiscoverUnknownFallsBackToHeuristics(t *testing.T) {
	t.Parallel()

	data := []byte(`Code,Region,Score,Flag
A1,West,3.5,yes
A2,West,2.5,no
A3,East,4.0,yes
`)
	config, err := DiscoverFromCSV(data)
	require.NoError(t, err)

	assert.Equal(t, KindUnknown, config.Kind)
	assert.Contains(t, config.DimensionKeys(), "region")
	assert.Contains(t, config.DimensionKeys(), "flag")
	assert.Contains(t, config.MeasureKeys(), "score")
}

func TestDiscoverForcedKind(t *testing.T) {
	t.Parallel()

	config, err := DiscoverFromCSV(regionalCSV, DiscoverOptions{Kind: KindRegional, Name: "OJK 2024"})
	require.NoError(t, err)
	assert.Equal(t, "OJK 2024", config.Name)
	assert.Equal(t, KindRegional, config.Kind)
}

func TestDiscoverSkipsIdentifiers(t *testing.T) {
	t.Parallel()

	data := []byte("id,group\n")
	for i := 0; i < 12; i++ {
		data = append(data, []byte("row"+string(rune('a'+i))+",g\n")...)
	}
	config, err := DiscoverFromCSV(data)
	require.NoError(t, err)
	require.Len(t, config.SkippedColumns, 1)
	assert.Equal(t, "id", config.SkippedColumns[0].Column)
	assert.False(t, config.SkippedColumns[0].Recoverable)

	recovered, err := DiscoverFromCSV(data, DiscoverOptions{RecoverColumns: []string{"ID"}})
	require.NoError(t, err)
	assert.Empty(t, recovered.SkippedColumns)
	assert.Contains(t, recovered.DimensionKeys(), "id")
}

func TestDiscoverErrors(t *testing.T) {
	t.Parallel()

	_, err := DiscoverFromCSV(nil)
	assert.Error(t, err)

	_, err = DiscoverFromCSV([]byte("a,b\n"))
	assert.ErrorIs(t, err, ErrNoRows)

	_, err = DiscoverFromCSV([]byte("a,b\n,\n ,\n"))
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestStringUtilities(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "province_of_origin", toSnakeCase("Province of Origin"))
	assert.Equal(t, "est_monthly_income", toSnakeCase("Est. Monthly Income"))
	assert.Equal(t, "digital_time", toSnakeCase("digitalTime"))
	assert.Equal(t, "urbanisasi", toSnakeCase("Urbanisasi (%)"))

	assert.Equal(t, "Digital Time Spent", toDisplayName("digital_time_spent"))
	assert.Equal(t, "Est. Monthly Income", toDisplayName(" Est. Monthly Income "))

	assert.True(t, isNumeric("3,5"))
	assert.True(t, isNumeric("1,234.5"))
	assert.True(t, isNumeric("-2"))
	assert.False(t, isNumeric("Rp1jt"))
}
