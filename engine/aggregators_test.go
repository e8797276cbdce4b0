package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/finlit/dataset"
)

func sampleView() RecordView {
	rec := func(prov, edu string, score float64) Record {
		return Record{
			Dimensions: map[string]string{DimProvince: prov, DimEducation: edu},
			Measures:   map[string]float64{MeasureLiteracy: score},
		}
	}
	return NewSliceView([]Record{
		rec("Aceh", "SMA", 2),
		rec("Bali", "SMA", 4),
		rec("Aceh", "SD", 3),
		rec("Bali", "Bachelor", 0),
		rec("Papua", "SMA", 1),
	})
}

func keys(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func TestGroupAndAggregate(t *testing.T) {
	t.Parallel()

	view := sampleView()

	tests := []struct {
		name   string
		agg    string
		sortBy string
		limit  int
		keys   []string
		first  float64
	}{
		{"avg desc", "avg", "value_desc", 0, []string{"Aceh", "Bali", "Papua"}, 2.5},
		{"sum asc", "sum", "value_asc", 0, []string{"Papua", "Bali", "Aceh"}, 1},
		{"count", "count", "count_desc", 0, []string{"Aceh", "Bali", "Papua"}, 2},
		{"max", "max", "value_desc", 1, []string{"Bali"}, 4},
		{"min", "min", "value_asc", 0, []string{"Bali", "Papua", "Aceh"}, 0},
		{"label desc", "avg", "label_desc", 0, []string{"Papua", "Bali", "Aceh"}, 1},
		{"explicit order", "avg", "order:Papua|Aceh", 0, []string{"Papua", "Aceh", "Bali"}, 1},
		{"grouping order", "avg", "", 0, []string{"Aceh", "Bali", "Papua"}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupAndAggregate(view, []string{DimProvince}, MeasureLiteracy, tt.agg, tt.sortBy, tt.limit)
			assert.Equal(t, tt.keys, keys(groups))
			require.NotEmpty(t, groups)
			assert.InDelta(t, tt.first, groups[0].Value, 1e-9)
		})
	}
}

func TestGroupAndAggregate_Multi(t *testing.T) {
	t.Parallel()

	groups := GroupAndAggregate(sampleView(), []string{DimEducation, DimProvince}, "", "count", "count_desc", 0)
	require.Len(t, groups, 3)
	assert.Equal(t, "SMA", groups[0].Key)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, []string{"Aceh", "Bali", "Papua"}, keys(groups[0].SubGroups))

	total := GroupAndAggregate(sampleView(), nil, MeasureLiteracy, "sum", "", 0)
	require.Len(t, total, 1)
	assert.Equal(t, "all", total[0].Key)
	assert.InDelta(t, 10, total[0].Value, 1e-9)

	assert.Nil(t, GroupAndAggregate(NewSliceView(nil), []string{DimProvince}, MeasureLiteracy, "avg", "", 0))
}

func TestFilterMeasure(t *testing.T) {
	t.Parallel()

	view := FilterMeasure(sampleView(), MeasureLiteracy, Positive)
	assert.Equal(t, 4, view.Len())
	assert.InDelta(t, 2.5, AvgMeasure(view, MeasureLiteracy), 1e-9)
	assert.Equal(t, []float64{2, 4, 3, 1}, Values(view, MeasureLiteracy))
}

func TestApplyFilters(t *testing.T) {
	t.Parallel()

	view := sampleView()

	got := ApplyFilters(view, Filters{Province: []string{"ACEH", "all"}}, nil)
	assert.Equal(t, 2, got.Len())

	got = ApplyFilters(view, Filters{Province: []string{"Aceh", "Bali"}, Education: []string{"Senior High School"}}, nil)
	assert.Equal(t, 2, got.Len(), "education long label folds to SMA")

	got = ApplyFilters(view, Filters{AgeGroup: []string{"18-20"}}, nil)
	assert.Equal(t, view.Len(), got.Len(), "dimension absent from the view is ignored")

	assert.Same(t, view, ApplyFilters(view, Filters{Gender: []string{" ", "All"}}, nil))
}

func TestFilters_HasFilter(t *testing.T) {
	t.Parallel()

	f := Filters{Province: []string{"all"}, Gender: []string{"Female"}}
	assert.False(t, f.HasFilter(DimProvince))
	assert.True(t, f.HasFilter(DimGender))
	assert.False(t, f.IsEmpty())
	assert.True(t, Filters{}.IsEmpty())
}

func TestTopBottom(t *testing.T) {
	t.Parallel()

	groups := []Group{{Key: "a", Value: 1}, {Key: "b", Value: 5}, {Key: "c", Value: 3}, {Key: "d", Value: 2}}
	top, bottom := TopBottom(groups, 2)
	assert.Equal(t, []string{"b", "c"}, keys(top))
	assert.Equal(t, []string{"a", "d"}, keys(bottom))
	assert.Equal(t, "a", groups[0].Key, "input is not reordered")

	top, bottom = TopBottom(groups, 10)
	assert.Len(t, top, 4)
	assert.Len(t, bottom, 4)

	top, bottom = TopBottom(nil, 3)
	assert.Nil(t, top)
	assert.Nil(t, bottom)
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := []dataset.ProfileRecord{{UserID: "U1", AnxietyScore: 2}, {UserID: "U2"}, {UserID: "U3", AnxietyScore: 4}}
	adapter := NewDomainAdapter[dataset.ProfileRecord]().
		Measure(MeasureAnxiety, func(p dataset.ProfileRecord) float64 { return p.AnxietyScore })

	view := FilterMeasure(adapter.Bind(rows), MeasureAnxiety, Positive)
	got := Rows[dataset.ProfileRecord](view)
	require.Len(t, got, 2)
	assert.Equal(t, "U3", got[1].UserID)

	assert.Nil(t, Rows[dataset.SurveyResponse](view), "wrong row type")
	assert.Nil(t, Rows[dataset.ProfileRecord](sampleView()))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Rp1.234.567", FormatRupiah(1234567))
	assert.Equal(t, "-Rp500", FormatRupiah(-500))
	assert.Equal(t, "12.000", FormatInt(12000))
	assert.InDelta(t, 3.14, RoundTo2(3.14159), 1e-9)

	assert.Equal(t, "Age Group", LabelForDimension("age_group"))
	assert.Equal(t, "Average", LabelForAggregation("avg"))
	assert.Equal(t, "Value", LabelForAggregation("ratio"))

	assert.Equal(t, "↑ "+FormatPercent(3.1), TrendText(3.14))
	assert.Equal(t, "↓ "+FormatPercent(0.8), TrendText(-0.79))
	assert.Equal(t, "→ No change", TrendText(0.01))
}

func TestUniqueValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"SMA", "SD", "Bachelor"}, UniqueValues(sampleView(), DimEducation))
}
