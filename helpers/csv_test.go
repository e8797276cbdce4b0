package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/engine"
	"github.com/spektr-org/finlit/schema"
)

var surveyCSV = []byte("\ufeff" + `Gender,Province of Origin,Last Education,Year of Birth,Est. Monthly Income,I understand inflation,I keep a budget
Female,Jawa Barat,S1,2003,Rp1.000.000 - Rp3.000.000,4,"2,5"
Male,DKI Jakarta,SMA,2000,Rp3.000.001 - Rp5.000.000,3,3
,,,,,,
Female,Bali,S1,1998,> Rp5.000.000,4,4
Male,Aceh,D3,2004,< Rp1.000.000,2,1
`)

func TestParseCSV(t *testing.T) {
	t.Parallel()

	sch, err := schema.DiscoverFromCSV(surveyCSV)
	require.NoError(t, err)

	records, err := ParseCSV(surveyCSV, *sch, 0)
	require.NoError(t, err)
	require.Len(t, records, 4, "blank rows skipped")

	first := records[0]
	assert.Equal(t, "Female", first.Dimensions[schema.FieldGender])
	assert.Equal(t, "Jawa Barat", first.Dimensions[schema.FieldProvince])
	assert.Equal(t, "21-23", first.Dimensions[engine.DimAgeGroup])
	assert.Equal(t, "<2M", first.Dimensions[engine.DimIncomeBucket])
	assert.InDelta(t, 2_000_000, first.Measures["income_range_value"], 1)
	assert.InDelta(t, 4, first.Measures["q1"], 1e-9)
	assert.InDelta(t, 2.5, first.Measures["q2"], 1e-9)
	assert.InDelta(t, 1, first.Measures[engine.MeasureRecordCount], 1e-9)

	assert.Equal(t, ">25", records[2].Dimensions[engine.DimAgeGroup])
	assert.Equal(t, "24-25", records[1].Dimensions[engine.DimAgeGroup])
}

func TestParseCSV_ReferenceYear(t *testing.T) {
	t.Parallel()

	sch, err := schema.DiscoverFromCSV(surveyCSV)
	require.NoError(t, err)

	records, err := ParseCSV(surveyCSV, *sch, 2022)
	require.NoError(t, err)
	assert.Equal(t, "18-20", records[0].Dimensions[engine.DimAgeGroup])
}

func TestParseCSV_Empty(t *testing.T) {
	t.Parallel()

	_, err := ParseCSV(nil, schema.Config{}, 0)
	assert.ErrorIs(t, err, dataset.ErrNoHeader)
}

func TestParseCSVView_GroupAndAggregate(t *testing.T) {
	t.Parallel()

	sch, err := schema.DiscoverFromCSV(surveyCSV)
	require.NoError(t, err)

	view, err := ParseCSVView(surveyCSV, *sch, 0)
	require.NoError(t, err)

	groups := engine.GroupAndAggregate(view, []string{schema.FieldGender}, "q1", "avg", "value_desc", 0)
	require.Len(t, groups, 2)
	assert.Equal(t, "Female", groups[0].Key)
	assert.InDelta(t, 4, groups[0].Value, 1e-9)
	assert.InDelta(t, 2.5, groups[1].Value, 1e-9)
}

func TestExplore(t *testing.T) {
	t.Parallel()

	res, sch, err := Explore(surveyCSV, ExploreRequest{GroupBy: []string{engine.DimAgeGroup}})
	require.NoError(t, err)
	require.NotNil(t, sch)

	assert.Equal(t, "explore", res.Metric)
	assert.Equal(t, 4, res.Records)
	assert.Equal(t, "Count Record Count by Age Group", res.Title)

	groups, ok := res.Data.([]engine.Group)
	require.True(t, ok)
	assert.Equal(t, "21-23", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
	assert.NotNil(t, res.ChartConfig)
	assert.NotNil(t, res.TableData)
}

func TestExplore_Filters(t *testing.T) {
	t.Parallel()

	res, _, err := Explore(surveyCSV, ExploreRequest{
		GroupBy: []string{schema.FieldGender},
		Measure: "q1",
		Filters: engine.Filters{Province: []string{"Aceh"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Records)

	groups := res.Data.([]engine.Group)
	require.Len(t, groups, 1)
	assert.Equal(t, "Male", groups[0].Key)
	assert.InDelta(t, 2, groups[0].Value, 1e-9)
}

func TestExplore_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := Explore(surveyCSV, ExploreRequest{GroupBy: []string{"colour"}})
	assert.ErrorIs(t, err, ErrUnknownDimension)

	_, _, err = Explore(surveyCSV, ExploreRequest{Measure: "salary"})
	assert.ErrorIs(t, err, ErrUnknownMeasure)

	_, _, err = Explore(surveyCSV, ExploreRequest{GroupBy: []string{"gender", "province", "age_group"}})
	assert.Error(t, err)

	_, _, err = Explore(nil, ExploreRequest{})
	assert.Error(t, err)
}
