package engine

import (
	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/province"
)

// JoinRegional attaches each province group's regional indicators. Group
// keys must be canonical province names. Groups with no regional row keep
// zero regional fields and Joined=false; group order is preserved.
func JoinRegional(groups []Group, regional []dataset.RegionalIndicator, norm *province.Normalizer) []ProvinceAggregate {
	if norm == nil {
		norm = province.New()
	}
	index, _ := dataset.IndexRegional(regional, norm)

	out := make([]ProvinceAggregate, 0, len(groups))
	for _, g := range groups {
		agg := ProvinceAggregate{
			Province:     g.Key,
			AverageScore: g.Value,
			Count:        g.Count,
		}
		if key, ok := norm.BoundaryKey(g.Key); ok {
			agg.BoundaryKey = key
		}
		if row, ok := index[norm.Normalize(g.Key)]; ok {
			agg.Joined = true
			agg.PDRB = row.PDRB / 1000
			agg.TotalPDRB = TotalPDRB(row)
			agg.Loans = row.OutstandingLoan
			agg.Urbanization = row.Urbanization
			agg.Population = row.Population
		}
		out = append(out, agg)
	}
	return out
}

// joinedRecords turns joined aggregates into rows for a SliceView so the
// regional side can be grouped and sorted like any other view.
func joinedRecords(aggs []ProvinceAggregate) []Record {
	out := make([]Record, 0, len(aggs))
	for _, a := range aggs {
		if !a.Joined {
			continue
		}
		out = append(out, Record{
			Dimensions: map[string]string{
				DimProvince:    a.Province,
				DimUrbanBucket: UrbanizationBucket(a.Urbanization),
			},
			Measures: map[string]float64{
				MeasureLiteracy:     a.AverageScore,
				MeasurePDRB:         a.PDRB,
				MeasureTotalPDRB:    a.TotalPDRB,
				MeasureLoans:        a.Loans,
				MeasureUrbanization: a.Urbanization,
				MeasurePopulation:   a.Population,
				MeasureRecordCount:  float64(a.Count),
			},
		})
	}
	return out
}
