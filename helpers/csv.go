package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spektr-org/finlit/amount"
	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/engine"
	"github.com/spektr-org/finlit/schema"
)

// ============================================================================
// CSV HELPER — Parses any CSV into []engine.Record via a discovered schema
// ============================================================================
// The typed loaders in dataset cover the three known exports. This helper
// serves ad-hoc exploration: whatever DiscoverFromCSV found becomes a
// dimension or measure, so GroupAndAggregate can run over it directly.
// ============================================================================

// ParseCSV parses CSV bytes into Records using sch for classification.
// Numbers accept both decimal separators; amount labels feed their
// synthetic "_value" measure. Derived dimensions (age_group,
// income_bucket) are computed with referenceYear (0 = engine default).
func ParseCSV(data []byte, sch schema.Config, referenceYear int) ([]engine.Record, error) {
	if referenceYear <= 0 {
		referenceYear = engine.DefaultReferenceYear
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Read header
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dataset.ErrNoHeader
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	column := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := column[h]; !dup {
			column[h] = i
		}
	}

	type colMapping struct {
		key    string
		index  int
		amount bool
	}

	var dims, measures []colMapping
	sources := make(map[string]int) // field key → column, for derived dimensions
	for _, d := range sch.Dimensions {
		if idx, ok := column[d.SourceColumn]; ok && d.DerivedFrom == "" {
			dims = append(dims, colMapping{key: d.Key, index: idx})
			sources[d.Key] = idx
		}
	}
	for _, m := range sch.Measures {
		if idx, ok := column[m.SourceColumn]; ok && m.SourceColumn != "" {
			measures = append(measures, colMapping{key: m.Key, index: idx, amount: m.IsSynthetic})
			sources[m.Key] = idx
		}
	}

	// Read rows
	var records []engine.Record
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

		rec := engine.Record{
			Dimensions: make(map[string]string, len(dims)+2),
			Measures:   make(map[string]float64, len(measures)+1),
		}

		for _, m := range dims {
			rec.Dimensions[m.key] = cell(row, m.index)
		}
		for _, m := range measures {
			val := cell(row, m.index)
			if m.amount {
				rec.Measures[m.key] = amount.Value(val)
			} else if f, ok := dataset.ParseNumber(val); ok {
				rec.Measures[m.key] = f
			}
		}

		for _, d := range sch.Dimensions {
			idx, ok := sources[d.DerivedFrom]
			if d.DerivedFrom == "" || !ok {
				continue
			}
			src := cell(row, idx)
			switch d.Key {
			case engine.DimAgeGroup:
				year, _ := dataset.ParseNumber(src)
				rec.Dimensions[d.Key] = engine.AgeGroup(int(year), referenceYear)
			case engine.DimIncomeBucket:
				rec.Dimensions[d.Key] = engine.IncomeBucket(amount.Value(src))
			}
		}

		// Add synthetic count measures (e.g., record_count)
		for _, m := range sch.Measures {
			if m.IsSynthetic && m.DefaultAggregation == "count" {
				rec.Measures[m.Key] = 1
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// ParseCSVView parses CSV into a RecordView (convenience wrapper).
func ParseCSVView(data []byte, sch schema.Config, referenceYear int) (engine.RecordView, error) {
	records, err := ParseCSV(data, sch, referenceYear)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(records), nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
