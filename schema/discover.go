package schema

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ============================================================================
// AUTO-DISCOVERY — Inspect a CSV export and describe it
// ============================================================================
// Pipeline:
//   1. Read headers → detect dataset kind (survey / profile / regional)
//   2. Resolve headers onto the layout → mapped fields, question columns
//   3. Mapped fields take their role from the layout field type
//   4. Question columns become score measures q1..qN
//   5. Anything else is classified heuristically (type + cardinality)
//   6. Add derived dimensions (age_group, income_bucket) and record_count
// ============================================================================

var (
	ErrNoColumns = errors.New("csv has no columns")
	ErrNoRows    = errors.New("csv has no data rows")
)

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	SampleSize     int      // Max rows to inspect (0 = all). Default: 1000
	RecoverColumns []string // Force-include columns that were auto-skipped
	Name           string   // Dataset name override (otherwise inferred)
	Kind           Kind     // Skip detection and use this layout
}

// DefaultDiscoverOptions returns sensible defaults.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		SampleSize: 1000,
	}
}

// DiscoverFromCSV generates a Config by inspecting CSV data.
func DiscoverFromCSV(data []byte, opts ...DiscoverOptions) (*Config, error) {
	opt := DefaultDiscoverOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv headers: %w", err)
	}
	headers = trimHeaders(headers)
	if len(headers) == 0 || (len(headers) == 1 && headers[0] == "") {
		return nil, ErrNoColumns
	}

	limit := opt.SampleSize
	if limit <= 0 {
		limit = 100000 // safety cap
	}
	var rows [][]string
	for len(rows) < limit {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if blankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	kind := opt.Kind
	if kind == KindUnknown {
		kind = Detect(headers)
	}

	config := &Config{
		Name:           opt.Name,
		Kind:           kind,
		Version:        "1.0",
		DiscoveredFrom: "CSV",
		DiscoveredAt:   time.Now().Format(time.RFC3339),
		Rows:           len(rows),
	}
	if config.Name == "" {
		config.Name = defaultName(kind)
	}

	recoverSet := make(map[string]bool)
	for _, col := range opt.RecoverColumns {
		recoverSet[strings.ToLower(col)] = true
	}

	layout, known := LayoutFor(kind)
	if !known {
		// Nothing to map onto: classify every column heuristically.
		for i, h := range headers {
			config.addHeuristic(analyzeColumn(h, i, rows), recoverSet)
		}
		config.finish()
		return config, nil
	}

	mapping := layout.Resolve(headers)
	config.MissingFields = mapping.Missing(layout)

	for _, f := range layout.Fields {
		idx, ok := mapping.Fields[f.Key]
		if !ok {
			continue
		}
		col := analyzeColumn(headers[idx], idx, rows)
		config.addField(f, col)
	}

	for n, idx := range mapping.Questions {
		col := analyzeColumn(headers[idx], idx, rows)
		config.Measures = append(config.Measures, MeasureMeta{
			Key:                "q" + strconv.Itoa(n+1),
			DisplayName:        col.header,
			SourceColumn:       col.header,
			Unit:               "score",
			Aggregations:       []string{"avg", "min", "max", "count"},
			DefaultAggregation: "avg",
		})
	}

	for _, idx := range mapping.Unmapped {
		config.addHeuristic(analyzeColumn(headers[idx], idx, rows), recoverSet)
	}

	config.addDerived(mapping)
	config.finish()
	return config, nil
}

// addField classifies a mapped column by its layout type.
func (c *Config) addField(f Field, col columnAnalysis) {
	switch f.Type {
	case FieldNumber:
		c.Measures = append(c.Measures, MeasureMeta{
			Key:                f.Key,
			DisplayName:        f.Display,
			SourceColumn:       col.header,
			Unit:               f.Unit,
			Aggregations:       []string{"sum", "avg", "min", "max", "count"},
			DefaultAggregation: "avg",
		})
	case FieldAmount:
		// The label is categorical; its parsed midpoint is a measure.
		d := col.toDimension(f.Key, f.Display)
		c.Dimensions = append(c.Dimensions, d)
		c.Measures = append(c.Measures, MeasureMeta{
			Key:                f.Key + "_value",
			DisplayName:        f.Display + " (estimated)",
			SourceColumn:       col.header,
			Unit:               f.Unit,
			IsSynthetic:        true,
			Aggregations:       []string{"sum", "avg", "min", "max"},
			DefaultAggregation: "avg",
		})
	default:
		c.Dimensions = append(c.Dimensions, col.toDimension(f.Key, f.Display))
	}
}

// addHeuristic places an unmapped column by type and cardinality.
func (c *Config) addHeuristic(col columnAnalysis, recoverSet map[string]bool) {
	switch col.role {
	case roleDimension:
		c.Dimensions = append(c.Dimensions, col.toDimension(col.key, toDisplayName(col.header)))
	case roleMeasure:
		c.Measures = append(c.Measures, col.toMeasure())
	case roleSkipped:
		if recoverSet[strings.ToLower(col.header)] || recoverSet[col.key] {
			c.Dimensions = append(c.Dimensions, col.toDimension(col.key, toDisplayName(col.header)))
			return
		}
		c.SkippedColumns = append(c.SkippedColumns, SkippedColumn{
			Column:      col.header,
			Reason:      col.skipReason,
			Recoverable: col.recoverable,
		})
	}
}

func (c *Config) addDerived(m Mapping) {
	if m.Has(FieldBirthYear) {
		c.Dimensions = append(c.Dimensions, DimensionMeta{
			Key:         "age_group",
			DisplayName: "Age Group",
			Groupable:   true,
			Filterable:  true,
			DerivedFrom: FieldBirthYear,
		})
	}
	for _, src := range []string{FieldIncomeRange, FieldMonthlyIncome} {
		if m.Has(src) {
			c.Dimensions = append(c.Dimensions, DimensionMeta{
				Key:         "income_bucket",
				DisplayName: "Income Bracket",
				Groupable:   true,
				Filterable:  true,
				DerivedFrom: src,
			})
			break
		}
	}
}

func (c *Config) finish() {
	c.Measures = append(c.Measures, MeasureMeta{
		Key:                "record_count",
		DisplayName:        "Record Count",
		IsSynthetic:        true,
		Aggregations:       []string{"count"},
		DefaultAggregation: "count",
	})
}

func defaultName(k Kind) string {
	switch k {
	case KindSurvey:
		return "Financial Literacy Survey"
	case KindProfile:
		return "Respondent Profiles"
	case KindRegional:
		return "Regional Indicators"
	}
	return "Auto-discovered Dataset"
}

// ============================================================================
// COLUMN ANALYSIS
// ============================================================================

type columnRole int

const (
	roleDimension columnRole = iota
	roleMeasure
	roleSkipped
)

type columnType int

const (
	typeString columnType = iota
	typeNumeric
	typeBool
)

type columnAnalysis struct {
	header      string
	key         string
	index       int
	colType     columnType
	role        columnRole
	skipReason  string
	recoverable bool

	uniqueCount     int
	totalCount      int
	nullCount       int
	sampleVals      []string
	hasDecimals     bool
	cardinalityHint string
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(header string, index int, rows [][]string) columnAnalysis {
	col := columnAnalysis{
		header:     header,
		key:        toSnakeCase(header),
		index:      index,
		totalCount: len(rows),
	}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	for _, row := range rows {
		if index >= len(row) {
			col.nullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if isNull(val) {
			col.nullCount++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
	}
	col.uniqueCount = len(uniqueSet)

	if len(values) == 0 {
		col.role = roleSkipped
		col.skipReason = "All values are empty/null"
		return col
	}

	col.sampleVals = collectSamples(uniqueSet, 10)
	col.colType = detectType(values)

	if col.colType == typeNumeric {
		for _, v := range values {
			if strings.ContainsAny(v, ".,") {
				col.hasDecimals = true
				break
			}
		}
	}

	col.classifyRole()

	switch {
	case col.uniqueCount <= 10:
		col.cardinalityHint = "low"
	case col.uniqueCount <= 100:
		col.cardinalityHint = "medium"
	default:
		col.cardinalityHint = "high"
	}
	return col
}

// classifyRole determines dimension vs measure vs skip.
func (col *columnAnalysis) classifyRole() {
	total := col.totalCount
	switch col.colType {
	case typeNumeric:
		if col.uniqueCount == total && total > 10 && !col.hasDecimals {
			col.role = roleSkipped
			col.skipReason = "Unique per row — likely an ID column"
			return
		}
		if col.hasDecimals {
			col.role = roleMeasure
			return
		}
		// Few distinct codes relative to rows → coded dimension
		ratio := float64(col.uniqueCount) / float64(total)
		if col.uniqueCount < 20 && ratio < 0.3 {
			col.role = roleDimension
			return
		}
		col.role = roleMeasure

	case typeBool:
		col.role = roleDimension

	case typeString:
		if col.uniqueCount == total && total > 10 {
			col.role = roleSkipped
			col.skipReason = "Unique per row — likely an identifier"
			return
		}
		if col.uniqueCount > total/2 && col.uniqueCount > 50 {
			col.role = roleSkipped
			col.skipReason = fmt.Sprintf("High cardinality (%d unique values) — not useful for grouping", col.uniqueCount)
			col.recoverable = true
			return
		}
		col.role = roleDimension
	}
}

// detectType requires 80%+ of non-null values to match for numeric/bool.
func detectType(values []string) columnType {
	if len(values) == 0 {
		return typeString
	}

	numCount, boolCount := 0, 0
	for _, v := range values {
		if isNumeric(v) {
			numCount++
		}
		if isBool(v) {
			boolCount++
		}
	}

	threshold := int(float64(len(values)) * 0.8)
	if boolCount >= threshold && boolCount > 0 {
		return typeBool
	}
	if numCount >= threshold && numCount > 0 {
		return typeNumeric
	}
	return typeString
}

// isNumeric accepts "3", "3.5", "3,5" and "1,234.5".
func isNumeric(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	if _, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return err == nil
}

func isBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "false", "yes", "no", "ya", "tidak":
		return true
	}
	return false
}

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "n/a", "na", "-":
		return true
	}
	return false
}

// ============================================================================
// CONVERSION HELPERS
// ============================================================================

func (col *columnAnalysis) toDimension(key, display string) DimensionMeta {
	d := DefaultDimension(key, display, col.sampleVals)
	d.SourceColumn = col.header
	d.CardinalityHint = col.cardinalityHint
	return d
}

func (col *columnAnalysis) toMeasure() MeasureMeta {
	m := DefaultMeasure(col.key, toDisplayName(col.header))
	m.SourceColumn = col.header
	return m
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	var result strings.Builder
	prev := rune(0)
	for _, r := range s {
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			result.WriteRune('_')
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(unicode.ToLower(r))
		default:
			result.WriteRune('_')
		}
		prev = r
	}

	out := result.String()
	for strings.Contains(out, "__") {
		out = strings.ReplaceAll(out, "__", "_")
	}
	return strings.Trim(out, "_")
}

// toDisplayName cleans a header for human display.
// "digital_time_spent" → "Digital Time Spent"; headers with spaces are kept.
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return cases.Title(language.Indonesian).String(strings.Join(strings.Fields(s), " "))
}

// collectSamples picks up to maxSamples values in sorted order.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}
	sort.Strings(samples)
	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}

func trimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
