package schema

// ============================================================================
// SCHEMA — Describes the shape of a source dataset
// ============================================================================
// Two halves:
//   Layout  — the canonical columns of the survey, profile and regional
//             datasets, with every header spelling seen in exports
//   Config  — what DiscoverFromCSV reports about an actual file: which
//             columns mapped, which became dimensions or measures, which
//             were skipped and why
// The dataset package loads rows through Layout; the CLI prints Config.
// ============================================================================

// Config describes a discovered dataset.
type Config struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`

	// Canonical fields the layout expects but the file lacks
	MissingFields []string `json:"missingFields,omitempty"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`
	Rows           int    `json:"rows"`

	// Columns skipped during auto-discovery
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key             string   `json:"key"`
	DisplayName     string   `json:"displayName"`
	SourceColumn    string   `json:"sourceColumn,omitempty"`
	SampleValues    []string `json:"sampleValues"`
	Groupable       bool     `json:"groupable"`
	Filterable      bool     `json:"filterable"`
	CardinalityHint string   `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
	DerivedFrom     string   `json:"derivedFrom,omitempty"`     // Source key for bucketed dimensions
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key                string   `json:"key"`
	DisplayName        string   `json:"displayName"`
	SourceColumn       string   `json:"sourceColumn,omitempty"`
	Unit               string   `json:"unit,omitempty"` // "rupiah", "score", "hours", "percent", ...
	IsSynthetic        bool     `json:"isSynthetic,omitempty"`
	Aggregations       []string `json:"aggregations,omitempty"`
	DefaultAggregation string   `json:"defaultAggregation,omitempty"`
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column      string `json:"column"`
	Reason      string `json:"reason"`
	Recoverable bool   `json:"recoverable"`
}

// DefaultDimension creates a DimensionMeta with sensible defaults.
func DefaultDimension(key, displayName string, samples []string) DimensionMeta {
	return DimensionMeta{
		Key:          key,
		DisplayName:  displayName,
		SampleValues: samples,
		Groupable:    true,
		Filterable:   true,
	}
}

// DefaultMeasure creates a MeasureMeta with sensible defaults.
func DefaultMeasure(key, displayName string) MeasureMeta {
	return MeasureMeta{
		Key:                key,
		DisplayName:        displayName,
		Aggregations:       []string{"sum", "avg", "min", "max", "count"},
		DefaultAggregation: "avg",
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}
