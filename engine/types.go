package engine

import (
	"strings"

	"github.com/spektr-org/finlit/stats"
)

// ============================================================================
// FINLIT ENGINE TYPES — Metrics over survey, profile and regional data
// ============================================================================
// A Request names one metric from the catalogue plus the respondent
// filters. The executor reads a dataset.Snapshot through RecordViews and
// returns a render-ready Result: raw Data for programmatic use, plus a
// ChartConfig and/or TableData for presentation.
// ============================================================================

// ============================================================================
// RECORD — Generic data row
// ============================================================================

// Record is a single data row with string dimensions and numeric measures.
// Used for derived rows (joined provinces) that have no typed struct.
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// REQUEST — What the caller wants computed
// ============================================================================

// Request selects a metric and the respondents it covers.
type Request struct {
	Metric  string  `json:"metric"`
	Filters Filters `json:"filters"`
	SortBy  string  `json:"sortBy,omitempty"` // metric-specific override
	Limit   int     `json:"limit,omitempty"`  // 0 = metric default
	Title   string  `json:"title,omitempty"`  // overrides the catalogue title
}

// Filters restrict respondents. OR within a field, AND across fields.
// Empty = all. "all" is treated as no restriction, as the filter bar sends it.
type Filters struct {
	Province     []string `json:"province,omitempty"`
	Education    []string `json:"education,omitempty"`
	AgeGroup     []string `json:"ageGroup,omitempty"`
	Gender       []string `json:"gender,omitempty"`
	IncomeBucket []string `json:"incomeBucket,omitempty"`
}

// dimensions maps the filter fields onto view dimension keys.
func (f Filters) dimensions() map[string][]string {
	out := make(map[string][]string)
	add := func(key string, vals []string) {
		var keep []string
		for _, v := range vals {
			v = strings.TrimSpace(v)
			if v != "" && !strings.EqualFold(v, "all") {
				keep = append(keep, v)
			}
		}
		if len(keep) > 0 {
			out[key] = keep
		}
	}
	add(DimProvince, f.Province)
	add(DimEducation, f.Education)
	add(DimAgeGroup, f.AgeGroup)
	add(DimGender, f.Gender)
	add(DimIncomeBucket, f.IncomeBucket)
	return out
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	_, ok := f.dimensions()[dimension]
	return ok
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	return len(f.dimensions()) == 0
}

// ============================================================================
// RESULT — Render-ready output
// ============================================================================

// Result is the engine's render-ready output.
type Result struct {
	Success bool   `json:"success"`
	Metric  string `json:"metric"`
	Type    string `json:"type"` // "chart", "table", "cards", "text"
	Title   string `json:"title"`
	Summary string `json:"summary"`

	ChartConfig *ChartConfig `json:"chartConfig,omitempty"`
	TableData   *TableData   `json:"tableData,omitempty"`
	Cards       []Card       `json:"cards,omitempty"`
	Data        any          `json:"data,omitempty"`

	Records int      `json:"records"` // rows the metric read after filtering
	Errors  []string `json:"errors,omitempty"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
// Builders convert these into ChartConfig or TableData.
type Group struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Value     float64    `json:"value"`
	Count     int        `json:"count"`
	SubGroups []Group    `json:"subGroups,omitempty"`
	View      RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// Bucket is one slot of a fixed-order distribution.
type Bucket struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ============================================================================
// METRIC PAYLOADS
// ============================================================================

// ProvinceAggregate is a province's survey aggregate joined to its regional row.
// Joined is false when no regional row matched; regional fields are then zero.
type ProvinceAggregate struct {
	Province     string  `json:"province"`
	AverageScore float64 `json:"averageScore"`
	Count        int     `json:"count"`
	Joined       bool    `json:"joined"`
	PDRB         float64 `json:"pdrb"`         // million Rupiah per capita
	TotalPDRB    float64 `json:"totalPdrb"`    // billion Rupiah
	Loans        float64 `json:"loans"`        // outstanding, billion Rupiah
	Urbanization float64 `json:"urbanization"` // percent
	Population   float64 `json:"population"`   // thousands
	BoundaryKey  string  `json:"boundaryKey,omitempty"`
}

// Correlation is a scatter metric: the paired samples and their statistics.
type Correlation struct {
	XLabel string `json:"xLabel"`
	YLabel string `json:"yLabel"`
	stats.CorrelationResult
	Points []stats.Point `json:"points"`
	Labels []string      `json:"labels,omitempty"` // per point, when points are named
}

// PDRBLoans relates provincial output to outstanding P2P lending.
type PDRBLoans struct {
	Correlation
	AveragePDRB  float64 `json:"averagePdrb"`  // billion Rupiah
	AverageLoans float64 `json:"averageLoans"` // billion Rupiah
	Provinces    int     `json:"provinces"`
}

// UrbanizationGroup is one urbanization level's mean literacy.
type UrbanizationGroup struct {
	Category        string  `json:"category"`
	Literacy        float64 `json:"literacy"`
	AvgUrbanization float64 `json:"avgUrbanization"`
	Count           int     `json:"count"`
}

// UrbanizationImpact compares literacy across urbanization levels.
type UrbanizationImpact struct {
	Groups          []UrbanizationGroup `json:"groups"`
	AverageLiteracy float64             `json:"averageLiteracy"`
	Highest         string              `json:"highest"`
	Lowest          string              `json:"lowest"`
	Respondents     int                 `json:"respondents"`
}

// MapLayer is one choropleth layer keyed by boundary-file province name.
type MapLayer struct {
	Key    string             `json:"key"`
	Label  string             `json:"label"`
	Unit   string             `json:"unit"`
	Values map[string]float64 `json:"values"`
	Min    float64            `json:"min"`
	Max    float64            `json:"max"`
}

// ProvinceMap bundles the map layers and the provinces that could not be placed.
type ProvinceMap struct {
	Layers    []MapLayer `json:"layers"`
	Unmatched []string   `json:"unmatched,omitempty"`
}

// IncomeExpense summarizes paired income/expense estimates (million Rupiah).
type IncomeExpense struct {
	AverageIncome  float64             `json:"averageIncome"`
	AverageExpense float64             `json:"averageExpense"`
	ByEducation    []EducationAverages `json:"byEducation"`
	Correlation    Correlation         `json:"correlation"`
}

// EducationAverages is mean income and expense for one education level.
type EducationAverages struct {
	Education string  `json:"education"`
	Income    float64 `json:"income"`
	Expense   float64 `json:"expense"`
	Count     int     `json:"count"`
}

// LoanPurpose is one loan usage purpose with its share and mean debt.
type LoanPurpose struct {
	Purpose    string  `json:"purpose"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	AvgDebt    float64 `json:"avgDebt"` // million Rupiah
}

// EducationEmployment cross-tabulates education against employment status.
type EducationEmployment struct {
	Groups   []Group `json:"groups"` // education, with employment SubGroups
	Students int     `json:"students"`
	SMA      int     `json:"sma"`
	Working  int     `json:"working"`
	Profiles int     `json:"profiles"`
}

// TopBottomGroups holds the best and worst scoring groups.
type TopBottomGroups struct {
	Top    []Group `json:"top"`
	Bottom []Group `json:"bottom"`
}

// BehaviorScorecard summarizes spending behaviour and stress.
type BehaviorScorecard struct {
	BehaviorScore     float64 `json:"behaviorScore"` // 0–4
	PoorBehaviorCount int     `json:"poorBehaviorCount"`
	PoorBehaviorPct   float64 `json:"poorBehaviorPct"`
	DeficitCount      int     `json:"deficitCount"`
	DeficitPct        float64 `json:"deficitPct"`
	AverageAnxiety    float64 `json:"averageAnxiety"`
	Respondents       int     `json:"respondents"`
	Profiles          int     `json:"profiles"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. X is set for scatter series.
type ChartPoint struct {
	Label string   `json:"label"`
	Value float64  `json:"value"`
	X     *float64 `json:"x,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "currency", "percent"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals or aggregations for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

// ============================================================================
// CARD TYPES
// ============================================================================

// Card is one headline number, the way the dashboard KPI row shows it.
type Card struct {
	Key      string  `json:"key"`
	Title    string  `json:"title"`
	Value    string  `json:"value"`
	RawValue float64 `json:"rawValue"`
	Unit     string  `json:"unit,omitempty"`
	Trend    string  `json:"trend,omitempty"` // "↑ 3,1%", "↓ 0,8%", "→ No change"
	Status   string  `json:"status,omitempty"`
}
