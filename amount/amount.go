package amount

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================================
// AMOUNT PARSER — Free-text currency labels → numeric estimates
// ============================================================================
// Survey and profile datasets record money as labels, not numbers:
//
//	"Rp1.000.001 - Rp3.000.000"  → 2,000,000.5   (midpoint)
//	"< Rp2.000.000"              → 1,000,000     (bound × BelowFactor)
//	"> Rp15.000.000"             → 18,000,000    (bound × AboveFactor)
//	"Rp2jt"                      → 2,000,000
//
// Values are in Rupiah. Parse never panics; anything without a number
// yields an Estimate whose OK() is false and whose Value is 0.
// ============================================================================

const (
	// BelowFactor scales the bound of an open-ended "less than" label.
	BelowFactor = 0.5
	// AboveFactor scales the bound of an open-ended "more than" label.
	AboveFactor = 1.2
)

// Kind tells how an Estimate was derived.
type Kind int

const (
	Missing Kind = iota // empty input
	Invalid             // text without a usable number
	Exact               // single number
	Range               // "A - B"
	Below               // "< B"
	Above               // "> B"
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	case Exact:
		return "exact"
	case Range:
		return "range"
	case Below:
		return "below"
	case Above:
		return "above"
	default:
		return "unknown"
	}
}

// Estimate is the numeric reading of an amount label.
type Estimate struct {
	Value float64 `json:"value"`
	Kind  Kind    `json:"kind"`
}

// OK reports whether a number was found in the label.
func (e Estimate) OK() bool {
	return e.Kind >= Exact
}

// ============================================================================
// PARSING
// ============================================================================

// numberPattern matches a digit run with optional separators and an optional
// Indonesian/English magnitude suffix ("2jt", "500 rb", "1,5 M").
var numberPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)*)(?:\s*(miliar|milyar|ribu|juta|bn|rb|jt|k|m|b)\b)?`)

var multipliers = map[string]float64{
	"":       1,
	"k":      1e3,
	"rb":     1e3,
	"ribu":   1e3,
	"m":      1e6,
	"jt":     1e6,
	"juta":   1e6,
	"b":      1e9,
	"bn":     1e9,
	"miliar": 1e9,
	"milyar": 1e9,
}

var (
	belowMarkers = []string{"<", "≤", "kurang dari", "di bawah", "dibawah", "less than", "under", "below"}
	aboveMarkers = []string{">", "≥", "lebih dari", "di atas", "diatas", "more than", "over", "above"}
)

// Parse reads a currency label into an Estimate.
func Parse(s string) Estimate {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return Estimate{Kind: Missing}
	}

	nums := extractNumbers(text)
	if len(nums) == 0 {
		return Estimate{Kind: Invalid}
	}

	var est Estimate
	switch {
	case hasMarker(text, belowMarkers):
		est = Estimate{Value: nums[0] * BelowFactor, Kind: Below}
	case hasMarker(text, aboveMarkers):
		est = Estimate{Value: nums[0] * AboveFactor, Kind: Above}
	case len(nums) >= 2:
		est = Estimate{Value: nums[0]/2 + nums[1]/2, Kind: Range}
	default:
		est = Estimate{Value: nums[0], Kind: Exact}
	}

	if math.IsInf(est.Value, 0) || math.IsNaN(est.Value) {
		return Estimate{Kind: Invalid}
	}
	return est
}

// Value is Parse without the metadata: 0 when no number was found.
func Value(s string) float64 {
	return Parse(s).Value
}

// FromAny accepts either an already-numeric value, which passes through
// unchanged, or a label. Anything else is 0.
func FromAny(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		return Value(n)
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

func hasMarker(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// extractNumbers returns every finite number in text, suffix applied.
func extractNumbers(text string) []float64 {
	matches := numberPattern.FindAllStringSubmatch(text, -1)
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		n, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		n *= multipliers[m[2]]
		if math.IsInf(n, 0) {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// parseNumber resolves "." and "," separators. When every group after a
// separator has exactly three digits the separators are thousands marks
// ("1.000.001", "2,500"); otherwise the last one is the decimal point
// ("2,5", "1.234,56").
func parseNumber(tok string) (float64, bool) {
	groups := strings.FieldsFunc(tok, func(r rune) bool { return r == '.' || r == ',' })
	if len(groups) == 0 {
		return 0, false
	}

	var digits string
	if len(groups) == 1 || allThousands(groups[1:]) {
		digits = strings.Join(groups, "")
	} else {
		last := len(groups) - 1
		digits = strings.Join(groups[:last], "") + "." + groups[last]
	}

	n, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func allThousands(groups []string) bool {
	for _, g := range groups {
		if len(g) != 3 {
			return false
		}
	}
	return true
}
