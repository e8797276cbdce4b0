package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ============================================================================
// STATISTICS — Pearson correlation, OLS regression, R²
// ============================================================================
// Inputs are paired samples. Mismatched lengths, fewer than two pairs, a
// zero-variance series, or any non-finite value make the input degenerate.
//
// Two surfaces:
//   Pearson / Fit / Analyze        — explicit ok / Valid flag
//   Correlation / LinearRegression / RSquared — 0 on degenerate input
// ============================================================================

// Regression is a fitted line y = Slope·x + Intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line at x.
func (r Regression) At(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// Point is one (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CorrelationResult bundles the relational statistics for one pair of series.
type CorrelationResult struct {
	R         float64 `json:"r"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
	N         int     `json:"n"`
	Strength  string  `json:"strength"`
	Trendline []Point `json:"trendline,omitempty"`
	Valid     bool    `json:"valid"`
}

// Pearson returns the correlation coefficient of x and y.
func Pearson(x, y []float64) (float64, bool) {
	if !usable(x, y) {
		return 0, false
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, false
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0, false
	}
	return clamp(r, -1, 1), true
}

// Fit returns the least-squares line through (x, y).
func Fit(x, y []float64) (Regression, bool) {
	if !usable(x, y) || stat.Variance(x, nil) == 0 {
		return Regression{}, false
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) || math.IsInf(alpha, 0) || math.IsInf(beta, 0) {
		return Regression{}, false
	}
	return Regression{Slope: beta, Intercept: alpha}, true
}

// Correlation is Pearson with 0 for degenerate input.
func Correlation(x, y []float64) float64 {
	r, _ := Pearson(x, y)
	return r
}

// LinearRegression is Fit with {0, 0} for degenerate input.
func LinearRegression(x, y []float64) Regression {
	reg, _ := Fit(x, y)
	return reg
}

// RSquared is the squared correlation coefficient.
func RSquared(x, y []float64) float64 {
	r := Correlation(x, y)
	return r * r
}

// Analyze computes correlation, regression, R² and a two-point trendline.
// Valid is false when the correlation is undefined.
func Analyze(x, y []float64) CorrelationResult {
	res := CorrelationResult{N: minLen(x, y)}

	r, ok := Pearson(x, y)
	if !ok {
		res.Strength = Strength(0)
		return res
	}
	reg, _ := Fit(x, y)

	res.R = r
	res.RSquared = r * r
	res.Slope = reg.Slope
	res.Intercept = reg.Intercept
	res.Strength = Strength(r)
	res.Trendline = Trendline(x, reg)
	res.Valid = true
	return res
}

// Strength labels |r|: Strong above 0.7, Moderate above 0.3, else Weak.
func Strength(r float64) string {
	switch a := math.Abs(r); {
	case a > 0.7:
		return "Strong"
	case a > 0.3:
		return "Moderate"
	default:
		return "Weak"
	}
}

// Trendline returns the fitted line's endpoints at min(x) and max(x).
func Trendline(x []float64, reg Regression) []Point {
	if len(x) == 0 {
		return nil
	}
	lo, hi := floats.Min(x), floats.Max(x)
	return []Point{{X: lo, Y: reg.At(lo)}, {X: hi, Y: reg.At(hi)}}
}

// Mean is the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func usable(x, y []float64) bool {
	if len(x) != len(y) || len(x) < 2 {
		return false
	}
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func minLen(x, y []float64) int {
	if len(x) < len(y) {
		return len(x)
	}
	return len(y)
}
