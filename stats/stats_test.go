package stats

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x, y []float64
		want float64
	}{
		{name: "perfect negative", x: []float64{1, 2, 3}, y: []float64{3, 2, 1}, want: -1},
		{name: "self", x: []float64{2, 7, 1, 8}, y: []float64{2, 7, 1, 8}, want: 1},
		{name: "single pair", x: []float64{1}, y: []float64{1}, want: 0},
		{name: "empty", x: nil, y: nil, want: 0},
		{name: "length mismatch", x: []float64{1, 2, 3}, y: []float64{1, 2}, want: 0},
		{name: "constant x", x: []float64{5, 5, 5}, y: []float64{1, 2, 3}, want: 0},
		{name: "constant y", x: []float64{1, 2, 3}, y: []float64{4, 4, 4}, want: 0},
		{name: "nan input", x: []float64{1, math.NaN(), 3}, y: []float64{1, 2, 3}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Correlation(tt.x, tt.y), 1e-12)
		})
	}
}

func TestPearson_DistinguishesDegenerateFromUncorrelated(t *testing.T) {
	t.Parallel()

	_, ok := Pearson([]float64{5, 5}, []float64{1, 2})
	assert.False(t, ok)

	r, ok := Pearson([]float64{1, 2, 3, 4}, []float64{1, 3, 3, 1})
	assert.True(t, ok)
	assert.InDelta(t, 0, r, 1e-12)
}

func TestLinearRegression(t *testing.T) {
	t.Parallel()

	reg := LinearRegression([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	assert.InDelta(t, 2, reg.Slope, 1e-9)
	assert.InDelta(t, 1, reg.Intercept, 1e-9)
	assert.InDelta(t, 11, reg.At(5), 1e-9)

	assert.Equal(t, Regression{}, LinearRegression([]float64{2, 2, 2}, []float64{1, 2, 3}))
	assert.Equal(t, Regression{}, LinearRegression([]float64{1}, []float64{1}))

	_, ok := Fit([]float64{1, 2}, []float64{1})
	assert.False(t, ok)
}

func TestRSquared(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1, RSquared([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
	assert.Zero(t, RSquared([]float64{1}, []float64{2}))
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	res := Analyze([]float64{1, 2, 3, 4}, []float64{3, 5, 7, 9})
	require.True(t, res.Valid)
	assert.Equal(t, 4, res.N)
	assert.InDelta(t, 1, res.R, 1e-12)
	assert.InDelta(t, 1, res.RSquared, 1e-12)
	assert.Equal(t, "Strong", res.Strength)
	require.Len(t, res.Trendline, 2)
	assert.Equal(t, Point{X: 1, Y: 3}, roundPoint(res.Trendline[0]))
	assert.Equal(t, Point{X: 4, Y: 9}, roundPoint(res.Trendline[1]))

	bad := Analyze([]float64{1, 1}, []float64{2, 3})
	assert.False(t, bad.Valid)
	assert.Zero(t, bad.R)
	assert.Equal(t, "Weak", bad.Strength)
	assert.Empty(t, bad.Trendline)
}

func TestStrength(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Strong", Strength(-0.71))
	assert.Equal(t, "Moderate", Strength(0.7))
	assert.Equal(t, "Moderate", Strength(0.31))
	assert.Equal(t, "Weak", Strength(0.3))
}

func TestMean(t *testing.T) {
	t.Parallel()
	assert.Zero(t, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

// The coefficient is bounded and symmetric for arbitrary samples.
func TestCorrelation_Properties(t *testing.T) {
	t.Parallel()
	faker := gofakeit.New(11)

	for i := 0; i < 100; i++ {
		n := faker.IntRange(2, 40)
		x := make([]float64, n)
		y := make([]float64, n)
		for j := range x {
			x[j] = faker.Float64Range(-1000, 1000)
			y[j] = faker.Float64Range(0, 4)
		}

		r := Correlation(x, y)
		assert.GreaterOrEqual(t, r, -1.0)
		assert.LessOrEqual(t, r, 1.0)
		assert.InDelta(t, r, Correlation(y, x), 1e-9)
		assert.InDelta(t, r*r, RSquared(x, y), 1e-12)
	}
}

func roundPoint(p Point) Point {
	return Point{X: math.Round(p.X*1e6) / 1e6, Y: math.Round(p.Y*1e6) / 1e6}
}
