package scoring

// ============================================================================
// SCORE NORMALIZATION — Likert averages → display scales
// ============================================================================
// Survey answers use a 1–4 Likert scale. Widgets show scores on 0–4 (KPI
// cards) or 0–25 (dimension radar). A raw average of exactly 0 means "no
// data" and stays 0; any other value is rescaled linearly without clamping.
// ============================================================================

const (
	LikertMin = 1.0
	LikertMax = 4.0

	// DefaultScale is the KPI-card scale.
	DefaultScale = 4.0
	// DimensionScale is the radar-chart scale.
	DimensionScale = 25.0

	// QuestionCount is the number of answer slots per respondent.
	QuestionCount = 48
)

// Normalize rescales rawAverage from [sourceMin, sourceMax] to [0, targetScale].
// A zero average and a degenerate source range both yield 0.
func Normalize(rawAverage, sourceMin, sourceMax, targetScale float64) float64 {
	if rawAverage == 0 || sourceMax == sourceMin {
		return 0
	}
	return (rawAverage - sourceMin) / (sourceMax - sourceMin) * targetScale
}

// NormalizeLikert is Normalize over the 1–4 answer scale.
func NormalizeLikert(rawAverage, targetScale float64) float64 {
	return Normalize(rawAverage, LikertMin, LikertMax, targetScale)
}
