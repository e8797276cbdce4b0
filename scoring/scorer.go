package scoring

import (
	"math"
	"sort"
	"strconv"
)

// ============================================================================
// SURVEY SCORER — Question ranges → normalized dimension scores
// ============================================================================
// A dimension score is the mean answer over every (respondent, question)
// cell in the range, rescaled with NormalizeLikert. Missing answers are 0
// and stay in the denominator, matching how the questionnaire was scored.
// ============================================================================

// Answerer exposes 1-based question answers; out-of-range questions are 0.
type Answerer interface {
	Answer(q int) float64
}

// AverageAnswer is the raw mean answer over rows × questions in rng.
func AverageAnswer[R Answerer](rows []R, rng QuestionRange) float64 {
	start, end, ok := rng.bounds()
	if !ok || len(rows) == 0 {
		return 0
	}

	var total float64
	for _, row := range rows {
		total += sumAnswers(row, start, end)
	}
	return total / float64(len(rows)*(end-start+1))
}

// ScoreDimension is the normalized score of rng across rows.
func ScoreDimension[R Answerer](rows []R, rng QuestionRange, targetScale float64) float64 {
	return NormalizeLikert(AverageAnswer(rows, rng), targetScale)
}

// ScoreRespondent is one respondent's score over rng on the 0–4 scale.
func ScoreRespondent(row Answerer, rng QuestionRange) float64 {
	return ScoreRespondentScaled(row, rng, DefaultScale)
}

// ScoreRespondentScaled is ScoreRespondent with an explicit target scale.
func ScoreRespondentScaled(row Answerer, rng QuestionRange, targetScale float64) float64 {
	start, end, ok := rng.bounds()
	if !ok || row == nil {
		return 0
	}
	avg := sumAnswers(row, start, end) / float64(end-start+1)
	return NormalizeLikert(avg, targetScale)
}

func sumAnswers(row Answerer, start, end int) float64 {
	var sum float64
	for q := start; q <= end; q++ {
		v := row.Answer(q)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
	}
	return sum
}

// ============================================================================
// DIMENSION SCORES + KPIs
// ============================================================================

// DimensionScore is one dimension's normalized score.
type DimensionScore struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Scale float64 `json:"scale"`
}

// DimensionScores scores the five dimensions at the given scale.
func DimensionScores[R Answerer](rows []R, targetScale float64) []DimensionScore {
	dims := Dimensions()
	out := make([]DimensionScore, 0, len(dims))
	for _, d := range dims {
		out = append(out, DimensionScore{
			Key:   d.Key,
			Name:  d.Name,
			Value: ScoreDimension(rows, d.Range, targetScale),
			Scale: targetScale,
		})
	}
	return out
}

// KPISummary holds the headline survey scores.
type KPISummary struct {
	Literacy    float64          `json:"literacy"`
	Digital     float64          `json:"digital"`
	Behavior    float64          `json:"behavior"`
	Wellbeing   float64          `json:"wellbeing"`
	Dimensions  []DimensionScore `json:"dimensions"`
	Trend       float64          `json:"trend"`
	Respondents int              `json:"respondents"`
}

// TrendSplit is the share of rows treated as "older" when computing Trend.
const TrendSplit = 0.8

// KPIs computes the four headline scores on the 0–4 scale, the radar
// dimensions on the 0–25 scale and the literacy trend.
func KPIs[R Answerer](rows []R) KPISummary {
	return KPISummary{
		Literacy:    ScoreDimension(rows, AllQuestions, DefaultScale),
		Digital:     ScoreDimension(rows, DigitalLiteracy.Range, DefaultScale),
		Behavior:    ScoreDimension(rows, Behavior.Range, DefaultScale),
		Wellbeing:   ScoreDimension(rows, Wellbeing.Range, DefaultScale),
		Dimensions:  DimensionScores(rows, DimensionScale),
		Trend:       Trend(rows),
		Respondents: len(rows),
	}
}

// Trend compares the literacy score of the last 20% of rows against the
// first 80%, as a percent change. Rows are assumed to be in collection order.
func Trend[R Answerer](rows []R) float64 {
	if len(rows) == 0 {
		return 0
	}
	cutoff := int(math.Floor(float64(len(rows)) * TrendSplit))
	older := ScoreDimension(rows[:cutoff], AllQuestions, DefaultScale)
	recent := ScoreDimension(rows[cutoff:], AllQuestions, DefaultScale)
	if older == 0 {
		return 0
	}
	return (recent - older) / older * 100
}

// ============================================================================
// QUESTION PERFORMANCE
// ============================================================================

// QuestionScore is the mean raw answer to a single question.
type QuestionScore struct {
	Question   string  `json:"question"`
	Number     int     `json:"number"`
	Score      float64 `json:"score"`
	Dimension  string  `json:"dimension"`
	Percentage float64 `json:"percentage"`
	Label      string  `json:"label"`
}

// QuestionPerformance averages every question across rows, weakest first.
func QuestionPerformance[R Answerer](rows []R) []QuestionScore {
	if len(rows) == 0 {
		return nil
	}

	scores := make([]QuestionScore, 0, QuestionCount)
	for q := 1; q <= QuestionCount; q++ {
		avg := AverageAnswer(rows, QuestionRange{q, q})
		dim, _ := DimensionOf(q)
		pct := avg / LikertMax * 100
		scores = append(scores, QuestionScore{
			Question:   questionKey(q),
			Number:     q,
			Score:      avg,
			Dimension:  dim.Name,
			Percentage: pct,
			Label:      Label(pct),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score < scores[j].Score })
	return scores
}

// Label grades a percentage score: Excellent ≥75, Good ≥60, Fair ≥45, else Poor.
func Label(percentage float64) string {
	switch {
	case percentage >= 75:
		return "Excellent"
	case percentage >= 60:
		return "Good"
	case percentage >= 45:
		return "Fair"
	default:
		return "Poor"
	}
}

// PoorBehaviorThreshold is the raw behavior average below which a
// respondent counts as showing poor money habits.
const PoorBehaviorThreshold = 2.5

// CountBelow counts respondents whose raw average over rng is below threshold.
func CountBelow[R Answerer](rows []R, rng QuestionRange, threshold float64) int {
	start, end, ok := rng.bounds()
	if !ok {
		return 0
	}
	n := 0
	for _, row := range rows {
		if sumAnswers(row, start, end)/float64(end-start+1) < threshold {
			n++
		}
	}
	return n
}

func questionKey(q int) string {
	return "Q" + strconv.Itoa(q)
}
