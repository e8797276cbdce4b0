package engine

import (
	"fmt"
	"math"

	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// TEXT BUILDER — Headline cards and one-line summaries
// ============================================================================

// BuildKPICards renders the four headline survey scores plus respondent count.
func BuildKPICards(k scoring.KPISummary) []Card {
	cards := []Card{
		scoreCard("literacy", "Financial Literacy", k.Literacy),
		scoreCard("digital", "Digital Literacy", k.Digital),
		scoreCard("behavior", "Financial Behavior", k.Behavior),
		scoreCard("wellbeing", "Financial Well-being", k.Wellbeing),
		{
			Key:      "respondents",
			Title:    "Respondents",
			Value:    FormatInt(k.Respondents),
			RawValue: float64(k.Respondents),
		},
	}
	cards[0].Trend = TrendText(k.Trend)
	return cards
}

// BuildScorecardCards renders the behavior scorecard.
func BuildScorecardCards(s BehaviorScorecard) []Card {
	return []Card{
		scoreCard("behavior", "Behavior Score", s.BehaviorScore),
		{
			Key:      "poor_behavior",
			Title:    "Poor Money Habits",
			Value:    FormatPercent(s.PoorBehaviorPct),
			RawValue: s.PoorBehaviorPct,
			Unit:     "%",
			Status:   fmt.Sprintf("%s of %s respondents", FormatInt(s.PoorBehaviorCount), FormatInt(s.Respondents)),
		},
		{
			Key:      "deficit",
			Title:    "Spending Above Income",
			Value:    FormatPercent(s.DeficitPct),
			RawValue: s.DeficitPct,
			Unit:     "%",
			Status:   fmt.Sprintf("%s of %s profiles", FormatInt(s.DeficitCount), FormatInt(s.Profiles)),
		},
		{
			Key:      "anxiety",
			Title:    "Financial Anxiety",
			Value:    FormatScore(s.AverageAnxiety),
			RawValue: s.AverageAnxiety,
			Unit:     "/5",
			Status:   AnxietyBucket(s.AverageAnxiety),
		},
	}
}

func scoreCard(key, title string, score float64) Card {
	return Card{
		Key:      key,
		Title:    title,
		Value:    FormatScore(score),
		RawValue: score,
		Unit:     "/4",
		Status:   scoring.Label(score / scoring.DefaultScale * 100),
	}
}

// TrendText renders a percent change: "↑ 3,1%", "↓ 0,8%" or "→ No change".
func TrendText(pct float64) string {
	switch r := math.Round(pct*10) / 10; {
	case r > 0:
		return "↑ " + FormatPercent(r)
	case r < 0:
		return "↓ " + FormatPercent(-r)
	default:
		return "→ No change"
	}
}

// ============================================================================
// SUMMARIES
// ============================================================================

// summarizeGroups names the best and worst group of a value-ranked list.
func summarizeGroups(groups []Group, noun string, format func(float64) string) string {
	if len(groups) == 0 {
		return "No matching records found."
	}
	if len(groups) == 1 {
		g := groups[0]
		return fmt.Sprintf("%s: %s (%s records).", g.Label, format(g.Value), FormatInt(g.Count))
	}
	top, bottom := TopBottom(groups, 1)
	return fmt.Sprintf("Highest %s: %s (%s). Lowest: %s (%s). %d groups compared.",
		noun, top[0].Label, format(top[0].Value), bottom[0].Label, format(bottom[0].Value), len(groups))
}

// summarizeBuckets names the most populated bucket.
func summarizeBuckets(buckets []Bucket, total int) string {
	if total == 0 {
		return "No matching records found."
	}
	best := buckets[0]
	for _, b := range buckets[1:] {
		if b.Count > best.Count {
			best = b
		}
	}
	return fmt.Sprintf("Most common: %s with %s of %s records (%s).",
		best.Name, FormatInt(best.Count), FormatInt(total), FormatPercent(best.Percentage))
}

// summarizeCorrelation describes r in words.
func summarizeCorrelation(c Correlation) string {
	if !c.Valid {
		return fmt.Sprintf("Not enough varied data to correlate %s with %s (%d pairs).", c.XLabel, c.YLabel, c.N)
	}
	direction := "positive"
	if c.R < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("%s %s correlation between %s and %s (r = %.2f, n = %d).",
		c.Strength, direction, c.XLabel, c.YLabel, c.R, c.N)
}
