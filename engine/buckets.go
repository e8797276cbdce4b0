package engine

import (
	"math"

	"github.com/spektr-org/finlit/amount"
)

// ============================================================================
// BUCKETS — Fixed cut-point categories for continuous metrics
// ============================================================================
// Every bucket function has a companion *Order slice: distributions are
// always reported in that order, with empty buckets kept at count 0.
// ============================================================================

const unknownBucket = "Unknown"

// AgeGroupOrder lists age buckets youngest first.
var AgeGroupOrder = []string{"13-17", "18-20", "21-23", "24-25", ">25", unknownBucket}

// AgeGroup buckets a birth year by age in referenceYear.
// A missing birth year (≤ 0) is "Unknown".
func AgeGroup(birthYear, referenceYear int) string {
	if birthYear <= 0 {
		return unknownBucket
	}
	switch age := referenceYear - birthYear; {
	case age <= 17:
		return "13-17"
	case age <= 20:
		return "18-20"
	case age <= 23:
		return "21-23"
	case age <= 25:
		return "24-25"
	default:
		return ">25"
	}
}

// IncomeBucketOrder lists monthly income brackets, lowest first.
var IncomeBucketOrder = []string{"<2M", "2M-4M", "4M-6M", "6M-10M", "10M-15M", ">15M", unknownBucket}

// IncomeBucket brackets a monthly income in Rupiah. Zero means unknown.
func IncomeBucket(income float64) string {
	switch {
	case income <= 0 || math.IsNaN(income):
		return unknownBucket
	case income <= 2e6:
		return "<2M"
	case income <= 4e6:
		return "2M-4M"
	case income <= 6e6:
		return "4M-6M"
	case income <= 10e6:
		return "6M-10M"
	case income <= 15e6:
		return "10M-15M"
	default:
		return ">15M"
	}
}

// DebtBucketOrder lists debt-to-income risk levels.
var DebtBucketOrder = []string{"Healthy", "Warning", "Critical"}

// DebtRatio is outstanding debt as a percentage of annual income.
// 0 when income is not positive.
func DebtRatio(monthlyIncome, outstandingLoan float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return outstandingLoan / (monthlyIncome * 12) * 100
}

// DebtBucket: Healthy ≤ 30%, Warning ≤ 50%, Critical above.
func DebtBucket(ratio float64) string {
	switch {
	case ratio <= 30:
		return "Healthy"
	case ratio <= 50:
		return "Warning"
	default:
		return "Critical"
	}
}

// SavingsBucketOrder lists savings-rate categories.
var SavingsBucketOrder = []string{"Deficit", "Low", "Moderate", "High"}

// SavingsRate is the share of monthly income not spent, in percent.
// 0 when income is not positive.
func SavingsRate(monthlyIncome, monthlyExpense float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return (monthlyIncome - monthlyExpense) / monthlyIncome * 100
}

// SavingsBucket: Deficit < 0%, Low ≤ 10%, Moderate ≤ 30%, High above.
func SavingsBucket(rate float64) string {
	switch {
	case rate < 0:
		return "Deficit"
	case rate <= 10:
		return "Low"
	case rate <= 30:
		return "Moderate"
	default:
		return "High"
	}
}

// UrbanizationBucketOrder lists urbanization levels, least urban first.
var UrbanizationBucketOrder = []string{"Rural", "Semi-Urban", "Urban", "Highly Urban"}

// UrbanizationBucket: Rural < 30%, Semi-Urban < 50%, Urban < 70%, Highly Urban otherwise.
func UrbanizationBucket(pct float64) string {
	switch {
	case pct < 30:
		return "Rural"
	case pct < 50:
		return "Semi-Urban"
	case pct < 70:
		return "Urban"
	default:
		return "Highly Urban"
	}
}

// AnxietyBucketOrder lists anxiety levels.
var AnxietyBucketOrder = []string{"Low", "Moderate", "High"}

// AnxietyBucket: Low < 3, Moderate < 4, High ≥ 4.
func AnxietyBucket(score float64) string {
	switch {
	case score < 3:
		return "Low"
	case score < 4:
		return "Moderate"
	default:
		return "High"
	}
}

// EWalletBucketOrder lists monthly e-wallet spending brackets as the
// profile export labels them.
var EWalletBucketOrder = []string{
	"< Rp500.000",
	"Rp500.001 - Rp1.000.000",
	"Rp1.000.001 - Rp3.000.000",
	"> Rp3.000.000",
	unknownBucket,
}

// EWalletBucket maps a free-text spending label onto the export brackets
// by its estimated amount.
func EWalletBucket(label string) string {
	est := amount.Parse(label)
	if !est.OK() {
		return unknownBucket
	}
	switch v := est.Value; {
	case v <= 500000:
		return EWalletBucketOrder[0]
	case v <= 1000000:
		return EWalletBucketOrder[1]
	case v <= 3000000:
		return EWalletBucketOrder[2]
	default:
		return EWalletBucketOrder[3]
	}
}

// ============================================================================
// DISTRIBUTIONS
// ============================================================================

// Distribution counts a dimension's values into the given fixed order.
// Values outside order are ignored; percentages are over counted records.
func Distribution(view RecordView, dimension string, order []string) []Bucket {
	counts := make(map[string]int, len(order))
	for _, name := range order {
		counts[name] = 0
	}
	total := 0
	for i := 0; i < view.Len(); i++ {
		v := view.Dimension(i, dimension)
		if _, ok := counts[v]; ok {
			counts[v]++
			total++
		}
	}
	return toBuckets(order, counts, total)
}

// Share counts every distinct value of a dimension, most frequent first.
// Percentages are over all records in the view.
func Share(view RecordView, dimension string) []Bucket {
	groups := GroupAndAggregate(view, []string{dimension}, "", "count", "value_desc", 0)
	out := make([]Bucket, 0, len(groups))
	for _, g := range groups {
		out = append(out, Bucket{
			Name:       g.Label,
			Count:      g.Count,
			Percentage: percent(g.Count, view.Len()),
		})
	}
	return out
}

func toBuckets(order []string, counts map[string]int, total int) []Bucket {
	out := make([]Bucket, 0, len(order))
	for _, name := range order {
		out = append(out, Bucket{
			Name:       name,
			Count:      counts[name],
			Percentage: percent(counts[name], total),
		})
	}
	return out
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
