package engine

import (
	"fmt"

	"github.com/spektr-org/finlit/scoring"
)

// ============================================================================
// TABLE BUILDER — Produces TableData from Groups, Buckets and joined rows
// ============================================================================

// BuildGroupTable renders one row per group: label, formatted value, count.
func BuildGroupTable(title, groupLabel, valueLabel string, groups []Group, format func(float64) string) *TableData {
	if format == nil {
		format = FormatScore
	}
	if len(groups) == 0 {
		return emptyTable(title)
	}
	if groupLabel == "" {
		groupLabel = "Group"
	}

	columns := []Column{
		{Key: "group", Label: groupLabel, Type: "text", Align: "left"},
		{Key: "value", Label: valueLabel, Type: "number", Align: "right"},
		{Key: "count", Label: "Count", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(groups))
	var totalCount int
	for _, g := range groups {
		rows = append(rows, []string{g.Label, format(g.Value), FormatInt(g.Count)})
		totalCount += g.Count
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Total",
			Values: map[string]string{"count": FormatInt(totalCount)},
		},
	}
}

// BuildBucketTable renders a distribution with counts and shares.
func BuildBucketTable(title, label string, buckets []Bucket) *TableData {
	if len(buckets) == 0 {
		return emptyTable(title)
	}

	columns := []Column{
		{Key: "bucket", Label: label, Type: "text", Align: "left"},
		{Key: "count", Label: "Count", Type: "number", Align: "right"},
		{Key: "percentage", Label: "Share", Type: "percent", Align: "right"},
	}

	rows := make([][]string, 0, len(buckets))
	var total int
	for _, b := range buckets {
		rows = append(rows, []string{b.Name, FormatInt(b.Count), FormatPercent(b.Percentage)})
		total += b.Count
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  "Total",
			Values: map[string]string{"count": FormatInt(total)},
		},
	}
}

// BuildProvinceTable renders joined province rows in the given order.
func BuildProvinceTable(title string, aggs []ProvinceAggregate) *TableData {
	if len(aggs) == 0 {
		return emptyTable(title)
	}

	columns := []Column{
		{Key: "rank", Label: "#", Type: "number", Align: "center"},
		{Key: "province", Label: "Province", Type: "text", Align: "left"},
		{Key: "literacy", Label: "Literacy", Type: "number", Align: "right"},
		{Key: "pdrb", Label: "PDRB (Rp jt/capita)", Type: "currency", Align: "right"},
		{Key: "loans", Label: "Loans (Rp bn)", Type: "currency", Align: "right"},
		{Key: "urbanization", Label: "Urbanization", Type: "percent", Align: "right"},
		{Key: "population", Label: "Population (k)", Type: "number", Align: "right"},
		{Key: "count", Label: "Respondents", Type: "number", Align: "center"},
	}

	rows := make([][]string, 0, len(aggs))
	var respondents int
	for i, a := range aggs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			a.Province,
			FormatScore(a.AverageScore),
			idPrinter.Sprintf("%.1f", a.PDRB),
			idPrinter.Sprintf("%.1f", a.Loans),
			FormatPercent(a.Urbanization),
			idPrinter.Sprintf("%.0f", a.Population),
			FormatInt(a.Count),
		})
		respondents += a.Count
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
		Summary: &Summary{
			Label:  fmt.Sprintf("%d provinces", len(aggs)),
			Values: map[string]string{"count": FormatInt(respondents)},
		},
	}
}

// BuildQuestionTable renders per-question averages, weakest first.
func BuildQuestionTable(title string, scores []scoring.QuestionScore) *TableData {
	if len(scores) == 0 {
		return emptyTable(title)
	}

	columns := []Column{
		{Key: "question", Label: "Question", Type: "text", Align: "left"},
		{Key: "dimension", Label: "Dimension", Type: "text", Align: "left"},
		{Key: "score", Label: "Average", Type: "number", Align: "right"},
		{Key: "percentage", Label: "Score", Type: "percent", Align: "right"},
		{Key: "label", Label: "Grade", Type: "text", Align: "center"},
	}

	rows := make([][]string, 0, len(scores))
	for _, q := range scores {
		rows = append(rows, []string{
			q.Question,
			q.Dimension,
			FormatScore(q.Score),
			FormatPercent(q.Percentage),
			q.Label,
		})
	}

	return &TableData{Title: title, Columns: columns, Rows: rows}
}

func emptyTable(title string) *TableData {
	return &TableData{
		Title:   title,
		Columns: []Column{},
		Rows:    [][]string{},
	}
}
