package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/finlit/engine"
)

// ============================================================================
// XLSX — Workbook with the result grid and an info sheet
// ============================================================================

const (
	infoSheet     = "Info"
	maxSheetName  = 31
	defaultColW   = 18
	headerFill    = "#4472C4"
	headerFontHex = "#FFFFFF"
)

// WriteXLSX writes res as a workbook: the grid on a sheet named after the
// metric, plus an Info sheet with title, summary and record count.
func WriteXLSX(w io.Writer, res *engine.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Data"
	if res != nil && res.Metric != "" {
		sheet = sheetName(res.Metric)
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: headerFontHex},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	g := GridOf(res)
	if err := writeRows(f, sheet, g.Headers, g.Rows); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(g.Headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", last, defaultColW); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.NewSheet(infoSheet); err != nil {
		return fmt.Errorf("create info sheet: %w", err)
	}
	if err := writeRows(f, infoSheet, []string{"Field", "Value"}, info(res)); err != nil {
		return err
	}
	if err := f.SetCellStyle(infoSheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("style info header: %w", err)
	}
	if err := f.SetColWidth(infoSheet, "B", "B", 80); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func info(res *engine.Result) [][]any {
	if res == nil {
		return [][]any{{"Summary", "No data"}}
	}
	rows := [][]any{
		{"Metric", res.Metric},
		{"Title", res.Title},
		{"Summary", res.Summary},
		{"Records", res.Records},
	}
	for _, e := range res.Errors {
		rows = append(rows, []any{"Error", e})
	}
	return rows
}

// sheetName makes s a legal worksheet name.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, s)
	if len([]rune(s)) > maxSheetName {
		s = string([]rune(s)[:maxSheetName])
	}
	if s == "" || strings.EqualFold(s, infoSheet) {
		return "Data"
	}
	return s
}
