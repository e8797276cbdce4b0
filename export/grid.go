package export

import (
	"fmt"
	"strconv"

	"github.com/spektr-org/finlit/engine"
)

// ============================================================================
// GRID — Flatten a Result into header + rows
// ============================================================================
// Every tabular writer goes through Grid, so CSV, XLSX and terminal output
// always agree. Priority: table data, then chart data, then cards, then
// the summary line on its own.
// ============================================================================

// Grid is a rectangular view of a Result. Cells are string or float64.
type Grid struct {
	Headers []string
	Rows    [][]any
}

// GridOf flattens res. A nil Result yields a one-cell "No data" grid.
func GridOf(res *engine.Result) Grid {
	if res == nil {
		return Grid{Headers: []string{"Result"}, Rows: [][]any{{"No data"}}}
	}
	if g, ok := tableGrid(res.TableData); ok {
		return g
	}
	if g, ok := chartGrid(res.ChartConfig); ok {
		return g
	}
	if len(res.Cards) > 0 {
		return cardGrid(res.Cards)
	}
	summary := res.Summary
	if summary == "" {
		summary = "No data"
	}
	return Grid{Headers: []string{"Summary"}, Rows: [][]any{{summary}}}
}

func tableGrid(t *engine.TableData) (Grid, bool) {
	if t == nil || len(t.Columns) == 0 {
		return Grid{}, false
	}
	g := Grid{Headers: make([]string, len(t.Columns))}
	for i, c := range t.Columns {
		g.Headers[i] = c.Label
	}
	for _, row := range t.Rows {
		out := make([]any, len(row))
		for i, v := range row {
			out[i] = v
		}
		g.Rows = append(g.Rows, out)
	}
	if t.Summary != nil {
		out := make([]any, len(t.Columns))
		out[0] = t.Summary.Label
		for i, c := range t.Columns[1:] {
			out[i+1] = t.Summary.Values[c.Key]
		}
		g.Rows = append(g.Rows, out)
	}
	return g, true
}

func chartGrid(c *engine.ChartConfig) (Grid, bool) {
	if c == nil || len(c.Series) == 0 {
		return Grid{}, false
	}
	xLabel, yLabel := c.XAxis, c.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	first := c.Series[0]

	// Scatter → one row per point with both coordinates
	if len(first.Data) > 0 && first.Data[0].X != nil {
		g := Grid{Headers: []string{"Label", xLabel, yLabel}}
		for _, p := range first.Data {
			x := 0.0
			if p.X != nil {
				x = *p.X
			}
			g.Rows = append(g.Rows, []any{p.Label, x, p.Value})
		}
		return g, true
	}

	// Single series → two columns
	if len(c.Series) == 1 {
		g := Grid{Headers: []string{xLabel, yLabel}}
		for _, p := range first.Data {
			g.Rows = append(g.Rows, []any{p.Label, p.Value})
		}
		return g, true
	}

	// Multi-series → label + one column per series, aligned by label
	g := Grid{Headers: []string{xLabel}}
	index := make(map[string]int)
	for si, s := range c.Series {
		g.Headers = append(g.Headers, s.Name)
		for _, p := range s.Data {
			ri, ok := index[p.Label]
			if !ok {
				ri = len(g.Rows)
				index[p.Label] = ri
				row := make([]any, len(c.Series)+1)
				row[0] = p.Label
				for k := 1; k < len(row); k++ {
					row[k] = ""
				}
				g.Rows = append(g.Rows, row)
			}
			g.Rows[ri][si+1] = p.Value
		}
	}
	return g, true
}

func cardGrid(cards []engine.Card) Grid {
	g := Grid{Headers: []string{"Metric", "Value", "Unit", "Status", "Trend"}}
	for _, c := range cards {
		g.Rows = append(g.Rows, []any{c.Title, c.RawValue, c.Unit, c.Status, c.Trend})
	}
	return g
}

// Strings renders every cell as text.
func (g Grid) Strings() [][]string {
	out := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = cellText(v)
		}
	}
	return out
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmtNum(x)
	default:
		return fmt.Sprint(x)
	}
}

// fmtNum writes whole numbers without decimals, fractions with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
