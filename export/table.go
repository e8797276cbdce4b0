package export

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/spektr-org/finlit/engine"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	summaryColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// WriteTable renders res for a terminal: a colored title, the grid as an
// ASCII table, then the summary line.
func WriteTable(w io.Writer, res *engine.Result) error {
	if res != nil && res.Title != "" {
		if _, err := titleColor.Fprintln(w, res.Title); err != nil {
			return fmt.Errorf("write title: %w", err)
		}
	}

	g := GridOf(res)
	table := tablewriter.NewWriter(w)
	table.SetHeader(g.Headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(g.Strings())
	table.Render()

	if res == nil {
		return nil
	}
	for _, e := range res.Errors {
		errorColor.Fprintln(w, "! "+e)
	}
	if res.Summary != "" {
		if _, err := summaryColor.Fprintln(w, res.Summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}
