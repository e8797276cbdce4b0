package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spektr-org/finlit/engine"
)

// WriteCSV writes res as Sheets-ready CSV.
func WriteCSV(w io.Writer, res *engine.Result) error {
	g := GridOf(res)

	cw := csv.NewWriter(w)
	if err := cw.Write(g.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(g.Strings()); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
