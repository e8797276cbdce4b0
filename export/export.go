// Package export renders engine Results for people and spreadsheets:
// JSON, CSV, XLSX and terminal tables.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/spektr-org/finlit/engine"
)

// ============================================================================
// FORMATS
// ============================================================================

// Format names an output encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatPretty Format = "pretty"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatTable  Format = "table"
)

// ErrUnknownFormat is returned for a format name that has no writer.
var ErrUnknownFormat = errors.New("export: unknown format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatPretty, FormatCSV, FormatXLSX, FormatTable}
}

// ParseFormat accepts a format name case-insensitively. "excel" is an
// alias for xlsx.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatPretty, FormatCSV, FormatXLSX, FormatTable:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Binary reports whether the format writes non-text bytes.
func (f Format) Binary() bool { return f == FormatXLSX }

// Ext is the file extension for f, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatPretty:
		return "json"
	case FormatTable:
		return "txt"
	default:
		return string(f)
	}
}

// FileName builds a collision-free output name such as
// "finlit-literacy_by_province-1f0c2a9e.xlsx".
func FileName(metric string, f Format) string {
	if metric == "" {
		metric = "result"
	}
	id := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("finlit-%s-%s.%s", metric, id, f.Ext())
}

// Write renders res to w in format f.
func Write(w io.Writer, res *engine.Result, f Format) error {
	switch f {
	case FormatJSON, "":
		return WriteJSON(w, res, false)
	case FormatPretty:
		return WriteJSON(w, res, true)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatXLSX:
		return WriteXLSX(w, res)
	case FormatTable:
		return WriteTable(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WriteJSON encodes any value, indented when pretty is set.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
