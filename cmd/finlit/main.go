package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/spektr-org/finlit/dataset"
	"github.com/spektr-org/finlit/engine"
	"github.com/spektr-org/finlit/export"
	"github.com/spektr-org/finlit/helpers"
	"github.com/spektr-org/finlit/internal/config"
	"github.com/spektr-org/finlit/internal/logging"
	"github.com/spektr-org/finlit/schema"
)

// ============================================================================
// FINLIT CLI — Financial literacy metrics from survey and regional exports
// ============================================================================

const version = "0.3.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}

	// ── Flags ─────────────────────────────────────────────────────────────
	surveyPath := flag.String("survey", cfg.Data.SurveyPath, "Path to survey CSV")
	profilePath := flag.String("profile", cfg.Data.ProfilePath, "Path to profile CSV")
	regionalPath := flag.String("regional", cfg.Data.RegionalPath, "Path to regional indicator CSV")
	boundaryPath := flag.String("boundary", cfg.Data.BoundaryPath, "Path to province GeoJSON (optional)")
	metric := flag.String("metric", "", "Metric to compute (see --list)")
	provinces := flag.String("province", "", "Comma-separated province filter")
	education := flag.String("education", "", "Comma-separated education filter")
	ageGroup := flag.String("age-group", "", "Comma-separated age group filter")
	gender := flag.String("gender", "", "Comma-separated gender filter")
	income := flag.String("income", "", "Comma-separated income bracket filter")
	limit := flag.Int("limit", 0, "Limit groups (0 = metric default)")
	sortBy := flag.String("sort", "", "Sort override, e.g. value_asc or literacy_desc")
	refYear := flag.Int("reference-year", cfg.Engine.ReferenceYear, "Year ages are computed against")
	format := flag.String("format", cfg.Output.Format, "Output format: json, pretty, csv, xlsx, table")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	discover := flag.String("discover", "", "Print the detected schema of a CSV file and exit")
	explore := flag.String("explore", "", "Group any CSV file ad hoc (use with --group-by)")
	groupBy := flag.String("group-by", "", "Comma-separated dimensions for --explore")
	measure := flag.String("measure", "", "Measure for --explore (default record_count)")
	agg := flag.String("agg", "", "Aggregation for --explore: sum, avg, min, max, count")
	list := flag.Bool("list", false, "List available metrics and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `finlit — Financial literacy metrics

Usage:
  finlit --survey survey.csv --metric literacy_by_province --format table
  finlit --survey survey.csv --profile profile.csv --regional regional.csv --metric province_ranking
  finlit --survey survey.csv --metric kpis --province "DKI Jakarta,Jawa Barat"
  finlit --discover profile.csv --format pretty
  finlit --explore profile.csv --group-by main_fintech_app --measure financial_anxiety_score

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  CONFIG_PATH       YAML config file (default ./finlit.yaml)
  FINLIT_SURVEY, FINLIT_PROFILE, FINLIT_REGIONAL, FINLIT_BOUNDARY
  LOG_LEVEL, LOG_FORMAT

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  csv       Chart/table data as CSV (ready for Sheets/Excel)
  xlsx      Excel workbook (written to --out or an auto-named file)
  table     Terminal table
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("finlit %s\n", version)
		os.Exit(0)
	}

	logger := logging.New(cfg.Log)

	outFormat, err := export.ParseFormat(*format)
	if err != nil {
		fatalf("%v", err)
	}

	if *list {
		listMetrics(os.Stdout)
		return
	}

	// ── Output writer ─────────────────────────────────────────────────────
	if *outFile == "" && outFormat.Binary() {
		*outFile = export.FileName(strings.TrimSpace(*metric), outFormat)
	}
	var writer io.Writer = os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	filters := engine.Filters{
		Province:     splitList(*provinces),
		Education:    splitList(*education),
		AgeGroup:     splitList(*ageGroup),
		Gender:       splitList(*gender),
		IncomeBucket: splitList(*income),
	}

	// ── Discover mode ─────────────────────────────────────────────────────
	if *discover != "" {
		data, err := os.ReadFile(*discover)
		if err != nil {
			fatalf("Failed to read file: %v", err)
		}
		sch, err := schema.DiscoverFromCSV(data)
		if err != nil {
			fatalf("Auto-Detect failed: %v", err)
		}
		logger.Info("schema detected",
			slog.String("name", sch.Name), slog.Int("dimensions", len(sch.Dimensions)),
			slog.Int("measures", len(sch.Measures)), slog.Int("skipped", len(sch.SkippedColumns)))
		if outFormat == export.FormatTable {
			printSchema(writer, sch)
			return
		}
		if err := export.WriteJSON(writer, sch, outFormat == export.FormatPretty); err != nil {
			fatalf("%v", err)
		}
		return
	}

	// ── Explore mode ──────────────────────────────────────────────────────
	if *explore != "" {
		data, err := os.ReadFile(*explore)
		if err != nil {
			fatalf("Failed to read file: %v", err)
		}
		res, sch, err := helpers.Explore(data, helpers.ExploreRequest{
			GroupBy:       splitList(*groupBy),
			Measure:       *measure,
			Aggregation:   *agg,
			SortBy:        *sortBy,
			Limit:         *limit,
			Filters:       filters,
			ReferenceYear: *refYear,
		})
		if err != nil {
			fatalf("Explore failed: %v", err)
		}
		logger.Info("explored", slog.String("dataset", sch.Name), slog.Int("records", res.Records))
		render(writer, res, outFormat, *outFile, logger)
		return
	}

	// ── Metric mode ───────────────────────────────────────────────────────
	if *metric == "" {
		fmt.Fprintln(os.Stderr, "Error: one of --metric, --discover, --explore or --list is required")
		flag.Usage()
		os.Exit(1)
	}
	if *surveyPath == "" && *profilePath == "" && *regionalPath == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of --survey, --profile or --regional is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	snap, err := dataset.LoadSnapshot(ctx, dataset.Sources{
		Survey:   *surveyPath,
		Profile:  *profilePath,
		Regional: *regionalPath,
		Boundary: *boundaryPath,
	}, dataset.WithLogger(logger))
	if err != nil {
		fatalf("Failed to load data: %v", err)
	}

	res, err := engine.Execute(engine.Request{
		Metric:  *metric,
		Filters: filters,
		SortBy:  *sortBy,
		Limit:   *limit,
	}, snap,
		engine.WithLogger(logger),
		engine.WithReferenceYear(*refYear),
		engine.WithScale(cfg.Engine.Scale),
	)
	if err != nil {
		fatalf("Execution failed: %v", err)
	}
	logger.Info("metric computed",
		slog.String("metric", res.Metric), slog.Int("records", res.Records), slog.String("snapshot", snap.ID.String()))

	render(writer, res, outFormat, *outFile, logger)
}

// ============================================================================
// OUTPUT
// ============================================================================

func render(w io.Writer, res *engine.Result, f export.Format, outFile string, logger *slog.Logger) {
	if err := export.Write(w, res, f); err != nil {
		fatalf("Failed to write output: %v", err)
	}
	if outFile != "" {
		logger.Info("output written", slog.String("path", outFile), slog.String("format", string(f)))
	}
}

func listMetrics(w io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprintln(w, "Available metrics")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Dataset", "Description"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, m := range engine.Metrics() {
		table.Append([]string{m.Name, m.Dataset, m.Description})
	}
	table.Render()
}

func printSchema(w io.Writer, sch *schema.Config) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "%s (%s, %d rows)\n", sch.Name, sch.Kind, sch.Rows)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Role", "Column", "Detail"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, d := range sch.Dimensions {
		detail := strings.Join(d.SampleValues, ", ")
		if d.DerivedFrom != "" {
			detail = "derived from " + d.DerivedFrom
		}
		table.Append([]string{d.Key, "dimension", d.SourceColumn, detail})
	}
	for _, m := range sch.Measures {
		table.Append([]string{m.Key, "measure", m.SourceColumn, m.Unit})
	}
	for _, s := range sch.SkippedColumns {
		table.Append([]string{"", "skipped", s.Column, s.Reason})
	}
	table.Render()

	if len(sch.MissingFields) > 0 {
		color.New(color.FgYellow).Fprintf(w, "Missing fields: %s\n", strings.Join(sch.MissingFields, ", "))
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
