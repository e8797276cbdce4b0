// Package finlit computes financial-literacy metrics from three exports:
// the literacy survey, the respondent profile and the regional lending
// indicators.
//
// Usage:
//
//	snap, err := dataset.LoadSnapshot(ctx, dataset.Sources{
//	    Survey:   "survey.csv",
//	    Regional: "regional.csv",
//	})
//	result, err := engine.Execute(engine.Request{Metric: "province_ranking"}, snap)
//
// The engine returns render-ready output (chart config, table data, cards
// or a text summary). The export package turns a result into CSV, JSON,
// XLSX or a terminal table; cmd/finlit wires it all into a CLI.
//
// All computation is local and reads the snapshot without modifying it.
package finlit
