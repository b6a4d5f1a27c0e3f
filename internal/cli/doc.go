// Package cli implements the command-line interface for matriculas.
//
// The cli package provides the Cobra-based CLI that scrapes the configured
// plate-series trackers, diffs the aggregated table against the previous
// snapshot and reports rows added since the last run. Output comes as text,
// JSON or CSV, optionally narrowed by a filter expression, and the exit
// code tells automation whether anything new appeared.
package cli
