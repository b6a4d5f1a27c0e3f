// Package series provides types and functions for the month → plate-series
// table extracted from Spanish registration trackers.
//
// The series package handles record normalization, identity, aggregation
// across sources, and change detection through snapshot-based diffing. Each
// record is identified by the (year, month, series-end) triple, enabling
// deduplication across sources and reliable tracking across runs.
package series
