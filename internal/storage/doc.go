// Package storage provides JSON-based persistence for plate-series data.
//
// The storage package manages local snapshot files that track the extracted
// table across runs. Snapshots are stored in JSON format, with separate files
// per year (snapshot_2024.json) and a combined file for the whole table
// (snapshot.json). It also loads static fallback tables used when a scrape
// pass produces nothing. The default storage location is
// ~/.local/share/matriculas/.
package storage
