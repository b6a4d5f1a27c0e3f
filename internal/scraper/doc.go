// Package scraper provides HTTP fetching and HTML extraction for Spanish
// plate-series trackers.
//
// The scraper package fetches public tracker pages and extracts month, year
// and series-end triples from them. Extraction runs in two passes: a
// structural pass that walks every table row, and a text pass over the raw
// page used only when the tables yield nothing. Both passes funnel through
// the same ordered pattern matchers, so a table row and a loose text span
// produce identical records for identical content.
package scraper
