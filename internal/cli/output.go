package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/plateseries/matriculas/internal/series"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatCSV  OutputFormat = "csv"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time               `json:"checked_at"`
	Sources     []string                `json:"sources"`
	Records     []series.Record         `json:"records"`
	RecordCount int                     `json:"record_count"`
	ByYear      map[int][]series.Record `json:"by_year,omitempty"`
	ShowAll     bool                    `json:"show_all,omitempty"`
	Filter      string                  `json:"filter,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatCSV:
		return writeCSV(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeCSV outputs the rows as CSV with a header, one row per record.
func writeCSV(w io.Writer, result *OutputResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"año", "mes", "fin"}); err != nil {
		return err
	}
	for _, rec := range result.Records {
		if err := cw.Write([]string{strconv.Itoa(rec.Year), rec.Month, rec.End}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	// Determine labels based on ShowAll mode
	rowLabel := "new"
	rowPrefix := "NEW"
	if result.ShowAll {
		rowLabel = "rows"
		rowPrefix = ""
	}

	if verbose {
		fmt.Fprintf(w, "Checked at: %s\n", result.CheckedAt.Format(time.RFC3339))
		if result.Filter != "" {
			fmt.Fprintf(w, "Filter: %s\n", result.Filter)
		}
	}

	if result.RecordCount == 0 {
		if result.ShowAll {
			fmt.Fprintln(w, "No series found.")
		} else {
			fmt.Fprintln(w, "No new series found.")
		}
		return nil
	}

	// If we have year grouping, show grouped output
	if len(result.ByYear) > 0 {
		// Get sorted years
		years := make([]int, 0, len(result.ByYear))
		for year := range result.ByYear {
			years = append(years, year)
		}
		sort.Ints(years)

		for _, year := range years {
			rows := result.ByYear[year]
			if len(rows) == 0 {
				continue
			}

			fmt.Fprintf(w, "\n%d (%d %s):\n", year, len(rows), rowLabel)
			for _, rec := range rows {
				if rowPrefix != "" {
					fmt.Fprintf(w, "  %s: %s\n", rowPrefix, rec.String())
				} else {
					fmt.Fprintf(w, "  %s\n", rec.String())
				}
			}
		}
		fmt.Fprintf(w, "\nTotal: %d %s across %d years\n", result.RecordCount, rowLabel, len(result.ByYear))
	} else {
		// Simple list when grouping is absent
		for _, rec := range result.Records {
			if rowPrefix != "" {
				fmt.Fprintf(w, "%s: %s\n", rowPrefix, rec.String())
			} else {
				fmt.Fprintln(w, rec.String())
			}
		}
		fmt.Fprintf(w, "\nTotal: %d %s\n", result.RecordCount, rowLabel)
	}

	return nil
}
