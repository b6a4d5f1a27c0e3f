// Package filter provides record filtering for the plate-series table.
//
// Filters narrow an aggregated table down by year, month, exact series end
// or series-end prefix. The same criteria back the CLI --filter flag and
// the HTTP query parameters, so both surfaces share one grammar:
//
//	f, err := filter.Parse("año:2024 mes:enero")
//	if err != nil {
//		return err
//	}
//	filtered := f.Apply(records)
//
// Values within one criterion match any of them (OR); different criteria
// must all hold (AND). An empty filter matches every record.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plateseries/matriculas/internal/series"
)

// Filter represents record filtering criteria
type Filter struct {
	// Year filtering (exact match)
	Years []int `json:"years,omitempty"`

	// Month filtering (canonical month names, case-insensitive match)
	Months []string `json:"months,omitempty"`

	// Series end filtering (exact match after normalization)
	Ends []string `json:"ends,omitempty"`

	// Series-end prefix filtering, e.g. "MF" keeps MFA through MFZ
	Prefix string `json:"prefix,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all records until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Years:  []int{},
		Months: []string{},
		Ends:   []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all records.
func (f *Filter) IsEmpty() bool {
	return len(f.Years) == 0 &&
		len(f.Months) == 0 &&
		len(f.Ends) == 0 &&
		f.Prefix == ""
}

// Matches checks if a record matches all active filter criteria.
// Returns true if the record passes all filters, false otherwise.
// An empty filter matches all records.
//
// Matching logic:
//   - Years: record year must equal at least one listed year
//   - Months: record month must equal at least one listed month (case-insensitive)
//   - Ends: record series end must equal at least one listed end
//   - Prefix: record series end must start with the prefix
func (f *Filter) Matches(rec series.Record) bool {
	if f.IsEmpty() {
		return true
	}

	if len(f.Years) > 0 {
		matched := false
		for _, year := range f.Years {
			if rec.Year == year {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Months) > 0 {
		matched := false
		for _, month := range f.Months {
			if strings.EqualFold(rec.Month, month) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Ends) > 0 {
		matched := false
		for _, end := range f.Ends {
			if rec.End == end {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.Prefix != "" && !strings.HasPrefix(rec.End, f.Prefix) {
		return false
	}

	return true
}

// Apply filters a slice of records, returning only those that match.
// Record order is preserved. An empty filter returns the input unchanged.
func (f *Filter) Apply(records []series.Record) []series.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]series.Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

// String returns a human-readable description of the active criteria.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Years) > 0 {
		years := make([]string, len(f.Years))
		for i, year := range f.Years {
			years[i] = strconv.Itoa(year)
		}
		parts = append(parts, fmt.Sprintf("Years: %s", strings.Join(years, ", ")))
	}

	if len(f.Months) > 0 {
		parts = append(parts, fmt.Sprintf("Months: %s", strings.Join(f.Months, ", ")))
	}

	if len(f.Ends) > 0 {
		parts = append(parts, fmt.Sprintf("Ends: %s", strings.Join(f.Ends, ", ")))
	}

	if f.Prefix != "" {
		parts = append(parts, fmt.Sprintf("Prefix: %s", f.Prefix))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		Years:  make([]int, len(f.Years)),
		Months: make([]string, len(f.Months)),
		Ends:   make([]string, len(f.Ends)),
		Prefix: f.Prefix,
	}

	copy(clone.Years, f.Years)
	copy(clone.Months, f.Months)
	copy(clone.Ends, f.Ends)

	return clone
}
