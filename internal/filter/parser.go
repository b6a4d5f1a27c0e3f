package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plateseries/matriculas/internal/series"
)

// Parse turns a compact query string into a Filter.
//
// Terms are whitespace separated. Each term is either key:value or a bare
// value. Recognized keys, with their English aliases:
//
//	año:2024       ano:, year:    restrict to a year
//	mes:enero      month:         restrict to a month
//	fin:MFX        end:           restrict to a series end
//	serie:MF       prefix:        restrict to a series-end prefix
//
// A value may carry several alternatives separated by commas
// (mes:enero,febrero). Bare terms are resolved by shape: four digits read
// as a year, a Spanish month name as a month. Anything else is an error.
//
// Months must be spelled the calendar way ("septiembre", not "setiembre");
// series ends are normalized before matching, so fin:mf-x and fin:MFX are
// the same criterion.
func Parse(input string) (*Filter, error) {
	f := NewFilter()

	for _, term := range strings.Fields(input) {
		key, value, keyed := strings.Cut(term, ":")
		if !keyed {
			if err := parseBareTerm(f, term); err != nil {
				return nil, err
			}
			continue
		}

		if value == "" {
			return nil, fmt.Errorf("filter term %q has no value", term)
		}

		switch strings.ToLower(key) {
		case "año", "ano", "year":
			for _, v := range splitValues(value) {
				year, err := strconv.Atoi(v)
				if err != nil || year <= 0 {
					return nil, fmt.Errorf("invalid year: %q", v)
				}
				f.Years = append(f.Years, year)
			}

		case "mes", "month":
			for _, v := range splitValues(value) {
				month := series.CanonicalMonth(v)
				if series.MonthIndex(month) < 0 {
					return nil, fmt.Errorf("invalid month: %q", v)
				}
				f.Months = append(f.Months, month)
			}

		case "fin", "end":
			for _, v := range splitValues(value) {
				end := series.NormalizeEnd(v)
				if end == "" {
					return nil, fmt.Errorf("invalid series end: %q", v)
				}
				f.Ends = append(f.Ends, end)
			}

		case "serie", "prefix":
			prefix := series.NormalizeEnd(value)
			if prefix == "" {
				return nil, fmt.Errorf("invalid series prefix: %q", value)
			}
			f.Prefix = prefix

		default:
			return nil, fmt.Errorf("unknown filter key: %q", key)
		}
	}

	return f, nil
}

// parseBareTerm resolves an unkeyed term by shape. Four digits read as a
// year, a month name as a month.
func parseBareTerm(f *Filter, term string) error {
	if len(term) == 4 {
		if year, err := strconv.Atoi(term); err == nil && year > 0 {
			f.Years = append(f.Years, year)
			return nil
		}
	}

	month := series.CanonicalMonth(term)
	if series.MonthIndex(month) >= 0 {
		f.Months = append(f.Months, month)
		return nil
	}

	return fmt.Errorf("unrecognized filter term: %q", term)
}

// splitValues splits a comma-separated value list, dropping blanks.
func splitValues(value string) []string {
	var values []string
	for _, v := range strings.Split(value, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}
