package series

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// UnknownMonth is the sentinel used when a month name cannot be resolved
// against the canonical Spanish calendar. Records carrying it sort before
// every named month within the same year.
const UnknownMonth = "??"

// Months holds the canonical Spanish month names in calendar order.
// Matching against it is case-insensitive but accent-sensitive, so
// "septiembre" resolves while "setiembre" does not.
var Months = [12]string{
	"Enero",
	"Febrero",
	"Marzo",
	"Abril",
	"Mayo",
	"Junio",
	"Julio",
	"Agosto",
	"Septiembre",
	"Octubre",
	"Noviembre",
	"Diciembre",
}

// Record is one row of the plate-series table: the last series code issued
// during a given month of a given year.
type Record struct {
	Month string `json:"mes"`
	Year  int    `json:"año"`
	End   string `json:"fin"`
}

// Normalize builds a Record from raw scraped fragments. It is total: any
// input produces a well-formed record, with UnknownMonth, year 0 or an
// empty series end standing in for fields that could not be parsed.
func Normalize(rawMonth, rawYear, rawSeries string) Record {
	return Record{
		Month: CanonicalMonth(rawMonth),
		Year:  parseYear(rawYear),
		End:   NormalizeEnd(rawSeries),
	}
}

// CanonicalMonth title-cases a raw month name: first letter upper, rest
// lower. Blank input maps to UnknownMonth. The result is canonical only if
// the input was a real Spanish month name; callers that need to know use
// MonthIndex.
func CanonicalMonth(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UnknownMonth
	}
	runes := []rune(strings.ToLower(raw))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// MonthIndex returns the zero-based calendar position of a month name, or
// -1 for UnknownMonth and anything else that is not a canonical Spanish
// month. The lookup ignores case but not accents.
func MonthIndex(month string) int {
	for i, m := range Months {
		if strings.EqualFold(month, m) {
			return i
		}
	}
	return -1
}

// NormalizeEnd strips everything that is not an ASCII letter from a series
// code and uppercases what remains, so "mf-x" and "MFX" collapse to the
// same value.
func NormalizeEnd(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		}
	}
	return b.String()
}

// parseYear reads the first run of ASCII digits out of raw. Anything
// without digits parses as year 0.
func parseYear(raw string) int {
	start := -1
	for i, r := range raw {
		isDigit := r >= '0' && r <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			n, _ := strconv.Atoi(raw[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(raw[start:])
		return n
	}
	return 0
}

// Key returns the identity of the record. Two records with the same key
// describe the same table cell and the later one wins during aggregation.
func (r Record) Key() string {
	return fmt.Sprintf("%d|%s|%s", r.Year, r.Month, r.End)
}

// String renders the record for logs and text output.
func (r Record) String() string {
	return fmt.Sprintf("%s %d → %s", r.Month, r.Year, r.End)
}
