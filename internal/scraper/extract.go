package scraper

import (
	"regexp"

	"github.com/plateseries/matriculas/internal/series"
)

// monthNames is the alternation used inside the extraction patterns. Only
// the month is matched case-insensitively; the series code stays strictly
// uppercase so stray lowercase words after a year never pass as codes.
const monthNames = `enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre`

// seriesCode matches a 2-3 letter plate code, tolerating one internal
// hyphen the way trackers sometimes print transitional series ("MF-X").
const seriesCode = `([A-Z]{2,3}(?:-[A-Z]{1,2})?)`

var (
	// Month first, then year, then code: "Enero de 2024 hasta MFX".
	patMonthFirst = regexp.MustCompile(`\b((?i:` + monthNames + `))\b.{0,10}?\b(\d{4})\b.{0,40}?\b` + seriesCode + `\b`)

	// Year before the month: "2024 - Enero - MFX".
	patYearFirst = regexp.MustCompile(`\b(\d{4})\b.{0,20}?\b((?i:` + monthNames + `))\b.{0,40}?\b` + seriesCode + `\b`)

	// Year and code with no recognizable month nearby.
	patBare = regexp.MustCompile(`\b(\d{4})\b.{0,40}?\b` + seriesCode + `\b`)
)

// matcher tries one extraction pattern against a text span.
type matcher func(text string) (series.Record, bool)

// matchers are tried in order and the first hit wins. The bare pattern goes
// last because it over-matches on arbitrary numeric content, so a span
// carrying a real month name must never reach it.
var matchers = []matcher{matchMonthFirst, matchYearFirst, matchBare}

func matchMonthFirst(text string) (series.Record, bool) {
	m := patMonthFirst.FindStringSubmatch(text)
	if m == nil {
		return series.Record{}, false
	}
	return series.Normalize(m[1], m[2], m[3]), true
}

func matchYearFirst(text string) (series.Record, bool) {
	m := patYearFirst.FindStringSubmatch(text)
	if m == nil {
		return series.Record{}, false
	}
	return series.Normalize(m[2], m[1], m[3]), true
}

func matchBare(text string) (series.Record, bool) {
	m := patBare.FindStringSubmatch(text)
	if m == nil {
		return series.Record{}, false
	}
	return series.Normalize("", m[1], m[2]), true
}

// Extract pulls a single record out of a text span, trying each pattern in
// priority order. The boolean reports whether anything matched; most spans
// carry no relevant data and that is not an error.
func Extract(text string) (series.Record, bool) {
	for _, match := range matchers {
		if rec, ok := match(text); ok {
			return rec, true
		}
	}
	return series.Record{}, false
}
