package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/plateseries/matriculas/internal/series"
)

// cellSeparator joins the cells of one table row into the line handed to
// Extract. The token keeps cell texts apart without introducing anything
// the patterns could mistake for data.
const cellSeparator = " | "

// RowSource turns an HTML document into rows of trimmed cell text. It
// exists so the HTML parser can be swapped without touching extraction
// logic.
type RowSource interface {
	Rows(html string) ([][]string, error)
}

// GoqueryRows is the default RowSource, backed by goquery.
type GoqueryRows struct{}

// Rows walks every table in the document and returns one slice of trimmed
// cell texts per row, header and data cells alike.
func (GoqueryRows) Rows(html string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0)
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0)
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})
	return rows, nil
}

// ScanTables extracts records from tabular markup using the default row
// source. Rows that match no pattern contribute nothing, and a document
// that cannot be parsed at all degrades to an empty result so the caller
// can fall back to ScanText.
func ScanTables(html string) []series.Record {
	return ScanRows(GoqueryRows{}, html)
}

// ScanRows is ScanTables over a caller-supplied RowSource.
func ScanRows(src RowSource, html string) []series.Record {
	records := make([]series.Record, 0)

	rows, err := src.Rows(html)
	if err != nil {
		return records
	}
	for _, cells := range rows {
		if rec, ok := Extract(strings.Join(cells, cellSeparator)); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ScanText is the recovery path for pages without usable tables. It runs
// the month-first pattern globally over the raw HTML and re-derives each
// non-overlapping hit through Extract, so a text span and a table row
// yield the same record for the same content. Expect more false positives
// than the structural pass; callers should only reach for this when
// ScanTables found nothing.
func ScanText(html string) []series.Record {
	records := make([]series.Record, 0)

	seq := newMatches(patMonthFirst, html)
	for {
		span, ok := seq.Next()
		if !ok {
			break
		}
		if rec, ok := Extract(span); ok {
			records = append(records, rec)
		}
	}
	return records
}

// matches is a pull-based walk over the non-overlapping hits of a pattern
// in a text, finite and restartable per call site.
type matches struct {
	pat  *regexp.Regexp
	text string
	pos  int
}

func newMatches(pat *regexp.Regexp, text string) *matches {
	return &matches{pat: pat, text: text}
}

// Next returns the following hit, or ok=false once the text is exhausted.
func (m *matches) Next() (string, bool) {
	if m.pos >= len(m.text) {
		return "", false
	}
	loc := m.pat.FindStringIndex(m.text[m.pos:])
	if loc == nil {
		m.pos = len(m.text)
		return "", false
	}
	span := m.text[m.pos+loc[0] : m.pos+loc[1]]
	m.pos += loc[1]
	return span, true
}
