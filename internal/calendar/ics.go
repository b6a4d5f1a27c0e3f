// Package calendar renders the plate-series table as an iCalendar feed
// that calendar clients can subscribe to.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/plateseries/matriculas/internal/series"
)

// DefaultCalendarName labels the feed in calendar clients.
const DefaultCalendarName = "Matrículas España"

// sourceURL links each entry back to the tracker page.
const sourceURL = "https://www.matriculasdelmundo.com/espana.html"

// GenerateICS renders records as an iCalendar feed with one all-day entry
// per table row, placed on the first day of its month. Rows whose month or
// year never resolved cannot be placed on a calendar and are skipped. An
// empty or fully unplaceable batch yields an empty string.
func GenerateICS(records []series.Record, name string) string {
	entries := make([]series.Record, 0, len(records))
	for _, rec := range records {
		if rec.Year == 0 || series.MonthIndex(rec.Month) < 0 {
			continue
		}
		entries = append(entries, rec)
	}
	if len(entries) == 0 {
		return ""
	}
	series.SortCanonical(entries)

	var ics strings.Builder
	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//matriculas//plate-series//ES\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if name != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(name)))
	}

	stamp := time.Now().UTC()
	for _, rec := range entries {
		writeEvent(&ics, rec, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// writeEvent renders one table row as an all-day informational entry.
func writeEvent(ics *strings.Builder, rec series.Record, stamp time.Time) {
	month := time.Month(series.MonthIndex(rec.Month) + 1)
	start := time.Date(rec.Year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - stable identity so resubscribing clients dedup entries
	ics.WriteString(fmt.Sprintf("UID:%d-%s-%s@matriculas\r\n", rec.Year, strings.ToLower(rec.Month), rec.End))

	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(stamp)))
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.Format("20060102")))

	summary := fmt.Sprintf("Matrículas: serie %s (%s %d)", rec.End, rec.Month, rec.Year)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Última serie emitida en %s %d: %s", rec.Month, rec.Year, rec.End)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString(fmt.Sprintf("URL:%s\r\n", sourceURL))
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")

	// Informational entries should not block the subscriber's free/busy time
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
