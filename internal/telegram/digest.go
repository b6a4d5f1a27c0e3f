package telegram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plateseries/matriculas/internal/series"
)

// FormatDigest formats a batch of new records as one digest message
func FormatDigest(records []series.Record) string {
	if len(records) == 0 {
		return "Sin series nuevas en este periodo."
	}

	var msg strings.Builder

	msg.WriteString("🚗 <b>Matrículas España: series nuevas</b>\n\n")
	msg.WriteString(fmt.Sprintf("🗓 %d %s\n\n",
		len(records), pluralize(len(records), "serie nueva", "series nuevas")))

	// Group records by year
	byYear := make(map[int][]series.Record)
	for _, rec := range records {
		byYear[rec.Year] = append(byYear[rec.Year], rec)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	for _, year := range years {
		msg.WriteString(fmt.Sprintf("📅 <b>%d</b>\n", year))
		for _, rec := range byYear[year] {
			msg.WriteString(fmt.Sprintf("  • %s → %s\n", rec.Month, rec.End))
		}
		msg.WriteString("\n")
	}

	msg.WriteString(sourceLink)

	return msg.String()
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
