package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plateseries/matriculas/internal/series"
)

const sourceLink = `🔗 <a href="https://www.matriculasdelmundo.com/espana.html">matriculasdelmundo.com</a>`

// FormatRecord formats a single new series record as a Telegram message
func FormatRecord(rec series.Record) string {
	var msg strings.Builder

	msg.WriteString("🚗 <b>Nueva serie de matrículas</b>\n\n")

	if rec.Month != series.UnknownMonth {
		msg.WriteString(fmt.Sprintf("📅 <b>%s %d</b>\n", rec.Month, rec.Year))
	} else {
		msg.WriteString(fmt.Sprintf("📅 <b>%d</b>\n", rec.Year))
	}
	msg.WriteString(fmt.Sprintf("🔢 Última serie: <b>%s</b>\n", rec.End))

	msg.WriteString("\n" + sourceLink + "\n")
	msg.WriteString("\n#matriculas #España")

	return msg.String()
}

// FormatSummary creates a short summary message for a batch of new records
func FormatSummary(count int, years []int) string {
	var msg strings.Builder

	msg.WriteString("🚗 <b>Matrículas España</b>\n\n")

	if count == 1 {
		msg.WriteString("Detectada <b>1</b> serie nueva")
	} else {
		msg.WriteString(fmt.Sprintf("Detectadas <b>%d</b> series nuevas", count))
	}

	if len(years) > 0 {
		yearList := make([]string, len(years))
		for i, year := range years {
			yearList[i] = strconv.Itoa(year)
		}
		msg.WriteString(fmt.Sprintf(" en %s", strings.Join(yearList, ", ")))
	}

	msg.WriteString("\n\n#matriculas")

	return msg.String()
}
