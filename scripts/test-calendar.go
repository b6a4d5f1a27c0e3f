package main

import (
	"fmt"
	"os"

	"github.com/plateseries/matriculas/internal/calendar"
	"github.com/plateseries/matriculas/internal/series"
)

func main() {
	// Create a sample table slice
	records := []series.Record{
		{Month: "Noviembre", Year: 2023, End: "MCV"},
		{Month: "Diciembre", Year: 2023, End: "MDL"},
		{Month: "Enero", Year: 2024, End: "MFX"},
	}

	// Generate .ics feed
	icsContent := calendar.GenerateICS(records, calendar.DefaultCalendarName)

	// Write to file (owner read/write only for security)
	filename := "test-matriculas.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
