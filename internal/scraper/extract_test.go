package scraper

import (
	"strings"
	"testing"

	"github.com/plateseries/matriculas/internal/series"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   series.Record
		wantOK bool
	}{
		{
			name:   "month first",
			text:   "Enero 2024 algo texto MFX",
			want:   series.Record{Month: "Enero", Year: 2024, End: "MFX"},
			wantOK: true,
		},
		{
			name:   "year first with separators",
			text:   "2024 - Enero - MF-X",
			want:   series.Record{Month: "Enero", Year: 2024, End: "MFX"},
			wantOK: true,
		},
		{
			name:   "no uppercase code after year",
			text:   "random text 2024 no series",
			wantOK: false,
		},
		{
			name:   "month with preposition",
			text:   "Enero de 2024 hasta MFX",
			want:   series.Record{Month: "Enero", Year: 2024, End: "MFX"},
			wantOK: true,
		},
		{
			name:   "table row line",
			text:   "Enero | 2024 | MFX",
			want:   series.Record{Month: "Enero", Year: 2024, End: "MFX"},
			wantOK: true,
		},
		{
			name:   "year and code without month",
			text:   "desde 2023 hasta KKZ",
			want:   series.Record{Month: series.UnknownMonth, Year: 2023, End: "KKZ"},
			wantOK: true,
		},
		{
			name:   "lowercase month resolved",
			text:   "diciembre 2023 LZT",
			want:   series.Record{Month: "Diciembre", Year: 2023, End: "LZT"},
			wantOK: true,
		},
		{
			name:   "misspelled month falls through to bare pattern",
			text:   "Setiembre 2024 MFX",
			want:   series.Record{Month: series.UnknownMonth, Year: 2024, End: "MFX"},
			wantOK: true,
		},
		{
			name:   "lowercase code is not a series",
			text:   "Febrero 2024 mfx",
			wantOK: false,
		},
		{
			name:   "four letter run is not a series",
			text:   "Marzo 2024 ABCD",
			wantOK: false,
		},
		{
			name:   "code beyond the window",
			text:   "Enero 2024 " + strings.Repeat("x", 45) + " MFX",
			wantOK: false,
		},
		{
			name:   "five digit number is not a year",
			text:   "Enero 20245 MFX",
			wantOK: false,
		},
		{
			name:   "empty string",
			text:   "",
			wantOK: false,
		},
		{
			name:   "plain prose without data",
			text:   "la serie cambia cada pocas semanas",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_PatternPriority(t *testing.T) {
	// Both the month-first and year-first patterns can claim this span;
	// the month-first one must win, so the year next to the month is the
	// one that survives.
	got, ok := Extract("texto 2023 FOO enero 2024 MFX")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Year != 2024 {
		t.Errorf("expected the month-first pattern to win with year 2024, got %d", got.Year)
	}
	if got.Month != "Enero" {
		t.Errorf("expected month Enero, got %q", got.Month)
	}
}

func TestExtract_HyphenatedCode(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Enero 2024 serie MF-X", "MFX"},
		{"Enero 2024 serie KL-AB", "KLAB"},
		{"Enero 2024 serie MFX", "MFX"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if !ok {
				t.Fatalf("Extract(%q) found nothing", tt.text)
			}
			if got.End != tt.want {
				t.Errorf("Extract(%q).End = %q, want %q", tt.text, got.End, tt.want)
			}
		})
	}
}

func TestExtract_InsideWordIsNotAMonth(t *testing.T) {
	// "generoso" contains "enero"; the word boundary must keep it from
	// anchoring the month patterns.
	got, ok := Extract("generoso 2024 MFX")
	if !ok {
		t.Fatal("expected the bare pattern to match")
	}
	if got.Month != series.UnknownMonth {
		t.Errorf("expected unknown month, got %q", got.Month)
	}
}
