package series

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		rawMonth  string
		rawYear   string
		rawSeries string
		want      Record
	}{
		{
			name:      "Clean fragments",
			rawMonth:  "Enero",
			rawYear:   "2024",
			rawSeries: "MFX",
			want:      Record{Month: "Enero", Year: 2024, End: "MFX"},
		},
		{
			name:      "Lowercase month",
			rawMonth:  "enero",
			rawYear:   "2024",
			rawSeries: "MFX",
			want:      Record{Month: "Enero", Year: 2024, End: "MFX"},
		},
		{
			name:      "Shouting month",
			rawMonth:  "DICIEMBRE",
			rawYear:   "2023",
			rawSeries: "LZT",
			want:      Record{Month: "Diciembre", Year: 2023, End: "LZT"},
		},
		{
			name:      "Hyphenated series code",
			rawMonth:  "Enero",
			rawYear:   "2024",
			rawSeries: "MF-X",
			want:      Record{Month: "Enero", Year: 2024, End: "MFX"},
		},
		{
			name:      "Year embedded in text",
			rawMonth:  "Marzo",
			rawYear:   "durante 2022 aprox",
			rawSeries: "LRS",
			want:      Record{Month: "Marzo", Year: 2022, End: "LRS"},
		},
		{
			name:      "Blank month becomes unknown",
			rawMonth:  "   ",
			rawYear:   "2024",
			rawSeries: "MFX",
			want:      Record{Month: UnknownMonth, Year: 2024, End: "MFX"},
		},
		{
			name:      "No digits in year",
			rawMonth:  "Abril",
			rawYear:   "sin fecha",
			rawSeries: "MKL",
			want:      Record{Month: "Abril", Year: 0, End: "MKL"},
		},
		{
			name:      "Everything empty",
			rawMonth:  "",
			rawYear:   "",
			rawSeries: "",
			want:      Record{Month: UnknownMonth, Year: 0, End: ""},
		},
		{
			name:      "Series with surrounding noise",
			rawMonth:  "Julio",
			rawYear:   "2021",
			rawSeries: " lkz. ",
			want:      Record{Month: "Julio", Year: 2021, End: "LKZ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.rawMonth, tt.rawYear, tt.rawSeries)
			if got != tt.want {
				t.Errorf("Normalize(%q, %q, %q) = %+v, want %+v",
					tt.rawMonth, tt.rawYear, tt.rawSeries, got, tt.want)
			}
		})
	}
}

func TestCanonicalMonth(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Already canonical",
			raw:  "Enero",
			want: "Enero",
		},
		{
			name: "All lowercase",
			raw:  "septiembre",
			want: "Septiembre",
		},
		{
			name: "All uppercase",
			raw:  "AGOSTO",
			want: "Agosto",
		},
		{
			name: "Surrounding whitespace",
			raw:  "  mayo  ",
			want: "Mayo",
		},
		{
			name: "Empty string",
			raw:  "",
			want: UnknownMonth,
		},
		{
			name: "Only whitespace",
			raw:  "   ",
			want: UnknownMonth,
		},
		{
			name: "Not a month is still title cased",
			raw:  "lunes",
			want: "Lunes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalMonth(tt.raw); got != tt.want {
				t.Errorf("CanonicalMonth(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMonthIndex(t *testing.T) {
	tests := []struct {
		name  string
		month string
		want  int
	}{
		{
			name:  "First month",
			month: "Enero",
			want:  0,
		},
		{
			name:  "Last month",
			month: "Diciembre",
			want:  11,
		},
		{
			name:  "Case insensitive",
			month: "sEpTiEmBrE",
			want:  8,
		},
		{
			name:  "Unknown sentinel",
			month: UnknownMonth,
			want:  -1,
		},
		{
			name:  "Missing accent variant is not a month",
			month: "Setiembre",
			want:  -1,
		},
		{
			name:  "Empty string",
			month: "",
			want:  -1,
		},
		{
			name:  "Not Spanish",
			month: "January",
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthIndex(tt.month); got != tt.want {
				t.Errorf("MonthIndex(%q) = %d, want %d", tt.month, got, tt.want)
			}
		})
	}
}

func TestNormalizeEnd(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Already normalized",
			raw:  "MFX",
			want: "MFX",
		},
		{
			name: "Lowercase",
			raw:  "mfx",
			want: "MFX",
		},
		{
			name: "Hyphenated",
			raw:  "MF-X",
			want: "MFX",
		},
		{
			name: "Whitespace and punctuation",
			raw:  " m f.x ",
			want: "MFX",
		},
		{
			name: "Digits stripped",
			raw:  "MF4X",
			want: "MFX",
		},
		{
			name: "Empty",
			raw:  "",
			want: "",
		},
		{
			name: "Nothing alphabetic",
			raw:  "123-456",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEnd(tt.raw); got != tt.want {
				t.Errorf("NormalizeEnd(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRecord_Key(t *testing.T) {
	a := Record{Month: "Enero", Year: 2024, End: "MFX"}
	b := Record{Month: "Enero", Year: 2024, End: "MFX"}
	c := Record{Month: "Enero", Year: 2024, End: "MGB"}

	if a.Key() != b.Key() {
		t.Errorf("identical records produced different keys: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("records with different ends share key %q", a.Key())
	}
}
