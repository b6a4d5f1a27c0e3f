package scraper

import (
	"errors"
	"testing"

	"github.com/plateseries/matriculas/internal/series"
)

func TestScanTables(t *testing.T) {
	t.Run("extracts one record per matching row", func(t *testing.T) {
		html := `
			<html><body>
				<table>
					<tr><th>Mes</th><th>Año</th><th>Última serie</th></tr>
					<tr><td>Enero</td><td>2024</td><td>MFX</td></tr>
					<tr><td>Febrero</td><td>2024</td><td>MGK</td></tr>
					<tr><td colspan="3">Fuente: DGT</td></tr>
				</table>
			</body></html>
		`

		got := ScanTables(html)

		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d: %v", len(got), got)
		}
		want := series.Record{Month: "Enero", Year: 2024, End: "MFX"}
		if got[0] != want {
			t.Errorf("first record = %+v, want %+v", got[0], want)
		}
	})

	t.Run("walks every table in the document", func(t *testing.T) {
		html := `
			<table><tr><td>Enero</td><td>2024</td><td>MFX</td></tr></table>
			<p>texto intermedio</p>
			<table><tr><td>Diciembre</td><td>2023</td><td>MDL</td></tr></table>
		`

		got := ScanTables(html)

		if len(got) != 2 {
			t.Fatalf("expected 2 records across tables, got %d", len(got))
		}
	})

	t.Run("year first column order", func(t *testing.T) {
		html := `<table><tr><td>2024</td><td>Enero</td><td>MFX</td></tr></table>`

		got := ScanTables(html)

		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		want := series.Record{Month: "Enero", Year: 2024, End: "MFX"}
		if got[0] != want {
			t.Errorf("record = %+v, want %+v", got[0], want)
		}
	})

	t.Run("no tables yields empty non-nil result", func(t *testing.T) {
		got := ScanTables(`<div>Enero 2024 MFX</div>`)

		if got == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(got) != 0 {
			t.Errorf("expected 0 records without tables, got %d", len(got))
		}
	})

	t.Run("rows in preserved document order", func(t *testing.T) {
		html := `
			<table>
				<tr><td>Marzo</td><td>2024</td><td>MHT</td></tr>
				<tr><td>Enero</td><td>2024</td><td>MFX</td></tr>
			</table>
		`

		got := ScanTables(html)

		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got))
		}
		if got[0].Month != "Marzo" || got[1].Month != "Enero" {
			t.Errorf("expected encounter order Marzo, Enero; got %q, %q", got[0].Month, got[1].Month)
		}
	})
}

type failingRows struct{}

func (failingRows) Rows(string) ([][]string, error) {
	return nil, errors.New("broken parser")
}

type cannedRows [][]string

func (c cannedRows) Rows(string) ([][]string, error) {
	return c, nil
}

func TestScanRows(t *testing.T) {
	t.Run("parse failure degrades to empty result", func(t *testing.T) {
		got := ScanRows(failingRows{}, "<table></table>")

		if got == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(got) != 0 {
			t.Errorf("expected 0 records on parse failure, got %d", len(got))
		}
	})

	t.Run("alternate row source feeds the same extraction", func(t *testing.T) {
		src := cannedRows{
			{"Enero", "2024", "MFX"},
			{"sin", "datos"},
		}

		got := ScanRows(src, "ignored")

		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		if got[0].End != "MFX" {
			t.Errorf("record end = %q, want MFX", got[0].End)
		}
	})
}

func TestScanText(t *testing.T) {
	t.Run("finds every non-overlapping hit", func(t *testing.T) {
		html := `
			<p>En Enero de 2024 se llegó hasta la serie MFX.</p>
			<p>Durante Febrero de 2024 se alcanzó la MGK.</p>
		`

		got := ScanText(html)

		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d: %v", len(got), got)
		}
		if got[0].End != "MFX" || got[1].End != "MGK" {
			t.Errorf("expected ends MFX, MGK; got %q, %q", got[0].End, got[1].End)
		}
	})

	t.Run("same record as the structural pass for the same content", func(t *testing.T) {
		fromText := ScanText(`<li>Enero 2024 MFX</li>`)
		fromRows := ScanRows(cannedRows{{"Enero", "2024", "MFX"}}, "")

		if len(fromText) != 1 || len(fromRows) != 1 {
			t.Fatalf("expected 1 record from each pass, got %d and %d", len(fromText), len(fromRows))
		}
		if fromText[0] != fromRows[0] {
			t.Errorf("text pass %+v differs from structural pass %+v", fromText[0], fromRows[0])
		}
	})

	t.Run("nothing to find", func(t *testing.T) {
		got := ScanText(`<p>página sin datos útiles</p>`)

		if len(got) != 0 {
			t.Errorf("expected 0 records, got %d", len(got))
		}
	})
}

func TestMatches_PullIteration(t *testing.T) {
	text := "Enero 2024 MFX y luego Febrero 2024 MGK"

	seq := newMatches(patMonthFirst, text)

	first, ok := seq.Next()
	if !ok {
		t.Fatal("expected a first hit")
	}
	if first != "Enero 2024 MFX" {
		t.Errorf("first hit = %q, want %q", first, "Enero 2024 MFX")
	}

	second, ok := seq.Next()
	if !ok {
		t.Fatal("expected a second hit")
	}
	if second != "Febrero 2024 MGK" {
		t.Errorf("second hit = %q, want %q", second, "Febrero 2024 MGK")
	}

	if _, ok := seq.Next(); ok {
		t.Error("expected exhaustion after the last hit")
	}

	// A fresh walk starts over.
	restarted, ok := newMatches(patMonthFirst, text).Next()
	if !ok || restarted != first {
		t.Errorf("restarted walk = %q, %v; want %q, true", restarted, ok, first)
	}
}
