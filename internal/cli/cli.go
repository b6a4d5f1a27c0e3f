package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/plateseries/matriculas/internal/filter"
	"github.com/plateseries/matriculas/internal/logger"
	"github.com/plateseries/matriculas/internal/scraper"
	"github.com/plateseries/matriculas/internal/series"
	"github.com/plateseries/matriculas/internal/storage"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNewRecords = 2
)

var (
	flagDataDir      string
	flagGistID       string
	flagFormat       string
	flagFilter       string
	flagSources      string
	flagFallbackFile string
	flagYear         int
	flagAll          bool
	flagRefresh      bool
	flagVerbose      bool
)

// snapshotStore is the persistence a check needs, local disk or gist.
type snapshotStore interface {
	LoadSnapshot(year int) (*series.Snapshot, error)
	SnapshotRecords(records []series.Record, year int) error
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matriculas",
		Short: "Check for newly-issued Spanish plate series",
		Long: `A CLI tool that tracks the Spanish license-plate series table.
Scrapes the configured tracker pages, diffs the aggregated table against
the last run and reports only rows added since then.`,
		RunE: runCheck,
	}

	// Define flags
	cmd.Flags().StringVar(&flagDataDir, "data-dir", storage.DefaultDataDir, "Data directory for snapshots")
	cmd.Flags().StringVar(&flagGistID, "gist-id", "", "GitHub Gist ID for snapshot storage (requires GITHUB_TOKEN)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or csv")
	cmd.Flags().StringVar(&flagFilter, "filter", "", "Filter expression, e.g. 'año:2024 mes:enero'")
	cmd.Flags().StringVar(&flagSources, "sources", "", "Comma-separated source URLs (default $MATRICULAS_SOURCES or built-in)")
	cmd.Flags().StringVar(&flagFallbackFile, "fallback-file", "", "Static table used when the scrape yields nothing")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Restrict the check to one year, 0 means all")
	cmd.Flags().BoolVar(&flagAll, "all", false, "Show the full table instead of only new rows")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Refresh snapshot without showing new rows")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'csv')", flagFormat)
	}

	f := filter.NewFilter()
	if flagFilter != "" {
		parsed, err := filter.Parse(flagFilter)
		if err != nil {
			return fmt.Errorf("parsing filter: %w", err)
		}
		f = parsed
	}

	// The scraper logs through the default logger; route that to stderr so
	// stdout stays parseable.
	level := logger.LevelWarn
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	// Initialize storage, a gist when configured so scheduled runs keep
	// state without a writable data directory
	var store snapshotStore
	if flagGistID != "" {
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "Snapshot storage: gist %s\n", flagGistID)
		}
		gistStore, err := storage.NewGistStore(flagGistID, os.Getenv("GITHUB_TOKEN"))
		if err != nil {
			return fmt.Errorf("initializing gist storage: %w", err)
		}
		store = gistStore
	} else {
		if flagVerbose {
			fmt.Fprintf(os.Stderr, "Data directory: %s\n", flagDataDir)
		}
		localStore, err := storage.New(flagDataDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		store = localStore
	}

	// Initialize scraper
	sourceList := flagSources
	if sourceList == "" {
		sourceList = os.Getenv("MATRICULAS_SOURCES")
	}
	sc := scraper.New(scraper.ParseSources(sourceList)...)

	if flagVerbose {
		for _, src := range sc.Sources() {
			fmt.Fprintf(os.Stderr, "Fetching series from %s\n", src.URL)
		}
	}

	// Fetch the current table
	records, err := sc.FetchAll(cmd.Context())
	if err != nil {
		if flagFallbackFile == "" {
			return fmt.Errorf("fetching series: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Scrape failed (%v), using fallback table\n", err)
	}
	if len(records) == 0 && flagFallbackFile != "" {
		records, err = storage.LoadFallback(flagFallbackFile)
		if err != nil {
			return fmt.Errorf("loading fallback table: %w", err)
		}
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Fetched %d table rows\n", len(records))
	}

	// Load previous snapshot
	var previous *series.Snapshot
	if !flagRefresh {
		previous, err = store.LoadSnapshot(flagYear)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}

		if flagVerbose {
			fmt.Fprintf(os.Stderr, "Loaded previous snapshot with %d rows\n", len(previous.Records))
		}
	}

	// Compute diff
	diff := series.Diff(previous, records, flagYear)

	// Save updated snapshot
	if err := store.SnapshotRecords(records, flagYear); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Saved snapshot\n")
	}

	// Prepare output. The snapshot always stores the full scrape; the
	// filter narrows only what gets shown.
	display := diff.NewRecords
	if flagAll {
		display = records
		if flagYear != 0 {
			display = onlyYear(display, flagYear)
		}
	}
	display = f.Apply(display)

	result := &OutputResult{
		CheckedAt:   time.Now().UTC(),
		Sources:     sourceNames(sc.Sources()),
		Records:     display,
		RecordCount: len(display),
		ShowAll:     flagAll,
	}
	if !f.IsEmpty() {
		result.Filter = f.String()
	}
	if len(display) > 0 {
		result.ByYear = groupByYear(display)
	}

	// In refresh mode, don't output new rows
	if flagRefresh {
		if format == FormatText {
			fmt.Println("Snapshot refreshed successfully.")
		} else {
			// Still output JSON but with zero rows
			result.Records = nil
			result.RecordCount = 0
			result.ByYear = nil
			WriteOutput(os.Stdout, result, format, flagVerbose)
		}
		os.Exit(ExitSuccess)
		return nil
	}

	// Write output
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Set exit code based on whether new rows were found
	if len(diff.NewRecords) > 0 {
		os.Exit(ExitNewRecords)
	} else {
		os.Exit(ExitSuccess)
	}

	return nil
}

// onlyYear keeps the rows belonging to one year.
func onlyYear(records []series.Record, year int) []series.Record {
	kept := make([]series.Record, 0, len(records))
	for _, rec := range records {
		if rec.Year == year {
			kept = append(kept, rec)
		}
	}
	return kept
}

// groupByYear buckets rows for the grouped text output.
func groupByYear(records []series.Record) map[int][]series.Record {
	byYear := make(map[int][]series.Record)
	for _, rec := range records {
		byYear[rec.Year] = append(byYear[rec.Year], rec)
	}
	return byYear
}

// sourceNames lists the scrape targets for the output envelope.
func sourceNames(sources []scraper.Source) []string {
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	return names
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
