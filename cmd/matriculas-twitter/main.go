package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/plateseries/matriculas/internal/notifier"
	"github.com/plateseries/matriculas/internal/series"
)

var (
	recordsFile = flag.String("records-file", "", "Path to records JSON file (or read from stdin)")
	dryRun      = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets   = flag.Int("max-tweets", 10, "Maximum number of tweets to post")
	yearFilter  = flag.Int("year", 0, "Only tweet series for this year")
)

func main() {
	// Credentials come from TWITTER_* variables, locally via .env.
	_ = godotenv.Load()
	flag.Parse()

	// Read records from file or stdin
	var reader io.Reader
	if *recordsFile != "" {
		f, err := os.Open(*recordsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening records file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	// Parse the check output envelope
	var result struct {
		Records []series.Record `json:"records"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(result.Records) == 0 {
		fmt.Println("No new series to tweet")
		os.Exit(0)
	}

	// Filter records by year if specified
	records := result.Records
	if *yearFilter != 0 {
		filtered := make([]series.Record, 0)
		for _, rec := range records {
			if rec.Year == *yearFilter {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	// Limit number of tweets
	if len(records) > *maxTweets {
		records = records[:*maxTweets]
	}

	if len(records) == 0 {
		fmt.Println("No series match criteria")
		os.Exit(0)
	}

	// Initialize Twitter client
	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier()
		fmt.Printf("DRY RUN MODE - Would tweet %d series:\n\n", len(records))
	} else {
		client, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	// Post tweets
	if err := tw.Notify(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d tweets\n", len(records))
	}
}
