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
	"github.com/plateseries/matriculas/internal/telegram"
)

var (
	botToken    = flag.String("bot-token", "", "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	chatID      = flag.String("chat-id", "", "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	recordsFile = flag.String("records-file", "", "Path to records JSON file (or read from stdin)")
	dryRun      = flag.Bool("dry-run", false, "Print the digest without sending")
	yearFilter  = flag.Int("year", 0, "Only include series for this year")
)

// readRecords reads the new-series batch from file or stdin
func readRecords(filePath string) ([]series.Record, error) {
	var reader io.Reader
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("opening records file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
			}
		}()
		reader = f
	} else {
		reader = os.Stdin
	}

	var result struct {
		Records []series.Record `json:"records"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	return result.Records, nil
}

func main() {
	// Credentials come from TELEGRAM_* variables, locally via .env.
	_ = godotenv.Load()
	flag.Parse()

	records, err := readRecords(*recordsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading records: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No new series to send")
		os.Exit(0)
	}

	// Filter records by year if specified
	if *yearFilter != 0 {
		filtered := make([]series.Record, 0)
		for _, rec := range records {
			if rec.Year == *yearFilter {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Println("No series match criteria")
		os.Exit(0)
	}

	// Dry run mode
	if *dryRun {
		fmt.Printf("DRY RUN MODE - Would send this digest:\n\n")
		fmt.Println(telegram.FormatDigest(records))
		os.Exit(0)
	}

	// Initialize Telegram client, flags winning over environment
	token := *botToken
	if token == "" {
		token = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	chat := *chatID
	if chat == "" {
		chat = os.Getenv("TELEGRAM_CHAT_ID")
	}

	if token == "" {
		fmt.Fprintf(os.Stderr, "Error: bot token is required (use --bot-token or TELEGRAM_BOT_TOKEN env var)\n")
		os.Exit(1)
	}
	if chat == "" {
		fmt.Fprintf(os.Stderr, "Error: chat ID is required (use --chat-id or TELEGRAM_CHAT_ID env var)\n")
		os.Exit(1)
	}

	tg, err := notifier.NewTelegramNotifier(token, chat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing Telegram client: %v\n", err)
		os.Exit(1)
	}

	// Send one digest for the whole batch
	if err := tg.Notify(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error sending digest: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully sent digest with %d series\n", len(records))
}
