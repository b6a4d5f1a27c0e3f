package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/plateseries/matriculas/internal/logger"
	"github.com/plateseries/matriculas/internal/series"
)

const (
	// DefaultSourceURL is the tracker scraped when no sources are
	// configured explicitly.
	DefaultSourceURL = "https://www.matriculasdelmundo.com/espana.html"
	UserAgent        = "matriculas-cli/1.0 (github.com/plateseries/matriculas)"
	Timeout          = 15 * time.Second

	// maxRetries bounds the exponential backoff around each source fetch.
	maxRetries = 3
)

// Source is one scrape target.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultSources returns the built-in source list.
func DefaultSources() []Source {
	return []Source{
		{Name: "matriculasdelmundo", URL: DefaultSourceURL},
	}
}

// ParseSources turns a comma-separated URL list, as carried by the
// MATRICULAS_SOURCES environment variable, into sources named after their
// hosts. Blank entries are skipped.
func ParseSources(list string) []Source {
	sources := make([]Source, 0)
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		name := raw
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			name = u.Host
		}
		sources = append(sources, Source{Name: name, URL: raw})
	}
	return sources
}

// Scraper fetches the configured sources and merges whatever each page
// yields into one plate-series table.
type Scraper struct {
	client    *http.Client
	rows      RowSource
	sources   []Source
	retryWait time.Duration
}

// New creates a Scraper for the given sources, falling back to the
// built-in list when none are given.
func New(sources ...Source) *Scraper {
	if len(sources) == 0 {
		sources = DefaultSources()
	}
	return &Scraper{
		client:    &http.Client{Timeout: Timeout},
		rows:      GoqueryRows{},
		sources:   sources,
		retryWait: 500 * time.Millisecond,
	}
}

// Sources returns the scrape targets this instance was configured with.
func (s *Scraper) Sources() []Source {
	return s.sources
}

// FetchAll scrapes every configured source and merges the results into one
// canonically ordered table. A source that fails after retries contributes
// nothing; the error is non-nil only when every source failed.
func (s *Scraper) FetchAll(ctx context.Context) ([]series.Record, error) {
	batches := make([][]series.Record, 0, len(s.sources))
	failed := 0
	var lastErr error

	for _, src := range s.sources {
		start := time.Now()
		body, err := s.fetchPage(ctx, src)
		if err != nil {
			// Keep going: one broken source should not kill the pass.
			logger.Error("source fetch failed", logger.Fields{
				"source": src.Name,
				"url":    src.URL,
			}, err)
			logger.IncrCounter("scraper.fetch_errors")
			failed++
			lastErr = err
			continue
		}
		logger.RecordTiming("scraper.fetch", time.Since(start))

		records := s.Parse(body)
		logger.Debug("source parsed", logger.Fields{
			"source":  src.Name,
			"records": len(records),
		})
		batches = append(batches, records)
	}

	if len(s.sources) > 0 && failed == len(s.sources) {
		return series.Aggregate(), fmt.Errorf("all %d sources failed: %w", failed, lastErr)
	}
	return series.Aggregate(batches...), nil
}

// Parse extracts records from one page body, trying the structural pass
// first and falling back to the text pass only when the tables yield
// nothing.
func (s *Scraper) Parse(html string) []series.Record {
	records := ScanRows(s.rows, html)
	if len(records) == 0 {
		records = ScanText(html)
	}
	return records
}

// fetchPage downloads one source with exponential backoff. Client errors
// and 4xx responses are permanent; everything else is retried up to
// maxRetries times.
func (s *Scraper) fetchPage(ctx context.Context, src Source) (string, error) {
	var body string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryWait

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
	if err != nil {
		return "", err
	}
	return body, nil
}
