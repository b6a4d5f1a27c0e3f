package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/plateseries/matriculas/internal/series"
)

const (
	gistAPIURL  = "https://api.github.com/gists"
	gistTimeout = 15 * time.Second
)

// GistStore persists snapshots in a GitHub Gist, so scheduled runs keep
// their diff state between checkouts without a writable data directory.
// File names inside the gist mirror the local snapshot naming.
type GistStore struct {
	gistID      string
	githubToken string
	baseURL     string
	httpClient  *http.Client
}

// NewGistStore creates a Gist-backed snapshot store.
func NewGistStore(gistID, githubToken string) (*GistStore, error) {
	if gistID == "" {
		return nil, fmt.Errorf("gist ID is required")
	}
	if githubToken == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	return &GistStore{
		gistID:      gistID,
		githubToken: githubToken,
		baseURL:     gistAPIURL,
		httpClient: &http.Client{
			Timeout: gistTimeout,
		},
	}, nil
}

// gistFilename returns the gist file for a year, or the combined file when
// year is zero.
func gistFilename(year int) string {
	if year == 0 {
		return "snapshot.json"
	}
	return fmt.Sprintf("snapshot_%d.json", year)
}

// LoadSnapshot retrieves a snapshot from the gist. A gist without the
// snapshot file is a first run and yields an empty snapshot, not an error.
func (g *GistStore) LoadSnapshot(year int) (*series.Snapshot, error) {
	url := fmt.Sprintf("%s/%s", g.baseURL, g.gistID)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Don't include response body in error to prevent token leakage
		return nil, fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}

	var gistResp struct {
		Files map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&gistResp); err != nil {
		return nil, fmt.Errorf("decoding gist response: %w", err)
	}

	file, exists := gistResp.Files[gistFilename(year)]
	if !exists {
		return series.NewSnapshot(), nil
	}

	var snapshot series.Snapshot
	if err := json.Unmarshal([]byte(file.Content), &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Records == nil {
		snapshot.Records = make(map[string]series.Record)
	}

	return &snapshot, nil
}

// SaveSnapshot updates the gist file for the given year, stamping the
// snapshot with the current time.
func (g *GistStore) SaveSnapshot(snapshot *series.Snapshot, year int) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	payload := map[string]interface{}{
		"files": map[string]interface{}{
			gistFilename(year): map[string]string{
				"content": string(data),
			},
		},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s", g.baseURL, g.gistID)

	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("updating gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}

	return nil
}

// SnapshotRecords builds a snapshot from an aggregated table and saves it.
func (g *GistStore) SnapshotRecords(records []series.Record, year int) error {
	snapshot := series.FromRecords(records, time.Now().UTC().Format(time.RFC3339))
	return g.SaveSnapshot(snapshot, year)
}

func (g *GistStore) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("token %s", g.githubToken))
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}
