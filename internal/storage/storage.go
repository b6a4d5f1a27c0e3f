package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plateseries/matriculas/internal/series"
)

// DefaultDataDir is where snapshots live unless the caller overrides it.
const DefaultDataDir = "~/.local/share/matriculas"

// Storage handles persistence of table snapshots and fallback tables.
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, expanding a leading ~ and
// creating the directory when missing.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// snapshotPath returns the snapshot file for a year, or the combined file
// when year is zero.
func (s *Storage) snapshotPath(year int) string {
	if year == 0 {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, fmt.Sprintf("snapshot_%d.json", year))
}

// LoadSnapshot loads a snapshot from disk. A missing file is a first run
// and yields an empty snapshot, not an error.
func (s *Storage) LoadSnapshot(year int) (*series.Snapshot, error) {
	path := s.snapshotPath(year)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return series.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot series.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snapshot.Records == nil {
		snapshot.Records = make(map[string]series.Record)
	}

	return &snapshot, nil
}

// SaveSnapshot writes a snapshot to disk, stamping it with the current time.
func (s *Storage) SaveSnapshot(snapshot *series.Snapshot, year int) error {
	path := s.snapshotPath(year)

	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// SnapshotRecords builds a snapshot from an aggregated table and saves it.
func (s *Storage) SnapshotRecords(records []series.Record, year int) error {
	snapshot := series.FromRecords(records, time.Now().UTC().Format(time.RFC3339))
	return s.SaveSnapshot(snapshot, year)
}

// LoadFallback reads a static table from path: a JSON array of records in
// the output shape. Records are re-normalized on the way in so hand-edited
// files dedup against scraped data. Unlike snapshots, a missing fallback
// file is an error; callers name it explicitly.
func LoadFallback(path string) ([]series.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fallback table: %w", err)
	}

	var records []series.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing fallback table: %w", err)
	}

	for i, rec := range records {
		records[i].Month = series.CanonicalMonth(rec.Month)
		records[i].End = series.NormalizeEnd(rec.End)
	}
	return records, nil
}
