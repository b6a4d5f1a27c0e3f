package series

// Snapshot is the persisted state of the table at a point in time, keyed by
// record identity so lookups during diffing stay O(1).
type Snapshot struct {
	Records   map[string]Record `json:"records"`
	UpdatedAt string            `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Records: make(map[string]Record),
	}
}

// FromRecords builds a snapshot out of an aggregated table.
func FromRecords(records []Record, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for _, rec := range records {
		snap.Records[rec.Key()] = rec
	}
	return snap
}

// Result holds the outcome of comparing a fresh scrape against the previous
// snapshot.
type Result struct {
	// NewRecords are rows present now that the snapshot did not have.
	NewRecords []Record
	// RemovedRecords are rows the snapshot had that the scrape no longer
	// produces, usually because the source page dropped or rewrote them.
	RemovedRecords []Record
	// Years groups the new records by year for digest-style output.
	Years map[int][]Record
}

// Diff compares current records against a previous snapshot. A nil previous
// snapshot means everything is new, which is what a first run wants. When
// yearFilter is non-zero only records from that year are considered.
func Diff(previous *Snapshot, current []Record, yearFilter int) *Result {
	if previous == nil {
		previous = NewSnapshot()
	}

	result := &Result{
		NewRecords:     make([]Record, 0),
		RemovedRecords: make([]Record, 0),
		Years:          make(map[int][]Record),
	}

	currentKeys := make(map[string]bool, len(current))
	for _, rec := range current {
		currentKeys[rec.Key()] = true

		if yearFilter != 0 && rec.Year != yearFilter {
			continue
		}
		if _, seen := previous.Records[rec.Key()]; !seen {
			result.NewRecords = append(result.NewRecords, rec)
		}
	}

	for key, rec := range previous.Records {
		if yearFilter != 0 && rec.Year != yearFilter {
			continue
		}
		if !currentKeys[key] {
			result.RemovedRecords = append(result.RemovedRecords, rec)
		}
	}

	SortCanonical(result.NewRecords)
	SortCanonical(result.RemovedRecords)

	for _, rec := range result.NewRecords {
		result.Years[rec.Year] = append(result.Years[rec.Year], rec)
	}

	return result
}
