package series

import "sort"

// Aggregate merges record batches from any number of sources into a single
// deduplicated table. Series ends are re-normalized so externally supplied
// batches (fallback files, older snapshots) collapse onto the same keys as
// freshly scraped records. When two records share a key the one from the
// later batch wins. The result is always non-nil and canonically sorted.
func Aggregate(batches ...[]Record) []Record {
	merged := make(map[string]Record)
	for _, batch := range batches {
		for _, rec := range batch {
			rec.End = NormalizeEnd(rec.End)
			merged[rec.Key()] = rec
		}
	}

	out := make([]Record, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	SortCanonical(out)
	return out
}

// SortCanonical orders records by year, then by calendar month with
// unresolved months first, then by series end so equal tables always render
// identically.
func SortCanonical(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		mi, mj := MonthIndex(records[i].Month), MonthIndex(records[j].Month)
		if mi != mj {
			return mi < mj
		}
		return records[i].End < records[j].End
	})
}
