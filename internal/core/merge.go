package core

import (
	"sort"
)

// MergeRecords unions existing and incoming records, deduplicates by ID
// (last write wins) and returns the result sorted ascending by timestamp.
// Neither input slice is modified. The operation is idempotent: merging the
// same batch twice yields the same table as merging it once.
func MergeRecords(existing, incoming []*EmailRecord) []*EmailRecord {
	merged := make([]*EmailRecord, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, batch := range [][]*EmailRecord{existing, incoming} {
		for _, r := range batch {
			if i, ok := index[r.ID]; ok {
				merged[i] = r
				continue
			}
			index[r.ID] = len(merged)
			merged = append(merged, r)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})

	return merged
}
