package report

import (
	"fmt"
	"sort"
)

// Count is a labelled tally. Slug is set for article counts.
type Count struct {
	Key   string
	Slug  string
	Value int
}

// SortCounts orders counts by descending Value. The sort is stable, so equal
// counts keep their existing (first-encounter) order.
func SortCounts(counts []Count) {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Value > counts[j].Value
	})
}

// TopCounts returns the first n counts formatted as "key:value"
// (e.g. "text-processing:12").
func TopCounts(counts []Count, n int) []string {
	limit := n
	if len(counts) < n {
		limit = len(counts)
	}
	if limit < 0 {
		limit = 0
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = fmt.Sprintf("%s:%d", counts[i].Key, counts[i].Value)
	}
	return out
}
