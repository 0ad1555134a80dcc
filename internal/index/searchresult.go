package index

import (
	"sort"
	"strings"
)

// SearchResult is a single location matched by a query: how many of the
// query's positions occurred there, and the resulting score.
type SearchResult struct {
	Location   string
	QueryCount int
	Score      float64
}

// update folds in another matched term at this result's location: adds its
// position count to QueryCount and recomputes Score against locationCount.
func (r *SearchResult) update(positionCount, locationCount int) {
	r.QueryCount += positionCount
	r.Score = float64(r.QueryCount) / float64(locationCount)
}

// sortResults orders results by score descending, then query count
// descending, then location ascending case-insensitively.
func sortResults(results []SearchResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.QueryCount != b.QueryCount {
			return a.QueryCount > b.QueryCount
		}
		return strings.ToLower(a.Location) < strings.ToLower(b.Location)
	})
}
