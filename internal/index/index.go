// Package index implements the inverted index described by the engine: a
// three-level mapping term -> location -> set of positions, plus a
// location -> word-count map used for scoring. Index itself is not safe for
// concurrent use; ThreadSafeIndex (threadsafe.go) wraps it with the
// reader/writer lock for shared access.
package index

import "sort"

// Index is the single-threaded core of the inverted index.
type Index struct {
	terms  map[string]map[string]map[int]struct{}
	counts map[string]int
}

// New returns an empty index.
func New() *Index {
	return &Index{
		terms:  make(map[string]map[string]map[int]struct{}),
		counts: make(map[string]int),
	}
}

// Add records that term occurs at location at the given 1-based position.
// Creates intermediate maps as needed and raises the location's recorded
// word count to position if that is higher than any position seen before.
// Callers are responsible for ensuring position >= 1; this mirrors the
// non-error precondition of the original design rather than a validated
// runtime input.
func (ix *Index) Add(term, location string, position int) {
	locs, ok := ix.terms[term]
	if !ok {
		locs = make(map[string]map[int]struct{})
		ix.terms[term] = locs
	}
	positions, ok := locs[location]
	if !ok {
		positions = make(map[int]struct{})
		locs[location] = positions
	}
	positions[position] = struct{}{}

	if position > ix.counts[location] {
		ix.counts[location] = position
	}
}

// AddAll merges every term/location/position triple from other into ix, and
// raises each location's word count to the maximum of the two indexes'
// counts. other is left unmodified and is safe to discard afterward.
func (ix *Index) AddAll(other *Index) {
	for term, otherLocs := range other.terms {
		locs, ok := ix.terms[term]
		if !ok {
			locs = make(map[string]map[int]struct{})
			ix.terms[term] = locs
		}
		for location, otherPositions := range otherLocs {
			positions, ok := locs[location]
			if !ok {
				positions = make(map[int]struct{})
				locs[location] = positions
			}
			for p := range otherPositions {
				positions[p] = struct{}{}
			}
		}
	}
	for location, count := range other.counts {
		if count > ix.counts[location] {
			ix.counts[location] = count
		}
	}
}

// HasTerm reports whether term has ever been added to the index.
func (ix *Index) HasTerm(term string) bool {
	_, ok := ix.terms[term]
	return ok
}

// HasLocation reports whether term has been recorded at location.
func (ix *Index) HasLocation(term, location string) bool {
	locs, ok := ix.terms[term]
	if !ok {
		return false
	}
	_, ok = locs[location]
	return ok
}

// HasPosition reports whether term was recorded at location at position.
func (ix *Index) HasPosition(term, location string, position int) bool {
	locs, ok := ix.terms[term]
	if !ok {
		return false
	}
	positions, ok := locs[location]
	if !ok {
		return false
	}
	_, ok = positions[position]
	return ok
}

// NumTerms returns the number of distinct terms in the index.
func (ix *Index) NumTerms() int {
	return len(ix.terms)
}

// NumLocations returns the number of locations recorded for term.
func (ix *Index) NumLocations(term string) int {
	return len(ix.terms[term])
}

// NumPositions returns the number of positions recorded for term at
// location.
func (ix *Index) NumPositions(term, location string) int {
	return len(ix.terms[term][location])
}

// Terms returns every term in the index, sorted.
func (ix *Index) Terms() []string {
	out := make([]string, 0, len(ix.terms))
	for t := range ix.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Locations returns every location recorded for term, sorted.
func (ix *Index) Locations(term string) []string {
	locs := ix.terms[term]
	out := make([]string, 0, len(locs))
	for l := range locs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Positions returns every position recorded for term at location, sorted
// ascending.
func (ix *Index) Positions(term, location string) []int {
	positions := ix.terms[term][location]
	out := make([]int, 0, len(positions))
	for p := range positions {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// LocationCounts returns a copy of the location -> word-count map.
func (ix *Index) LocationCounts() map[string]int {
	out := make(map[string]int, len(ix.counts))
	for k, v := range ix.counts {
		out[k] = v
	}
	return out
}

// LocationCount returns the recorded word count for location, or 0 if the
// location has never been seen.
func (ix *Index) LocationCount(location string) int {
	return ix.counts[location]
}

// Search dispatches to ExactSearch or PartialSearch.
func (ix *Index) Search(query []string, exact bool) []SearchResult {
	if exact {
		return ix.ExactSearch(query)
	}
	return ix.PartialSearch(query)
}

// ExactSearch returns a result for every location where at least one query
// term appears exactly, sorted per the defined ordering.
func (ix *Index) ExactSearch(query []string) []SearchResult {
	lookup := make(map[string]*SearchResult)
	var order []*SearchResult
	for _, term := range query {
		if _, ok := ix.terms[term]; !ok {
			continue
		}
		ix.accumulate(term, lookup, &order)
	}
	return finalizeResults(order)
}

// PartialSearch returns a result for every location where at least one
// indexed term has a query term as a prefix, sorted per the defined
// ordering.
func (ix *Index) PartialSearch(query []string) []SearchResult {
	sortedTerms := ix.Terms()
	lookup := make(map[string]*SearchResult)
	var order []*SearchResult
	for _, prefix := range query {
		start := sort.SearchStrings(sortedTerms, prefix)
		for i := start; i < len(sortedTerms); i++ {
			term := sortedTerms[i]
			if len(term) < len(prefix) || term[:len(prefix)] != prefix {
				break
			}
			ix.accumulate(term, lookup, &order)
		}
	}
	return finalizeResults(order)
}

// accumulate folds every location under term into lookup/order: a new
// SearchResult is appended on first sighting of a location and updated in
// place on subsequent sightings, whether from the same term or a later one.
func (ix *Index) accumulate(term string, lookup map[string]*SearchResult, order *[]*SearchResult) {
	for location, positions := range ix.terms[term] {
		if r, ok := lookup[location]; ok {
			r.update(len(positions), ix.counts[location])
			continue
		}
		r := &SearchResult{Location: location}
		r.update(len(positions), ix.counts[location])
		lookup[location] = r
		*order = append(*order, r)
	}
}

func finalizeResults(order []*SearchResult) []SearchResult {
	results := make([]SearchResult, len(order))
	for i, r := range order {
		results[i] = *r
	}
	sortResults(results)
	return results
}
