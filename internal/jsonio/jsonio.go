// Package jsonio serializes the inverted index, its location counts, and
// query results to the three deterministic "pretty" JSON shapes: tab
// indentation, a newline after every element, and keys sorted
// lexicographically. Callers are responsible for holding the appropriate
// lock or operating on a private snapshot; the serializer itself performs
// no synchronization.
package jsonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/riverrun/contextual-search/internal/index"
)

// score formats as a quoted fixed-point string with exactly 8 fractional
// digits, matching the required result shape.
type score float64

func (s score) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", fmt.Sprintf("%.8f", float64(s)))), nil
}

type resultEntry struct {
	Where string `json:"where"`
	Count int    `json:"count"`
	Score score  `json:"score"`
}

// WriteIndex writes ix's term -> location -> positions mapping to path as
// pretty JSON.
func WriteIndex(ix *index.Index, path string) error {
	out := make(map[string]map[string][]int)
	for _, term := range ix.Terms() {
		locs := make(map[string][]int)
		for _, location := range ix.Locations(term) {
			locs[location] = ix.Positions(term, location)
		}
		out[term] = locs
	}
	return writePretty(path, out)
}

// WriteCounts writes ix's location -> word-count mapping to path as pretty
// JSON.
func WriteCounts(ix *index.Index, path string) error {
	return writePretty(path, ix.LocationCounts())
}

// WriteResults writes a query -> ranked-result-list mapping to path as
// pretty JSON. results must already be keyed by canonical query string.
func WriteResults(results map[string][]index.SearchResult, path string) error {
	out := make(map[string][]resultEntry, len(results))
	for query, rs := range results {
		entries := make([]resultEntry, len(rs))
		for i, r := range rs {
			entries[i] = resultEntry{Where: r.Location, Count: r.QueryCount, Score: score(r.Score)}
		}
		out[query] = entries
	}
	return writePretty(path, out)
}

// writePretty marshals v with tab indentation and writes it to path,
// terminated with a trailing newline. encoding/json already sorts
// map[string]V keys lexicographically on marshal, so no separate key
// ordering step is needed.
func writePretty(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "\t")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
