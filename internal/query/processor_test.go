package query

import (
	"context"
	"testing"

	"github.com/riverrun/contextual-search/internal/index"
)

func buildTestIndex() *index.ThreadSafeIndex {
	idx := index.NewThreadSafe()
	idx.Add("cat", "a.html", 1)
	idx.Add("dog", "a.html", 2)
	idx.Add("category", "b.html", 1)
	return idx
}

func TestProcessQuerySingleThreaded(t *testing.T) {
	p := New(buildTestIndex(), nil, nil, nil, nil)
	p.ProcessQuery(context.Background(), "Cats", true)

	results := p.Results()
	canonical := "cat"
	got, ok := results[canonical]
	if !ok {
		t.Fatalf("Results() missing canonical query %q: %v", canonical, results)
	}
	if len(got) != 1 || got[0].Location != "a.html" {
		t.Errorf("results = %+v, want one match for a.html", got)
	}
}

func TestProcessQueryEmptyCanonicalIsNoOp(t *testing.T) {
	p := New(buildTestIndex(), nil, nil, nil, nil)
	p.ProcessQuery(context.Background(), "!!!", true)

	if len(p.Results()) != 0 {
		t.Errorf("Results() = %v, want empty", p.Results())
	}
}

func TestProcessQuerySkipsAlreadyComputedCanonical(t *testing.T) {
	idx := buildTestIndex()
	p := New(idx, nil, nil, nil, nil)

	p.ProcessQuery(context.Background(), "cat", true)
	idx.Add("cat", "c.html", 1) // mutate the index after the first query

	p.ProcessQuery(context.Background(), "cat", true) // same canonical query again

	results := p.Results()["cat"]
	for _, r := range results {
		if r.Location == "c.html" {
			t.Error("second ProcessQuery call recomputed a query already in the result map")
		}
	}
}

func TestProcessQueriesProcessesEveryLine(t *testing.T) {
	p := New(buildTestIndex(), nil, nil, nil, nil)
	p.ProcessQueries(context.Background(), []string{"cat", "dog", ""}, true)

	results := p.Results()
	if _, ok := results["cat"]; !ok {
		t.Error("missing results for 'cat'")
	}
	if _, ok := results["dog"]; !ok {
		t.Error("missing results for 'dog'")
	}
	if len(results) != 2 {
		t.Errorf("Results() has %d entries, want 2 (empty query is a no-op): %v", len(results), results)
	}
}

func TestProcessQueryPartialSearch(t *testing.T) {
	p := New(buildTestIndex(), nil, nil, nil, nil)
	p.ProcessQuery(context.Background(), "cat", false)

	results := p.Results()["cat"]
	if len(results) != 2 {
		t.Fatalf("partial search results = %+v, want matches for both a.html and b.html", results)
	}
}
