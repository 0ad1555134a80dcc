package index

import (
	"sync"
	"testing"
)

func TestThreadSafeIndexConcurrentWriters(t *testing.T) {
	idx := NewThreadSafe()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			idx.Add("term", "loc", n+1)
		}(i)
	}
	wg.Wait()

	if got := idx.NumPositions("term", "loc"); got != 50 {
		t.Errorf("NumPositions = %d, want 50", got)
	}
}

func TestThreadSafeIndexAddAllAndSearch(t *testing.T) {
	idx := NewThreadSafe()
	local := New()
	local.Add("cat", "a.html", 1)
	local.Add("dog", "a.html", 2)

	if err := idx.AddAll(local); err != nil {
		t.Fatalf("AddAll: %v", err)
	}

	results := idx.Search([]string{"cat"}, true)
	if len(results) != 1 || results[0].Location != "a.html" {
		t.Errorf("Search = %+v, want one result for a.html", results)
	}
}

func TestThreadSafeIndexSnapshotIsIndependent(t *testing.T) {
	idx := NewThreadSafe()
	idx.Add("term", "loc", 1)

	snap := idx.Snapshot()
	idx.Add("term", "loc", 2)

	if got := snap.NumPositions("term", "loc"); got != 1 {
		t.Errorf("snapshot changed after further writes: NumPositions = %d, want 1", got)
	}
	if got := idx.NumPositions("term", "loc"); got != 2 {
		t.Errorf("live index NumPositions = %d, want 2", got)
	}
}
