package jsonio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/riverrun/contextual-search/internal/index"
)

func TestWriteIndexProducesSortedNestedShape(t *testing.T) {
	ix := index.New()
	ix.Add("zebra", "b.html", 1)
	ix.Add("apple", "a.html", 2)
	ix.Add("apple", "a.html", 1)

	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")
	if err := WriteIndex(ix, path); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var decoded map[string]map[string][]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got := decoded["apple"]["a.html"]; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("apple/a.html positions = %v, want [1 2]", got)
	}
	if string(data[0]) != "{" {
		t.Errorf("output does not start with an object: %q", data[:1])
	}
}

func TestWriteCounts(t *testing.T) {
	ix := index.New()
	ix.Add("a", "loc1", 3)
	ix.Add("a", "loc2", 1)

	dir := t.TempDir()
	path := filepath.Join(dir, "counts.json")
	if err := WriteCounts(ix, path); err != nil {
		t.Fatalf("WriteCounts: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["loc1"] != 3 || decoded["loc2"] != 1 {
		t.Errorf("decoded counts = %v", decoded)
	}
}

func TestWriteResultsFormatsScoreWithEightDecimals(t *testing.T) {
	results := map[string][]index.SearchResult{
		"cat dog": {
			{Location: "a.html", QueryCount: 2, Score: 0.5},
		},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")
	if err := WriteResults(results, path); err != nil {
		t.Fatalf("WriteResults: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var decoded map[string][]struct {
		Where string `json:"where"`
		Count int    `json:"count"`
		Score string `json:"score"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	entries := decoded["cat dog"]
	if len(entries) != 1 {
		t.Fatalf("entries = %v, want 1", entries)
	}
	if entries[0].Score != "0.50000000" {
		t.Errorf("Score = %q, want %q", entries[0].Score, "0.50000000")
	}
	if entries[0].Where != "a.html" || entries[0].Count != 2 {
		t.Errorf("entry = %+v", entries[0])
	}
}
