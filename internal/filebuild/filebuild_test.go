package filebuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riverrun/contextual-search/internal/index"
)

func TestIsTextFile(t *testing.T) {
	cases := map[string]bool{
		"notes.txt":  true,
		"notes.TEXT": true,
		"notes.text": true,
		"notes.md":   false,
		"notes":      false,
	}
	for name, want := range cases {
		if got := IsTextFile(name); got != want {
			t.Errorf("IsTextFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestTextFilesWalksRecursively(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "hello")
	mustWriteFile(t, filepath.Join(root, "skip.md"), "ignored")
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWriteFile(t, filepath.Join(sub, "b.text"), "world")

	files, err := TextFiles(root)
	if err != nil {
		t.Fatalf("TextFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("TextFiles returned %d files, want 2: %v", len(files), files)
	}
}

func TestBuilderMergesFilesIntoSharedIndex(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "doc.txt"), "running dogs")

	idx := index.NewThreadSafe()
	b := New(idx, nil, nil, nil)
	if err := b.Build(context.Background(), root); err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !idx.HasTerm("run") {
		t.Errorf("expected stemmed term %q to be indexed", "run")
	}
	if !idx.HasTerm("dog") {
		t.Errorf("expected stemmed term %q to be indexed", "dog")
	}
}

func mustWriteFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
