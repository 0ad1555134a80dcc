// Package filebuild implements the supplementary text-file indexing path:
// recursively discovering ".txt"/".text" files under a root path and
// merging each file's stemmed contents into the shared index, one file per
// work-queue task.
package filebuild

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/riverrun/contextual-search/internal/index"
	"github.com/riverrun/contextual-search/internal/textnorm"
	"github.com/riverrun/contextual-search/internal/workqueue"
	"github.com/riverrun/contextual-search/pkg/metrics"
)

// IsTextFile reports whether path names a file ending in ".txt" or ".text",
// case-insensitively.
func IsTextFile(path string) bool {
	lower := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(lower, ".txt") || strings.HasSuffix(lower, ".text")
}

// TextFiles recursively walks root, returning every text file found. If
// root itself is a file, it is returned alone when it qualifies.
func TextFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if IsTextFile(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsTextFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Builder merges text files under a root path into a shared, thread-safe
// index. A nil queue makes Build synchronous; a non-nil queue parses one
// file per worker and Build blocks until every file has been merged.
type Builder struct {
	index   *index.ThreadSafeIndex
	queue   *workqueue.Queue
	metrics *metrics.Metrics
	log     *slog.Logger
}

// New returns a Builder that merges into idx, optionally fanning file
// parsing out across queue. m is optional; a nil m disables metric
// reporting.
func New(idx *index.ThreadSafeIndex, queue *workqueue.Queue, m *metrics.Metrics, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{index: idx, queue: queue, metrics: m, log: log.With("component", "filebuild")}
}

// Build discovers every text file under root and merges each into the
// shared index, keyed by its path.
func (b *Builder) Build(ctx context.Context, root string) error {
	files, err := TextFiles(root)
	if err != nil {
		return err
	}

	if b.queue == nil {
		for _, path := range files {
			b.parse(path)
		}
		b.metrics.SetIndexTerms(b.index.NumTerms())
		return nil
	}

	for _, path := range files {
		path := path
		b.queue.Execute(func() error {
			b.parse(path)
			return nil
		})
	}
	b.queue.Finish()
	b.metrics.SetIndexTerms(b.index.NumTerms())
	return nil
}

// parse reads a single file into a private local index, then merges it
// into the shared index as one write-lock critical section. Read failures
// are logged and skipped, matching the crawler's best-effort handling of
// unreadable locations.
func (b *Builder) parse(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.log.Warn("failed to read file", "path", path, "error", err)
		return
	}

	words := textnorm.ParseAndStem(string(data))
	local := index.New()
	for i, word := range words {
		local.Add(word, path, i+1)
	}

	if err := b.index.AddAll(local); err != nil {
		b.log.Error("merging local index failed", "path", path, "error", err)
	}
}
