// Package query implements the query processor: it canonicalizes query
// text, searches the shared index exactly or by prefix, and caches results
// keyed by the canonical query so a repeated query is not recomputed once its
// result has been recorded. Two workers handling the same canonical query at
// the same time may both compute it; the later write replaces the earlier.
package query

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/riverrun/contextual-search/internal/index"
	"github.com/riverrun/contextual-search/internal/textnorm"
	"github.com/riverrun/contextual-search/internal/workqueue"
	"github.com/riverrun/contextual-search/pkg/logger"
	"github.com/riverrun/contextual-search/pkg/metrics"
)

// Processor answers search queries against a shared index and remembers
// results by canonical query string.
type Processor struct {
	index   *index.ThreadSafeIndex
	queue   *workqueue.Queue // nil selects the single-threaded variant
	cache   *Cache           // nil disables the optional Redis-backed tier
	metrics *metrics.Metrics
	log     *slog.Logger

	mu        sync.Mutex
	resultMap map[string][]index.SearchResult
}

// New returns a query processor over idx. queue and cache are both
// optional: a nil queue makes ProcessQueries synchronous, and a nil cache
// means the processor relies solely on its in-process resultMap. m is
// optional; a nil m disables metric reporting.
func New(idx *index.ThreadSafeIndex, queue *workqueue.Queue, cache *Cache, m *metrics.Metrics, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		index:     idx,
		queue:     queue,
		cache:     cache,
		metrics:   m,
		log:       log.With("component", "query"),
		resultMap: make(map[string][]index.SearchResult),
	}
}

// ProcessQuery canonicalizes line, short-circuits if the canonical query is
// already in the result map, and otherwise searches the index and records
// the result. An empty canonical query (no terms survive parsing/stemming)
// is a no-op.
func (p *Processor) ProcessQuery(ctx context.Context, line string, exact bool) {
	canonical := textnorm.Canonicalize(line)
	if canonical == "" {
		return
	}
	ctx = logger.WithUnitID(ctx, canonical)
	log := logger.FromContext(ctx).With("component", "query")

	p.mu.Lock()
	_, exists := p.resultMap[canonical]
	p.mu.Unlock()
	if exists {
		log.Debug("query already in result map, skipping")
		return
	}

	start := time.Now()
	results := p.search(ctx, canonical, exact)
	p.metrics.ObserveQuery(searchMode(exact), time.Since(start), len(results))
	log.Debug("query processed", "exact", exact, "results", len(results))

	p.mu.Lock()
	p.resultMap[canonical] = results
	p.mu.Unlock()
}

// ProcessQueryAsync submits line for processing on the work queue rather
// than blocking the caller. It requires a Processor constructed with a
// non-nil queue.
func (p *Processor) ProcessQueryAsync(ctx context.Context, line string, exact bool) {
	p.queue.Execute(func() error {
		p.ProcessQuery(ctx, line, exact)
		return nil
	})
}

// ProcessQueries processes every line synchronously, in order.
func (p *Processor) ProcessQueries(ctx context.Context, lines []string, exact bool) {
	for _, line := range lines {
		p.ProcessQuery(ctx, line, exact)
	}
}

// ProcessQueriesAsync submits every line to the work queue, then blocks
// until all of them (and anything they enqueue) have completed.
func (p *Processor) ProcessQueriesAsync(ctx context.Context, lines []string, exact bool) {
	for _, line := range lines {
		p.ProcessQueryAsync(ctx, line, exact)
	}
	p.queue.Finish()
}

// Results returns a snapshot of every canonical query processed so far and
// its result list.
func (p *Processor) Results() map[string][]index.SearchResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string][]index.SearchResult, len(p.resultMap))
	for k, v := range p.resultMap {
		out[k] = v
	}
	return out
}

// searchMode names the Prometheus label for the query mode used.
func searchMode(exact bool) string {
	if exact {
		return "exact"
	}
	return "partial"
}

func (p *Processor) search(ctx context.Context, canonical string, exact bool) []index.SearchResult {
	terms := strings.Fields(canonical)
	compute := func() []index.SearchResult {
		return p.index.Search(terms, exact)
	}
	if p.cache == nil {
		return compute()
	}
	return p.cache.GetOrCompute(ctx, canonical, exact, compute)
}
