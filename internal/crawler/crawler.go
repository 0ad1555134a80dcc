// Package crawler implements the bounded-BFS web crawler: starting from a
// seed URL, it fetches pages, extracts links, and merges each page's
// stemmed text into the shared inverted index, stopping once a configured
// number of distinct locations have been discovered.
package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/riverrun/contextual-search/internal/fetch"
	"github.com/riverrun/contextual-search/internal/htmlclean"
	"github.com/riverrun/contextual-search/internal/index"
	"github.com/riverrun/contextual-search/internal/linkextract"
	"github.com/riverrun/contextual-search/internal/textnorm"
	"github.com/riverrun/contextual-search/internal/workqueue"
	"github.com/riverrun/contextual-search/pkg/logger"
	"github.com/riverrun/contextual-search/pkg/metrics"
)

// maxRedirects is the fixed redirect budget given to every page fetch.
const maxRedirects = 3

// EventPublisher is notified after a page's local index is merged into the
// shared index. It is optional; a nil EventPublisher disables publishing.
type EventPublisher interface {
	PublishIndexed(ctx context.Context, location string, wordCount int)
}

// Crawler expands outward from a seed URL, bounded by limit distinct
// locations, merging each page's contribution into a shared index.
type Crawler struct {
	index   *index.ThreadSafeIndex
	queue   *workqueue.Queue
	limit   int
	events  EventPublisher
	metrics *metrics.Metrics
	log     *slog.Logger

	visitedMu sync.Mutex
	visited   map[string]struct{}
}

// New returns a crawler bounded to limit distinct locations, using queue to
// schedule per-page workers and merging results into idx. m is optional;
// a nil m disables metric reporting.
func New(idx *index.ThreadSafeIndex, queue *workqueue.Queue, limit int, events EventPublisher, m *metrics.Metrics, log *slog.Logger) *Crawler {
	if log == nil {
		log = slog.Default()
	}
	return &Crawler{
		index:   idx,
		queue:   queue,
		limit:   limit,
		events:  events,
		metrics: m,
		log:     log.With("component", "crawler"),
		visited: make(map[string]struct{}),
	}
}

// Crawl canonicalizes seed, marks it visited, submits the first worker, and
// blocks until the queue has drained — the only correct termination signal
// since workers enqueue further workers as they discover links.
func (c *Crawler) Crawl(ctx context.Context, seed string) error {
	u, err := url.Parse(seed)
	if err != nil {
		return err
	}
	canonical := linkextract.Canonicalize(u)
	c.log.Info("crawl starting", "seed", canonical.String(), "limit", c.limit)

	c.visitedMu.Lock()
	c.visited[canonical.String()] = struct{}{}
	c.visitedMu.Unlock()

	c.queue.Execute(c.workerFor(ctx, canonical))
	c.queue.Finish()
	c.log.Info("crawl finished", "locations_visited", len(c.visited))
	return nil
}

// workerFor returns the task that fetches, parses, and indexes a single
// page, discovering and scheduling its outbound links along the way.
func (c *Crawler) workerFor(ctx context.Context, u *url.URL) workqueue.Task {
	return func() error {
		location := u.String()
		ctx := logger.WithUnitID(ctx, location)
		log := logger.FromContext(ctx).With("component", "crawler")

		body, ok := fetch.Fetch(location, maxRedirects)
		if !ok {
			c.metrics.IncCrawlError("fetch")
			log.Debug("fetch failed or returned non-HTML content")
			return nil
		}

		blockStripped := htmlclean.StripBlockElements(body)
		for _, link := range linkextract.ListLinks(u, blockStripped) {
			c.scheduleIfRoom(ctx, link)
		}

		text := htmlclean.StripEntities(htmlclean.StripTags(blockStripped))
		words := textnorm.ParseAndStem(text)

		local := index.New()
		for i, word := range words {
			local.Add(word, location, i+1)
		}

		if err := c.index.AddAll(local); err != nil {
			c.metrics.IncCrawlError("index")
			log.Error("merging local index failed", "error", err)
			return err
		}
		c.metrics.IncLocationsCrawled()
		c.metrics.SetIndexTerms(c.index.NumTerms())

		if c.events != nil {
			c.events.PublishIndexed(ctx, location, len(words))
		}
		return nil
	}
}

// scheduleIfRoom inserts link into the visited set — under one critical
// section covering both the size check and the insert — and, if it was
// newly inserted and the limit has not been reached, submits a worker.
func (c *Crawler) scheduleIfRoom(ctx context.Context, link *url.URL) {
	key := link.String()

	c.visitedMu.Lock()
	if len(c.visited) >= c.limit {
		c.visitedMu.Unlock()
		return
	}
	_, already := c.visited[key]
	if !already {
		c.visited[key] = struct{}{}
	}
	c.visitedMu.Unlock()

	if !already {
		c.queue.Execute(c.workerFor(ctx, link))
	}
}
