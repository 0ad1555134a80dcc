// Package metrics defines the Prometheus metric collectors exposed by the
// engine and serves them over HTTP for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the crawler, work queue, and
// query processor.
type Metrics struct {
	LocationsCrawledTotal prometheus.Counter
	CrawlErrorsTotal      *prometheus.CounterVec
	QueueDepth            prometheus.Gauge
	QueriesTotal          *prometheus.CounterVec
	QueryLatency          *prometheus.HistogramVec
	QueryResultsCount     prometheus.Histogram
	CacheHitsTotal        prometheus.Counter
	CacheMissesTotal      prometheus.Counter
	IndexTermsTotal       prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		LocationsCrawledTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "locations_crawled_total",
				Help: "Total locations successfully fetched and merged into the index.",
			},
		),
		CrawlErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawl_errors_total",
				Help: "Total crawl task failures by kind.",
			},
			[]string{"kind"},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "work_queue_pending",
				Help: "Number of tasks currently pending on the shared work queue.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queries_total",
				Help: "Total queries processed by search mode (exact, partial).",
			},
			[]string{"mode"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "query_latency_seconds",
				Help:    "Query processing latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"mode"},
		),
		QueryResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "query_results_count",
				Help:    "Number of results returned per query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "query_cache_hits_total",
				Help: "Total query-cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "query_cache_misses_total",
				Help: "Total query-cache misses.",
			},
		),
		IndexTermsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_terms_total",
				Help: "Number of distinct terms currently in the shared index.",
			},
		),
	}

	prometheus.MustRegister(
		m.LocationsCrawledTotal,
		m.CrawlErrorsTotal,
		m.QueueDepth,
		m.QueriesTotal,
		m.QueryLatency,
		m.QueryResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.IndexTermsTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Every method below is nil-receiver-safe, mirroring internal/events'
// Publisher: callers pass around a *Metrics that is nil when metrics are
// disabled in the configuration, and every call site stays unconditional.

// IncLocationsCrawled records one more location successfully fetched and
// merged into the index.
func (m *Metrics) IncLocationsCrawled() {
	if m == nil {
		return
	}
	m.LocationsCrawledTotal.Inc()
}

// IncCrawlError records a crawl task failure of the given kind (e.g.
// "fetch", "index").
func (m *Metrics) IncCrawlError(kind string) {
	if m == nil {
		return
	}
	m.CrawlErrorsTotal.WithLabelValues(kind).Inc()
}

// SetQueueDepth reports the current number of pending-or-running tasks on
// a work queue.
func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(depth))
}

// ObserveQuery records that a query in the given mode ("exact" or
// "partial") completed in latency, returning resultCount results.
func (m *Metrics) ObserveQuery(mode string, latency time.Duration, resultCount int) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(mode).Inc()
	m.QueryLatency.WithLabelValues(mode).Observe(latency.Seconds())
	m.QueryResultsCount.Observe(float64(resultCount))
}

// IncCacheHit records a query-cache hit.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

// IncCacheMiss records a query-cache miss.
func (m *Metrics) IncCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

// SetIndexTerms reports the current number of distinct terms in the
// shared index.
func (m *Metrics) SetIndexTerms(n int) {
	if m == nil {
		return
	}
	m.IndexTermsTotal.Set(float64(n))
}
