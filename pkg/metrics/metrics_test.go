package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
)

// New registers every collector against the global default registry, so
// only one test in this package may call it; a second call would panic
// with an AlreadyRegisteredError.
func TestNewRegistersAllCollectorsAndServesThem(t *testing.T) {
	m := New()
	if m.LocationsCrawledTotal == nil || m.CrawlErrorsTotal == nil || m.QueueDepth == nil ||
		m.QueriesTotal == nil || m.QueryLatency == nil || m.QueryResultsCount == nil ||
		m.CacheHitsTotal == nil || m.CacheMissesTotal == nil || m.IndexTermsTotal == nil {
		t.Fatal("New() returned a Metrics with a nil collector field")
	}

	m.LocationsCrawledTotal.Inc()
	m.IndexTermsTotal.Set(42)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, "locations_crawled_total") {
		t.Errorf("scrape output missing locations_crawled_total: %s", body)
	}
	if !strings.Contains(body, "index_terms_total 42") {
		t.Errorf("scrape output missing updated index_terms_total gauge: %s", body)
	}
}
