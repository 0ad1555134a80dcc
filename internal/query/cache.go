package query

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/riverrun/contextual-search/internal/index"
	"github.com/riverrun/contextual-search/pkg/metrics"
	pkgredis "github.com/riverrun/contextual-search/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "query:"

// Cache is an optional Redis-backed tier in front of the query processor's
// in-process resultMap. A singleflight.Group collapses concurrent requests
// for the same canonical query into a single index search.
type Cache struct {
	client  *pkgredis.Client
	ttl     time.Duration
	group   singleflight.Group
	log     *slog.Logger
	metrics *metrics.Metrics
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache returns a cache backed by client, with entries expiring after
// ttl. m is optional; a nil m disables metric reporting.
func NewCache(client *pkgredis.Client, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		metrics: m,
		log:     slog.Default().With("component", "query-cache"),
	}
}

// GetOrCompute returns the cached result list for (canonical, exact) if
// present, otherwise computes it once — even under concurrent callers for
// the same key — stores it, and returns it.
func (c *Cache) GetOrCompute(ctx context.Context, canonical string, exact bool, compute func() []index.SearchResult) []index.SearchResult {
	if results, ok := c.get(ctx, canonical, exact); ok {
		return results
	}
	key := c.buildKey(canonical, exact)
	val, _, _ := c.group.Do(key, func() (interface{}, error) {
		if results, ok := c.get(ctx, canonical, exact); ok {
			return results, nil
		}
		results := compute()
		c.set(ctx, canonical, exact, results)
		return results, nil
	})
	return val.([]index.SearchResult)
}

func (c *Cache) get(ctx context.Context, canonical string, exact bool) ([]index.SearchResult, bool) {
	key := c.buildKey(canonical, exact)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		c.misses.Add(1)
		c.metrics.IncCacheMiss()
		if !pkgredis.IsNilError(err) {
			c.log.Error("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	var results []index.SearchResult
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.log.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		c.metrics.IncCacheMiss()
		return nil, false
	}
	c.hits.Add(1)
	c.metrics.IncCacheHit()
	return results, true
}

func (c *Cache) set(ctx context.Context, canonical string, exact bool, results []index.SearchResult) {
	key := c.buildKey(canonical, exact)
	data, err := json.Marshal(results)
	if err != nil {
		c.log.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Error("cache set failed", "key", key, "error", err)
	}
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) buildKey(canonical string, exact bool) string {
	raw := fmt.Sprintf("%s|exact=%t", canonical, exact)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
