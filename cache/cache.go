/*
Package cache provides the TTL-gated store for live feed snapshots.

The store backend is an interface so tests can swap in memory and
deployments can choose between a cache directory and an embedded SQLite
database. Only the FeedCache wrapper knows about TTLs and fetching; stores
just persist named entries.

The store is not designed for concurrent multi-process access: a stale-TTL
check followed by a Put is not atomic across processes sharing one backend.
Within one process, FeedCache serializes access per call.
*/
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/theoremus-urban-solutions/stop-departures/metrics"
)

// DefaultTTL is how long a stored feed snapshot stays valid.
const DefaultTTL = 5 * time.Minute

// ErrNotFound marks a missing cache entry. Corrupt entries are reported
// the same way: both are a miss.
var ErrNotFound = errors.New("cache entry not found")

// Entry is one persisted feed snapshot.
type Entry struct {
	CachedTime time.Time `json:"cached_time"`
	Payload    []byte    `json:"payload"`
}

// Store persists entries keyed by feed name.
type Store interface {
	Get(name string) (Entry, error)
	Put(name string, e Entry) error
}

// FetchFunc retrieves a feed payload from the network.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// FeedCache answers feed reads from the store while entries are fresh and
// refreshes them through fetch otherwise.
type FeedCache struct {
	store Store
	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time
	log   *slog.Logger
	coll  *metrics.Collector
}

// Option configures a FeedCache.
type Option func(*FeedCache)

// WithTTL overrides the default entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(c *FeedCache) { c.ttl = ttl }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *FeedCache) { c.now = now }
}

// WithMetrics attaches a metrics collector.
func WithMetrics(coll *metrics.Collector) Option {
	return func(c *FeedCache) { c.coll = coll }
}

// NewFeedCache wires a store to a fetch function.
func NewFeedCache(store Store, fetch FetchFunc, opts ...Option) *FeedCache {
	c := &FeedCache{
		store: store,
		fetch: fetch,
		ttl:   DefaultTTL,
		now:   time.Now,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the feed payload for name, from the store when the entry is
// younger than the TTL, otherwise freshly fetched from url. A fetch
// failure returns nil: callers treat nil as "no live data available" and
// proceed with schedule-only results. Store read and write errors are
// logged and degrade to a fetch and an unsaved snapshot respectively.
func (c *FeedCache) Get(ctx context.Context, url, name string) []byte {
	entry, err := c.store.Get(name)
	if err == nil && c.now().Sub(entry.CachedTime) < c.ttl {
		if c.coll != nil {
			c.coll.CacheHits.Inc()
		}
		return entry.Payload
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.log.Warn("feed cache read failed", "feed", name, "error", err)
	}
	if c.coll != nil {
		c.coll.CacheMisses.Inc()
	}

	payload, err := c.fetch(ctx, url)
	if err != nil {
		if c.coll != nil {
			c.coll.FetchErrors.WithLabelValues(name).Inc()
		}
		c.log.Warn("feed fetch failed", "feed", name, "url", url, "error", err)
		return nil
	}

	if err := c.store.Put(name, Entry{CachedTime: c.now(), Payload: payload}); err != nil {
		c.log.Warn("feed cache write failed", "feed", name, "error", err)
	}
	return payload
}
