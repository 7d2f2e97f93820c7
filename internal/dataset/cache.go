package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"nordpulse/pkg/contracts/domain"
)

// DefaultTTL is how long a loaded dataset stays valid
const DefaultTTL = 600 * time.Second

// DatasetLoader loads a dataset from a source
type DatasetLoader interface {
	Load(ctx context.Context, src Source) (*domain.Dataset, error)
}

// CacheMetrics receives cache events. Implemented by infrastructure.BusinessMetrics.
type CacheMetrics interface {
	RecordCacheHit(ctx context.Context, source string)
	RecordCacheMiss(ctx context.Context, source string)
	RecordDatasetLoad(ctx context.Context, source string, duration time.Duration, err error)
}

// cacheEntry is a loaded dataset with its load timestamp
type cacheEntry struct {
	dataset  *domain.Dataset
	cachedAt time.Time
	hits     int
}

// CacheStats is a snapshot of cache counters
type CacheStats struct {
	Entries    int     `json:"entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	Loads      int64   `json:"loads"`
	LoadErrors int64   `json:"load_errors"`
	HitRatio   float64 `json:"hit_ratio"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

// Cache memoizes loaded datasets per source for a fixed TTL
type Cache struct {
	loader  DatasetLoader
	ttl     time.Duration
	clock   Clock
	logger  *slog.Logger
	metrics CacheMetrics

	mu         sync.RWMutex
	entries    map[string]cacheEntry
	hits       int64
	misses     int64
	loads      int64
	loadErrors int64

	group singleflight.Group
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithClock overrides the time source
func WithClock(clock Clock) CacheOption {
	return func(c *Cache) {
		c.clock = clock
	}
}

// WithLogger sets the cache logger
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger.With(slog.String("component", "dataset_cache"))
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(metrics CacheMetrics) CacheOption {
	return func(c *Cache) {
		c.metrics = metrics
	}
}

// NewCache creates a dataset cache. A non-positive ttl disables caching.
func NewCache(loader DatasetLoader, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		loader:  loader,
		ttl:     ttl,
		clock:   time.Now,
		logger:  slog.Default().With(slog.String("component", "dataset_cache")),
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached dataset for src while it is younger than the TTL and
// loads it otherwise. Concurrent misses for the same source share one load.
// Failed loads are never cached.
func (c *Cache) Get(ctx context.Context, src Source) (*domain.Dataset, error) {
	key := src.Name()

	if ds, ok := c.lookup(key); ok {
		if c.metrics != nil {
			c.metrics.RecordCacheHit(ctx, key)
		}
		return ds, nil
	}

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	if c.metrics != nil {
		c.metrics.RecordCacheMiss(ctx, key)
	}

	// The load is shared, so one caller cancelling must not fail the others
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		// Another flight may have filled the entry while we waited
		if ds, ok := c.peek(key); ok {
			return ds, nil
		}
		return c.load(loadCtx, src)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "dataset load shared with concurrent request",
			slog.String("source", key))
	}
	return v.(*domain.Dataset), nil
}

// Invalidate drops the entry for a source so the next Get reloads it
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Stats returns the current cache counters
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	ratio := float64(0)
	if total > 0 {
		ratio = float64(c.hits) / float64(total)
	}
	return CacheStats{
		Entries:    len(c.entries),
		Hits:       c.hits,
		Misses:     c.misses,
		Loads:      c.loads,
		LoadErrors: c.loadErrors,
		HitRatio:   ratio,
		TTLSeconds: c.ttl.Seconds(),
	}
}

// TTL returns the configured time-to-live
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// lookup returns a fresh entry and counts the hit
func (c *Cache) lookup(key string) (*domain.Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || !c.fresh(entry) {
		return nil, false
	}
	entry.hits++
	c.entries[key] = entry
	c.hits++
	return entry.dataset, true
}

// peek returns a fresh entry without touching counters
func (c *Cache) peek(key string) (*domain.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !c.fresh(entry) {
		return nil, false
	}
	return entry.dataset, true
}

func (c *Cache) fresh(entry cacheEntry) bool {
	return c.clock().Sub(entry.cachedAt) < c.ttl
}

func (c *Cache) load(ctx context.Context, src Source) (*domain.Dataset, error) {
	key := src.Name()
	start := c.clock()

	ds, err := c.loader.Load(ctx, src)

	if c.metrics != nil {
		c.metrics.RecordDatasetLoad(ctx, key, c.clock().Sub(start), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads++
	if err != nil {
		c.loadErrors++
		c.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("source", key),
			slog.String("error", err.Error()))
		return nil, err
	}

	c.entries[key] = cacheEntry{dataset: ds, cachedAt: c.clock()}
	c.logger.InfoContext(ctx, "dataset cached",
		slog.String("source", key),
		slog.Int("records", ds.Len()),
		slog.Duration("ttl", c.ttl))
	return ds, nil
}
