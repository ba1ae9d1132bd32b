package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
)

const defaultCacheTTL = time.Hour

// DetailsCache holds completed movie records by TMDB id for a fixed TTL.
// Records are copied in and out, so callers never share genre slices with it.
type DetailsCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	records map[int64]cachedRecord

	stopChan chan struct{}
	stopOnce sync.Once
}

type cachedRecord struct {
	record    models.MovieRecord
	expiresAt time.Time
}

// NewDetailsCache creates a cache whose entries live for ttl and starts the
// sweep that drops expired ones. A non-positive ttl means one hour.
func NewDetailsCache(ttl time.Duration) *DetailsCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	c := &DetailsCache{
		ttl:      ttl,
		now:      time.Now,
		records:  make(map[int64]cachedRecord),
		stopChan: make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the cached record for movieID unless it has expired
func (c *DetailsCache) Get(movieID int64) (models.MovieRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.records[movieID]
	if !ok || !c.now().Before(entry.expiresAt) {
		return models.MovieRecord{}, false
	}
	return entry.record.Clone(), true
}

// Put caches record under its id
func (c *DetailsCache) Put(record models.MovieRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[record.ID] = cachedRecord{
		record:    record.Clone(),
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of entries, expired ones included until the next sweep
func (c *DetailsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Stop ends the sweep goroutine
func (c *DetailsCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *DetailsCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *DetailsCache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for id, entry := range c.records {
		if !now.Before(entry.expiresAt) {
			delete(c.records, id)
			removed++
		}
	}
	return removed
}

// CachedClient serves movie details from a DetailsCache before asking the
// catalog. Failed lookups are never cached.
type CachedClient struct {
	*Client
	cache *DetailsCache
}

// NewCachedClient creates a catalog client backed by cache. A nil cache gets
// a private one with the default TTL.
func NewCachedClient(cfg Config, cache *DetailsCache) *CachedClient {
	if cache == nil {
		cache = NewDetailsCache(defaultCacheTTL)
	}
	return &CachedClient{
		Client: NewClient(cfg),
		cache:  cache,
	}
}

// GetMovieDetails returns the cached record for movieID or fetches and caches it
func (c *CachedClient) GetMovieDetails(ctx context.Context, movieID int64) (*models.MovieRecord, error) {
	if record, ok := c.cache.Get(movieID); ok {
		c.metrics.cacheHits.Add(1)
		return &record, nil
	}
	c.metrics.cacheMisses.Add(1)

	record, err := c.Client.GetMovieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}
	c.cache.Put(*record)
	return record, nil
}

// Stats reports the client counters along with the cache size
func (c *CachedClient) Stats() Stats {
	stats := c.Client.Stats()
	stats.CachedMovies = c.cache.Len()
	return stats
}
