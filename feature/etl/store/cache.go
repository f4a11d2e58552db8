package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"student-etl/feature/etl/models"
)

// ReadCache memoizes the latest monitor entry for the hot read endpoint.
// A zero TTL disables caching and every call hits the database.
type ReadCache struct {
	store *Store
	ttl   time.Duration

	mu    sync.RWMutex
	entry *models.MonitorEntry
	built time.Time

	sf singleflight.Group
}

// NewReadCache wraps a Store with a TTL cache for LatestRun.
func NewReadCache(store *Store, ttl time.Duration) *ReadCache {
	return &ReadCache{store: store, ttl: ttl}
}

func (c *ReadCache) expired() bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(c.built) > c.ttl
}

// LatestRun returns the newest monitor entry, served from cache while
// fresh. Concurrent refreshes collapse into a single query; errors are
// never cached.
func (c *ReadCache) LatestRun(ctx context.Context) (*models.MonitorEntry, error) {
	// Fast path: cached and fresh
	c.mu.RLock()
	entry := c.entry
	fresh := entry != nil && !c.expired()
	c.mu.RUnlock()

	if fresh {
		return entry, nil
	}

	// Slow path: refresh through singleflight to prevent stampedes
	result, err, _ := c.sf.Do("latest", func() (interface{}, error) {
		// Double-check after acquiring the flight
		c.mu.RLock()
		entry := c.entry
		fresh := entry != nil && !c.expired()
		c.mu.RUnlock()

		if fresh {
			return entry, nil
		}

		latest, err := c.store.LatestRun(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entry = latest
		c.built = time.Now()
		c.mu.Unlock()

		return latest, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.MonitorEntry), nil
}

// Invalidate drops the cached entry. The pipeline calls this after every
// run so readers see the new monitor row immediately.
func (c *ReadCache) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.built = time.Time{}
	c.mu.Unlock()
}
