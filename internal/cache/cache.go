// Package cache holds the in-process TTL cache that sits between the
// orchestrating service and the upstream fetcher.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// Key identifies a cached fetch: one entry per symbol and provider
// period.
type Key struct {
	Symbol string
	Period string
}

func (k Key) String() string { return k.Symbol + "|" + k.Period }

type entry struct {
	series     models.Series
	insertedAt time.Time
}

// SeriesCache is a process-lifetime TTL cache for fetched or generated
// series. Entries expire by age only and are evicted lazily on lookup;
// there is no size bound and no background sweeper.
type SeriesCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[Key]entry

	group singleflight.Group
}

// NewSeriesCache builds an empty cache whose entries live for ttl.
func NewSeriesCache(ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Key]entry),
	}
}

// GetOrCompute returns the cached series for key when one is present
// and younger than the TTL. Otherwise it runs compute, stores the
// successful result stamped with the current time, and returns it.
//
// Concurrent callers missing on the same key share a single compute
// call; every waiter receives the same result. Errors are handed to
// all waiters and are never cached.
func (c *SeriesCache) GetOrCompute(key Key, compute func() (models.Series, error)) (models.Series, error) {
	if s, ok := c.lookup(key); ok {
		return s, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// A racing caller may have finished the same flight between
		// our miss and this point.
		if s, ok := c.lookup(key); ok {
			return s, nil
		}
		s, err := compute()
		if err != nil {
			return models.Series{}, err
		}
		c.store(key, s)
		return s, nil
	})
	if err != nil {
		return models.Series{}, err
	}
	return v.(models.Series), nil
}

func (c *SeriesCache) lookup(key Key) (models.Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return models.Series{}, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		return models.Series{}, false
	}
	return e.series, true
}

func (c *SeriesCache) store(key Key, s models.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{series: s, insertedAt: c.now()}
}
