// Package cache provides an in-memory TTL cache with per-key single-flight
// deduplication. It fronts reads against the billing backend so that rapid
// repeated or concurrent requests for the same resource issue at most one
// underlying fetch.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/majiflow/billing-gateway/internal/api/metrics"
)

// DefaultTTL applies when a caller does not override the entry lifetime.
const DefaultTTL = 5 * time.Minute

// FetchFunc loads the value for a key on a cache miss.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	data    any
	created time.Time
	expiry  time.Time
}

// Cache is a process-wide, concurrency-safe TTL cache. Expiry is lazy: every
// read re-checks the entry's deadline, so CleanExpired is an optimisation,
// not a correctness requirement.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group

	defaultTTL time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

// New returns a Cache with the given default TTL; defaultTTL <= 0 falls back
// to DefaultTTL.
func New(defaultTTL time.Duration) *Cache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get is GetTTL with the cache's default TTL.
func (c *Cache) Get(ctx context.Context, key string, fetch FetchFunc) (any, error) {
	return c.GetTTL(ctx, key, c.defaultTTL, fetch)
}

// GetTTL returns the cached value for key, fetching it on a miss. Concurrent
// callers for the same key share one in-flight fetch and observe the same
// outcome, value or error. Errors are propagated unchanged and never cached.
//
// The fetch runs on the context of whichever caller triggered it; a later
// logout or caller cancellation does not abort an in-flight fetch.
func (c *Cache) GetTTL(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) (any, error) {
	if v, ok := c.lookup(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return v, nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: another caller may have completed the
		// fetch between our miss and joining the group.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	})
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if shared {
		metrics.CacheLookupsTotal.WithLabelValues("shared").Inc()
	} else {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}
	return v, nil
}

// Set unconditionally stores value under key. Meant for optimistic local
// updates after a write has already round-tripped to the backend.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	now := c.now()
	c.mu.Lock()
	c.entries[key] = entry{data: value, created: now, expiry: now.Add(ttl)}
	c.mu.Unlock()
}

// Remove invalidates a single key.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear invalidates everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Has reports whether a live entry exists for key, evicting it as a side
// effect when it turns out to be expired.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	if !c.now().Before(e.expiry) {
		delete(c.entries, key)
		return false
	}
	return true
}

// CleanExpired sweeps out all currently-expired entries and returns how many
// were removed.
func (c *Cache) CleanExpired() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for k, e := range c.entries {
		if !now.Before(e.expiry) {
			delete(c.entries, k)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

// Len reports the number of entries, live or not. Diagnostics only.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiry) {
		return nil, false
	}
	return e.data, true
}
