// Package summary caches the server-aggregated finance figures. The cache
// holds a single value: stale between fetches is fine, but it must be
// refreshed after every successful transaction creation.
package summary

import (
	"context"
	"sync"

	"tally/internal/core"
)

// Fetcher fetches the current figures from the server.
type Fetcher interface {
	FinanceSummary(ctx context.Context) (core.FinanceSummary, error)
}

// Cache is a read-through cache over a Fetcher. Before the first successful
// refresh, Get returns the zero summary.
type Cache struct {
	fetcher Fetcher

	mu      sync.Mutex
	value   core.FinanceSummary
	fetches int
}

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Refresh re-fetches unconditionally and replaces the cached value
// atomically. On failure the previous value stands.
func (c *Cache) Refresh(ctx context.Context) error {
	value, err := c.fetcher.FinanceSummary(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.value = value
	c.fetches++
	c.mu.Unlock()
	return nil
}

// Get returns the last fetched value, or the zero default before any fetch.
func (c *Cache) Get() core.FinanceSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// FetchCount returns how many refreshes have completed successfully.
func (c *Cache) FetchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetches
}

// Reset returns the cache to its pre-fetch default. Called on logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.value = core.FinanceSummary{}
	c.fetches = 0
	c.mu.Unlock()
}
