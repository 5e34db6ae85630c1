package cache

import (
	"context"
	"sync"
	"time"

	"github.com/light-bringer/discovery-service/internal/pkg/clock"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local cache. Expired entries are dropped lazily
// on read and by Purge.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	clock clock.Clock
}

// NewMemoryCache creates an empty MemoryCache driven by clk.
func NewMemoryCache(clk clock.Clock) *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		clock: clk,
	}
}

// Get returns a copy of the stored value or ErrCacheMiss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if !c.clock.Now().Before(item.expiresAt) {
		c.mu.Lock()
		// re-check: a concurrent Set may have refreshed the entry
		if current, ok := c.items[key]; ok && !c.clock.Now().Before(current.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}

	return append([]byte(nil), item.value...), nil
}

// Set stores a copy of value for ttl. A non-positive ttl removes the key.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		delete(c.items, key)
		return nil
	}

	c.items[key] = memoryItem{
		value:     append([]byte(nil), value...),
		expiresAt: c.clock.Now().Add(ttl),
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Purge removes all expired entries and returns how many were dropped.
func (c *MemoryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	dropped := 0
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
