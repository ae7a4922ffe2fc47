package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/tinkit/pkg/domain"
)

type entry struct {
	value   domain.Centroid
	expires time.Time // zero means no expiration
}

// Cache implements ports.CentroidCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
	mu   sync.RWMutex
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the expiration for entries. Zero keeps entries forever.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// NewCache creates a new in-memory centroid cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		data: make(map[string]entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached centroid.
func (c *Cache) Get(ctx context.Context, key string) (domain.Centroid, error) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return domain.Centroid{}, domain.ErrCacheMiss
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		_ = c.Delete(ctx, key)
		return domain.Centroid{}, domain.ErrCacheMiss
	}
	return e.value, nil
}

// Put stores the centroid. Centroid is a value type so no copy is needed.
func (c *Cache) Put(ctx context.Context, key string, value domain.Centroid) error {
	e := entry{value: value}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = e
	return nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
