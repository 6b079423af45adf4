package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachedSource keeps the last fetched collection per service type for a TTL.
// Concurrent misses for the same type share one upstream fetch.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[ServiceType]cacheEntry
	sf      singleflight.Group
}

type cacheEntry struct {
	records  []json.RawMessage
	loadedAt time.Time
}

// NewCachedSource wraps inner with a TTL cache.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[ServiceType]cacheEntry),
	}
}

// Name implements Source.
func (c *CachedSource) Name() string { return c.inner.Name() }

// Fetch implements Source. Failed fetches are not cached.
func (c *CachedSource) Fetch(ctx context.Context, st ServiceType) ([]json.RawMessage, error) {
	c.mu.RLock()
	entry, ok := c.entries[st]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.loadedAt) < c.ttl {
		return entry.records, nil
	}

	// The shared load must not die with the first caller's request.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(string(st), func() (any, error) {
		records, err := c.inner.Fetch(loadCtx, st)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[st] = cacheEntry{records: records, loadedAt: c.now()}
		c.mu.Unlock()
		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]json.RawMessage), nil
	}
}

// Invalidate drops the cached collection of st.
func (c *CachedSource) Invalidate(st ServiceType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, st)
}

// InvalidateAll drops every cached collection.
func (c *CachedSource) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[ServiceType]cacheEntry)
}
