package cache

import (
	"context"
	"sync"
	"time"
)

// LocalTrackingCache is an in-process fallback used when no Redis URL is
// configured. Entries expire lazily on read.
type LocalTrackingCache struct {
	mu      sync.Mutex
	entries map[string]localEntry
}

type localEntry struct {
	payload   []byte
	expiresAt time.Time
}

func NewLocalTrackingCache() *LocalTrackingCache {
	return &LocalTrackingCache{entries: make(map[string]localEntry)}
}

func (c *LocalTrackingCache) Get(_ context.Context, trackingNumber string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[trackingNumber]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, trackingNumber)
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (c *LocalTrackingCache) Set(_ context.Context, trackingNumber string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[trackingNumber] = localEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (c *LocalTrackingCache) Invalidate(_ context.Context, trackingNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, trackingNumber)
	return nil
}
