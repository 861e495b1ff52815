package cache

import (
	"sync"
	"time"

	"github.com/blairify/interview-engine/internal/domain"
)

// MemoryUsageCache is the in-process fallback used when Redis is not
// configured, typically in dev. Entries expire lazily on read.
type MemoryUsageCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryUsageCache constructs a MemoryUsageCache with the given TTL.
func NewMemoryUsageCache(ttl time.Duration) *MemoryUsageCache {
	return &MemoryUsageCache{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (c *MemoryUsageCache) WasRecentlyUsed(_ domain.Context, questionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	expiry, ok := c.entries[questionID]
	if !ok {
		return false
	}
	if c.now().After(expiry) {
		delete(c.entries, questionID)
		return false
	}
	return true
}

func (c *MemoryUsageCache) MarkUsed(_ domain.Context, questionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[questionID] = c.now().Add(c.ttl)
}
