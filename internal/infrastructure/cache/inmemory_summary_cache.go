package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type summaryEntry struct {
	value     []byte
	expiresAt time.Time
}

// InMemorySummaryCache implements the summary cache with an in-process map.
// Suitable for single-instance deployments and testing; instances do not
// share state.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[string]summaryEntry
	ttl     time.Duration
}

// NewInMemorySummaryCache creates a new in-memory summary cache
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	return &InMemorySummaryCache{
		entries: make(map[string]summaryEntry),
		ttl:     ttl,
	}
}

// Get retrieves a cached summary if present and not expired
func (c *InMemorySummaryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a serialized summary with the configured TTL
func (c *InMemorySummaryCache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = summaryEntry{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// InvalidateTenant removes all cached summaries of the tenant
func (c *InMemorySummaryCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	prefix := "compliance:summary:" + tenantID.String() + ":"

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}
