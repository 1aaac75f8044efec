package noop

import (
	"time"

	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
)

// Ensure NoOpCache implements interfaces.Cache
var _ interfaces.Cache = (*NoOpCache)(nil)

// NoOpCache is a no-operation cache implementation for disabled tiers
type NoOpCache struct{}

// NewNoOpCache creates a new no-operation cache instance
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always returns cache miss
func (n *NoOpCache) Get(key string) (*models.CacheEntry, bool) {
	return nil, false
}

// Set does nothing
func (n *NoOpCache) Set(key string, entry models.CacheEntry) {}

// Touch does nothing
func (n *NoOpCache) Touch(key string) {}

// Delete never finds anything
func (n *NoOpCache) Delete(key string) bool {
	return false
}

func (n *NoOpCache) DeletePrefix(prefix string) int { return 0 }

func (n *NoOpCache) DeleteExpired(now time.Time) int { return 0 }

func (n *NoOpCache) Len() int { return 0 }

func (n *NoOpCache) Clear() int { return 0 }
