package multi

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
)

// Ensure MultiCache implements interfaces.Cache
var _ interfaces.Cache = (*MultiCache)(nil)

// MultiCache layers tiers from fastest to slowest. Reads stop at the first hit and
// promote it into the faster tiers; writes go to every tier.
type MultiCache struct {
	caches []interfaces.Cache
	levels []string
	logger *zap.Logger
}

// NewMultiCache creates a new MultiCache instance with provided cache implementations.
// Tier i is labelled "l<i+1>" in metrics.
func NewMultiCache(caches []interfaces.Cache, logger *zap.Logger) *MultiCache {
	levels := make([]string, len(caches))
	for i := range caches {
		levels[i] = "l" + strconv.Itoa(i+1)
	}
	return &MultiCache{
		caches: caches,
		levels: levels,
		logger: logger,
	}
}

// Get returns the entry from the first tier that has it, writing it back to the tiers above
func (mc *MultiCache) Get(key string) (*models.CacheEntry, bool) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for get operation", zap.String("key", key))
		return nil, false
	}

	for i, cache := range mc.caches {
		entry, found := cache.Get(key)
		if !found {
			continue
		}
		metrics.RecordTierHit(mc.levels[i])
		for j := 0; j < i; j++ {
			mc.caches[j].Set(key, *entry)
		}
		return entry, true
	}
	return nil, false
}

// Set stores the entry in all tiers
func (mc *MultiCache) Set(key string, entry models.CacheEntry) {
	if len(mc.caches) == 0 {
		mc.logger.Warn("No caches available for set operation", zap.String("key", key))
		return
	}

	for _, cache := range mc.caches {
		cache.Set(key, entry)
	}
}

// Touch increments the hit count in every tier holding the entry
func (mc *MultiCache) Touch(key string) {
	for _, cache := range mc.caches {
		cache.Touch(key)
	}
}

// Delete removes the entry from all tiers and reports whether any tier held it
func (mc *MultiCache) Delete(key string) bool {
	deleted := false
	for _, cache := range mc.caches {
		if cache.Delete(key) {
			deleted = true
		}
	}
	return deleted
}

// DeletePrefix removes matching keys from all tiers and returns the largest per-tier count,
// since a key present in several tiers is still one logical entry
func (mc *MultiCache) DeletePrefix(prefix string) int {
	return mc.maxOf(func(cache interfaces.Cache) int { return cache.DeletePrefix(prefix) })
}

// DeleteExpired sweeps every tier
func (mc *MultiCache) DeleteExpired(now time.Time) int {
	return mc.maxOf(func(cache interfaces.Cache) int { return cache.DeleteExpired(now) })
}

// Len returns the size of the largest tier
func (mc *MultiCache) Len() int {
	return mc.maxOf(func(cache interfaces.Cache) int { return cache.Len() })
}

// Clear empties every tier
func (mc *MultiCache) Clear() int {
	return mc.maxOf(func(cache interfaces.Cache) int { return cache.Clear() })
}

// GetCacheCount returns the number of caches in the multi-cache
func (mc *MultiCache) GetCacheCount() int {
	return len(mc.caches)
}

func (mc *MultiCache) maxOf(op func(cache interfaces.Cache) int) int {
	largest := 0
	for _, cache := range mc.caches {
		if n := op(cache); n > largest {
			largest = n
		}
	}
	return largest
}
