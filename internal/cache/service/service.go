package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

// CacheService handles cache operations with business logic: keys, TTLs, lazy expiry and stats
type CacheService struct {
	cache      interfaces.Cache
	keyBuilder interfaces.KeyBuilder
	ttlPolicy  interfaces.TTLPolicy
	clock      clock.Clock
	logger     *zap.Logger

	touchMu sync.Mutex

	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64
}

// NewCacheService creates a new cache service over a tier, usually a MultiCache
func NewCacheService(
	cache interfaces.Cache,
	keyBuilder interfaces.KeyBuilder,
	ttlPolicy interfaces.TTLPolicy,
	clk clock.Clock,
	logger *zap.Logger,
) *CacheService {
	return &CacheService{
		cache:      cache,
		keyBuilder: keyBuilder,
		ttlPolicy:  ttlPolicy,
		clock:      clk,
		logger:     logger,
	}
}

// BuildKey returns the canonical key for a resource type and its parameters
func (s *CacheService) BuildKey(resourceType models.ResourceType, params map[string]interface{}) string {
	return s.keyBuilder.Build(resourceType, params)
}

// Prefix returns the key prefix of a resource type, for InvalidateByPrefix
func (s *CacheService) Prefix(resourceType models.ResourceType) string {
	return s.keyBuilder.Prefix(resourceType)
}

// Get decodes the entry under key into out. It returns false on a miss, on an expired
// entry (which is removed) or on an entry that no longer decodes.
func (s *CacheService) Get(key string, out interface{}) bool {
	resourceType := resourceTypeOf(key)
	metrics.RecordCacheRequest(resourceType)

	entry, found := s.cache.Get(key)
	if !found {
		s.recordMiss(resourceType)
		return false
	}

	if entry.IsExpired(s.clock.Now()) {
		s.cache.Delete(key)
		s.evictions.Add(1)
		metrics.RecordCacheEvictions("expired", 1)
		s.recordMiss(resourceType)
		return false
	}

	if err := utils.UnmarshalAny(entry.Data, out); err != nil {
		s.logger.Warn("Failed to decode cached payload", zap.String("key", key), zap.Error(err))
		s.cache.Delete(key)
		s.recordMiss(resourceType)
		return false
	}

	s.hits.Add(1)
	metrics.RecordCacheHit(resourceType)

	s.touchMu.Lock()
	s.cache.Touch(key)
	s.touchMu.Unlock()

	return true
}

// Set encodes payload and stores it for the TTL of resourceType, replacing any previous entry.
// Types without a TTL are not stored.
func (s *CacheService) Set(key string, payload interface{}, resourceType models.ResourceType) error {
	ttl := s.ttlPolicy.TTL(resourceType)
	if ttl <= 0 {
		return nil
	}

	data, err := utils.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode cache payload for %s: %w", key, err)
	}

	s.cache.Set(key, models.NewCacheEntry(data, resourceType, s.clock.Now(), ttl))
	s.sets.Add(1)
	metrics.RecordCacheSet(string(resourceType))
	return nil
}

// Invalidate removes a single entry
func (s *CacheService) Invalidate(key string) bool {
	removed := s.cache.Delete(key)
	if removed {
		s.evictions.Add(1)
		metrics.RecordCacheEvictions("invalidated", 1)
	}
	return removed
}

// InvalidateByPrefix removes every entry whose key starts with prefix
func (s *CacheService) InvalidateByPrefix(prefix string) int {
	n := s.cache.DeletePrefix(prefix)
	s.evictions.Add(int64(n))
	metrics.RecordCacheEvictions("invalidated", n)
	if n > 0 {
		s.logger.Info("Invalidated cache entries", zap.String("prefix", prefix), zap.Int("count", n))
	}
	return n
}

// SweepExpired removes every expired entry and returns how many were removed
func (s *CacheService) SweepExpired() int {
	n := s.cache.DeleteExpired(s.clock.Now())
	s.evictions.Add(int64(n))
	metrics.RecordCacheEvictions("expired", n)
	if n > 0 {
		s.logger.Debug("Swept expired cache entries", zap.Int("count", n))
	}
	return n
}

// Clear empties every tier
func (s *CacheService) Clear() int {
	n := s.cache.Clear()
	s.evictions.Add(int64(n))
	metrics.RecordCacheEvictions("cleared", n)
	s.logger.Info("Cleared cache", zap.Int("count", n))
	return n
}

// Stats returns a snapshot of the counters and the current size
func (s *CacheService) Stats() models.CacheStats {
	hits := s.hits.Load()
	misses := s.misses.Load()

	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return models.CacheStats{
		Hits:      hits,
		Misses:    misses,
		Sets:      s.sets.Load(),
		Evictions: s.evictions.Load(),
		Size:      s.cache.Len(),
		HitRate:   fmt.Sprintf("%.1f%%", hitRate),
	}
}

// ResetStats zeroes the counters; entries are kept
func (s *CacheService) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.sets.Store(0)
	s.evictions.Store(0)
}

// EntryInfo describes the entry under key without touching the counters
func (s *CacheService) EntryInfo(key string) models.CacheEntryInfo {
	entry, found := s.cache.Get(key)
	if !found {
		return models.CacheEntryInfo{}
	}

	now := s.clock.Now()
	age := entry.Age(now).Milliseconds()
	remaining := entry.TTLRemaining(now).Milliseconds()
	hits := entry.HitCount

	return models.CacheEntryInfo{
		Exists:         true,
		Valid:          !entry.IsExpired(now),
		AgeMs:          &age,
		TTLRemainingMs: &remaining,
		Hits:           &hits,
	}
}

func (s *CacheService) recordMiss(resourceType string) {
	s.misses.Add(1)
	metrics.RecordCacheMiss(resourceType)
}

// Result is a payload plus whether it came from the cache
type Result[T any] struct {
	Data   T
	Cached bool
}

// WithCache returns the cached value for (resourceType, params) or calls fetch and caches
// its result. Nothing is stored when fetch fails.
func WithCache[T any](
	ctx context.Context,
	s *CacheService,
	resourceType models.ResourceType,
	params map[string]interface{},
	fetch func(ctx context.Context) (T, error),
) (Result[T], error) {
	key := s.BuildKey(resourceType, params)

	var cached T
	if s.Get(key, &cached) {
		s.logger.Debug("Cache hit", zap.String("key", key))
		return Result[T]{Data: cached, Cached: true}, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		var zero T
		return Result[T]{Data: zero}, err
	}

	if err := s.Set(key, data, resourceType); err != nil {
		s.logger.Warn("Failed to cache result", zap.String("key", key), zap.Error(err))
	}
	return Result[T]{Data: data}, nil
}

// resourceTypeOf extracts <type> from amadeus:<type>:... for metric labels
func resourceTypeOf(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 3 {
		return "unknown"
	}
	return parts[1]
}
