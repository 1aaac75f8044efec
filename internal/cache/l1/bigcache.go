package l1

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"travel-gateway/internal/config"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

// lifeWindow is well above the longest resource TTL; expiry is decided by the entry itself
const lifeWindow = 72 * time.Hour

// Ensure BigCache implements interfaces.Cache
var _ interfaces.Cache = (*BigCache)(nil)

// BigCache implements the in-process L1 tier on top of bigcache.
// writeMu orders every write, so a touch never brings back an entry
// removed or replaced after its read.
type BigCache struct {
	cache   *bigcache.BigCache
	logger  *zap.Logger
	writeMu sync.Mutex
}

// NewBigCache creates a new BigCache instance
func NewBigCache(bigcacheCfg *config.BigCacheConfig, logger *zap.Logger) (*BigCache, error) {
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.CleanWindow = 0 // the periodic sweep owns expiry
	cfg.HardMaxCacheSize = bigcacheCfg.Size
	cfg.Verbose = false
	// Initial allocation hints only; shards grow up to HardMaxCacheSize
	cfg.MaxEntriesInWindow = 1024
	cfg.MaxEntrySize = 8 * 1024
	if bigcacheCfg.Shards > 0 {
		cfg.Shards = bigcacheCfg.Shards
	}

	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	bc := &BigCache{
		cache:  cache,
		logger: logger,
	}
	bc.ReportMetrics()

	return bc, nil
}

// Get retrieves an entry; expiry is not checked here
func (bc *BigCache) Get(key string) (*models.CacheEntry, bool) {
	defer metrics.TimeCacheGetOperation("l1")()

	data, err := bc.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			metrics.RecordCacheError("l1", "upstream")
		}
		return nil, false
	}

	entry, ok := bc.decode(key, data)
	if !ok {
		return nil, false
	}
	return entry, true
}

// Set stores an entry, replacing any previous one
func (bc *BigCache) Set(key string, entry models.CacheEntry) {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()

	bc.store(key, entry)
}

// Touch increments the hit count of an existing entry
func (bc *BigCache) Touch(key string) {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()

	entry, found := bc.Get(key)
	if !found {
		return
	}
	entry.HitCount++
	bc.store(key, *entry)
}

// Delete removes an entry and reports whether it existed
func (bc *BigCache) Delete(key string) bool {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()

	return bc.cache.Delete(key) == nil
}

func (bc *BigCache) store(key string, entry models.CacheEntry) {
	data, err := utils.Marshal(entry)
	if err != nil {
		bc.logger.Error("Failed to marshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "encode")
		return
	}

	if err := bc.cache.Set(key, data); err != nil {
		bc.logger.Error("Failed to set L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
	}
}

// DeletePrefix removes every key starting with prefix
func (bc *BigCache) DeletePrefix(prefix string) int {
	return bc.deleteWhere(func(key string, _ []byte) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// DeleteExpired removes every entry expired at now
func (bc *BigCache) DeleteExpired(now time.Time) int {
	return bc.deleteWhere(func(key string, data []byte) bool {
		entry, ok := bc.decode(key, data)
		// undecodable entries were already removed by decode
		return ok && entry.IsExpired(now)
	})
}

// Len returns the number of stored entries
func (bc *BigCache) Len() int {
	return bc.cache.Len()
}

// Clear removes every entry and returns how many there were
func (bc *BigCache) Clear() int {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()

	n := bc.cache.Len()
	if err := bc.cache.Reset(); err != nil {
		bc.logger.Error("Failed to reset L1 cache", zap.Error(err))
		metrics.RecordCacheError("l1", "upstream")
		return 0
	}
	return n
}

// Close closes the cache
func (bc *BigCache) Close() error {
	return bc.cache.Close()
}

// ReportMetrics publishes key count and capacity gauges
func (bc *BigCache) ReportMetrics() {
	metrics.UpdateCacheKeys("l1", int64(bc.cache.Len()))
	metrics.UpdateL1CacheCapacity(int64(bc.cache.Capacity()))
}

// deleteWhere collects matching keys first, then deletes them outside the iterator
func (bc *BigCache) deleteWhere(match func(key string, data []byte) bool) int {
	bc.writeMu.Lock()
	defer bc.writeMu.Unlock()

	var keys []string

	it := bc.cache.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			continue
		}
		if match(info.Key(), info.Value()) {
			keys = append(keys, info.Key())
		}
	}

	removed := 0
	for _, key := range keys {
		if bc.cache.Delete(key) == nil {
			removed++
		}
	}
	return removed
}

func (bc *BigCache) decode(key string, data []byte) (*models.CacheEntry, bool) {
	var entry models.CacheEntry
	if err := utils.Unmarshal(data, &entry); err != nil {
		bc.logger.Warn("Failed to unmarshal L1 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l1", "decode")
		_ = bc.cache.Delete(key) // Remove corrupted entry
		return nil, false
	}
	return &entry, true
}
