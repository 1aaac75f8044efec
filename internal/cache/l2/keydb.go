package l2

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"travel-gateway/internal/cache"
	"travel-gateway/internal/config"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

const scanBatch = 200

// Ensure KeyDBCache implements interfaces.Cache
var _ interfaces.Cache = (*KeyDBCache)(nil)

// KeyDBCache implements the shared L2 tier on Redis/KeyDB. Keys carry the native
// expiry of their entry, so expired entries disappear without a sweep.
type KeyDBCache struct {
	client  interfaces.KeyDbClient
	config  *config.KeyDBConfig
	clock   clock.Clock
	logger  *zap.Logger
	touchMu sync.Mutex
}

// NewKeyDBCache creates a new KeyDBCache instance with provided client
func NewKeyDBCache(cfg *config.KeyDBConfig, client interfaces.KeyDbClient, clk clock.Clock, logger *zap.Logger) *KeyDBCache {
	return &KeyDBCache{
		client: client,
		config: cfg,
		clock:  clk,
		logger: logger,
	}
}

// Get retrieves an entry; a missing key is not an error
func (kc *KeyDBCache) Get(key string) (*models.CacheEntry, bool) {
	defer metrics.TimeCacheGetOperation("l2")()

	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetReadTimeout())
	defer cancel()

	data, err := kc.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			kc.logger.Error("L2 cache get error", zap.String("key", key), zap.Error(err))
			metrics.RecordCacheError("l2", "upstream")
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := utils.Unmarshal(data, &entry); err != nil {
		kc.logger.Error("Failed to unmarshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "decode")
		kc.Delete(key)
		return nil, false
	}

	return &entry, true
}

// Set stores an entry with a native expiry matching the entry's own
func (kc *KeyDBCache) Set(key string, entry models.CacheEntry) {
	ttl := time.Duration(entry.ExpiresAt - kc.clock.Now().UnixNano())
	if ttl <= 0 {
		return
	}
	kc.write(key, entry, ttl)
}

// Touch increments the hit count and keeps the remaining expiry. The write is
// SET XX, so a key that expired or was deleted after the read stays gone.
func (kc *KeyDBCache) Touch(key string) {
	kc.touchMu.Lock()
	defer kc.touchMu.Unlock()

	entry, found := kc.Get(key)
	if !found {
		return
	}
	entry.HitCount++

	data, ok := kc.encode(key, *entry)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.SetXX(ctx, key, data, redis.KeepTTL).Err(); err != nil && !errors.Is(err, redis.Nil) {
		kc.logger.Error("Failed to touch L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
}

// Delete removes an entry and reports whether it existed
func (kc *KeyDBCache) Delete(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
	defer cancel()

	n, err := kc.client.Del(ctx, key).Result()
	if err != nil {
		kc.logger.Error("Failed to delete L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
		return false
	}
	return n > 0
}

// DeletePrefix removes every key starting with prefix using SCAN then DEL
func (kc *KeyDBCache) DeletePrefix(prefix string) int {
	removed := 0
	err := kc.scan(escapeGlob(prefix)+"*", func(keys []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
		defer cancel()

		n, err := kc.client.Del(ctx, keys...).Result()
		removed += int(n)
		return err
	})
	if err != nil {
		kc.logger.Error("Failed to delete L2 cache prefix", zap.String("prefix", prefix), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
	return removed
}

// DeleteExpired is a no-op; KeyDB expires keys natively
func (kc *KeyDBCache) DeleteExpired(time.Time) int {
	return 0
}

// Len counts the keys in the gateway namespace
func (kc *KeyDBCache) Len() int {
	count := 0
	err := kc.scan(cache.KeyNamespace+":*", func(keys []string) error {
		count += len(keys)
		return nil
	})
	if err != nil {
		kc.logger.Error("Failed to count L2 cache keys", zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
	return count
}

// Clear removes every key in the gateway namespace; other keys in the database are left alone
func (kc *KeyDBCache) Clear() int {
	return kc.DeletePrefix(cache.KeyNamespace + ":")
}

// Close closes the KeyDB connection
func (kc *KeyDBCache) Close() error {
	return kc.client.Close()
}

// ReportMetrics publishes the namespace key count
func (kc *KeyDBCache) ReportMetrics() {
	metrics.UpdateCacheKeys("l2", int64(kc.Len()))
}

func (kc *KeyDBCache) write(key string, entry models.CacheEntry, expiration time.Duration) {
	data, ok := kc.encode(key, entry)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetSendTimeout())
	defer cancel()

	if err := kc.client.Set(ctx, key, data, expiration).Err(); err != nil {
		kc.logger.Error("Failed to set L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "upstream")
	}
}

func (kc *KeyDBCache) encode(key string, entry models.CacheEntry) ([]byte, bool) {
	data, err := utils.Marshal(entry)
	if err != nil {
		kc.logger.Error("Failed to marshal L2 cache entry", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheError("l2", "encode")
		return nil, false
	}
	return data, true
}

// scan walks every key matching pattern and hands each non-empty batch to fn
func (kc *KeyDBCache) scan(pattern string, fn func(keys []string) error) error {
	var cursor uint64
	for {
		ctx, cancel := context.WithTimeout(context.Background(), kc.config.GetReadTimeout())
		keys, next, err := kc.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		cancel()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob makes a literal prefix safe for a MATCH pattern
func escapeGlob(s string) string {
	return globReplacer.Replace(s)
}
