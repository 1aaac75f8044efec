package l1

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-gateway/internal/config"
	"travel-gateway/internal/models"
)

func newTestCache(t *testing.T) *BigCache {
	t.Helper()
	cache, err := NewBigCache(&config.BigCacheConfig{Enabled: true, Size: 16, Shards: 8}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewBigCache(t *testing.T) {
	logger := zap.NewNop()

	cache, err := NewBigCache(&config.BigCacheConfig{Size: 10, Shards: 16}, logger)

	require.NoError(t, err)
	assert.NotNil(t, cache.cache)
	assert.Equal(t, logger, cache.logger)
	assert.Equal(t, 0, cache.Len())
}

func TestNewBigCache_InvalidShards(t *testing.T) {
	_, err := NewBigCache(&config.BigCacheConfig{Size: 10, Shards: 3}, zap.NewNop())
	assert.Error(t, err)
}

func TestBigCache_Set_And_Get(t *testing.T) {
	cache := newTestCache(t)
	now := time.Now()

	entry := models.NewCacheEntry([]byte(`{"iataCode":"PAR"}`), models.ResourceLocations, now, time.Hour)
	cache.Set("amadeus:locations:keyword=par", entry)

	result, found := cache.Get("amadeus:locations:keyword=par")

	require.True(t, found)
	assert.Equal(t, entry.Data, result.Data)
	assert.Equal(t, entry.ExpiresAt, result.ExpiresAt)
	assert.Equal(t, models.ResourceLocations, result.ResourceType)
}

func TestBigCache_Get_NotFound(t *testing.T) {
	cache := newTestCache(t)

	result, found := cache.Get("non-existent-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestBigCache_Get_ReturnsExpiredEntries(t *testing.T) {
	cache := newTestCache(t)
	past := time.Now().Add(-2 * time.Hour)

	cache.Set("old", models.NewCacheEntry([]byte("x"), models.ResourceFlights, past, time.Minute))

	// The tier stores as-is; the service decides expiry
	result, found := cache.Get("old")
	require.True(t, found)
	assert.True(t, result.IsExpired(time.Now()))
}

func TestBigCache_Get_CorruptedEntry(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.cache.Set("corrupt", []byte("{not json")))

	result, found := cache.Get("corrupt")
	assert.False(t, found)
	assert.Nil(t, result)

	// Corrupted entries are removed on read
	_, err := cache.cache.Get("corrupt")
	assert.Error(t, err)
}

func TestBigCache_Touch(t *testing.T) {
	cache := newTestCache(t)
	cache.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, time.Now(), time.Minute))

	for i := 0; i < 3; i++ {
		cache.Touch("key")
	}
	cache.Touch("missing") // no-op

	result, found := cache.Get("key")
	require.True(t, found)
	assert.Equal(t, int64(3), result.HitCount)

	_, found = cache.Get("missing")
	assert.False(t, found)
}

func TestBigCache_Touch_Concurrent(t *testing.T) {
	cache := newTestCache(t)
	cache.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, time.Now(), time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Touch("key")
		}()
	}
	wg.Wait()

	result, found := cache.Get("key")
	require.True(t, found)
	assert.Equal(t, int64(20), result.HitCount)
}

func TestBigCache_Touch_DoesNotRecreateDeletedEntry(t *testing.T) {
	tests := []struct {
		name   string
		remove func(c *BigCache)
	}{
		{"delete", func(c *BigCache) { c.Delete("amadeus:hotels:k=1") }},
		{"delete prefix", func(c *BigCache) { c.DeletePrefix("amadeus:hotels:") }},
		{"clear", func(c *BigCache) { c.Clear() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newTestCache(t)

			for i := 0; i < 200; i++ {
				cache.Set("amadeus:hotels:k=1", models.NewCacheEntry([]byte("v"), models.ResourceHotels, time.Now(), time.Minute))

				done := make(chan struct{})
				go func() {
					defer close(done)
					cache.Touch("amadeus:hotels:k=1")
				}()
				tt.remove(cache)
				<-done

				_, found := cache.Get("amadeus:hotels:k=1")
				require.False(t, found, "iteration %d", i)
			}
		})
	}
}

func TestBigCache_Delete(t *testing.T) {
	cache := newTestCache(t)
	cache.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, time.Now(), time.Minute))

	assert.True(t, cache.Delete("key"))
	assert.False(t, cache.Delete("key"))

	_, found := cache.Get("key")
	assert.False(t, found)
}

func TestBigCache_DeletePrefix(t *testing.T) {
	cache := newTestCache(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		cache.Set(fmt.Sprintf("amadeus:flights:origin=A%d", i), models.NewCacheEntry([]byte("f"), models.ResourceFlights, now, time.Minute))
	}
	for i := 0; i < 3; i++ {
		cache.Set(fmt.Sprintf("amadeus:hotels:city=C%d", i), models.NewCacheEntry([]byte("h"), models.ResourceHotels, now, time.Minute))
	}

	removed := cache.DeletePrefix("amadeus:flights:")

	assert.Equal(t, 5, removed)
	assert.Equal(t, 3, cache.Len())
	assert.Equal(t, 0, cache.DeletePrefix("amadeus:flights:"))
}

func TestBigCache_DeleteExpired(t *testing.T) {
	cache := newTestCache(t)
	now := time.Now()

	cache.Set("fresh", models.NewCacheEntry([]byte("a"), models.ResourceFlights, now, time.Hour))
	cache.Set("stale-1", models.NewCacheEntry([]byte("b"), models.ResourceFlights, now.Add(-time.Hour), time.Minute))
	cache.Set("stale-2", models.NewCacheEntry([]byte("c"), models.ResourceFlights, now.Add(-time.Minute), time.Minute))

	// stale-2 expires exactly at now
	removed := cache.DeleteExpired(now)

	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, cache.Len())
	_, found := cache.Get("fresh")
	assert.True(t, found)
}

func TestBigCache_Clear(t *testing.T) {
	cache := newTestCache(t)
	now := time.Now()
	for i := 0; i < 4; i++ {
		cache.Set(fmt.Sprintf("key-%d", i), models.NewCacheEntry([]byte("v"), models.ResourceHotels, now, time.Minute))
	}

	assert.Equal(t, 4, cache.Clear())
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 0, cache.Clear())
}

func TestBigCache_Concurrent_Access(t *testing.T) {
	cache := newTestCache(t)

	numGoroutines := 10
	numOperations := 100

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < numOperations; j++ {
				key := fmt.Sprintf("concurrent-key-%d-%d", id, j)
				value := []byte(fmt.Sprintf("value-%d-%d", id, j))

				cache.Set(key, models.NewCacheEntry(value, models.ResourceFlights, time.Now(), time.Minute))

				result, found := cache.Get(key)
				if found {
					assert.Equal(t, value, result.Data)
				}

				cache.Delete(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, cache.Len())
}

func TestBigCache_Edge_Cases(t *testing.T) {
	cache := newTestCache(t)
	now := time.Now()

	t.Run("empty key", func(t *testing.T) {
		cache.Set("", models.NewCacheEntry([]byte("value"), models.ResourceFlights, now, time.Minute))
		result, found := cache.Get("")
		require.True(t, found)
		assert.Equal(t, []byte("value"), result.Data)
	})

	t.Run("nil payload", func(t *testing.T) {
		cache.Set("nil-value-key", models.NewCacheEntry(nil, models.ResourceFlights, now, time.Minute))
		result, found := cache.Get("nil-value-key")
		require.True(t, found)
		assert.Empty(t, result.Data)
	})
}
