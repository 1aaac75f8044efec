package l2

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"travel-gateway/internal/config"
	"travel-gateway/internal/interfaces/mock"
	"travel-gateway/internal/models"
	"travel-gateway/internal/utils"
)

func testKeyDBConfig() *config.KeyDBConfig {
	cfg := &config.Config{}
	cfg.Cache.L2.Connection.ConnectTimeout = 1000
	cfg.Cache.L2.Connection.SendTimeout = 1000
	cfg.Cache.L2.Connection.ReadTimeout = 1000
	cfg.Cache.L2.Keepalive.PoolSize = 4
	cfg.Cache.L2.Keepalive.MaxIdleTimeout = 1000
	return &cfg.Cache.L2
}

// newMiniredisCache runs the tier against an in-memory server sharing the mock clock's notion of now
func newMiniredisCache(t *testing.T) (*KeyDBCache, *miniredis.Miniredis, *clock.Mock) {
	t.Helper()

	mr := miniredis.RunT(t)
	cfg := testKeyDBConfig()

	client, err := NewRedisKeyDbClient(cfg, "redis://"+mr.Addr(), zap.NewNop())
	require.NoError(t, err)

	clk := clock.NewMock()
	clk.Set(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	c := NewKeyDBCache(cfg, client, clk, zap.NewNop())
	t.Cleanup(func() { _ = c.Close() })
	return c, mr, clk
}

func TestNewRedisKeyDbClient_InvalidURL(t *testing.T) {
	_, err := NewRedisKeyDbClient(testKeyDBConfig(), "http://not-redis", zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse KeyDB URL")
}

func TestNewRedisKeyDbClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisKeyDbClient(testKeyDBConfig(), "redis://"+addr, zap.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to KeyDB")
}

func TestKeyDBCache_SetGet(t *testing.T) {
	c, mr, clk := newMiniredisCache(t)

	entry := models.NewCacheEntry([]byte(`[{"id":"1"}]`), models.ResourceFlights, clk.Now(), 10*time.Minute)
	c.Set("amadeus:flights:origin=JFK", entry)

	result, found := c.Get("amadeus:flights:origin=JFK")
	require.True(t, found)
	assert.Equal(t, entry.Data, result.Data)
	assert.Equal(t, entry.ExpiresAt, result.ExpiresAt)

	// Native expiry follows the entry TTL
	assert.Equal(t, 10*time.Minute, mr.TTL("amadeus:flights:origin=JFK"))

	mr.FastForward(10 * time.Minute)
	_, found = c.Get("amadeus:flights:origin=JFK")
	assert.False(t, found)
}

func TestKeyDBCache_Set_SkipsExpiredEntry(t *testing.T) {
	c, mr, clk := newMiniredisCache(t)

	entry := models.NewCacheEntry([]byte("x"), models.ResourceFlights, clk.Now().Add(-time.Hour), time.Minute)
	c.Set("gone", entry)

	assert.False(t, mr.Exists("gone"))
}

func TestKeyDBCache_Touch_KeepsTTL(t *testing.T) {
	c, mr, clk := newMiniredisCache(t)

	c.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, clk.Now(), 15*time.Minute))
	mr.FastForward(5 * time.Minute)

	c.Touch("key")
	c.Touch("key")
	c.Touch("missing")

	result, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, int64(2), result.HitCount)
	assert.Equal(t, 10*time.Minute, mr.TTL("key"))
	assert.False(t, mr.Exists("missing"))
}

func TestKeyDBCache_DeleteAndPrefix(t *testing.T) {
	c, mr, clk := newMiniredisCache(t)
	now := clk.Now()

	for i := 0; i < 450; i++ {
		c.Set(fmt.Sprintf("amadeus:flights:origin=A%03d", i), models.NewCacheEntry([]byte("f"), models.ResourceFlights, now, time.Hour))
	}
	c.Set("amadeus:hotels:cityCode=PAR", models.NewCacheEntry([]byte("h"), models.ResourceHotels, now, time.Hour))
	require.NoError(t, mr.Set("unrelated", "keep-me"))

	assert.Equal(t, 451, c.Len())

	assert.True(t, c.Delete("amadeus:flights:origin=A000"))
	assert.False(t, c.Delete("amadeus:flights:origin=A000"))

	assert.Equal(t, 449, c.DeletePrefix("amadeus:flights:"))
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 1, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.True(t, mr.Exists("unrelated"))
}

func TestKeyDBCache_DeletePrefix_EscapesGlob(t *testing.T) {
	c, _, clk := newMiniredisCache(t)
	now := clk.Now()

	c.Set("amadeus:hotels:ids=[1]", models.NewCacheEntry([]byte("a"), models.ResourceHotels, now, time.Hour))
	c.Set("amadeus:hotels:ids=1", models.NewCacheEntry([]byte("b"), models.ResourceHotels, now, time.Hour))

	assert.Equal(t, 1, c.DeletePrefix("amadeus:hotels:ids=["))
	_, found := c.Get("amadeus:hotels:ids=1")
	assert.True(t, found)
}

func TestKeyDBCache_DeleteExpired_IsNoop(t *testing.T) {
	c, _, clk := newMiniredisCache(t)
	c.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, clk.Now(), time.Minute))

	assert.Equal(t, 0, c.DeleteExpired(clk.Now().Add(time.Hour)))
}

func TestKeyDBCache_Get_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	c := NewKeyDBCache(testKeyDBConfig(), mockClient, clock.NewMock(), zap.NewNop())

	t.Run("missing key", func(t *testing.T) {
		mockClient.EXPECT().Get(gomock.Any(), "missing").Return(redis.NewStringResult("", redis.Nil))

		entry, found := c.Get("missing")
		assert.False(t, found)
		assert.Nil(t, entry)
	})

	t.Run("connection error", func(t *testing.T) {
		mockClient.EXPECT().Get(gomock.Any(), "key").Return(redis.NewStringResult("", errors.New("connection refused")))

		_, found := c.Get("key")
		assert.False(t, found)
	})

	t.Run("corrupted entry is deleted", func(t *testing.T) {
		mockClient.EXPECT().Get(gomock.Any(), "bad").Return(redis.NewStringResult("{oops", nil))
		mockClient.EXPECT().Del(gomock.Any(), "bad").Return(redis.NewIntResult(1, nil))

		_, found := c.Get("bad")
		assert.False(t, found)
	})
}

func TestKeyDBCache_Touch_UsesKeepTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	clk := clock.NewMock()
	c := NewKeyDBCache(testKeyDBConfig(), mockClient, clk, zap.NewNop())

	stored, err := utils.Marshal(models.NewCacheEntry([]byte("v"), models.ResourceFlights, clk.Now(), time.Minute))
	require.NoError(t, err)

	mockClient.EXPECT().Get(gomock.Any(), "key").Return(redis.NewStringResult(string(stored), nil))
	mockClient.EXPECT().
		SetXX(gomock.Any(), "key", gomock.Any(), time.Duration(redis.KeepTTL)).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) *redis.BoolCmd {
			var entry models.CacheEntry
			require.NoError(t, utils.Unmarshal(value.([]byte), &entry))
			assert.Equal(t, int64(1), entry.HitCount)
			return redis.NewBoolResult(true, nil)
		})

	c.Touch("key")
}

// deletingClient drops each key right after reading it, as a concurrent
// invalidation or native expiry would
type deletingClient struct {
	*RedisKeyDbClient
	mr *miniredis.Miniredis
}

func (d *deletingClient) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := d.RedisKeyDbClient.Get(ctx, key)
	d.mr.Del(key)
	return cmd
}

func TestKeyDBCache_Touch_DoesNotRecreateDeletedKey(t *testing.T) {
	t.Run("deleted before touch", func(t *testing.T) {
		c, mr, clk := newMiniredisCache(t)

		c.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, clk.Now(), 15*time.Minute))
		assert.True(t, c.Delete("key"))

		c.Touch("key")
		assert.False(t, mr.Exists("key"))
	})

	t.Run("deleted between read and write", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testKeyDBConfig()
		client, err := NewRedisKeyDbClient(cfg, "redis://"+mr.Addr(), zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		clk := clock.NewMock()
		c := NewKeyDBCache(cfg, &deletingClient{RedisKeyDbClient: client, mr: mr}, clk, zap.NewNop())

		c.Set("key", models.NewCacheEntry([]byte("v"), models.ResourceHotels, clk.Now(), 15*time.Minute))
		require.True(t, mr.Exists("key"))

		c.Touch("key")
		assert.False(t, mr.Exists("key"), "touch must not bring back a key removed after the read")
	})
}

func TestKeyDBCache_DeletePrefix_ScanError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mock.NewMockKeyDbClient(ctrl)
	c := NewKeyDBCache(testKeyDBConfig(), mockClient, clock.NewMock(), zap.NewNop())

	first := mockClient.EXPECT().
		Scan(gomock.Any(), uint64(0), "amadeus:flights:*", int64(scanBatch)).
		Return(redis.NewScanCmdResult([]string{"amadeus:flights:a"}, 7, nil))
	second := mockClient.EXPECT().
		Del(gomock.Any(), "amadeus:flights:a").
		Return(redis.NewIntResult(1, nil))
	third := mockClient.EXPECT().
		Scan(gomock.Any(), uint64(7), "amadeus:flights:*", int64(scanBatch)).
		Return(redis.NewScanCmdResult(nil, 0, errors.New("timeout")))
	gomock.InOrder(first, second, third)

	// Keys removed before the failure are still counted
	assert.Equal(t, 1, c.DeletePrefix("amadeus:flights:"))
}
