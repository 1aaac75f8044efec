package multi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/interfaces/mock"
	"travel-gateway/internal/models"
)

func testEntry() models.CacheEntry {
	return models.NewCacheEntry([]byte("test-value"), models.ResourceFlights, time.Now(), time.Minute)
}

func TestNewMultiCache(t *testing.T) {
	logger := zap.NewNop()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)

	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, logger)

	assert.Equal(t, 2, mc.GetCacheCount())
	assert.Equal(t, cache1, mc.caches[0])
	assert.Equal(t, []string{"l1", "l2"}, mc.levels)
}

func TestMultiCache_Get_FirstCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop())

	entry := testEntry()
	cache1.EXPECT().Get("test-key").Return(&entry, true).Times(1)
	// cache2.Get should not be called since cache1 has the value

	result, found := mc.Get("test-key")

	assert.True(t, found)
	assert.Equal(t, entry.Data, result.Data)
}

func TestMultiCache_Get_SecondCacheHitPromotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop())

	entry := testEntry()
	entry.HitCount = 4

	gomock.InOrder(
		cache1.EXPECT().Get("test-key").Return(nil, false),
		cache2.EXPECT().Get("test-key").Return(&entry, true),
		cache1.EXPECT().Set("test-key", entry),
	)

	result, found := mc.Get("test-key")

	assert.True(t, found)
	assert.Equal(t, int64(4), result.HitCount)
}

func TestMultiCache_Get_AllCachesMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop())

	cache1.EXPECT().Get("test-key").Return(nil, false).Times(1)
	cache2.EXPECT().Get("test-key").Return(nil, false).Times(1)

	result, found := mc.Get("test-key")

	assert.False(t, found)
	assert.Nil(t, result)
}

func TestMultiCache_NoCaches(t *testing.T) {
	mc := NewMultiCache([]interfaces.Cache{}, zap.NewNop())

	result, found := mc.Get("test-key")
	assert.False(t, found)
	assert.Nil(t, result)

	mc.Set("test-key", testEntry())
	assert.False(t, mc.Delete("test-key"))
	assert.Equal(t, 0, mc.Len())
	assert.Equal(t, 0, mc.Clear())
}

func TestMultiCache_WritesGoToAllTiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop())

	entry := testEntry()
	cache1.EXPECT().Set("test-key", entry)
	cache2.EXPECT().Set("test-key", entry)
	mc.Set("test-key", entry)

	cache1.EXPECT().Touch("test-key")
	cache2.EXPECT().Touch("test-key")
	mc.Touch("test-key")

	cache1.EXPECT().Delete("test-key").Return(false)
	cache2.EXPECT().Delete("test-key").Return(true)
	assert.True(t, mc.Delete("test-key"))
}

func TestMultiCache_CountsUseLargestTier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache1 := mock.NewMockCache(ctrl)
	cache2 := mock.NewMockCache(ctrl)
	mc := NewMultiCache([]interfaces.Cache{cache1, cache2}, zap.NewNop())
	now := time.Now()

	tests := []struct {
		name   string
		expect func()
		run    func() int
		want   int
	}{
		{
			name: "DeletePrefix",
			expect: func() {
				cache1.EXPECT().DeletePrefix("amadeus:flights:").Return(2)
				cache2.EXPECT().DeletePrefix("amadeus:flights:").Return(5)
			},
			run:  func() int { return mc.DeletePrefix("amadeus:flights:") },
			want: 5,
		},
		{
			name: "DeleteExpired",
			expect: func() {
				cache1.EXPECT().DeleteExpired(now).Return(3)
				cache2.EXPECT().DeleteExpired(now).Return(0)
			},
			run:  func() int { return mc.DeleteExpired(now) },
			want: 3,
		},
		{
			name: "Len",
			expect: func() {
				cache1.EXPECT().Len().Return(10)
				cache2.EXPECT().Len().Return(12)
			},
			run:  func() int { return mc.Len() },
			want: 12,
		},
		{
			name: "Clear",
			expect: func() {
				cache1.EXPECT().Clear().Return(7)
				cache2.EXPECT().Clear().Return(7)
			},
			run:  func() int { return mc.Clear() },
			want: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.expect()
			assert.Equal(t, tt.want, tt.run())
		})
	}
}
