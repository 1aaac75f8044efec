// Package gatewaytest builds a fully wired Gateway over a fake provider for package tests.
package gatewaytest

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"travel-gateway/internal/cache"
	"travel-gateway/internal/cache/l1"
	"travel-gateway/internal/cache/service"
	"travel-gateway/internal/cache_rules"
	"travel-gateway/internal/config"
	"travel-gateway/internal/gateway"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/provider"
	"travel-gateway/internal/ratelimit"
)

// Start is the mock clock's initial time
var Start = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

// FastProfile paces the queue at 1ms so tests are not slowed down
var FastProfile = ratelimit.Profile{Environment: "sandbox", MaxRequestsPerSecond: 1000, MinInterval: time.Millisecond}

// New returns a gateway whose provider handle is api, a real L1 cache and a fast queue.
// The mock clock drives cache expiry.
func New(t *testing.T, api interfaces.ProviderAPI) (*gateway.Gateway, *clock.Mock) {
	t.Helper()
	logger := zap.NewNop()

	tier, err := l1.NewBigCache(&config.BigCacheConfig{Enabled: true, Size: 8, Shards: 4}, logger)
	if err != nil {
		t.Fatalf("failed to create L1 cache: %v", err)
	}
	t.Cleanup(func() { _ = tier.Close() })

	clk := clock.NewMock()
	clk.Set(Start)

	cacheService := service.NewCacheService(tier, cache.NewKeyBuilder(), cache_rules.NewTTLTable(nil, logger), clk, logger)

	queue := ratelimit.NewQueue(FastProfile, clock.New(), logger)
	t.Cleanup(queue.Close)

	wrapper := provider.NewWrapper(
		config.ProviderConfig{ClientID: "id", ClientSecret: "secret", Environment: config.EnvSandbox},
		logger,
		provider.WithFactory(func(config.ProviderConfig, *zap.Logger) interfaces.ProviderAPI { return api }),
	)

	return gateway.New(cacheService, queue, wrapper), clk
}
