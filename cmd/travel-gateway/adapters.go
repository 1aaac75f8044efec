package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"travel-gateway/internal/cache/service"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/ratelimit"
)

// redisLogger adapts zap.Logger to the go-redis internal logger
type redisLogger struct {
	logger *zap.Logger
}

func newRedisLogger(logger *zap.Logger) *redisLogger {
	return &redisLogger{logger: logger.Named("redis")}
}

// Printf logs go-redis connection and pool messages at warn level
func (l *redisLogger) Printf(_ context.Context, format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

// metricsReporter is implemented by cache tiers that publish gauges
type metricsReporter interface {
	ReportMetrics()
}

// statsReporter refreshes tier gauges and logs a cache and queue summary
type statsReporter struct {
	tiers  []metricsReporter
	cache  *service.CacheService
	queue  *ratelimit.Queue
	logger *zap.Logger
}

func (r *statsReporter) report() {
	for _, tier := range r.tiers {
		tier.ReportMetrics()
	}

	queueStats := r.queue.Stats()
	metrics.SetQueueLength(queueStats.QueueLength)

	cacheStats := r.cache.Stats()
	r.logger.Info("Gateway stats",
		zap.Int64("cache_hits", cacheStats.Hits),
		zap.Int64("cache_misses", cacheStats.Misses),
		zap.Int("cache_size", cacheStats.Size),
		zap.String("cache_hit_rate", cacheStats.HitRate),
		zap.Int64("queue_total", queueStats.TotalRequests),
		zap.Int64("queue_delays", queueStats.RateLimitDelays),
		zap.Float64("queue_avg_wait_ms", queueStats.AverageWaitMs),
		zap.Int("queue_length", queueStats.QueueLength))
}
