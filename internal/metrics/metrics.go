package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cache lookups by resource type
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_requests_total",
			Help: "Total number of cache lookups",
		},
		[]string{"resource_type"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"resource_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"resource_type"},
	)

	CacheSets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_sets_total",
			Help: "Total number of cache writes",
		},
		[]string{"resource_type"},
	)

	// Hits served by each tier
	TierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_tier_hits_total",
			Help: "Total number of hits served by a cache tier",
		},
		[]string{"level"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_evictions_total",
			Help: "Total number of entries removed from the cache",
		},
		[]string{"reason"}, // expired, invalidated, cleared
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_cache_errors_total",
			Help: "Total number of cache tier errors",
		},
		[]string{"level", "kind"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_cache_operation_duration_seconds",
			Help:    "Duration of cache get operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "level"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_cache_keys",
			Help: "Number of keys held by a cache tier",
		},
		[]string{"level"},
	)

	// L1 capacity only
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gateway_cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	// Request queue
	QueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_queue_length",
			Help: "Number of provider calls waiting in the queue",
		},
	)

	QueueDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_queue_dispatched_total",
			Help: "Total number of provider calls dispatched by the queue",
		},
	)

	QueueDelays = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_queue_delays_total",
			Help: "Total number of pacing delays applied by the queue",
		},
		[]string{"reason"}, // window, interval
	)

	QueueCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_queue_cleared_total",
			Help: "Total number of queued calls rejected by a queue clear",
		},
	)

	QueueWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_queue_wait_seconds",
			Help:    "Time a call spent queued before dispatch",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// Provider calls
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_provider_requests_total",
			Help: "Total number of provider calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_provider_errors_total",
			Help: "Total number of classified provider errors",
		},
		[]string{"operation", "kind"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_provider_request_duration_seconds",
			Help:    "Duration of provider calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)

	ProviderClientCreations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_provider_client_creations_total",
			Help: "Total number of provider client handles created",
		},
	)

	ProviderTokenRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_provider_token_refreshes_total",
			Help: "Total number of access token requests",
		},
	)

	// HTTP API
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "method", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_http_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// RecordCacheRequest records a cache lookup
func RecordCacheRequest(resourceType string) {
	CacheRequests.WithLabelValues(resourceType).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(resourceType string) {
	CacheHits.WithLabelValues(resourceType).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(resourceType string) {
	CacheMisses.WithLabelValues(resourceType).Inc()
}

// RecordCacheSet records a cache write
func RecordCacheSet(resourceType string) {
	CacheSets.WithLabelValues(resourceType).Inc()
}

// RecordTierHit records a hit served by the given tier
func RecordTierHit(level string) {
	TierHits.WithLabelValues(level).Inc()
}

// RecordCacheEvictions adds n removed entries
func RecordCacheEvictions(reason string, n int) {
	if n <= 0 {
		return
	}
	CacheEvictions.WithLabelValues(reason).Add(float64(n))
}

// RecordCacheError records a tier failure
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// UpdateCacheKeys sets the key count of a tier
func UpdateCacheKeys(level string, keys int64) {
	CacheKeys.WithLabelValues(level).Set(float64(keys))
}

// UpdateL1CacheCapacity updates L1 cache capacity
func UpdateL1CacheCapacity(capacity int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// TimeCacheGetOperation returns a timer function for measuring cache get operation duration
func TimeCacheGetOperation(level string) func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues("get", level))
	return func() {
		timer.ObserveDuration()
	}
}

// SetQueueLength sets the current queue length
func SetQueueLength(n int) {
	QueueLength.Set(float64(n))
}

// RecordQueueDispatch records one dispatched call and how long it waited
func RecordQueueDispatch(waited time.Duration) {
	QueueDispatched.Inc()
	QueueWait.Observe(waited.Seconds())
}

// RecordQueueDelay records a pacing delay
func RecordQueueDelay(reason string) {
	QueueDelays.WithLabelValues(reason).Inc()
}

// RecordQueueCleared adds n rejected entries
func RecordQueueCleared(n int) {
	if n <= 0 {
		return
	}
	QueueCleared.Add(float64(n))
}

// RecordProviderRequest records the outcome of a provider call
func RecordProviderRequest(operation, outcome string) {
	ProviderRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordProviderError records a classified provider failure
func RecordProviderError(operation, kind string) {
	ProviderErrors.WithLabelValues(operation, kind).Inc()
}

// TimeProviderCall returns a timer function for a provider call
func TimeProviderCall(operation string) func() {
	timer := prometheus.NewTimer(ProviderDuration.WithLabelValues(operation))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordClientCreation records a new provider client handle
func RecordClientCreation() {
	ProviderClientCreations.Inc()
}

// RecordTokenRefresh records an access token request
func RecordTokenRefresh() {
	ProviderTokenRefreshes.Inc()
}

// RecordHTTPRequest records a served API request
func RecordHTTPRequest(route, method, code string) {
	HTTPRequests.WithLabelValues(route, method, code).Inc()
}

// TimeHTTPRequest returns a timer function for an API request
func TimeHTTPRequest(route string) func() {
	timer := prometheus.NewTimer(HTTPDuration.WithLabelValues(route))
	return func() {
		timer.ObserveDuration()
	}
}
