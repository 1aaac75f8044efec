package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestCacheMetrics(t *testing.T) {
	// Metrics are package-level and registered on import; these just must not panic

	t.Run("RecordCacheLookup", func(t *testing.T) {
		RecordCacheRequest("flights")
		RecordCacheHit("flights")
		RecordCacheMiss("flights")
		RecordCacheSet("flights")
		RecordTierHit("l1")
	})

	t.Run("RecordCacheEvictions", func(t *testing.T) {
		before := testutil.ToFloat64(CacheEvictions.WithLabelValues("expired"))
		RecordCacheEvictions("expired", 3)
		RecordCacheEvictions("expired", 0)
		RecordCacheEvictions("expired", -1)
		assert.Equal(t, before+3, testutil.ToFloat64(CacheEvictions.WithLabelValues("expired")))
	})

	t.Run("RecordCacheError", func(t *testing.T) {
		RecordCacheError("l1", "encode")
	})

	t.Run("Gauges", func(t *testing.T) {
		UpdateL1CacheCapacity(1000000)
		UpdateCacheKeys("l1", 42)
		assert.Equal(t, float64(42), testutil.ToFloat64(CacheKeys.WithLabelValues("l1")))
	})

	t.Run("TimeCacheGetOperation", func(t *testing.T) {
		timer := TimeCacheGetOperation("l1")
		timer()
	})
}

func TestQueueMetrics(t *testing.T) {
	SetQueueLength(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(QueueLength))

	before := testutil.ToFloat64(QueueDispatched)
	RecordQueueDispatch(150 * time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(QueueDispatched))

	RecordQueueDelay("window")
	RecordQueueDelay("interval")

	cleared := testutil.ToFloat64(QueueCleared)
	RecordQueueCleared(4)
	RecordQueueCleared(0)
	assert.Equal(t, cleared+4, testutil.ToFloat64(QueueCleared))
}

func TestProviderAndHTTPMetrics(t *testing.T) {
	RecordProviderRequest("flightOffersSearch", string(OutcomeSuccess))
	RecordProviderError("flightOffersSearch", "rate_limit")
	TimeProviderCall("flightOffersSearch")()
	RecordClientCreation()
	RecordTokenRefresh()

	RecordHTTPRequest("/api/flights/search", "GET", "200")
	TimeHTTPRequest("/api/flights/search")()
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestCategorizeOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected Outcome
	}{
		{"success", nil, 200, OutcomeSuccess},
		{"deadline", context.DeadlineExceeded, 0, OutcomeNetworkError},
		{"wrapped fasthttp timeout", fmt.Errorf("call failed: %w", fasthttp.ErrTimeout), 0, OutcomeNetworkError},
		{"net error", timeoutErr{}, 0, OutcomeNetworkError},
		{"http status", errors.New("bad gateway"), 502, OutcomeHTTPError},
		{"client status", errors.New("bad request"), 400, OutcomeHTTPError},
		{"decode failure", errors.New("invalid character"), 200, OutcomeUnknownError},
		{"no status", errors.New("boom"), 0, OutcomeUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeOutcome(tt.err, tt.status))
		})
	}
}
