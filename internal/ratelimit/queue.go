package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
)

// windowBuffer is added to the wait for the next window so the reset is never missed
const windowBuffer = 10 * time.Millisecond

// Operation is a unit of outbound work admitted by the queue
type Operation func(ctx context.Context) (interface{}, error)

type outcome struct {
	value interface{}
	err   error
}

type entry struct {
	id         string
	ctx        context.Context
	op         Operation
	enqueuedAt time.Time
	result     chan outcome
}

// Stats is a snapshot of the queue counters
type Stats struct {
	TotalRequests        int64   `json:"totalRequests"`
	QueuedRequests       int64   `json:"queuedRequests"`
	RateLimitDelays      int64   `json:"rateLimitDelays"`
	AverageWaitMs        float64 `json:"averageWaitTime"`
	QueueLength          int     `json:"queueLength"`
	Environment          string  `json:"environment"`
	MaxRequestsPerSecond int     `json:"maxRequestsPerSecond"`
}

// Queue is a FIFO admission path that dispatches one operation at a time
// within a per-second ceiling and a minimum spacing.
type Queue struct {
	profile Profile
	clock   clock.Clock
	logger  *zap.Logger
	limiter *rate.Limiter

	mu      sync.Mutex
	pending []*entry
	running bool
	closed  bool
	wg      sync.WaitGroup

	// owned by the drain goroutine
	windowStart      time.Time
	requestsInWindow int
	lastRequestAt    time.Time

	totalRequests   atomic.Int64
	queuedRequests  atomic.Int64
	rateLimitDelays atomic.Int64
	totalWait       atomic.Int64
}

// NewQueue creates a queue for the given profile. The drain goroutine starts on first use.
func NewQueue(profile Profile, clk clock.Clock, logger *zap.Logger) *Queue {
	return &Queue{
		profile: profile,
		clock:   clk,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Every(profile.MinInterval), 1),
	}
}

// Enqueue admits op and waits for its result. If ctx ends first the caller gets ctx.Err(),
// but the operation still runs when its turn comes, with ctx's values and no cancellation.
func (q *Queue) Enqueue(ctx context.Context, op Operation) (interface{}, error) {
	e := &entry{
		id:         uuid.NewString(),
		ctx:        context.WithoutCancel(ctx),
		op:         op,
		enqueuedAt: q.clock.Now(),
		result:     make(chan outcome, 1),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, models.ErrQueueClosed
	}
	q.pending = append(q.pending, e)
	length := len(q.pending)
	q.queuedRequests.Add(1)
	if !q.running {
		q.running = true
		q.wg.Add(1)
		go q.drain()
	}
	q.mu.Unlock()

	metrics.SetQueueLength(length)
	q.logger.Debug("Request enqueued", zap.String("id", e.id), zap.Int("queue_length", length))

	select {
	case out := <-e.result:
		return out.value, out.err
	case <-ctx.Done():
		q.logger.Debug("Caller stopped waiting for queued request", zap.String("id", e.id), zap.Error(ctx.Err()))
		return nil, ctx.Err()
	}
}

// Submit is the typed form of Enqueue
func Submit[T any](ctx context.Context, q *Queue, fn func(ctx context.Context) (T, error)) (T, error) {
	value, err := q.Enqueue(ctx, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		if typed, ok := value.(T); ok {
			return typed, err
		}
		return zero, err
	}
	typed, _ := value.(T)
	return typed, nil
}

// ClearQueue rejects every pending entry with ErrQueueCleared and returns how many it rejected.
// The operation in flight, if any, is not affected.
func (q *Queue) ClearQueue() int {
	q.mu.Lock()
	cleared := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, e := range cleared {
		e.result <- outcome{err: &models.GatewayError{Kind: models.KindQueueCleared, Label: "queue"}}
	}

	if len(cleared) > 0 {
		metrics.SetQueueLength(0)
		metrics.RecordQueueCleared(len(cleared))
		q.logger.Info("Request queue cleared", zap.Int("rejected", len(cleared)))
	}
	return len(cleared)
}

// Close stops accepting work, rejects what is pending and waits for the drain goroutine
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.ClearQueue()
	q.wg.Wait()
}

// Len returns the number of entries waiting for dispatch
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Profile returns the active rate profile
func (q *Queue) Profile() Profile {
	return q.profile
}

// Stats returns a snapshot of the counters
func (q *Queue) Stats() Stats {
	total := q.totalRequests.Load()
	avgWait := 0.0
	if total > 0 {
		avgWait = float64(time.Duration(q.totalWait.Load()/total)) / float64(time.Millisecond)
	}

	return Stats{
		TotalRequests:        total,
		QueuedRequests:       q.queuedRequests.Load(),
		RateLimitDelays:      q.rateLimitDelays.Load(),
		AverageWaitMs:        avgWait,
		QueueLength:          q.Len(),
		Environment:          q.profile.Environment,
		MaxRequestsPerSecond: q.profile.MaxRequestsPerSecond,
	}
}

// ResetStats zeroes the counters
func (q *Queue) ResetStats() {
	q.totalRequests.Store(0)
	q.queuedRequests.Store(0)
	q.rateLimitDelays.Store(0)
	q.totalWait.Store(0)
}

// drain dispatches entries until the queue is empty, then exits
func (q *Queue) drain() {
	defer q.wg.Done()

	for {
		if !q.hasPending() {
			return
		}

		now := q.clock.Now()
		if now.Sub(q.windowStart) >= time.Second {
			q.windowStart = now
			q.requestsInWindow = 0
		}

		if q.requestsInWindow >= q.profile.MaxRequestsPerSecond {
			q.recordDelay("window")
			q.clock.Sleep(time.Second - now.Sub(q.windowStart) + windowBuffer)
			continue
		}

		if delay := q.limiter.ReserveN(now, 1).DelayFrom(now); delay > 0 {
			q.recordDelay("interval")
			q.clock.Sleep(delay)
		}

		e, length := q.pop()
		if e == nil {
			// cleared while pacing
			continue
		}
		metrics.SetQueueLength(length)

		q.lastRequestAt = q.clock.Now()
		q.requestsInWindow++
		q.totalRequests.Add(1)

		waited := q.lastRequestAt.Sub(e.enqueuedAt)
		q.totalWait.Add(int64(waited))
		metrics.RecordQueueDispatch(waited)

		e.result <- q.run(e)
	}
}

// hasPending marks the drain goroutine stopped when there is nothing left,
// under the same lock Enqueue uses to decide whether to start one
func (q *Queue) hasPending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		q.running = false
		return false
	}
	return true
}

func (q *Queue) pop() (*entry, int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, 0
	}
	e := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return e, len(q.pending)
}

func (q *Queue) recordDelay(reason string) {
	q.rateLimitDelays.Add(1)
	metrics.RecordQueueDelay(reason)
}

// run executes one operation, turning a panic into an error for that caller only
func (q *Queue) run(e *entry) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("Queued operation panicked", zap.String("id", e.id), zap.Any("panic", r))
			out = outcome{err: fmt.Errorf("queued operation panicked: %v", r)}
		}
	}()

	value, err := e.op(e.ctx)
	return outcome{value: value, err: err}
}
