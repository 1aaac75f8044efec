package gateway

import (
	"context"

	"travel-gateway/internal/cache/service"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/models"
	"travel-gateway/internal/provider"
	"travel-gateway/internal/ratelimit"
)

// Gateway is the single outbound path: cache first, then the rate-limited queue,
// then the provider wrapper.
type Gateway struct {
	cache   *service.CacheService
	queue   *ratelimit.Queue
	wrapper *provider.Wrapper
}

func New(cache *service.CacheService, queue *ratelimit.Queue, wrapper *provider.Wrapper) *Gateway {
	return &Gateway{
		cache:   cache,
		queue:   queue,
		wrapper: wrapper,
	}
}

func (g *Gateway) Cache() *service.CacheService {
	return g.cache
}

func (g *Gateway) Queue() *ratelimit.Queue {
	return g.queue
}

func (g *Gateway) Wrapper() *provider.Wrapper {
	return g.wrapper
}

// Call runs fn through the queue and the wrapper, without caching
func Call[T any](
	ctx context.Context,
	g *Gateway,
	label string,
	fn func(ctx context.Context, api interfaces.ProviderAPI) (T, error),
) (T, error) {
	return ratelimit.Submit(ctx, g.queue, func(ctx context.Context) (T, error) {
		return provider.RunWithErrorHandling(ctx, g.wrapper, label, fn)
	})
}

// Cached serves (resourceType, params) from the cache, falling back to Call on a miss
func Cached[T any](
	ctx context.Context,
	g *Gateway,
	resourceType models.ResourceType,
	params map[string]interface{},
	label string,
	fn func(ctx context.Context, api interfaces.ProviderAPI) (T, error),
) (service.Result[T], error) {
	return service.WithCache(ctx, g.cache, resourceType, params, func(ctx context.Context) (T, error) {
		return Call(ctx, g, label, fn)
	})
}

// TestConnection runs the provider connectivity check through the queue
func (g *Gateway) TestConnection(ctx context.Context) models.ConnectionStatus {
	status, err := ratelimit.Submit(ctx, g.queue, func(ctx context.Context) (models.ConnectionStatus, error) {
		return g.wrapper.TestConnection(ctx), nil
	})
	if err != nil {
		return models.ConnectionStatus{
			Success:     false,
			Environment: string(g.wrapper.Environment()),
			Message:     "Amadeus connection failed: " + err.Error(),
		}
	}
	return status
}
