package provider

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"travel-gateway/internal/config"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/metrics"
	"travel-gateway/internal/models"
)

// Factory builds a new provider handle
type Factory func(cfg config.ProviderConfig, logger *zap.Logger) interfaces.ProviderAPI

// DefaultFactory builds an AmadeusClient
func DefaultFactory(cfg config.ProviderConfig, logger *zap.Logger) interfaces.ProviderAPI {
	return NewAmadeusClient(ClientConfigFrom(cfg), logger)
}

// Option customizes a Wrapper
type Option func(*Wrapper)

// WithFactory replaces the handle factory
func WithFactory(factory Factory) Option {
	return func(w *Wrapper) {
		w.factory = factory
	}
}

// WithOnCreate registers a hook called with every new handle
func WithOnCreate(hook func(interfaces.ProviderAPI)) Option {
	return func(w *Wrapper) {
		w.onCreate = hook
	}
}

// Wrapper owns the shared provider handle. The handle is created lazily and
// discarded after an authentication failure; it is never refreshed in place.
type Wrapper struct {
	cfg      config.ProviderConfig
	factory  Factory
	onCreate func(interfaces.ProviderAPI)
	logger   *zap.Logger

	mu        sync.Mutex
	client    interfaces.ProviderAPI
	creations atomic.Int64
}

// NewWrapper creates a wrapper. Missing credentials are reported on first use, not here.
func NewWrapper(cfg config.ProviderConfig, logger *zap.Logger, opts ...Option) *Wrapper {
	w := &Wrapper{
		cfg:     cfg,
		factory: DefaultFactory,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// GetClient returns the shared handle, creating it on first use
func (w *Wrapper) GetClient() (interfaces.ProviderAPI, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.client != nil {
		return w.client, nil
	}
	if !w.cfg.HasCredentials() {
		return nil, fmt.Errorf("set AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET: %w", models.ErrNotConfigured)
	}

	client := w.factory(w.cfg, w.logger)
	w.client = client
	w.creations.Add(1)
	metrics.RecordClientCreation()
	w.logger.Info("Provider client initialized", zap.String("environment", string(w.cfg.Environment)))

	if w.onCreate != nil {
		w.onCreate(client)
	}
	return client, nil
}

// ResetClient discards the handle; the next GetClient creates a new one
func (w *Wrapper) ResetClient() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.client != nil {
		w.logger.Info("Provider client reset")
	}
	w.client = nil
}

// IsConfigured reports whether credentials are present
func (w *Wrapper) IsConfigured() bool {
	return w.cfg.HasCredentials()
}

// Environment returns the provider environment
func (w *Wrapper) Environment() config.Environment {
	return w.cfg.Environment
}

// Creations returns how many handles have been created
func (w *Wrapper) Creations() int64 {
	return w.creations.Load()
}

// RunWithErrorHandling executes op against the shared handle and normalizes any failure.
// An authentication failure resets the handle before the error is returned.
func RunWithErrorHandling[T any](
	ctx context.Context,
	w *Wrapper,
	label string,
	op func(ctx context.Context, api interfaces.ProviderAPI) (T, error),
) (T, error) {
	var zero T
	stop := metrics.TimeProviderCall(label)
	defer stop()

	api, err := w.GetClient()
	if err != nil {
		return zero, w.handleError(err, label)
	}

	result, err := op(ctx, api)
	if err != nil {
		return zero, w.handleError(err, label)
	}

	metrics.RecordProviderRequest(label, string(metrics.OutcomeSuccess))
	return result, nil
}

func (w *Wrapper) handleError(err error, label string) *models.GatewayError {
	gwErr := Classify(err, label)

	w.logger.Error("Provider call failed",
		zap.String("label", label),
		zap.Int("status", gwErr.Status),
		zap.String("kind", string(gwErr.Kind)),
		zap.Error(err))

	metrics.RecordProviderRequest(label, string(metrics.CategorizeOutcome(err, gwErr.Status)))
	metrics.RecordProviderError(label, string(gwErr.Kind))

	if gwErr.Kind == models.KindAuthentication {
		w.ResetClient()
	}
	return gwErr
}

// TestConnection runs a minimal location search and reports whether it succeeded
func (w *Wrapper) TestConnection(ctx context.Context) models.ConnectionStatus {
	env := string(w.cfg.Environment)

	_, err := RunWithErrorHandling(ctx, w, "testConnection", func(ctx context.Context, api interfaces.ProviderAPI) ([]models.LocationResult, error) {
		return api.SearchLocations(ctx, models.LocationQuery{Keyword: "NYC", SubType: "CITY", Limit: 1})
	})
	if err != nil {
		return models.ConnectionStatus{
			Success:     false,
			Environment: env,
			Message:     "Amadeus connection failed: " + err.Error(),
		}
	}

	return models.ConnectionStatus{
		Success:     true,
		Environment: env,
		Message:     "Amadeus connection successful",
	}
}
