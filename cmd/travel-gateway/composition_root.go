package main

import (
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"travel-gateway/internal/cache"
	"travel-gateway/internal/cache/l1"
	"travel-gateway/internal/cache/l2"
	"travel-gateway/internal/cache/multi"
	"travel-gateway/internal/cache/noop"
	"travel-gateway/internal/cache/service"
	"travel-gateway/internal/cache_rules"
	"travel-gateway/internal/config"
	"travel-gateway/internal/flights"
	"travel-gateway/internal/gateway"
	"travel-gateway/internal/hotels"
	"travel-gateway/internal/httpserver"
	"travel-gateway/internal/interfaces"
	"travel-gateway/internal/locations"
	"travel-gateway/internal/provider"
	"travel-gateway/internal/ratelimit"
	"travel-gateway/internal/scheduler"
)

// CompositionRoot holds all application dependencies and their cleanup.
//
// Initialization order:
// 1. Logger
// 2. Configuration
// 3. TTL rules
// 4. Cache tiers (L1, L2) and the cache service
// 5. Queue, provider wrapper, gateway and domain services
// 6. Background tasks
// 7. HTTP servers
type CompositionRoot struct {
	Config   *config.Config
	Logger   *zap.Logger
	TTLRules *cache_rules.TTLTable
	Clock    clock.Clock

	L1Cache interfaces.Cache
	L2Cache interfaces.Cache

	CacheService *service.CacheService
	Queue        *ratelimit.Queue
	Wrapper      *provider.Wrapper
	Gateway      *gateway.Gateway

	SweepTask *scheduler.PeriodicTask
	StatsTask *scheduler.PeriodicTask

	HTTPServer    *httpserver.Server
	MetricsServer *httpserver.MetricsServer
}

// NewCompositionRoot creates and wires all application dependencies
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clock.New()}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.loadTTLRules(); err != nil {
		return nil, fmt.Errorf("failed to load cache TTL rules: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	root.initGateway()
	root.initBackgroundTasks()
	root.initHTTPServers()

	return root, nil
}

func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	redis.SetLogger(newRedisLogger(logger))
	return nil
}

func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.LoadConfig(GetConfigPath(), r.Logger)
	if err != nil {
		return err
	}
	r.Config = cfg

	r.Logger.Info("Configuration loaded",
		zap.String("environment", string(cfg.Provider.Environment)),
		zap.Bool("credentials", cfg.Provider.HasCredentials()),
		zap.Bool("l1_enabled", cfg.Cache.L1.Enabled),
		zap.Bool("l2_enabled", cfg.Cache.L2.Enabled))
	return nil
}

// loadTTLRules reads the TTL override file when one is configured, otherwise the defaults apply
func (r *CompositionRoot) loadTTLRules() error {
	if r.Config.Cache.TTLRulesFile == "" {
		r.TTLRules = cache_rules.NewTTLTable(nil, r.Logger)
		return nil
	}

	rules, err := cache_rules.LoadTTLRules(r.Config.Cache.TTLRulesFile, r.Logger)
	if err != nil {
		return err
	}
	r.TTLRules = rules
	return nil
}

func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}
	r.initL2Cache()

	tiers := multi.NewMultiCache([]interfaces.Cache{r.L1Cache, r.L2Cache}, r.Logger)
	r.CacheService = service.NewCacheService(tiers, cache.NewKeyBuilder(), r.TTLRules, r.Clock, r.Logger)
	return nil
}

func (r *CompositionRoot) initL1Cache() error {
	cfg := r.Config.Cache.L1
	if !cfg.Enabled {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
		return nil
	}

	l1Cache, err := l1.NewBigCache(&cfg, r.Logger)
	if err != nil {
		return err
	}
	r.L1Cache = l1Cache
	r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", cfg.Size))
	return nil
}

// initL2Cache connects to KeyDB. A failed connection leaves the gateway on L1 alone.
func (r *CompositionRoot) initL2Cache() {
	cfg := r.Config.Cache.L2
	if !cfg.Enabled {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("KeyDB (L2) disabled")
		return
	}

	keydbURL := GetKeyDBURL(r.Logger)
	client, err := l2.NewRedisKeyDbClient(&cfg, keydbURL, r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to KeyDB, falling back to no L2 cache",
			zap.String("keydb_url", keydbURL),
			zap.Error(err))
		r.L2Cache = noop.NewNoOpCache()
		return
	}

	r.L2Cache = l2.NewKeyDBCache(&cfg, client, r.Clock, r.Logger)
	r.Logger.Info("KeyDB (L2) initialized", zap.String("keydb_url", keydbURL))
}

func (r *CompositionRoot) initGateway() {
	profile := ratelimit.ProfileFromConfig(r.Config.Queue, r.Config.Provider.Environment)
	r.Queue = ratelimit.NewQueue(profile, r.Clock, r.Logger)
	r.Wrapper = provider.NewWrapper(r.Config.Provider, r.Logger)
	r.Gateway = gateway.New(r.CacheService, r.Queue, r.Wrapper)

	if !r.Wrapper.IsConfigured() {
		r.Logger.Warn("Amadeus credentials missing, provider calls will fail until AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are set")
	}
}

func (r *CompositionRoot) initBackgroundTasks() {
	r.SweepTask = scheduler.New("cache-sweep", r.Config.Cache.SweepInterval, func() {
		if removed := r.CacheService.SweepExpired(); removed > 0 {
			r.Logger.Debug("Expired cache entries swept", zap.Int("removed", removed))
		}
	}, r.Logger)

	reporter := &statsReporter{
		cache:  r.CacheService,
		queue:  r.Queue,
		logger: r.Logger,
	}
	for _, tier := range []interfaces.Cache{r.L1Cache, r.L2Cache} {
		if m, ok := tier.(metricsReporter); ok {
			reporter.tiers = append(reporter.tiers, m)
		}
	}
	r.StatsTask = scheduler.New("stats-report", r.Config.Cache.StatsReportInterval, reporter.report, r.Logger)
}

func (r *CompositionRoot) initHTTPServers() {
	logger := r.Logger
	services := httpserver.Services{
		Flights:   flights.NewService(r.Gateway, logger.Named("flights")),
		Hotels:    hotels.NewService(r.Gateway, logger.Named("hotels")),
		Locations: locations.NewService(r.Gateway, logger.Named("locations")),
	}

	r.HTTPServer = httpserver.NewServer(r.Gateway, services, r.Config.Server, r.Clock, logger)
	r.MetricsServer = httpserver.NewMetricsServer(r.Config.Server.MetricsAddr, logger)
}

// StartBackgroundTasks starts the cache sweep and the stats report
func (r *CompositionRoot) StartBackgroundTasks() {
	r.SweepTask.Start()
	r.StatsTask.Start()
}

// Cleanup stops background work and releases cache connections
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.SweepTask != nil {
		r.SweepTask.Stop()
	}
	if r.StatsTask != nil {
		r.StatsTask.Stop()
	}

	if r.Queue != nil {
		r.Queue.Close()
	}

	if l1Cache, ok := r.L1Cache.(*l1.BigCache); ok {
		if err := l1Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}

	if l2Cache, ok := r.L2Cache.(*l2.KeyDBCache); ok {
		if err := l2Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}

	if r.Logger != nil {
		// stderr sync fails on some platforms; not worth reporting
		_ = r.Logger.Sync()
	}

	return errors.Join(errs...)
}
