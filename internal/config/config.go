package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment selects the provider host and the queue profile
type Environment string

const (
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// ParseEnvironment maps the AMADEUS_HOSTNAME selector to an Environment.
// "production" selects production; anything else, including "test", is sandbox.
func ParseEnvironment(value string) Environment {
	if strings.EqualFold(strings.TrimSpace(value), string(EnvProduction)) {
		return EnvProduction
	}
	return EnvSandbox
}

// Config represents the main configuration structure
type Config struct {
	Provider ProviderConfig `yaml:"provider"`
	Queue    QueueConfig    `yaml:"queue"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
}

// ProviderConfig holds the Amadeus client settings. Credentials only come from the environment.
type ProviderConfig struct {
	ClientID        string        `yaml:"-"`
	ClientSecret    string        `yaml:"-"`
	Environment     Environment   `yaml:"environment" validate:"oneof=sandbox production"`
	BaseURL         string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout         time.Duration `yaml:"timeout" validate:"gt=0"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host" validate:"gt=0"`
}

// HasCredentials reports whether both client id and secret are set
func (p ProviderConfig) HasCredentials() bool {
	return p.ClientID != "" && p.ClientSecret != ""
}

// QueueConfig overrides the environment's rate profile when both values are set
type QueueConfig struct {
	MaxRequestsPerSecond int           `yaml:"max_requests_per_second" validate:"gte=0"`
	MinInterval          time.Duration `yaml:"min_interval" validate:"gte=0"`
}

// IsCustom reports whether a custom profile is configured
func (q QueueConfig) IsCustom() bool {
	return q.MaxRequestsPerSecond > 0 && q.MinInterval > 0
}

// CacheConfig holds the tier settings and the background task intervals
type CacheConfig struct {
	L1                  BigCacheConfig `yaml:"l1"`
	L2                  KeyDBConfig    `yaml:"l2"`
	TTLRulesFile        string         `yaml:"ttl_rules_file"`
	SweepInterval       time.Duration  `yaml:"sweep_interval" validate:"gte=1s"`
	StatsReportInterval time.Duration  `yaml:"stats_report_interval" validate:"gte=1s"`
}

// BigCacheConfig configures the in-process L1 tier
type BigCacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size" validate:"gte=0"` // MB, 0 means unbounded
	Shards  int  `yaml:"shards" validate:"gt=0"`
}

// KeyDBConfig configures the optional L2 tier. Timeouts are in milliseconds.
type KeyDBConfig struct {
	Enabled    bool `yaml:"enabled"`
	Connection struct {
		ConnectTimeout int `yaml:"connect_timeout" validate:"gt=0"`
		SendTimeout    int `yaml:"send_timeout" validate:"gt=0"`
		ReadTimeout    int `yaml:"read_timeout" validate:"gt=0"`
	} `yaml:"connection"`
	Keepalive struct {
		PoolSize       int `yaml:"pool_size" validate:"gt=0"`
		MaxIdleTimeout int `yaml:"max_idle_timeout" validate:"gt=0"`
	} `yaml:"keepalive"`
}

func (k *KeyDBConfig) GetConnectTimeout() time.Duration {
	return time.Duration(k.Connection.ConnectTimeout) * time.Millisecond
}

func (k *KeyDBConfig) GetSendTimeout() time.Duration {
	return time.Duration(k.Connection.SendTimeout) * time.Millisecond
}

func (k *KeyDBConfig) GetReadTimeout() time.Duration {
	return time.Duration(k.Connection.ReadTimeout) * time.Millisecond
}

func (k *KeyDBConfig) GetMaxIdleTimeout() time.Duration {
	return time.Duration(k.Keepalive.MaxIdleTimeout) * time.Millisecond
}

// ServerConfig configures the API and metrics listeners
type ServerConfig struct {
	ListenAddr   string        `yaml:"listen_addr" validate:"required"`
	MetricsAddr  string        `yaml:"metrics_addr" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" validate:"gt=0"`
}

var validate = validator.New()

// LoadConfig loads configuration from file path. A missing file yields the defaults,
// with L1 enabled and L2 disabled.
// Environment variables are applied on top of the file.
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	config := Config{Cache: CacheConfig{L1: BigCacheConfig{Enabled: true}}}

	file, err := os.Open(configPath)
	switch {
	case err == nil:
		defer func() { _ = file.Close() }()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, fmt.Errorf("failed to decode YAML config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		logger.Info("Config file not found, using defaults", zap.String("path", configPath))
	default:
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// Default returns a configuration with every default applied, ignoring the environment
func Default() *Config {
	config := Config{Cache: CacheConfig{L1: BigCacheConfig{Enabled: true}}}
	config.applyDefaults()
	return &config
}

// Validate checks struct tags and the cross-field rules
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	// bigcache requires a power-of-two shard count
	if shards := c.Cache.L1.Shards; shards&(shards-1) != 0 {
		return fmt.Errorf("cache.l1.shards must be a power of two, got %d", shards)
	}

	if (c.Queue.MaxRequestsPerSecond > 0) != (c.Queue.MinInterval > 0) {
		return errors.New("queue.max_requests_per_second and queue.min_interval must be set together")
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Provider.Environment == "" {
		c.Provider.Environment = EnvSandbox
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 30 * time.Second
	}
	if c.Provider.MaxConnsPerHost == 0 {
		c.Provider.MaxConnsPerHost = 16
	}

	if c.Cache.L1.Shards == 0 {
		c.Cache.L1.Shards = 64
	}
	if c.Cache.SweepInterval == 0 {
		c.Cache.SweepInterval = time.Minute
	}
	if c.Cache.StatsReportInterval == 0 {
		c.Cache.StatsReportInterval = 30 * time.Second
	}

	l2 := &c.Cache.L2
	if l2.Connection.ConnectTimeout == 0 {
		l2.Connection.ConnectTimeout = 1000
	}
	if l2.Connection.SendTimeout == 0 {
		l2.Connection.SendTimeout = 1000
	}
	if l2.Connection.ReadTimeout == 0 {
		l2.Connection.ReadTimeout = 1000
	}
	if l2.Keepalive.PoolSize == 0 {
		l2.Keepalive.PoolSize = 10
	}
	if l2.Keepalive.MaxIdleTimeout == 0 {
		l2.Keepalive.MaxIdleTimeout = 10000
	}

	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
	if c.Server.MetricsAddr == "" {
		c.Server.MetricsAddr = ":9090"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}
}

// applyEnv overlays credentials, the environment selector and listen addresses
func (c *Config) applyEnv() {
	c.Provider.ClientID = getEnv("AMADEUS_CLIENT_ID", c.Provider.ClientID)
	c.Provider.ClientSecret = getEnv("AMADEUS_CLIENT_SECRET", c.Provider.ClientSecret)
	if hostname := os.Getenv("AMADEUS_HOSTNAME"); hostname != "" {
		c.Provider.Environment = ParseEnvironment(hostname)
	}

	c.Cache.TTLRulesFile = getEnv("GATEWAY_CACHE_TTL_FILE", c.Cache.TTLRulesFile)
	c.Cache.L1.Size = getEnvInt("GATEWAY_L1_SIZE_MB", c.Cache.L1.Size)

	c.Server.ListenAddr = getEnv("GATEWAY_LISTEN_ADDR", c.Server.ListenAddr)
	c.Server.MetricsAddr = getEnv("GATEWAY_METRICS_ADDR", c.Server.MetricsAddr)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
