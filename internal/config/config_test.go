package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "gateway_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

// clearEnv blanks every variable LoadConfig reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET", "AMADEUS_HOSTNAME",
		"GATEWAY_CACHE_TTL_FILE", "GATEWAY_L1_SIZE_MB",
		"GATEWAY_LISTEN_ADDR", "GATEWAY_METRICS_ADDR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	logger := zaptest.NewLogger(t)

	validConfig := `
provider:
  environment: production
  timeout: 10s
  max_conns_per_host: 4

queue:
  max_requests_per_second: 5
  min_interval: 200ms

cache:
  ttl_rules_file: /etc/gateway/ttl.yaml
  sweep_interval: 2m
  l1:
    enabled: true
    size: 200
    shards: 256
  l2:
    enabled: true
    connection:
      connect_timeout: 2000
      send_timeout: 2000
      read_timeout: 2000
    keepalive:
      pool_size: 20
      max_idle_timeout: 20000

server:
  listen_addr: ":8181"
`

	configFile := createTestConfigFile(t, validConfig)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Provider.Environment != EnvProduction {
		t.Errorf("LoadConfig() Provider.Environment = %v, want production", config.Provider.Environment)
	}
	if config.Provider.Timeout != 10*time.Second {
		t.Errorf("LoadConfig() Provider.Timeout = %v, want 10s", config.Provider.Timeout)
	}
	if !config.Queue.IsCustom() || config.Queue.MinInterval != 200*time.Millisecond {
		t.Errorf("LoadConfig() Queue = %+v, want custom 5/s 200ms", config.Queue)
	}

	if !config.Cache.L1.Enabled || config.Cache.L1.Size != 200 || config.Cache.L1.Shards != 256 {
		t.Errorf("LoadConfig() L1 = %+v, want enabled size 200 shards 256", config.Cache.L1)
	}
	if config.Cache.SweepInterval != 2*time.Minute {
		t.Errorf("LoadConfig() SweepInterval = %v, want 2m", config.Cache.SweepInterval)
	}

	if !config.Cache.L2.Enabled {
		t.Errorf("LoadConfig() L2.Enabled = false, want true")
	}
	if config.Cache.L2.GetReadTimeout() != 2*time.Second {
		t.Errorf("LoadConfig() L2 read timeout = %v, want 2s", config.Cache.L2.GetReadTimeout())
	}
	if config.Cache.L2.Keepalive.PoolSize != 20 {
		t.Errorf("LoadConfig() L2.Keepalive.PoolSize = %v, want 20", config.Cache.L2.Keepalive.PoolSize)
	}

	if config.Server.ListenAddr != ":8181" {
		t.Errorf("LoadConfig() Server.ListenAddr = %v, want :8181", config.Server.ListenAddr)
	}
	// Unset values keep their defaults
	if config.Server.MetricsAddr != ":9090" {
		t.Errorf("LoadConfig() Server.MetricsAddr = %v, want :9090", config.Server.MetricsAddr)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	logger := zaptest.NewLogger(t)

	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Provider.Environment != EnvSandbox {
		t.Errorf("default environment = %v, want sandbox", config.Provider.Environment)
	}
	if !config.Cache.L1.Enabled {
		t.Errorf("default L1.Enabled = false, want true")
	}
	if config.Cache.L2.Enabled {
		t.Errorf("default L2.Enabled = true, want false")
	}
	if config.Cache.SweepInterval != time.Minute {
		t.Errorf("default SweepInterval = %v, want 1m", config.Cache.SweepInterval)
	}
	if config.Queue.IsCustom() {
		t.Errorf("default queue should use the environment profile")
	}
	if config.Provider.HasCredentials() {
		t.Errorf("default config should have no credentials")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AMADEUS_CLIENT_ID", "id")
	t.Setenv("AMADEUS_CLIENT_SECRET", "secret")
	t.Setenv("AMADEUS_HOSTNAME", "production")
	t.Setenv("GATEWAY_LISTEN_ADDR", ":7070")
	t.Setenv("GATEWAY_L1_SIZE_MB", "64")
	t.Setenv("GATEWAY_CACHE_TTL_FILE", "/tmp/ttl.yaml")

	configFile := createTestConfigFile(t, "provider:\n  environment: sandbox\n")

	config, err := LoadConfig(configFile, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !config.Provider.HasCredentials() {
		t.Errorf("credentials from environment not applied")
	}
	if config.Provider.Environment != EnvProduction {
		t.Errorf("AMADEUS_HOSTNAME should win over the file, got %v", config.Provider.Environment)
	}
	if config.Server.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %v, want :7070", config.Server.ListenAddr)
	}
	if config.Cache.L1.Size != 64 {
		t.Errorf("L1.Size = %v, want 64", config.Cache.L1.Size)
	}
	if config.Cache.TTLRulesFile != "/tmp/ttl.yaml" {
		t.Errorf("TTLRulesFile = %v, want /tmp/ttl.yaml", config.Cache.TTLRulesFile)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "broken yaml",
			content: "provider: [unclosed",
			wantErr: "failed to decode YAML config",
		},
		{
			name:    "unknown environment",
			content: "provider:\n  environment: staging\n",
			wantErr: "config validation failed",
		},
		{
			name:    "shards not a power of two",
			content: "cache:\n  l1:\n    shards: 100\n",
			wantErr: "power of two",
		},
		{
			name:    "half a custom queue profile",
			content: "queue:\n  max_requests_per_second: 5\n",
			wantErr: "must be set together",
		},
		{
			name:    "sweep interval too short",
			content: "cache:\n  sweep_interval: 10ms\n",
			wantErr: "config validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := createTestConfigFile(t, tt.content)

			config, err := LoadConfig(configFile, zaptest.NewLogger(t))
			if err == nil {
				t.Fatalf("LoadConfig() expected error, got config %+v", config)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := map[string]Environment{
		"production":   EnvProduction,
		" PRODUCTION ": EnvProduction,
		"test":         EnvSandbox,
		"sandbox":      EnvSandbox,
		"":             EnvSandbox,
	}

	for input, want := range tests {
		if got := ParseEnvironment(input); got != want {
			t.Errorf("ParseEnvironment(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default() should validate, got %v", err)
	}
	if config.Cache.L2.GetConnectTimeout() != time.Second {
		t.Errorf("default L2 connect timeout = %v, want 1s", config.Cache.L2.GetConnectTimeout())
	}
}
