package cache_rules

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LoadTTLRules loads TTL overrides from a YAML file and returns the frozen policy.
// An empty path yields the built-in defaults.
func LoadTTLRules(rulesPath string, logger *zap.Logger) (*TTLTable, error) {
	if rulesPath == "" {
		logger.Info("No TTL rules file configured, using defaults")
		return NewTTLTable(nil, logger), nil
	}

	logger.Info("Loading TTL rules", zap.String("path", rulesPath))

	file, err := os.Open(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open TTL rules file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config TTLRulesConfig
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML TTL rules: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("TTL rules validation failed: %w", err)
	}

	logger.Info("TTL rules loaded successfully", zap.Int("overrides", len(config.TTLs)))

	return NewTTLTable(config.TTLs, logger), nil
}

// validateConfig validates the TTL rules structure
func validateConfig(config *TTLRulesConfig) error {
	if len(config.TTLs) == 0 {
		return fmt.Errorf("missing ttls section")
	}

	for resourceType, ttl := range config.TTLs {
		if !resourceType.IsValid() {
			return fmt.Errorf("unknown resource type %q", resourceType)
		}
		if ttl <= 0 {
			return fmt.Errorf("ttl for %q must be positive, got %s", resourceType, ttl)
		}
	}

	return nil
}
