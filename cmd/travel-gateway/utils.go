package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// GetConfigPath returns the gateway config file, GATEWAY_CONFIG_FILE or the image default
func GetConfigPath() string {
	if path := os.Getenv("GATEWAY_CONFIG_FILE"); path != "" {
		return path
	}
	return "/app/gateway_config.yaml"
}

// GetKeyDBURL returns KeyDB URL with the following priority:
// 1. KEYDB_URL environment variable
// 2. KEYDB_URL_FILE file content
// 3. Default value
func GetKeyDBURL(logger *zap.Logger) string {
	if keydbURL := os.Getenv("KEYDB_URL"); keydbURL != "" {
		logger.Debug("Using KeyDB URL from environment variable")
		return keydbURL
	}

	connectionFile := os.Getenv("KEYDB_URL_FILE")
	if connectionFile == "" {
		connectionFile = "/app/.keydb-url"
	}

	if content, err := os.ReadFile(connectionFile); err == nil {
		if keydbURL := strings.TrimSpace(string(content)); keydbURL != "" {
			logger.Debug("Using KeyDB URL from connection file", zap.String("file", connectionFile))
			return keydbURL
		}
	}
	logger.Debug("KeyDB connection file not found or empty", zap.String("file", connectionFile))

	return "redis://keydb:6379"
}
