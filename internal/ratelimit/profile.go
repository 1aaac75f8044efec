package ratelimit

import (
	"time"

	"travel-gateway/internal/config"
)

// Profile is a rate ceiling plus the minimum spacing between dispatches
type Profile struct {
	Environment          string
	MaxRequestsPerSecond int
	MinInterval          time.Duration
}

var (
	// SandboxProfile matches the provider's test environment quota
	SandboxProfile = Profile{Environment: string(config.EnvSandbox), MaxRequestsPerSecond: 10, MinInterval: 100 * time.Millisecond}

	// ProductionProfile matches the provider's production quota
	ProductionProfile = Profile{Environment: string(config.EnvProduction), MaxRequestsPerSecond: 20, MinInterval: 50 * time.Millisecond}
)

// ProfileFor returns the built-in profile of an environment
func ProfileFor(env config.Environment) Profile {
	if env == config.EnvProduction {
		return ProductionProfile
	}
	return SandboxProfile
}

// ProfileFromConfig prefers a custom queue profile and falls back to the environment's
func ProfileFromConfig(queueCfg config.QueueConfig, env config.Environment) Profile {
	if !queueCfg.IsCustom() {
		return ProfileFor(env)
	}
	return Profile{
		Environment:          string(env),
		MaxRequestsPerSecond: queueCfg.MaxRequestsPerSecond,
		MinInterval:          queueCfg.MinInterval,
	}
}
