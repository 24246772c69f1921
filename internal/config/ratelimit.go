package config

import (
	"strconv"
	"time"
)

// RateLimitConfig controls the fixed-window limiter applied to the OTP
// endpoints. Limit requests per Window per client IP; generous enough for a
// shared campus NAT, tight enough to blunt OTP hammering.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig builds a RateLimitConfig from the environment.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
		Limit:   10,
		Window:  time.Minute,
		Prefix:  getenv("RATE_LIMIT_PREFIX", "kiiteats:rl"),
	}
	if n, err := strconv.Atoi(getenv("RATE_LIMIT_PER_WINDOW", "10")); err == nil && n > 0 {
		cfg.Limit = n
	}
	if d, err := time.ParseDuration(getenv("RATE_LIMIT_WINDOW", "1m")); err == nil && d > 0 {
		cfg.Window = d
	}
	return cfg
}
