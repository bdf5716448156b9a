// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/p-reiter/usagewatch/internal/logger"
	"github.com/p-reiter/usagewatch/internal/pricing"
	"github.com/p-reiter/usagewatch/internal/usage"
)

// Config holds the application configuration. It is loaded once at startup;
// changing the .env afterwards only produces a restart notice.
type Config struct {
	AdminKey             string
	KeyID                string
	LookbackHours        int
	BucketWidth          string
	Tier                 string
	PollInterval         time.Duration
	TokenRateThreshold   float64
	RequestRateThreshold float64

	// EnvPath is the .env file that was loaded, if any. The file watcher
	// uses it to detect edits made while the monitor runs.
	EnvPath string
}

// Default values
const (
	defaultLookbackHours        = 6
	defaultBucketWidth          = "1h"
	defaultTier                 = "standard"
	defaultPollInterval         = 15 * time.Second
	defaultTokenRateThreshold   = 10000
	defaultRequestRateThreshold = 120

	// MaxPollInterval caps how long the monitor may go between polls.
	MaxPollInterval = 600 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	envPath := ""
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			envPath = path
			break
		}
	}

	cfg := &Config{
		AdminKey:             os.Getenv("OPENAI_ADMIN_KEY"),
		KeyID:                os.Getenv("OPENAI_API_KEY_ID"),
		LookbackHours:        getEnvInt("USAGEWATCH_LOOKBACK_HOURS", defaultLookbackHours),
		BucketWidth:          getEnvString("USAGEWATCH_BUCKET_WIDTH", defaultBucketWidth),
		Tier:                 getEnvString("USAGEWATCH_TIER", defaultTier),
		PollInterval:         getEnvDuration("USAGEWATCH_POLL_INTERVAL", defaultPollInterval),
		TokenRateThreshold:   getEnvFloat("USAGEWATCH_TOKEN_RATE_THRESHOLD", defaultTokenRateThreshold),
		RequestRateThreshold: getEnvFloat("USAGEWATCH_REQUEST_RATE_THRESHOLD", defaultRequestRateThreshold),
		EnvPath:              envPath,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.PollInterval = ClampInterval(cfg.PollInterval)

	return cfg, nil
}

// Validate checks that the configuration can drive a monitoring session.
func (c *Config) Validate() error {
	if c.AdminKey == "" {
		return fmt.Errorf("%w: OPENAI_ADMIN_KEY is required", usage.ErrInvalidArgument)
	}
	if c.KeyID == "" {
		return fmt.Errorf("%w: OPENAI_API_KEY_ID is required", usage.ErrInvalidArgument)
	}
	if c.LookbackHours < 1 {
		return fmt.Errorf("%w: lookback hours must be at least 1, got %d", usage.ErrInvalidArgument, c.LookbackHours)
	}
	if !usage.ValidBucketWidth(c.BucketWidth) {
		return fmt.Errorf("%w: bucket width %q is not one of %v", usage.ErrInvalidArgument, c.BucketWidth, usage.BucketWidths)
	}
	if !pricing.Default().HasTier(c.Tier) {
		return fmt.Errorf("%w: unknown service tier %q (known: %v)", usage.ErrInvalidArgument, c.Tier, pricing.Default().Tiers())
	}
	if c.TokenRateThreshold <= 0 {
		return fmt.Errorf("%w: token rate threshold must be positive", usage.ErrInvalidArgument)
	}
	if c.RequestRateThreshold <= 0 {
		return fmt.Errorf("%w: request rate threshold must be positive", usage.ErrInvalidArgument)
	}
	return nil
}

// ClampInterval bounds the poll interval so spike detection keeps a usable
// baseline cadence. Intervals above the cap are reduced, not rejected.
func ClampInterval(interval time.Duration) time.Duration {
	if interval < time.Second {
		logger.Warn("poll interval too short, raising", "interval", interval, "min", time.Second)
		return time.Second
	}
	if interval > MaxPollInterval {
		logger.Warn("poll interval too long, clamping", "interval", interval, "max", MaxPollInterval)
		return MaxPollInterval
	}
	return interval
}

// MaskedKeyID returns the key ID with its middle hidden, for display.
func (c *Config) MaskedKeyID() string {
	return MaskSecret(c.KeyID)
}

// MaskSecret keeps the first and last four characters of a secret visible.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "usagewatch", ".env"),
			filepath.Join(home, ".usagewatch", ".env"),
		)
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		logger.Warn("ignoring non-integer env value", "key", key, "value", value)
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		logger.Warn("ignoring non-numeric env value", "key", key, "value", value)
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", or bare seconds like "15".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
		logger.Warn("ignoring malformed duration env value", "key", key, "value", value)
	}
	return defaultValue
}
