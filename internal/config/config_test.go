package config

import (
	"errors"
	"testing"
	"time"

	"github.com/p-reiter/usagewatch/internal/usage"
)

func validConfig() *Config {
	return &Config{
		AdminKey:             "sk-admin-test",
		KeyID:                "key_0123456789abcdef",
		LookbackHours:        6,
		BucketWidth:          "1h",
		Tier:                 "standard",
		PollInterval:         15 * time.Second,
		TokenRateThreshold:   10000,
		RequestRateThreshold: 120,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate error on valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing admin key", func(c *Config) { c.AdminKey = "" }},
		{"missing key id", func(c *Config) { c.KeyID = "" }},
		{"zero lookback", func(c *Config) { c.LookbackHours = 0 }},
		{"negative lookback", func(c *Config) { c.LookbackHours = -3 }},
		{"bad bucket width", func(c *Config) { c.BucketWidth = "2h" }},
		{"unknown tier", func(c *Config) { c.Tier = "enterprise" }},
		{"zero token threshold", func(c *Config) { c.TokenRateThreshold = 0 }},
		{"negative request threshold", func(c *Config) { c.RequestRateThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, usage.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestClampInterval(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"within range", 15 * time.Second, 15 * time.Second},
		{"at cap", 600 * time.Second, 600 * time.Second},
		{"above cap", 1000 * time.Second, 600 * time.Second},
		{"below floor", 100 * time.Millisecond, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampInterval(tt.in); got != tt.want {
				t.Errorf("ClampInterval(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"key_0123456789abcdef", "key_...cdef"},
		{"short", "****"},
		{"", "****"},
		{"12345678", "****"},
	}

	for _, tt := range tests {
		if got := MaskSecret(tt.in); got != tt.want {
			t.Errorf("MaskSecret(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OPENAI_ADMIN_KEY", "sk-admin-test")
	t.Setenv("OPENAI_API_KEY_ID", "key_0123456789abcdef")
	t.Setenv("USAGEWATCH_LOOKBACK_HOURS", "12")
	t.Setenv("USAGEWATCH_POLL_INTERVAL", "1000")
	t.Setenv("USAGEWATCH_TIER", "batch")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LookbackHours != 12 {
		t.Errorf("LookbackHours = %d, want 12", cfg.LookbackHours)
	}
	if cfg.Tier != "batch" {
		t.Errorf("Tier = %q, want batch", cfg.Tier)
	}
	// Bare seconds are accepted and then clamped to the cap.
	if cfg.PollInterval != 600*time.Second {
		t.Errorf("PollInterval = %v, want 600s", cfg.PollInterval)
	}
	if cfg.BucketWidth != "1h" {
		t.Errorf("BucketWidth = %q, want default 1h", cfg.BucketWidth)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("OPENAI_ADMIN_KEY", "")
	t.Setenv("OPENAI_API_KEY_ID", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, usage.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}
