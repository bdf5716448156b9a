package info

import (
	"strings"
	"testing"
	"time"

	"github.com/p-reiter/usagewatch/internal/app"
	"github.com/p-reiter/usagewatch/internal/config"
)

func TestViewShowsConfig(t *testing.T) {
	cfg := &config.Config{
		AdminKey:             "sk-admin-secret",
		KeyID:                "key_0123456789abcdef",
		LookbackHours:        6,
		BucketWidth:          "1h",
		Tier:                 "standard",
		PollInterval:         15 * time.Second,
		TokenRateThreshold:   10000,
		RequestRateThreshold: 120,
	}

	m := New(app.NewState(), cfg)
	m.SetSize(100, 30)
	view := m.View()

	for _, want := range []string{"key_...cdef", "standard", "6h", "15s", "10,000 tokens/min", "120 requests/min"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	// The raw key ID and admin key must never be rendered.
	if strings.Contains(view, "key_0123456789abcdef") || strings.Contains(view, "sk-admin-secret") {
		t.Errorf("view leaks credentials:\n%s", view)
	}
}

func TestViewShowsSessionCounters(t *testing.T) {
	state := app.NewState()
	cfg := &config.Config{KeyID: "key_0123456789abcdef", PollInterval: time.Second}

	m := New(state, cfg)
	view := m.View()

	if !strings.Contains(view, "Cycles") || !strings.Contains(view, "never") {
		t.Errorf("view = %q", view)
	}
}
