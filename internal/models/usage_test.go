package models

import (
	"strings"
	"testing"
	"time"
)

func TestWindowRangeUTC(t *testing.T) {
	start := time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	w := Window{Start: start.Unix(), End: end.Unix()}

	got := w.RangeUTC()
	if !strings.Contains(got, "2026-03-15 06:00") || !strings.Contains(got, "2026-03-15 12:00") {
		t.Errorf("RangeUTC = %q", got)
	}
	if w.Duration() != 6*time.Hour {
		t.Errorf("Duration = %v, want 6h", w.Duration())
	}
}

func TestTotalTokens(t *testing.T) {
	row := UsageRow{InputTokens: 1000, OutputTokens: 500, CachedTokens: 200}
	if got := row.TotalTokens(); got != 1500 {
		t.Errorf("row TotalTokens = %d, want 1500 (cached not double counted)", got)
	}

	totals := Totals{Input: 3000, Output: 700, CachedInput: 200}
	if got := totals.TotalTokens(); got != 3700 {
		t.Errorf("totals TotalTokens = %d, want 3700", got)
	}
}
