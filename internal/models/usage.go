// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// Window is a half-open time range in epoch seconds, computed fresh for
// every poll cycle so the lookback slides forward in real time.
type Window struct {
	Start int64
	End   int64
}

// Duration returns the span covered by the window.
func (w Window) Duration() time.Duration {
	return time.Duration(w.End-w.Start) * time.Second
}

// RangeUTC renders the window as a human-readable UTC range.
func (w Window) RangeUTC() string {
	start := time.Unix(w.Start, 0).UTC().Format("2006-01-02 15:04")
	end := time.Unix(w.End, 0).UTC().Format("2006-01-02 15:04")
	return fmt.Sprintf("%s → %s", start, end)
}

// UsageRow is the per-model aggregate for one poll cycle. Cost is nil when
// the active tier has no price entry for the model; that is an expected
// state, distinct from a zero-cost model.
type UsageRow struct {
	Model        string
	InputTokens  int64
	OutputTokens int64
	CachedTokens int64
	Requests     int64
	Cost         *float64
}

// TotalTokens returns input plus output tokens for the row.
func (r UsageRow) TotalTokens() int64 {
	return r.InputTokens + r.OutputTokens
}

// Totals is the grand aggregate over all rows of a cycle. It is always
// recomputed from scratch over the full lookback window, never updated
// incrementally.
type Totals struct {
	Input       int64
	Output      int64
	CachedInput int64
	Requests    int64
	Cost        float64
}

// TotalTokens returns input plus output tokens.
func (t Totals) TotalTokens() int64 {
	return t.Input + t.Output
}

// Summary is an immutable per-cycle snapshot: one row per model in
// first-seen order, plus grand totals.
type Summary struct {
	Rows   []UsageRow
	Totals Totals
}

// SpikeKind identifies which rate threshold a spike alert refers to.
type SpikeKind int

const (
	// SpikeTokens flags an abnormal token growth rate.
	SpikeTokens SpikeKind = iota
	// SpikeRequests flags an abnormal request growth rate.
	SpikeRequests
)

// SpikeAlert describes a threshold crossing between two consecutive polls.
type SpikeAlert struct {
	Kind       SpikeKind
	Delta      int64
	RatePerMin float64
	Message    string
}
