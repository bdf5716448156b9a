// Package poller runs the poll cycle loop: compute the lookback window,
// fetch usage, summarize, detect spikes, and hand the result to a presenter.
package poller

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/p-reiter/usagewatch/internal/logger"
	"github.com/p-reiter/usagewatch/internal/models"
	"github.com/p-reiter/usagewatch/internal/pricing"
	"github.com/p-reiter/usagewatch/internal/usage"
)

// Fetcher retrieves raw usage records for a key within a window.
type Fetcher interface {
	FetchUsage(ctx context.Context, keyID string, window models.Window, bucketWidth string) ([]usage.Record, error)
}

// Presenter receives every completed cycle, successful or not. Present is
// called from the polling goroutine; implementations marshal onto their own
// event loop as needed.
type Presenter interface {
	Present(Result)
}

// Result is the outcome of one poll cycle. When Err is set, Summary and
// Alerts are zero and the previous baseline is retained.
type Result struct {
	At      time.Time
	Window  models.Window
	Summary models.Summary
	Alerts  []models.SpikeAlert
	Err     error
}

// Config holds the polling parameters, validated before the service starts.
type Config struct {
	KeyID                string
	Tier                 string
	BucketWidth          string
	LookbackHours        int
	Interval             time.Duration
	TokenRateThreshold   float64
	RequestRateThreshold float64
}

// Service drives the poll loop. Cycles never overlap: a tick or manual
// refresh arriving while a cycle is in flight is skipped rather than queued.
type Service struct {
	config    Config
	fetcher   Fetcher
	presenter Presenter
	table     pricing.Table

	now func() time.Time

	inFlight atomic.Bool
	started  atomic.Bool

	// prevTotals and prevAt form the spike baseline. They belong to the
	// polling goroutine and advance only after successful cycles.
	prevTotals *models.Totals
	prevAt     time.Time

	stopChan chan struct{}
	done     chan struct{}
}

// New creates a poller. The pricing table defaults to the built-in one.
func New(cfg Config, fetcher Fetcher, presenter Presenter, table pricing.Table) *Service {
	if table == nil {
		table = pricing.Default()
	}
	return &Service{
		config:    cfg,
		fetcher:   fetcher,
		presenter: presenter,
		table:     table,
		now:       time.Now,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run polls once immediately and then on every interval tick until the
// context is cancelled or Close is called.
func (s *Service) Run(ctx context.Context) {
	s.started.Store(true)
	defer close(s.done)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// Start runs the poll loop on its own goroutine.
func (s *Service) Start(ctx context.Context) {
	s.started.Store(true)
	go s.Run(ctx)
}

// Close stops the poll loop and waits for it to exit.
func (s *Service) Close() {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	if s.started.Load() {
		<-s.done
	}
}

// RefreshNow runs a cycle outside the regular cadence. It reports false
// without doing anything when a cycle is already in flight.
func (s *Service) RefreshNow(ctx context.Context) bool {
	if s.inFlight.Load() {
		return false
	}
	s.runCycle(ctx)
	return true
}

func (s *Service) runCycle(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		logger.Debug("skipping overlapping poll cycle")
		return
	}
	defer s.inFlight.Store(false)

	now := s.now()

	window, err := usage.ComputeWindow(s.config.LookbackHours, now)
	if err != nil {
		s.presenter.Present(Result{At: now, Err: err})
		return
	}

	records, err := s.fetcher.FetchUsage(ctx, s.config.KeyID, window, s.config.BucketWidth)
	if err != nil {
		logger.Error("poll cycle failed", "error", err)
		s.presenter.Present(Result{At: now, Window: window, Err: err})
		return
	}

	summary := usage.Summarize(records, s.config.Tier, s.table)

	var alerts []models.SpikeAlert
	if s.prevTotals != nil {
		elapsed := now.Sub(s.prevAt)
		alerts = usage.DetectSpikes(s.prevTotals, summary.Totals, elapsed,
			s.config.TokenRateThreshold, s.config.RequestRateThreshold)
	}

	totals := summary.Totals
	s.prevTotals = &totals
	s.prevAt = now

	s.presenter.Present(Result{
		At:      now,
		Window:  window,
		Summary: summary,
		Alerts:  alerts,
	})
}
