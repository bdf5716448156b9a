// Package services provides service orchestration for the presenters.
package services

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/p-reiter/usagewatch/internal/config"
	"github.com/p-reiter/usagewatch/internal/db"
	"github.com/p-reiter/usagewatch/internal/logger"
	"github.com/p-reiter/usagewatch/internal/services/poller"
	"github.com/p-reiter/usagewatch/internal/usage"
)

type (
	// CycleEvent is emitted after every poll cycle, successful or failed.
	CycleEvent struct {
		Result poller.Result
	}

	// ConfigChangedEvent is emitted when the loaded .env file is edited.
	// Configuration is not reloaded; the presenter shows a restart notice.
	ConfigChangedEvent struct {
		Path string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (CycleEvent) isServiceEvent()         {}
func (ConfigChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()         {}

// Manager wires the poller, history store, and env watcher together and
// fans poll results out to subscribed presenters. No cycle result is ever
// dropped: broadcasts block until each subscriber takes the event or the
// manager shuts down.
type Manager struct {
	mu          sync.RWMutex
	config      *config.Config
	poller      *poller.Service
	database    *db.DB
	watcher     *config.Watcher
	subscribers []chan<- ServiceEvent
	stopChan    chan struct{}
	closeOnce   sync.Once

	// Desktop notifications can be disabled for headless runs.
	notify bool
}

// NewManager creates a service manager. A nil fetcher uses the live usage
// API client authenticated with the configured admin key.
func NewManager(cfg *config.Config, fetcher poller.Fetcher) (*Manager, error) {
	m := &Manager{
		config:   cfg,
		stopChan: make(chan struct{}),
		notify:   true,
	}

	var err error
	m.database, err = db.New(db.MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	if fetcher == nil {
		fetcher = usage.NewClient(cfg.AdminKey)
	}

	m.poller = poller.New(poller.Config{
		KeyID:                cfg.KeyID,
		Tier:                 cfg.Tier,
		BucketWidth:          cfg.BucketWidth,
		LookbackHours:        cfg.LookbackHours,
		Interval:             cfg.PollInterval,
		TokenRateThreshold:   cfg.TokenRateThreshold,
		RequestRateThreshold: cfg.RequestRateThreshold,
	}, fetcher, m, nil)

	if cfg.EnvPath != "" {
		m.watcher, err = config.NewWatcher(cfg.EnvPath)
		if err != nil {
			logger.Warn("env file watching disabled", "error", err)
		} else {
			go m.watchEnv()
		}
	}

	return m, nil
}

// Config returns the configuration the manager was started with.
func (m *Manager) Config() *config.Config {
	return m.config
}

// History returns the session's cycle history store.
func (m *Manager) History() *db.DB {
	return m.database
}

// SetNotifications toggles desktop spike notifications.
func (m *Manager) SetNotifications(enabled bool) {
	m.notify = enabled
}

// Start begins polling. The first cycle runs immediately.
func (m *Manager) Start(ctx context.Context) {
	m.poller.Start(ctx)
}

// RefreshNow triggers an off-schedule poll cycle. It reports false when a
// cycle is already in flight.
func (m *Manager) RefreshNow(ctx context.Context) bool {
	return m.poller.RefreshNow(ctx)
}

// Present records the cycle, raises desktop notifications for spike alerts,
// and broadcasts the result. It runs on the polling goroutine.
func (m *Manager) Present(result poller.Result) {
	rec := &db.CycleRecord{
		At:         result.At,
		AlertCount: len(result.Alerts),
	}
	if result.Err != nil {
		rec.Err = result.Err.Error()
	} else {
		rec.TotalTokens = result.Summary.Totals.TotalTokens()
		rec.Requests = result.Summary.Totals.Requests
		rec.Cost = result.Summary.Totals.Cost
	}
	if err := m.database.InsertCycle(rec); err != nil {
		logger.Error("failed to record cycle", "error", err)
		m.broadcast(ErrorEvent{Service: "history", Error: err})
	}

	if m.notify {
		for _, alert := range result.Alerts {
			if err := beeep.Notify("Usage spike", alert.Message, ""); err != nil {
				logger.Debug("desktop notification failed", "error", err)
			}
		}
	}

	m.broadcast(CycleEvent{Result: result})
}

func (m *Manager) watchEnv() {
	for {
		select {
		case path, ok := <-m.watcher.Changed():
			if !ok {
				return
			}
			logger.Info("env file changed", "path", path)
			m.broadcast(ConfigChangedEvent{Path: path})

		case <-m.stopChan:
			return
		}
	}
}

// broadcast delivers an event to every subscriber, blocking until each one
// accepts it. Shutdown is the only escape.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	subs := make([]chan<- ServiceEvent, len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub <- event:
		case <-m.stopChan:
			return
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd that waits for the next event.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Close shuts down all services.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.stopChan)
	})

	m.poller.Close()

	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			logger.Error("failed to close env watcher", "error", err)
		}
	}

	if err := m.database.Close(); err != nil {
		logger.Error("failed to close history store", "error", err)
	}
}
