// Package history provides the tab showing this session's poll cycles.
package history

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p-reiter/usagewatch/internal/app"
	"github.com/p-reiter/usagewatch/internal/db"
	"github.com/p-reiter/usagewatch/internal/services"
)

// maxCycles bounds how many cycles the tab loads and charts.
const maxCycles = 120

// metric selects which series the chart plots.
type metric int

const (
	metricTokens metric = iota
	metricCost
	metricRequests
	metricTokensVsRequests
	metricCount
)

func (m metric) String() string {
	switch m {
	case metricTokens:
		return "total tokens"
	case metricCost:
		return "estimated cost"
	case metricRequests:
		return "requests"
	case metricTokensVsRequests:
		return "tokens vs requests"
	default:
		return "unknown"
	}
}

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	ToggleMetric key.Binding
	Up           key.Binding
	Down         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ToggleMetric: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle metric"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// historyLoadedMsg is sent when cycle history has been loaded.
type historyLoadedMsg struct {
	cycles []db.CycleRecord
}

// historyErrorMsg is sent when loading the history fails.
type historyErrorMsg struct {
	err error
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	keys     keyMap
	viewport viewport.Model

	cycles  []db.CycleRecord
	loadErr error
	metric  metric

	width  int
	height int
	ready  bool
}

// New creates a new history tab.
func New(state *app.State, mgr *services.Manager) *Model {
	return &Model{
		state:    state,
		services: mgr,
		keys:     defaultKeyMap(),
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}

func (m *Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		cycles, err := m.services.History().RecentCycles(maxCycles)
		if err != nil {
			return historyErrorMsg{err: err}
		}
		return historyLoadedMsg{cycles: cycles}
	}
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.cycles = msg.cycles
		m.loadErr = nil

	case historyErrorMsg:
		m.loadErr = msg.err

	case app.ServiceEventMsg:
		if _, ok := msg.Event.(services.CycleEvent); ok {
			cmd = m.loadHistoryCmd()
		}

	case app.TabSwitchMsg:
		if msg.Tab == app.TabHistory {
			cmd = m.loadHistoryCmd()
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ToggleMetric):
			m.metric = (m.metric + 1) % metricCount
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}

	return m, cmd
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
}

// ShortHelp returns key bindings for the help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.ToggleMetric, m.keys.Up, m.keys.Down}
}
