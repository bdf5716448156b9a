// Package info provides the tab showing the active configuration.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/p-reiter/usagewatch/internal/app"
	"github.com/p-reiter/usagewatch/internal/config"
)

// Model represents the info tab state.
type Model struct {
	state  *app.State
	config *config.Config
	width  int
	height int
}

// New creates a new info tab.
func New(state *app.State, cfg *config.Config) *Model {
	return &Model{
		state:  state,
		config: cfg,
	}
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	return m, nil
}

// SetSize sets the available size for the tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns key bindings for the help view.
func (m *Model) ShortHelp() []key.Binding {
	return nil
}
