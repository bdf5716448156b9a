package app

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/p-reiter/usagewatch/internal/models"
	"github.com/p-reiter/usagewatch/internal/services"
	"github.com/p-reiter/usagewatch/internal/services/poller"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTabSwitching(t *testing.T) {
	m := NewModel(nil)

	if m.GetActiveTab() != TabDashboard {
		t.Fatalf("initial tab = %v", m.GetActiveTab())
	}

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(*Model)
	if m.GetActiveTab() != TabHistory {
		t.Errorf("after '2' tab = %v, want History", m.GetActiveTab())
	}

	updated, _ = m.Update(keyMsg("3"))
	m = updated.(*Model)
	if m.GetActiveTab() != TabInfo {
		t.Errorf("after '3' tab = %v, want Info", m.GetActiveTab())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*Model)
	if m.GetActiveTab() != TabDashboard {
		t.Errorf("after tab key = %v, want wraparound to Dashboard", m.GetActiveTab())
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(nil)

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("quit command produced %T", msg)
	}
}

func TestModelWindowSize(t *testing.T) {
	m := NewModel(nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(*Model)
	if !m.ready {
		t.Error("model not ready after window size")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}

func TestModelCycleEventUpdatesState(t *testing.T) {
	m := NewModel(nil)

	result := poller.Result{
		At:      time.Now(),
		Summary: models.Summary{Totals: models.Totals{Input: 500}},
	}

	updated, _ := m.Update(ServiceEventMsg{Event: services.CycleEvent{Result: result}})
	m = updated.(*Model)

	stored := m.GetState().Result()
	if stored == nil || stored.Summary.Totals.Input != 500 {
		t.Errorf("state result = %+v", stored)
	}
}

func TestModelCycleErrorNotifies(t *testing.T) {
	m := NewModel(nil)

	result := poller.Result{At: time.Now(), Err: errors.New("boom")}
	_, cmd := m.Update(ServiceEventMsg{Event: services.CycleEvent{Result: result}})
	if cmd == nil {
		t.Fatal("failed cycle produced no command")
	}
}

func TestModelConfigChangedSetsRestart(t *testing.T) {
	m := NewModel(nil)

	updated, _ := m.Update(ServiceEventMsg{Event: services.ConfigChangedEvent{Path: ".env"}})
	m = updated.(*Model)
	if !m.GetState().RestartNeeded() {
		t.Error("restart flag not set after config change event")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(nil)

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(*Model)
	if !m.showHelp {
		t.Fatal("help not shown after ?")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*Model)
	if m.showHelp {
		t.Error("help still shown after esc")
	}
}
