package history

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/p-reiter/usagewatch/internal/app"
	"github.com/p-reiter/usagewatch/internal/db"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m := New(app.NewState(), nil)
	m.SetSize(100, 30)
	return m
}

func TestViewEmpty(t *testing.T) {
	m := testModel(t)
	if !strings.Contains(m.View(), "No cycles recorded") {
		t.Errorf("view = %q", m.View())
	}
}

func TestViewWithCycles(t *testing.T) {
	m := testModel(t)

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	cycles := []db.CycleRecord{
		{At: base, TotalTokens: 1000, Requests: 5, Cost: 0.01},
		{At: base.Add(time.Minute), TotalTokens: 21000, Requests: 8, Cost: 0.05, AlertCount: 1},
	}

	tab, _ := m.Update(historyLoadedMsg{cycles: cycles})
	m = tab.(*Model)
	view := m.View()

	for _, want := range []string{"Session History", "Recent Cycles", "21,000", "(1 alerts)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewWithFailedCycle(t *testing.T) {
	m := testModel(t)

	tab, _ := m.Update(historyLoadedMsg{cycles: []db.CycleRecord{
		{At: time.Now(), Err: "usage request failed (status 500): boom"},
	}})
	m = tab.(*Model)

	if !strings.Contains(m.View(), "failed:") {
		t.Errorf("view missing failed cycle:\n%s", m.View())
	}
}

func TestViewLoadError(t *testing.T) {
	m := testModel(t)

	tab, _ := m.Update(historyErrorMsg{err: errors.New("database closed")})
	m = tab.(*Model)

	if !strings.Contains(m.View(), "Failed to load history") {
		t.Errorf("view = %q", m.View())
	}
}

func TestMetricToggle(t *testing.T) {
	m := testModel(t)

	if m.metric != metricTokens {
		t.Fatalf("initial metric = %v", m.metric)
	}
	m.metric = (m.metric + 1) % metricCount
	if m.metric != metricCost {
		t.Errorf("metric = %v, want cost", m.metric)
	}
	if m.metric.String() != "estimated cost" {
		t.Errorf("String = %q", m.metric.String())
	}

	m.metric = metricTokensVsRequests
	if (m.metric+1)%metricCount != metricTokens {
		t.Errorf("toggle past %v did not wrap to tokens", m.metric)
	}
}

func TestViewDualMetric(t *testing.T) {
	m := testModel(t)
	m.metric = metricTokensVsRequests

	base := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tab, _ := m.Update(historyLoadedMsg{cycles: []db.CycleRecord{
		{At: base, TotalTokens: 1000, Requests: 5, Cost: 0.01},
		{At: base.Add(time.Minute), TotalTokens: 4000, Requests: 9, Cost: 0.04},
	}})
	m = tab.(*Model)

	if !strings.Contains(m.View(), "tokens vs requests per cycle") {
		t.Errorf("view missing dual chart caption:\n%s", m.View())
	}
}
