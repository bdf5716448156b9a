package app

import (
	"errors"
	"testing"
	"time"

	"github.com/p-reiter/usagewatch/internal/models"
	"github.com/p-reiter/usagewatch/internal/services/poller"
)

func TestStateSetResult(t *testing.T) {
	s := NewState()

	if s.Result() != nil {
		t.Fatal("fresh state has a result")
	}

	s.SetResult(poller.Result{
		At: time.Now(),
		Summary: models.Summary{
			Totals: models.Totals{Input: 100},
		},
		Alerts: []models.SpikeAlert{{Kind: models.SpikeTokens, Message: "spike"}},
	})

	if s.Result() == nil {
		t.Fatal("result not stored")
	}
	if s.CycleCount() != 1 {
		t.Errorf("CycleCount = %d, want 1", s.CycleCount())
	}
	if s.FailCount() != 0 {
		t.Errorf("FailCount = %d, want 0", s.FailCount())
	}
	if len(s.AlertLog()) != 1 {
		t.Errorf("AlertLog = %d entries, want 1", len(s.AlertLog()))
	}

	s.SetResult(poller.Result{At: time.Now(), Err: errors.New("boom")})
	if s.CycleCount() != 2 || s.FailCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.CycleCount(), s.FailCount())
	}
}

func TestStateAlertLogCapped(t *testing.T) {
	s := NewState()

	for i := 0; i < maxAlertLog+10; i++ {
		s.SetResult(poller.Result{
			At:     time.Now(),
			Alerts: []models.SpikeAlert{{Kind: models.SpikeTokens}},
		})
	}

	if got := len(s.AlertLog()); got != maxAlertLog {
		t.Errorf("AlertLog = %d entries, want %d", got, maxAlertLog)
	}
}

func TestStateNotifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "hello", 0)
	if len(s.GetNotifications()) != 1 {
		t.Fatalf("notifications = %d, want 1", len(s.GetNotifications()))
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Errorf("notifications = %d after removal", len(s.GetNotifications()))
	}
}

func TestStateNotificationExpiry(t *testing.T) {
	s := NewState()

	s.AddNotification(NotificationInfo, "short lived", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if got := len(s.GetNotifications()); got != 0 {
		t.Errorf("expired notification still visible: %d", got)
	}

	s.AddNotification(NotificationInfo, "sticky", 0)
	s.ClearExpiredNotifications()
	if got := len(s.GetNotifications()); got != 1 {
		t.Errorf("sticky notification expired: %d", got)
	}
}

func TestStateRestartNeeded(t *testing.T) {
	s := NewState()
	if s.RestartNeeded() {
		t.Fatal("fresh state needs restart")
	}
	s.SetRestartNeeded()
	if !s.RestartNeeded() {
		t.Error("restart flag not set")
	}
}
