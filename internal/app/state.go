// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"sync"
	"time"

	"github.com/p-reiter/usagewatch/internal/models"
	"github.com/p-reiter/usagewatch/internal/services/poller"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
)

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// maxAlertLog caps how many recent spike alerts the dashboard keeps.
const maxAlertLog = 20

// State is the shared application state, read by tabs and written by the
// event handlers on the main model.
type State struct {
	mu sync.RWMutex

	result      *poller.Result
	lastUpdated time.Time
	cycleCount  int
	failCount   int
	alertLog    []models.SpikeAlert

	restartNeeded bool

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{}
}

// SetResult records the latest poll cycle.
func (s *State) SetResult(result poller.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.result = &result
	s.lastUpdated = time.Now()
	s.cycleCount++
	if result.Err != nil {
		s.failCount++
	}

	s.alertLog = append(s.alertLog, result.Alerts...)
	if len(s.alertLog) > maxAlertLog {
		s.alertLog = s.alertLog[len(s.alertLog)-maxAlertLog:]
	}
}

// Result returns the latest poll cycle, or nil before the first one lands.
func (s *State) Result() *poller.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// LastUpdated returns when the latest cycle was recorded.
func (s *State) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// CycleCount returns how many cycles have completed this session.
func (s *State) CycleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycleCount
}

// FailCount returns how many cycles failed this session.
func (s *State) FailCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failCount
}

// AlertLog returns the most recent spike alerts, oldest first.
func (s *State) AlertLog() []models.SpikeAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := make([]models.SpikeAlert, len(s.alertLog))
	copy(log, s.alertLog)
	return log
}

// SetRestartNeeded marks that the .env changed after startup.
func (s *State) SetRestartNeeded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restartNeeded = true
}

// RestartNeeded reports whether the .env changed after startup.
func (s *State) RestartNeeded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restartNeeded
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the last 10 notifications
	if len(s.notifications) > 10 {
		s.notifications = s.notifications[len(s.notifications)-10:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}
