package notify

import (
	"context"
	"sort"
	"sync"

	"github.com/aluna-health/aluna/internal/services"
)

// MemoryDelivery keeps scheduled reminders in memory. It backs tests and
// deployments without an external delivery channel configured.
type MemoryDelivery struct {
	mu        sync.Mutex
	scheduled map[string]services.SmartNotification
}

func NewMemoryDelivery() *MemoryDelivery {
	return &MemoryDelivery{scheduled: make(map[string]services.SmartNotification)}
}

func (delivery *MemoryDelivery) CancelAll(_ context.Context, ids []string) error {
	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	for _, id := range ids {
		delete(delivery.scheduled, id)
	}
	return nil
}

func (delivery *MemoryDelivery) ScheduleAll(_ context.Context, notifications []services.SmartNotification) error {
	delivery.mu.Lock()
	defer delivery.mu.Unlock()
	for _, notification := range notifications {
		delivery.scheduled[notification.ID] = notification
	}
	return nil
}

// Scheduled returns the current reminder set ordered by trigger time.
func (delivery *MemoryDelivery) Scheduled() []services.SmartNotification {
	delivery.mu.Lock()
	defer delivery.mu.Unlock()

	notifications := make([]services.SmartNotification, 0, len(delivery.scheduled))
	for _, notification := range delivery.scheduled {
		notifications = append(notifications, notification)
	}
	sort.Slice(notifications, func(i, j int) bool {
		if notifications[i].TriggerAt.Equal(notifications[j].TriggerAt) {
			return notifications[i].ID < notifications[j].ID
		}
		return notifications[i].TriggerAt.Before(notifications[j].TriggerAt)
	})
	return notifications
}
