package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aluna-health/aluna/internal/models"
	"go.uber.org/zap"
)

// ReminderService owns the cancel-then-reschedule protocol around the pure
// reminder plan. Cancellation always precedes scheduling, so a partial
// failure leaves fewer reminders than intended instead of duplicates.
type ReminderService struct {
	delivery Delivery
	logger   *zap.Logger
	location *time.Location
	tuning   CycleTuning

	mu            sync.Mutex
	scheduledByID map[uint][]string
}

func NewReminderService(delivery Delivery, logger *zap.Logger, location *time.Location, tuning CycleTuning) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &ReminderService{
		delivery:      delivery,
		logger:        logger,
		location:      location,
		tuning:        tuning,
		scheduledByID: make(map[uint][]string),
	}
}

// Plan computes the reminder set without contacting the delivery subsystem.
func (service *ReminderService) Plan(profile CycleProfile, logs []models.DailyLog, now time.Time) []SmartNotification {
	return PlanReminders(profile, logs, now.In(service.location), service.location, service.tuning)
}

// Refresh recomputes the reminder plan for a user and replaces the previously
// scheduled set at the delivery subsystem.
func (service *ReminderService) Refresh(ctx context.Context, userID uint, profile CycleProfile, logs []models.DailyLog, now time.Time) ([]SmartNotification, error) {
	planned := PlanReminders(profile, logs, now.In(service.location), service.location, service.tuning)

	cancelIDs := service.idsToCancel(userID, planned)
	if len(cancelIDs) > 0 {
		if err := service.delivery.CancelAll(ctx, cancelIDs); err != nil {
			return nil, fmt.Errorf("cancel reminders: %w", err)
		}
	}

	service.rememberScheduled(userID, nil)
	if len(planned) > 0 {
		if err := service.delivery.ScheduleAll(ctx, planned); err != nil {
			return nil, fmt.Errorf("schedule reminders: %w", err)
		}
	}
	service.rememberScheduled(userID, notificationIDs(planned))

	service.logger.Debug("reminders refreshed",
		zap.Uint("user_id", userID),
		zap.Int("scheduled", len(planned)),
		zap.Int("cancelled", len(cancelIDs)),
	)
	return planned, nil
}

// idsToCancel unions the previously scheduled ids with the fresh plan's ids,
// so a replay after a crashed schedule pass still clears everything.
func (service *ReminderService) idsToCancel(userID uint, planned []SmartNotification) []string {
	service.mu.Lock()
	defer service.mu.Unlock()

	seen := make(map[string]bool, len(planned))
	ids := make([]string, 0, len(planned)+len(service.scheduledByID[userID]))
	for _, id := range service.scheduledByID[userID] {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, notification := range planned {
		if !seen[notification.ID] {
			seen[notification.ID] = true
			ids = append(ids, notification.ID)
		}
	}
	return ids
}

func (service *ReminderService) rememberScheduled(userID uint, ids []string) {
	service.mu.Lock()
	defer service.mu.Unlock()
	if len(ids) == 0 {
		delete(service.scheduledByID, userID)
		return
	}
	service.scheduledByID[userID] = ids
}

func notificationIDs(notifications []SmartNotification) []string {
	ids := make([]string, 0, len(notifications))
	for _, notification := range notifications {
		ids = append(ids, notification.ID)
	}
	return ids
}
