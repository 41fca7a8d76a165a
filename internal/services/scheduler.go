package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

type ReminderCategory string

const (
	ReminderPeriod        ReminderCategory = "period"
	ReminderOvulation     ReminderCategory = "ovulation"
	ReminderFertileWindow ReminderCategory = "fertile_window"
	ReminderPMS           ReminderCategory = "pms"
)

const reminderLookaheadCycles = 3

// SmartNotification is a reminder descriptor handed to the delivery
// collaborator. It is regenerated on every refresh; the deterministic ID is
// the dedup and cancellation key.
type SmartNotification struct {
	ID              string           `json:"id"`
	Type            ReminderCategory `json:"type"`
	Title           string           `json:"title"`
	Body            string           `json:"body"`
	TargetDate      time.Time        `json:"target_date"`
	TriggerAt       time.Time        `json:"trigger_at"`
	ScheduledHour   int              `json:"scheduled_hour"`
	ScheduledMinute int              `json:"scheduled_minute"`
	TargetMode      string           `json:"target_mode"`
	IsEnabled       bool             `json:"is_enabled"`
	RepeatDaily     bool             `json:"repeat_daily"`
}

// Delivery is the external alarm subsystem. Implementations must tolerate
// cancellation of unknown ids so refresh stays idempotent.
type Delivery interface {
	CancelAll(ctx context.Context, ids []string) error
	ScheduleAll(ctx context.Context, notifications []SmartNotification) error
}

type reminderRule struct {
	category      ReminderCategory
	leadDays      int
	hour          int
	minute        int
	minConfidence int
	title         string
	body          string
}

func reminderRules() []reminderRule {
	return []reminderRule{
		{
			category:      ReminderPeriod,
			leadDays:      2,
			hour:          9,
			minute:        0,
			minConfidence: 60,
			title:         "Period coming up",
			body:          "Your period is expected in about 2 days.",
		},
		{
			category:      ReminderFertileWindow,
			leadDays:      3,
			hour:          8,
			minute:        0,
			minConfidence: 60,
			title:         "Fertile window starting",
			body:          "Your fertile window opens in about 3 days.",
		},
		{
			category:      ReminderOvulation,
			leadDays:      0,
			hour:          9,
			minute:        0,
			minConfidence: 60,
			title:         "Ovulation day",
			body:          "Today is your predicted ovulation day.",
		},
		{
			category:      ReminderPMS,
			leadDays:      1,
			hour:          18,
			minute:        0,
			minConfidence: 50,
			title:         "PMS window ahead",
			body:          "PMS symptoms may start tomorrow; plan a lighter day.",
		},
	}
}

// PlanReminders walks the next cycle iterations and emits the reminder
// descriptors whose forecast passes the per-category confidence threshold and
// whose trigger still lies in the future. The result is deterministic for a
// fixed profile, history, and now.
func PlanReminders(profile CycleProfile, logs []models.DailyLog, now time.Time, location *time.Location, tuning CycleTuning) []SmartNotification {
	if location == nil {
		location = time.UTC
	}
	if !profile.Configured() {
		return nil
	}

	planned := make([]SmartNotification, 0, reminderLookaheadCycles*4)
	start := DateAtLocation(profile.LastPeriodStart, location)

	for cycleOffset := 0; cycleOffset < reminderLookaheadCycles; cycleOffset++ {
		for _, rule := range reminderRules() {
			target := reminderTargetDate(start, profile.CycleLength, cycleOffset, rule.category, tuning)

			forecast := BuildDayForecast(target, profile, logs, now, tuning)
			if !categoryPredicted(forecast, rule.category) || forecast.Confidence < rule.minConfidence {
				continue
			}

			trigger := time.Date(
				target.Year(), target.Month(), target.Day(),
				rule.hour, rule.minute, 0, 0, location,
			).AddDate(0, 0, -rule.leadDays)
			if !trigger.After(now) {
				continue
			}

			planned = append(planned, SmartNotification{
				ID:              ReminderID(rule.category, target),
				Type:            rule.category,
				Title:           rule.title,
				Body:            rule.body,
				TargetDate:      target,
				TriggerAt:       trigger,
				ScheduledHour:   rule.hour,
				ScheduledMinute: rule.minute,
				TargetMode:      models.RoleOwner,
				IsEnabled:       true,
				RepeatDaily:     false,
			})
		}
	}

	return planned
}

// ReminderID is the dedup key: one reminder per category and target date.
func ReminderID(category ReminderCategory, target time.Time) string {
	return fmt.Sprintf("%s_%s", category, target.Format(dayKeyFormat))
}

func reminderTargetDate(lastPeriodStart time.Time, cycleLength int, cycleOffset int, category ReminderCategory, tuning CycleTuning) time.Time {
	switch category {
	case ReminderPeriod:
		return lastPeriodStart.AddDate(0, 0, (cycleOffset+1)*cycleLength)
	case ReminderOvulation, ReminderFertileWindow:
		return lastPeriodStart.AddDate(0, 0, cycleOffset*cycleLength+tuning.OvulationDay)
	default:
		return lastPeriodStart.AddDate(0, 0, cycleOffset*cycleLength+cycleLength-tuning.PMSWindowDays)
	}
}

func categoryPredicted(forecast DayForecast, category ReminderCategory) bool {
	switch category {
	case ReminderPeriod:
		return forecast.PredictedPeriod
	case ReminderOvulation, ReminderFertileWindow:
		return forecast.PredictedOvulation
	default:
		return forecast.PredictedPMS
	}
}
