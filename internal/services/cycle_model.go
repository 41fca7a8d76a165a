package services

import (
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

type DayType string

const (
	DayTypeCurrentPeriod  DayType = "current_period"
	DayTypePreviousPeriod DayType = "previous_period"
	DayTypeOvulation      DayType = "ovulation"
	DayTypeLuteal         DayType = "luteal"
	DayTypeToday          DayType = "today"
	DayTypeNormal         DayType = "normal"
)

// CycleProfile is the engine's read-only view of a user's cycle settings.
// A zero LastPeriodStart or non-positive CycleLength means "unset"; the
// engine then degrades to baseline results instead of erroring.
type CycleProfile struct {
	LastPeriodStart time.Time
	CycleLength     int
	PeriodDates     map[string]bool
}

func (profile CycleProfile) Configured() bool {
	return !profile.LastPeriodStart.IsZero() && profile.CycleLength > 0
}

// BuildCycleProfile assembles the engine input from the stored user settings
// and the explicitly logged period days.
func BuildCycleProfile(user *models.User, logs []models.DailyLog, location *time.Location) CycleProfile {
	profile := CycleProfile{PeriodDates: make(map[string]bool, len(logs))}
	if user == nil {
		return profile
	}
	if user.CycleLength > 0 {
		profile.CycleLength = user.CycleLength
	}
	if user.LastPeriodStart != nil && !user.LastPeriodStart.IsZero() {
		profile.LastPeriodStart = DateAtLocation(*user.LastPeriodStart, location)
	}

	for _, entry := range logs {
		if entry.IsPeriod {
			profile.PeriodDates[dayKey(DateAtLocation(entry.Date, location))] = true
		}
	}

	// Logged period starts are fresher than the onboarding value.
	starts := DetectPeriodStarts(logs, location)
	if len(starts) > 0 {
		latest := starts[len(starts)-1]
		if latest.After(profile.LastPeriodStart) {
			profile.LastPeriodStart = latest
		}
	}

	return profile
}

// DayOfCycle normalizes an arbitrary day offset into [0, cycleLength).
// The double-mod keeps the result non-negative for dates before the last
// period start, which a naive % would not.
func DayOfCycle(daysDiff int, cycleLength int) int {
	if cycleLength <= 0 {
		return 0
	}
	return ((daysDiff % cycleLength) + cycleLength) % cycleLength
}

// ClassifyDay maps a calendar day onto the cycle phases used by the calendar
// view. Today wins over every cycle-derived type.
func ClassifyDay(date time.Time, profile CycleProfile, today time.Time, tuning CycleTuning) DayType {
	if date.IsZero() {
		return DayTypeNormal
	}

	day := DateAtLocation(date, date.Location())
	if sameDay(day, today) {
		return DayTypeToday
	}

	if !profile.Configured() {
		if profile.PeriodDates[dayKey(day)] {
			return DayTypeCurrentPeriod
		}
		return DayTypeNormal
	}

	daysDiff := WholeDaysBetween(profile.LastPeriodStart, day)
	dayOfCycle := DayOfCycle(daysDiff, profile.CycleLength)

	if profile.PeriodDates[dayKey(day)] || dayOfCycle < tuning.PeriodDurationDays {
		if daysDiff >= 0 && daysDiff < profile.CycleLength {
			return DayTypeCurrentPeriod
		}
		return DayTypePreviousPeriod
	}

	if dayOfCycle >= tuning.OvulationDay-tuning.OvulationWindowDays &&
		dayOfCycle <= tuning.OvulationDay+tuning.OvulationWindowDays {
		return DayTypeOvulation
	}

	if dayOfCycle > tuning.OvulationDay && dayOfCycle <= profile.CycleLength-1 {
		return DayTypeLuteal
	}

	return DayTypeNormal
}
