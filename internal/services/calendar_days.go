package services

import (
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

type CalendarDayState struct {
	Date       time.Time `json:"date"`
	DateString string    `json:"date_string"`
	Day        int       `json:"day"`
	InMonth    bool      `json:"in_month"`
	Type       DayType   `json:"type"`
	HasData    bool      `json:"has_data"`
}

// BuildCalendarDayStates classifies every day of the week-aligned grid
// around a month, the shape calendar UIs render.
func BuildCalendarDayStates(monthStart time.Time, profile CycleProfile, logs []models.DailyLog, now time.Time, location *time.Location, tuning CycleTuning) []CalendarDayState {
	monthStart = DateAtLocation(monthStart, location)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	hasDataByDay := make(map[string]bool, len(logs))
	for _, entry := range logs {
		key := dayKey(DateAtLocation(entry.Date, location))
		hasDataByDay[key] = hasDataByDay[key] || entry.HasData()
	}

	today := DateAtLocation(now, location)

	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		days = append(days, CalendarDayState{
			Date:       day,
			DateString: key,
			Day:        day.Day(),
			InMonth:    day.Month() == monthStart.Month(),
			Type:       ClassifyDay(day, profile, today, tuning),
			HasData:    hasDataByDay[key],
		})
	}

	return days
}
