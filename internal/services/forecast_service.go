package services

import (
	"fmt"
	"time"

	"github.com/aluna-health/aluna/internal/models"
	"go.uber.org/zap"
)

// ProfileSource and DayRecordSource are the storage collaborators the engine
// reads from. The db package provides the gorm-backed implementations; tests
// provide in-memory ones.
type ProfileSource interface {
	FindByID(userID uint) (*models.User, error)
}

type DayRecordSource interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type ForecastService struct {
	users    ProfileSource
	days     DayRecordSource
	logger   *zap.Logger
	location *time.Location
	tuning   CycleTuning
	nowFunc  func() time.Time
}

func NewForecastService(users ProfileSource, days DayRecordSource, logger *zap.Logger, location *time.Location, tuning CycleTuning) *ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &ForecastService{
		users:    users,
		days:     days,
		logger:   logger,
		location: location,
		tuning:   tuning,
		nowFunc:  time.Now,
	}
}

// ForecastDay builds the forecast for a raw YYYY-MM-DD date. An unparseable
// date degrades to the baseline forecast rather than an error; only storage
// failures surface.
func (service *ForecastService) ForecastDay(userID uint, rawDate string) (DayForecast, error) {
	profile, logs, err := service.loadInputs(userID)
	if err != nil {
		return DayForecast{}, err
	}

	now := service.nowFunc().In(service.location)
	date, parsed := ParseDay(rawDate, service.location)
	if !parsed {
		service.logger.Warn("unparseable forecast date, returning baseline",
			zap.Uint("user_id", userID),
			zap.String("date", rawDate),
		)
		return DayForecast{Symptoms: []string{}}, nil
	}

	return BuildDayForecast(date, profile, logs, now, service.tuning), nil
}

// DetectTodayPeriodStart runs the keyword heuristic over the latest logs.
func (service *ForecastService) DetectTodayPeriodStart(userID uint) (time.Time, bool, error) {
	_, logs, err := service.loadInputs(userID)
	if err != nil {
		return time.Time{}, false, err
	}
	now := service.nowFunc().In(service.location)
	detected, found := DetectPeriodStart(logs, now, service.location, service.tuning)
	return detected, found, nil
}

// CalendarMonth classifies every day of a calendar month grid.
func (service *ForecastService) CalendarMonth(userID uint, rawMonth string) ([]CalendarDayState, error) {
	profile, logs, err := service.loadInputs(userID)
	if err != nil {
		return nil, err
	}

	monthStart, parseErr := time.ParseInLocation("2006-01", rawMonth, service.location)
	now := service.nowFunc().In(service.location)
	if parseErr != nil {
		monthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, service.location)
	}

	return BuildCalendarDayStates(monthStart, profile, logs, now, service.location, service.tuning), nil
}

// Plan exposes the engine inputs needed by the reminder refresh path.
func (service *ForecastService) Plan(userID uint) (CycleProfile, []models.DailyLog, error) {
	return service.loadInputs(userID)
}

func (service *ForecastService) loadInputs(userID uint) (CycleProfile, []models.DailyLog, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return CycleProfile{}, nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	logs, err := service.days.ListByUser(userID)
	if err != nil {
		return CycleProfile{}, nil, fmt.Errorf("load daily logs for user %d: %w", userID, err)
	}
	return BuildCycleProfile(user, logs, service.location), logs, nil
}
