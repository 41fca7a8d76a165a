package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aluna-health/aluna/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrCycleNotConfigured means no expected period date exists, so there is
// nothing to analyze a delay against.
var ErrCycleNotConfigured = errors.New("cycle settings incomplete")

// ErrDelayRecordNotFound is returned when a record id does not belong to the
// requesting user.
var ErrDelayRecordNotFound = errors.New("delay record not found")

// DelayRecordStore is the persistence collaborator for delay analyses.
// Records are appended and later updated to mark resolution, never deleted
// automatically.
type DelayRecordStore interface {
	Create(record *models.DelayRecord) error
	ListByUser(userID uint) ([]models.DelayRecord, error)
	FindByUserAndID(userID uint, id string) (models.DelayRecord, bool, error)
	Save(record *models.DelayRecord) error
}

type DelayService struct {
	users    ProfileSource
	days     DayRecordSource
	records  DelayRecordStore
	logger   *zap.Logger
	location *time.Location
	nowFunc  func() time.Time
}

func NewDelayService(users ProfileSource, days DayRecordSource, records DelayRecordStore, logger *zap.Logger, location *time.Location) *DelayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &DelayService{
		users:    users,
		days:     days,
		records:  records,
		logger:   logger,
		location: location,
		nowFunc:  time.Now,
	}
}

// Analyze computes the expected date, delay length, ranked causes, and
// recommendations from the questionnaire answers, and persists the result.
func (service *DelayService) Analyze(userID uint, context models.DelayContext) (*models.DelayRecord, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}
	logs, err := service.days.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load daily logs for user %d: %w", userID, err)
	}

	profile := BuildCycleProfile(user, logs, service.location)
	expected, ok := ExpectedPeriodDate(profile.LastPeriodStart, profile.CycleLength)
	if !ok {
		return nil, ErrCycleNotConfigured
	}

	today := DateAtLocation(service.nowFunc().In(service.location), service.location)
	delayDays := DelayDays(expected, today)
	history := CycleLengthHistory(logs, service.location)
	reasons := AnalyzeDelay(delayDays, context, history)
	recommendations := GenerateRecommendations(delayDays, reasons, context)

	record := &models.DelayRecord{
		ID:                 uuid.NewString(),
		UserID:             userID,
		ExpectedPeriodDate: expected,
		DelayStartDate:     expected.AddDate(0, 0, 1),
		DelayDays:          delayDays,
		Context:            context,
		Reasons:            reasons,
		Recommendations:    recommendations,
	}
	if err := service.records.Create(record); err != nil {
		return nil, fmt.Errorf("persist delay record: %w", err)
	}

	service.logger.Info("delay analyzed",
		zap.Uint("user_id", userID),
		zap.Int("delay_days", delayDays),
		zap.Int("reasons", len(reasons)),
	)
	return record, nil
}

func (service *DelayService) List(userID uint) ([]models.DelayRecord, error) {
	records, err := service.records.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list delay records for user %d: %w", userID, err)
	}
	return records, nil
}

// Resolve marks a delay record as closed; this is the only mutation a record
// supports after creation.
func (service *DelayService) Resolve(userID uint, recordID string, notes string) (*models.DelayRecord, error) {
	record, found, err := service.records.FindByUserAndID(userID, recordID)
	if err != nil {
		return nil, fmt.Errorf("load delay record %s: %w", recordID, err)
	}
	if !found {
		return nil, ErrDelayRecordNotFound
	}

	today := DateAtLocation(service.nowFunc().In(service.location), service.location)
	record.Resolved = true
	record.ResolvedDate = &today
	if notes != "" {
		record.Notes = notes
	}
	if err := service.records.Save(&record); err != nil {
		return nil, fmt.Errorf("save delay record %s: %w", recordID, err)
	}
	return &record, nil
}
