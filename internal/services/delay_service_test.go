package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluna-health/aluna/internal/models"
)

func newDelayServiceForTest(t *testing.T, user *models.User, logs []models.DailyLog, now time.Time) (*DelayService, *fakeDelayStore) {
	t.Helper()
	store := &fakeDelayStore{}
	service := NewDelayService(
		&fakeProfileSource{user: user},
		&fakeDaySource{logs: logs},
		store,
		nil,
		time.UTC,
	)
	service.nowFunc = func() time.Time { return now }
	return service, store
}

func TestDelayService_Analyze(t *testing.T) {
	t.Parallel()

	lastStart := mustParseDay(t, "2026-04-01")
	user := &models.User{ID: 1, CycleLength: 28, LastPeriodStart: &lastStart}
	now := time.Date(2026, 5, 6, 15, 30, 0, 0, time.UTC)

	service, store := newDelayServiceForTest(t, user, nil, now)

	record, err := service.Analyze(1, models.DelayContext{
		HadSexualActivity: models.TriStateYes,
		Stress:            true,
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "2026-04-29", record.ExpectedPeriodDate.Format("2006-01-02"))
	assert.Equal(t, "2026-04-30", record.DelayStartDate.Format("2006-01-02"))
	assert.Equal(t, 7, record.DelayDays)

	require.NotEmpty(t, record.Reasons)
	assert.Equal(t, models.ReasonPregnancy, record.Reasons[0].Reason)
	assert.Equal(t, 85, record.Reasons[0].Probability)

	require.NotEmpty(t, record.Recommendations)
	assert.Equal(t, ActionPregnancyTest, record.Recommendations[0].ActionType)

	require.Len(t, store.records, 1)
	assert.Equal(t, record.ID, store.records[0].ID)
}

func TestDelayService_AnalyzeWithoutCycleSettings(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: 1, CycleLength: 28}
	now := time.Date(2026, 5, 6, 15, 30, 0, 0, time.UTC)

	service, _ := newDelayServiceForTest(t, user, nil, now)

	_, err := service.Analyze(1, models.DelayContext{})
	assert.True(t, errors.Is(err, ErrCycleNotConfigured))
}

func TestDelayService_AnalyzeUsesDetectedPeriodStart(t *testing.T) {
	t.Parallel()

	// The stored start is stale; logged period days supply a newer one.
	lastStart := mustParseDay(t, "2026-03-01")
	user := &models.User{ID: 1, CycleLength: 28, LastPeriodStart: &lastStart}
	logs := []models.DailyLog{
		periodLog(t, "2026-04-02"),
		periodLog(t, "2026-04-03"),
	}
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

	service, _ := newDelayServiceForTest(t, user, logs, now)

	record, err := service.Analyze(1, models.DelayContext{})
	require.NoError(t, err)
	assert.Equal(t, "2026-04-30", record.ExpectedPeriodDate.Format("2006-01-02"))
	assert.Equal(t, 4, record.DelayDays)
}

func TestDelayService_Resolve(t *testing.T) {
	t.Parallel()

	lastStart := mustParseDay(t, "2026-04-01")
	user := &models.User{ID: 1, CycleLength: 28, LastPeriodStart: &lastStart}
	now := time.Date(2026, 5, 6, 15, 30, 0, 0, time.UTC)

	service, store := newDelayServiceForTest(t, user, nil, now)

	record, err := service.Analyze(1, models.DelayContext{})
	require.NoError(t, err)

	resolved, err := service.Resolve(1, record.ID, "period arrived")
	require.NoError(t, err)

	assert.True(t, resolved.Resolved)
	require.NotNil(t, resolved.ResolvedDate)
	assert.Equal(t, "2026-05-06", resolved.ResolvedDate.Format("2006-01-02"))
	assert.Equal(t, "period arrived", resolved.Notes)

	require.Len(t, store.records, 1)
	assert.True(t, store.records[0].Resolved)
}

func TestDelayService_ResolveUnknownRecord(t *testing.T) {
	t.Parallel()

	lastStart := mustParseDay(t, "2026-04-01")
	user := &models.User{ID: 1, CycleLength: 28, LastPeriodStart: &lastStart}
	now := time.Date(2026, 5, 6, 15, 30, 0, 0, time.UTC)

	service, _ := newDelayServiceForTest(t, user, nil, now)

	_, err := service.Resolve(1, "missing-id", "")
	assert.True(t, errors.Is(err, ErrDelayRecordNotFound))
}
