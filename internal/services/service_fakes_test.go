package services

import (
	"context"
	"sync"

	"github.com/aluna-health/aluna/internal/models"
)

type fakeProfileSource struct {
	user *models.User
	err  error
}

func (source *fakeProfileSource) FindByID(userID uint) (*models.User, error) {
	if source.err != nil {
		return nil, source.err
	}
	return source.user, nil
}

type fakeDaySource struct {
	logs []models.DailyLog
	err  error
}

func (source *fakeDaySource) ListByUser(userID uint) ([]models.DailyLog, error) {
	if source.err != nil {
		return nil, source.err
	}
	return source.logs, nil
}

type fakeDelayStore struct {
	records []models.DelayRecord
}

func (store *fakeDelayStore) Create(record *models.DelayRecord) error {
	store.records = append(store.records, *record)
	return nil
}

func (store *fakeDelayStore) ListByUser(userID uint) ([]models.DelayRecord, error) {
	matched := make([]models.DelayRecord, 0, len(store.records))
	for _, record := range store.records {
		if record.UserID == userID {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (store *fakeDelayStore) FindByUserAndID(userID uint, id string) (models.DelayRecord, bool, error) {
	for _, record := range store.records {
		if record.UserID == userID && record.ID == id {
			return record, true, nil
		}
	}
	return models.DelayRecord{}, false, nil
}

func (store *fakeDelayStore) Save(record *models.DelayRecord) error {
	for index := range store.records {
		if store.records[index].ID == record.ID {
			store.records[index] = *record
			return nil
		}
	}
	store.records = append(store.records, *record)
	return nil
}

// fakeDelivery records every cancel and schedule call in order.
type fakeDelivery struct {
	mutex     sync.Mutex
	calls     []string
	cancelled [][]string
	scheduled [][]SmartNotification
}

func (delivery *fakeDelivery) CancelAll(ctx context.Context, ids []string) error {
	delivery.mutex.Lock()
	defer delivery.mutex.Unlock()
	delivery.calls = append(delivery.calls, "cancel")
	delivery.cancelled = append(delivery.cancelled, append([]string(nil), ids...))
	return nil
}

func (delivery *fakeDelivery) ScheduleAll(ctx context.Context, notifications []SmartNotification) error {
	delivery.mutex.Lock()
	defer delivery.mutex.Unlock()
	delivery.calls = append(delivery.calls, "schedule")
	delivery.scheduled = append(delivery.scheduled, append([]SmartNotification(nil), notifications...))
	return nil
}
