package db

import (
	"github.com/aluna-health/aluna/internal/models"
	"gorm.io/gorm"
)

type DelayRecordRepository struct {
	database *gorm.DB
}

func NewDelayRecordRepository(database *gorm.DB) *DelayRecordRepository {
	return &DelayRecordRepository{database: database}
}

func (repo *DelayRecordRepository) Create(record *models.DelayRecord) error {
	return repo.database.Create(record).Error
}

func (repo *DelayRecordRepository) ListByUser(userID uint) ([]models.DelayRecord, error) {
	records := make([]models.DelayRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DelayRecordRepository) FindByUserAndID(userID uint, id string) (models.DelayRecord, bool, error) {
	record := models.DelayRecord{}
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, id).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.DelayRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DelayRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *DelayRecordRepository) Save(record *models.DelayRecord) error {
	return repo.database.Save(record).Error
}
