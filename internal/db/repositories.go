package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	DailyLogs    *DailyLogRepository
	DelayRecords *DelayRecordRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		DailyLogs:    NewDailyLogRepository(database),
		DelayRecords: NewDelayRecordRepository(database),
	}
}
