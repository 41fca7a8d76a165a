package models

import "time"

type SymptomEntry struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Intensity int    `json:"intensity"`
}

type DailyLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:uidx_user_date" json:"user_id"`
	Date      time.Time      `gorm:"type:date;not null;uniqueIndex:uidx_user_date" json:"date"`
	IsPeriod  bool           `gorm:"not null;default:false" json:"is_period"`
	Energy    *int           `json:"energy,omitempty"`
	Symptoms  []SymptomEntry `gorm:"serializer:json" json:"symptoms"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (entry DailyLog) HasData() bool {
	if entry.IsPeriod || entry.Energy != nil {
		return true
	}
	return len(entry.Symptoms) > 0 || entry.Notes != ""
}

func (entry DailyLog) SymptomNames() []string {
	names := make([]string, 0, len(entry.Symptoms))
	for _, symptom := range entry.Symptoms {
		names = append(names, symptom.Name)
	}
	return names
}
