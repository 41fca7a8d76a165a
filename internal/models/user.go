package models

import "time"

const (
	RoleOwner   = "owner"
	RolePartner = "partner"
)

const (
	DefaultCycleLength = 28

	// Cycle lengths outside this range are treated as implausible and are
	// excluded from history-based calculations.
	MinPlausibleCycleLength = 20
	MaxPlausibleCycleLength = 45
)

type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Role            string     `gorm:"not null;default:owner" json:"role"`
	CycleLength     int        `gorm:"not null;default:0" json:"cycle_length"`
	LastPeriodStart *time.Time `gorm:"type:date" json:"last_period_start,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func IsValidCycleLength(value int) bool {
	return value >= MinPlausibleCycleLength && value <= MaxPlausibleCycleLength
}
