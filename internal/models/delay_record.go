package models

import "time"

// TriState distinguishes an explicit "no" answer from a question that was
// skipped in the delay questionnaire.
type TriState string

const (
	TriStateYes     TriState = "yes"
	TriStateNo      TriState = "no"
	TriStateUnknown TriState = "unknown"
)

type DelayContext struct {
	HadSexualActivity TriState `json:"had_sexual_activity"`
	Stress            bool     `json:"stress"`
	Travel            bool     `json:"travel"`
	DietChange        bool     `json:"diet_change"`
	ExerciseChange    bool     `json:"exercise_change"`
	Illness           bool     `json:"illness"`
	Medication        bool     `json:"medication"`
}

type DelayReason string

const (
	ReasonPregnancy           DelayReason = "pregnancy"
	ReasonStress              DelayReason = "stress"
	ReasonLifestyleChange     DelayReason = "lifestyle_change"
	ReasonIllness             DelayReason = "illness"
	ReasonMedication          DelayReason = "medication"
	ReasonHormonalFluctuation DelayReason = "hormonal_fluctuation"
)

// ReasonScore carries an independent heuristic score in 0..100. Scores are a
// relative ranking and intentionally do not sum to 100.
type ReasonScore struct {
	Reason      DelayReason `json:"reason"`
	Probability int         `json:"probability"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ActionType  string `json:"action_type"`
}

type DelayRecord struct {
	ID                 string           `gorm:"primaryKey" json:"id"`
	UserID             uint             `gorm:"not null;index" json:"user_id"`
	ExpectedPeriodDate time.Time        `gorm:"type:date;not null" json:"expected_period_date"`
	DelayStartDate     time.Time        `gorm:"type:date;not null" json:"delay_start_date"`
	DelayDays          int              `gorm:"not null" json:"delay_days"`
	Context            DelayContext     `gorm:"serializer:json" json:"context"`
	Reasons            []ReasonScore    `gorm:"serializer:json" json:"reasons"`
	Recommendations    []Recommendation `gorm:"serializer:json" json:"recommendations"`
	Resolved           bool             `gorm:"not null;default:false" json:"resolved"`
	ResolvedDate       *time.Time       `gorm:"type:date" json:"resolved_date,omitempty"`
	Notes              string           `json:"notes"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
