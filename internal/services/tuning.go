package services

// CycleTuning holds the heuristic constants of the forecasting engine. They
// are deliberately configuration, not literals, so they can be tuned or made
// per-user without touching the algorithms.
type CycleTuning struct {
	// PeriodDurationDays is the assumed bleeding length at the start of a
	// cycle (cycle days 0..PeriodDurationDays-1).
	PeriodDurationDays int
	// OvulationDay is the assumed zero-based cycle day of ovulation.
	OvulationDay int
	// OvulationWindowDays widens the ovulation day to a symmetric window.
	OvulationWindowDays int
	// PMSWindowDays is how many days before the next period the PMS window
	// opens.
	PMSWindowDays int
	// NeighborhoodDays is the ± cycle-day distance used when matching
	// historical records to a forecast target.
	NeighborhoodDays int
	// MinSymptomOccurrences is the frequency floor for a symptom to be
	// considered recurring.
	MinSymptomOccurrences int
	// MaxForecastSymptoms caps the symptom list of a forecast.
	MaxForecastSymptoms int
	// DetectionLookbackDays is how many recent days (including today) the
	// period-start auto-detection inspects.
	DetectionLookbackDays int
	// DetectionKeywords are matched case-insensitively as substrings of
	// logged symptom names. The defaults are English; deployments localize
	// the list through configuration.
	DetectionKeywords []string
}

func DefaultCycleTuning() CycleTuning {
	return CycleTuning{
		PeriodDurationDays:    5,
		OvulationDay:          14,
		OvulationWindowDays:   2,
		PMSWindowDays:         7,
		NeighborhoodDays:      2,
		MinSymptomOccurrences: 2,
		MaxForecastSymptoms:   3,
		DetectionLookbackDays: 3,
		DetectionKeywords:     []string{"bleed", "blood", "cramp", "spotting", "period", "menstrua"},
	}
}
