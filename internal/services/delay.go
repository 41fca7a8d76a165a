package services

import (
	"sort"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

const (
	ActionPregnancyTest      = "pregnancy_test"
	ActionLogTestResult      = "log_test_result"
	ActionStressRelief       = "stress_relief"
	ActionRelaxationExercise = "relaxation_exercise"
	ActionConsultDoctor      = "consult_doctor"
	ActionClinicalReport     = "clinical_report"
	ActionKeepTracking       = "keep_tracking"
)

const (
	pregnancyRecommendationFloor = 50
	stressRecommendationFloor    = 40
	consultDoctorDelayDays       = 7
	watchfulWaitingMinDelayDays  = 5
)

// ExpectedPeriodDate projects the next period start from the cycle settings.
// The false return means the settings are incomplete and no expectation
// exists.
func ExpectedPeriodDate(lastPeriodStart time.Time, cycleLength int) (time.Time, bool) {
	if lastPeriodStart.IsZero() || cycleLength <= 0 {
		return time.Time{}, false
	}
	return DateAtLocation(lastPeriodStart.AddDate(0, 0, cycleLength), lastPeriodStart.Location()), true
}

// DelayDays returns how many whole days today is past the expected date,
// never negative.
func DelayDays(expected time.Time, today time.Time) int {
	if expected.IsZero() {
		return 0
	}
	days := WholeDaysBetween(expected, today)
	if days < 0 {
		return 0
	}
	return days
}

// AnalyzeDelay scores the probable causes of a delay. Scores are independent
// heuristics sorted descending; they are a relative ranking, not a
// distribution, and are deliberately not normalized.
func AnalyzeDelay(delayDays int, context models.DelayContext, cycleHistory []int) []models.ReasonScore {
	reasons := make([]models.ReasonScore, 0, 6)

	if context.HadSexualActivity == models.TriStateYes {
		probability := 50
		switch {
		case delayDays >= 7:
			probability = 85
		case delayDays >= 3:
			probability = 70
		}
		reasons = append(reasons, models.ReasonScore{Reason: models.ReasonPregnancy, Probability: probability})
	}

	if context.Stress {
		probability := 30
		switch {
		case delayDays >= 10:
			probability = 60
		case delayDays >= 5:
			probability = 45
		}
		reasons = append(reasons, models.ReasonScore{Reason: models.ReasonStress, Probability: probability})
	}

	lifestyleFactors := 0
	for _, changed := range []bool{context.Travel, context.DietChange, context.ExerciseChange} {
		if changed {
			lifestyleFactors++
		}
	}
	if lifestyleFactors > 0 {
		probability := lifestyleFactors * 20
		if probability > 60 {
			probability = 60
		}
		reasons = append(reasons, models.ReasonScore{Reason: models.ReasonLifestyleChange, Probability: probability})
	}

	if context.Illness {
		reasons = append(reasons, models.ReasonScore{Reason: models.ReasonIllness, Probability: 50})
	}
	if context.Medication {
		reasons = append(reasons, models.ReasonScore{Reason: models.ReasonMedication, Probability: 40})
	}

	if len(reasons) == 0 || IsIrregular(cycleHistory) {
		probability := 20
		switch {
		case delayDays >= 10:
			probability = 50
		case delayDays >= 5:
			probability = 35
		}
		reasons = append(reasons, models.ReasonScore{Reason: models.ReasonHormonalFluctuation, Probability: probability})
	}

	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].Probability > reasons[j].Probability
	})
	return reasons
}

// GenerateRecommendations turns ranked reasons into actionable follow-ups.
// The pregnancy and stress blocks are evaluated before the delay-length
// blocks so a long delay with sexual activity yields both the test and the
// clinician recommendations.
func GenerateRecommendations(delayDays int, reasons []models.ReasonScore, context models.DelayContext) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, 4)

	pregnancyScore, pregnancyPresent := findReason(reasons, models.ReasonPregnancy)
	stressScore, stressPresent := findReason(reasons, models.ReasonStress)

	if pregnancyPresent && pregnancyScore >= pregnancyRecommendationFloor {
		recommendations = append(recommendations,
			models.Recommendation{
				Title:       "Take a pregnancy test",
				Description: "With this delay length a home test already gives a reliable result.",
				ActionType:  ActionPregnancyTest,
			},
			models.Recommendation{
				Title:       "Log the test result",
				Description: "Recording the outcome keeps the delay analysis accurate.",
				ActionType:  ActionLogTestResult,
			},
		)
	}

	if stressPresent && stressScore >= stressRecommendationFloor && !pregnancyPresent {
		recommendations = append(recommendations,
			models.Recommendation{
				Title:       "Manage stress",
				Description: "Sustained stress commonly shifts the cycle by several days.",
				ActionType:  ActionStressRelief,
			},
			models.Recommendation{
				Title:       "Try a relaxation or sleep exercise",
				Description: "Short breathing or sleep routines help the cycle settle.",
				ActionType:  ActionRelaxationExercise,
			},
		)
	}

	if delayDays >= consultDoctorDelayDays {
		recommendations = append(recommendations,
			models.Recommendation{
				Title:       "Consult a clinician",
				Description: "A delay of a week or more is worth discussing with a doctor.",
				ActionType:  ActionConsultDoctor,
			},
			models.Recommendation{
				Title:       "Generate a clinical report",
				Description: "A summary of recent cycles makes the consultation quicker.",
				ActionType:  ActionClinicalReport,
			},
		)
	}

	if delayDays >= watchfulWaitingMinDelayDays && delayDays < consultDoctorDelayDays && len(reasons) == 0 {
		recommendations = append(recommendations, models.Recommendation{
			Title:       "Keep tracking",
			Description: "Log daily and escalate if the delay passes day 7.",
			ActionType:  ActionKeepTracking,
		})
	}

	return recommendations
}

func findReason(reasons []models.ReasonScore, target models.DelayReason) (int, bool) {
	for _, score := range reasons {
		if score.Reason == target {
			return score.Probability, true
		}
	}
	return 0, false
}
