package services

import (
	"math"
	"sort"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

const (
	// periodStartGapDays is the minimum number of period-free days before a
	// logged period day counts as the start of a new cycle rather than a
	// continuation of the previous one.
	periodStartGapDays = 5

	defaultConfidence = 50

	irregularityThresholdDays = 5
	minHistoryForIrregularity = 3
)

// DetectPeriodStarts returns the chronologically ordered first days of each
// logged period.
func DetectPeriodStarts(logs []models.DailyLog, location *time.Location) []time.Time {
	if len(logs) == 0 {
		return nil
	}

	sorted := make([]models.DailyLog, 0, len(logs))
	sorted = append(sorted, logs...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	starts := make([]time.Time, 0)
	var previousPeriodDay time.Time

	for _, entry := range sorted {
		if !entry.IsPeriod {
			continue
		}
		day := DateAtLocation(entry.Date, location)

		if previousPeriodDay.IsZero() {
			starts = append(starts, day)
			previousPeriodDay = day
			continue
		}

		gapDays := WholeDaysBetween(previousPeriodDay, day) - 1
		if gapDays >= periodStartGapDays {
			starts = append(starts, day)
		}
		previousPeriodDay = day
	}

	return starts
}

// CycleLengthHistory derives the list of completed cycle lengths from logged
// period starts, keeping only plausible values.
func CycleLengthHistory(logs []models.DailyLog, location *time.Location) []int {
	starts := DetectPeriodStarts(logs, location)
	if len(starts) < 2 {
		return nil
	}

	lengths := make([]int, 0, len(starts)-1)
	for index := 1; index < len(starts); index++ {
		length := WholeDaysBetween(starts[index-1], starts[index])
		if length < models.MinPlausibleCycleLength || length > models.MaxPlausibleCycleLength {
			continue
		}
		lengths = append(lengths, length)
	}
	return lengths
}

// ConfidenceFromHistory maps cycle-length regularity onto a 0..100 score.
// An empty history yields the midpoint default rather than an error.
func ConfidenceFromHistory(lengths []int) int {
	if len(lengths) == 0 {
		return defaultConfidence
	}

	deviation := meanAbsoluteDeviation(lengths)
	switch {
	case deviation < 2:
		return 90
	case deviation < 4:
		return 75
	case deviation < 6:
		return 60
	default:
		return 45
	}
}

// IsIrregular reports whether the recorded cycle lengths vary enough to make
// hormonal fluctuation a plausible delay cause on its own.
func IsIrregular(lengths []int) bool {
	if len(lengths) < minHistoryForIrregularity {
		return false
	}
	return meanAbsoluteDeviation(lengths) > irregularityThresholdDays
}

func meanAbsoluteDeviation(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	var total float64
	for _, value := range values {
		total += float64(value)
	}
	mean := total / float64(len(values))

	var deviationSum float64
	for _, value := range values {
		deviationSum += math.Abs(float64(value) - mean)
	}
	return deviationSum / float64(len(values))
}
