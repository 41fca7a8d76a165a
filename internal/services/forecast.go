package services

import (
	"sort"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

// Fixed energy tiers used when no historical neighborhood matches.
const (
	energyTierPeriod    = 40
	energyTierOvulatory = 80
	energyTierPMS       = 50
	energyTierBaseline  = 65
)

// DayForecast is computed per query and never persisted.
type DayForecast struct {
	Date               time.Time `json:"date"`
	PredictedPeriod    bool      `json:"predicted_period"`
	PredictedOvulation bool      `json:"predicted_ovulation"`
	PredictedPMS       bool      `json:"predicted_pms"`
	PredictedEnergy    *int      `json:"predicted_energy,omitempty"`
	Confidence         int       `json:"confidence"`
	HasData            bool      `json:"has_data"`
	Symptoms           []string  `json:"symptoms"`
}

// BuildDayForecast classifies and forecasts a single calendar day. Past days
// report what was actually logged; future days are predicted from the cycle
// position and the historical neighborhood. A zero date or an unconfigured
// profile yields the baseline forecast.
func BuildDayForecast(date time.Time, profile CycleProfile, logs []models.DailyLog, now time.Time, tuning CycleTuning) DayForecast {
	location := now.Location()
	forecast := DayForecast{Date: DateAtLocation(date, location), Symptoms: []string{}}
	if date.IsZero() {
		forecast.Date = time.Time{}
		return forecast
	}

	day := forecast.Date
	today := DateAtLocation(now, location)

	record, recorded := findLogForDay(logs, day, location)
	forecast.HasData = recorded && record.HasData()

	if day.Before(today) {
		if recorded {
			forecast.PredictedEnergy = record.Energy
			forecast.Symptoms = append(forecast.Symptoms, record.SymptomNames()...)
		}
		return forecast
	}

	if !profile.Configured() {
		return forecast
	}

	daysDiff := WholeDaysBetween(profile.LastPeriodStart, day)
	dayOfCycle := DayOfCycle(daysDiff, profile.CycleLength)

	forecast.PredictedPeriod = nearCycleBoundary(dayOfCycle, profile.CycleLength)
	forecast.PredictedOvulation = dayOfCycle >= tuning.OvulationDay-tuning.OvulationWindowDays &&
		dayOfCycle <= tuning.OvulationDay+tuning.OvulationWindowDays
	forecast.PredictedPMS = dayOfCycle >= profile.CycleLength-tuning.PMSWindowDays &&
		dayOfCycle < profile.CycleLength-2

	energy := predictEnergy(dayOfCycle, profile, logs, tuning)
	forecast.PredictedEnergy = &energy
	forecast.Symptoms = predictSymptoms(dayOfCycle, profile, logs, tuning)
	forecast.Confidence = ConfidenceFromHistory(CycleLengthHistory(logs, location))

	return forecast
}

// nearCycleBoundary reports whether a cycle day sits within two days of the
// wrap to the next cycle, on either side of the boundary.
func nearCycleBoundary(dayOfCycle int, cycleLength int) bool {
	return dayOfCycle >= cycleLength-2 || dayOfCycle <= 2
}

func predictEnergy(targetDay int, profile CycleProfile, logs []models.DailyLog, tuning CycleTuning) int {
	var total, count int
	for _, entry := range logs {
		if entry.Energy == nil {
			continue
		}
		entryDiff := WholeDaysBetween(profile.LastPeriodStart, DateAtLocation(entry.Date, entry.Date.Location()))
		entryDay := DayOfCycle(entryDiff, profile.CycleLength)
		if absInt(entryDay-targetDay) > tuning.NeighborhoodDays {
			continue
		}
		total += *entry.Energy
		count++
	}
	if count > 0 {
		return total / count
	}

	switch {
	case targetDay < tuning.PeriodDurationDays:
		return energyTierPeriod
	case targetDay >= 10 && targetDay <= tuning.OvulationDay+tuning.OvulationWindowDays:
		return energyTierOvulatory
	case targetDay >= profile.CycleLength-tuning.PMSWindowDays:
		return energyTierPMS
	default:
		return energyTierBaseline
	}
}

func predictSymptoms(targetDay int, profile CycleProfile, logs []models.DailyLog, tuning CycleTuning) []string {
	counts := make(map[string]int)
	for _, entry := range logs {
		entryDiff := WholeDaysBetween(profile.LastPeriodStart, DateAtLocation(entry.Date, entry.Date.Location()))
		entryDay := DayOfCycle(entryDiff, profile.CycleLength)
		if absInt(entryDay-targetDay) > tuning.NeighborhoodDays {
			continue
		}
		for _, name := range entry.SymptomNames() {
			counts[name]++
		}
	}

	recurring := make([]string, 0, len(counts))
	for name, count := range counts {
		if count >= tuning.MinSymptomOccurrences {
			recurring = append(recurring, name)
		}
	}
	sort.Slice(recurring, func(i, j int) bool {
		if counts[recurring[i]] == counts[recurring[j]] {
			return recurring[i] < recurring[j]
		}
		return counts[recurring[i]] > counts[recurring[j]]
	})

	if len(recurring) > tuning.MaxForecastSymptoms {
		recurring = recurring[:tuning.MaxForecastSymptoms]
	}
	return recurring
}

func findLogForDay(logs []models.DailyLog, day time.Time, location *time.Location) (models.DailyLog, bool) {
	key := dayKey(day)
	for _, entry := range logs {
		if dayKey(DateAtLocation(entry.Date, location)) == key {
			return entry, true
		}
	}
	return models.DailyLog{}, false
}

func absInt(value int) int {
	if value < 0 {
		return -value
	}
	return value
}
