package services

import (
	"strings"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

// DetectPeriodStart inspects the most recent logged days for period-like
// symptoms and, when today matches and at least two of the lookback days do,
// reports today as a probable period start. It is a notification trigger
// only; the caller decides whether anything is persisted.
func DetectPeriodStart(logs []models.DailyLog, now time.Time, location *time.Location, tuning CycleTuning) (time.Time, bool) {
	today := DateAtLocation(now, location)

	byDay := make(map[string]models.DailyLog, len(logs))
	for _, entry := range logs {
		byDay[dayKey(DateAtLocation(entry.Date, location))] = entry
	}

	todayEntry, todayLogged := byDay[dayKey(today)]
	if !todayLogged || !symptomsMatchKeywords(todayEntry, tuning.DetectionKeywords) {
		return time.Time{}, false
	}

	matchingDays := 0
	for offset := 0; offset < tuning.DetectionLookbackDays; offset++ {
		day := today.AddDate(0, 0, -offset)
		if entry, logged := byDay[dayKey(day)]; logged && symptomsMatchKeywords(entry, tuning.DetectionKeywords) {
			matchingDays++
		}
	}

	if matchingDays < 2 {
		return time.Time{}, false
	}
	return today, true
}

func symptomsMatchKeywords(entry models.DailyLog, keywords []string) bool {
	for _, symptom := range entry.Symptoms {
		name := strings.ToLower(symptom.Name)
		for _, keyword := range keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return true
			}
		}
	}
	return false
}
