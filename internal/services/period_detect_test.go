package services

import (
	"testing"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

func symptomLog(t *testing.T, date string, names ...string) models.DailyLog {
	t.Helper()
	entry := models.DailyLog{Date: mustParseDay(t, date)}
	for _, name := range names {
		entry.Symptoms = append(entry.Symptoms, models.SymptomEntry{
			Name:      name,
			Category:  models.SymptomCategoryFlow,
			Intensity: 2,
		})
	}
	return entry
}

func TestDetectPeriodStart(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-10")
	tuning := DefaultCycleTuning()

	cases := []struct {
		name     string
		logs     []models.DailyLog
		wantHit  bool
		wantDate string
	}{
		{
			name: "today and yesterday match",
			logs: []models.DailyLog{
				symptomLog(t, "2026-05-09", "Light bleeding"),
				symptomLog(t, "2026-05-10", "Cramps"),
			},
			wantHit:  true,
			wantDate: "2026-05-10",
		},
		{
			name: "case insensitive substring match",
			logs: []models.DailyLog{
				symptomLog(t, "2026-05-08", "SPOTTING"),
				symptomLog(t, "2026-05-10", "Menstrual cramps"),
			},
			wantHit:  true,
			wantDate: "2026-05-10",
		},
		{
			name: "today alone is not enough",
			logs: []models.DailyLog{
				symptomLog(t, "2026-05-10", "Cramps"),
			},
			wantHit: false,
		},
		{
			name: "today without a match never detects",
			logs: []models.DailyLog{
				symptomLog(t, "2026-05-08", "Cramps"),
				symptomLog(t, "2026-05-09", "Heavy bleeding"),
				symptomLog(t, "2026-05-10", "Headache"),
			},
			wantHit: false,
		},
		{
			name: "older matches are outside the lookback",
			logs: []models.DailyLog{
				symptomLog(t, "2026-05-06", "Cramps"),
				symptomLog(t, "2026-05-10", "Cramps"),
			},
			wantHit: false,
		},
		{
			name:    "no logs at all",
			logs:    nil,
			wantHit: false,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			detected, hit := DetectPeriodStart(testCase.logs, now, time.UTC, tuning)
			if hit != testCase.wantHit {
				t.Fatalf("expected hit=%v, got %v", testCase.wantHit, hit)
			}
			if hit && detected.Format("2006-01-02") != testCase.wantDate {
				t.Fatalf("expected detected date %s, got %s", testCase.wantDate, detected.Format("2006-01-02"))
			}
		})
	}
}
