package services

import (
	"testing"
	"time"

	"github.com/aluna-health/aluna/internal/models"
)

func intPtr(value int) *int {
	return &value
}

func TestBuildDayForecast_NoCycleDataBaseline(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-10")
	forecast := BuildDayForecast(mustParseDay(t, "2026-05-15"), CycleProfile{}, nil, now, DefaultCycleTuning())

	if forecast.PredictedPeriod || forecast.PredictedOvulation || forecast.PredictedPMS {
		t.Fatalf("expected no predictions without cycle data, got %+v", forecast)
	}
	if forecast.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %d", forecast.Confidence)
	}
	if forecast.HasData {
		t.Fatalf("expected no data flag for empty history")
	}
}

func TestBuildDayForecast_ZeroDateBaseline(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-10")
	profile := testProfile(t, "2026-05-01", 28)

	forecast := BuildDayForecast(time.Time{}, profile, nil, now, DefaultCycleTuning())
	if forecast.PredictedPeriod || forecast.PredictedOvulation || forecast.PredictedPMS || forecast.Confidence != 0 {
		t.Fatalf("expected baseline forecast for zero date, got %+v", forecast)
	}
}

func TestBuildDayForecast_PastDayReportsRecordedData(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-10")
	profile := testProfile(t, "2026-04-01", 28)
	logs := []models.DailyLog{
		{
			Date:   mustParseDay(t, "2026-05-02"),
			Energy: intPtr(35),
			Symptoms: []models.SymptomEntry{
				{Name: "Cramps", Category: models.SymptomCategoryPain, Intensity: 3},
			},
		},
	}

	forecast := BuildDayForecast(mustParseDay(t, "2026-05-02"), profile, logs, now, DefaultCycleTuning())

	if !forecast.HasData {
		t.Fatalf("expected recorded day to report data")
	}
	if forecast.PredictedPeriod || forecast.PredictedOvulation || forecast.PredictedPMS {
		t.Fatalf("expected no predictive flags on a past day")
	}
	if forecast.PredictedEnergy == nil || *forecast.PredictedEnergy != 35 {
		t.Fatalf("expected recorded energy 35, got %v", forecast.PredictedEnergy)
	}
	if len(forecast.Symptoms) != 1 || forecast.Symptoms[0] != "Cramps" {
		t.Fatalf("expected recorded symptoms, got %v", forecast.Symptoms)
	}
}

func TestBuildDayForecast_PhaseFlags(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-01")
	profile := testProfile(t, "2026-05-01", 28)
	tuning := DefaultCycleTuning()

	cases := []struct {
		name          string
		date          string
		wantPeriod    bool
		wantOvulation bool
		wantPMS       bool
	}{
		{name: "cycle start", date: "2026-05-01", wantPeriod: true},
		{name: "two days in", date: "2026-05-03", wantPeriod: true},
		{name: "three days in", date: "2026-05-04"},
		{name: "ovulation window start", date: "2026-05-13", wantOvulation: true},
		{name: "ovulation window end", date: "2026-05-17", wantOvulation: true},
		{name: "pms window start", date: "2026-05-22", wantPMS: true},
		{name: "pms window last day", date: "2026-05-26", wantPMS: true},
		{name: "boundary minus two is period", date: "2026-05-27", wantPeriod: true},
		{name: "next cycle start", date: "2026-05-29", wantPeriod: true},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			forecast := BuildDayForecast(mustParseDay(t, testCase.date), profile, nil, now, tuning)
			if forecast.PredictedPeriod != testCase.wantPeriod {
				t.Fatalf("period flag: expected %v, got %v", testCase.wantPeriod, forecast.PredictedPeriod)
			}
			if forecast.PredictedOvulation != testCase.wantOvulation {
				t.Fatalf("ovulation flag: expected %v, got %v", testCase.wantOvulation, forecast.PredictedOvulation)
			}
			if forecast.PredictedPMS != testCase.wantPMS {
				t.Fatalf("pms flag: expected %v, got %v", testCase.wantPMS, forecast.PredictedPMS)
			}
		})
	}
}

func TestBuildDayForecast_EnergyNeighborhoodAverage(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-01")
	profile := testProfile(t, "2026-05-01", 28)
	logs := []models.DailyLog{
		// cycle day 7 and 9 of the previous cycle: neighbors of target day 8
		{Date: mustParseDay(t, "2026-04-10"), Energy: intPtr(60)},
		{Date: mustParseDay(t, "2026-04-12"), Energy: intPtr(70)},
		// cycle day 20: outside the ±2 neighborhood
		{Date: mustParseDay(t, "2026-04-23"), Energy: intPtr(10)},
	}

	forecast := BuildDayForecast(mustParseDay(t, "2026-05-09"), profile, logs, now, DefaultCycleTuning())
	if forecast.PredictedEnergy == nil || *forecast.PredictedEnergy != 65 {
		t.Fatalf("expected averaged energy 65, got %v", forecast.PredictedEnergy)
	}
}

func TestBuildDayForecast_EnergyTierFallback(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-01")
	profile := testProfile(t, "2026-05-01", 28)
	tuning := DefaultCycleTuning()

	cases := []struct {
		name string
		date string
		want int
	}{
		{name: "period days run low", date: "2026-05-03", want: 40},
		{name: "ovulatory stretch runs high", date: "2026-05-13", want: 80},
		{name: "premenstrual dip", date: "2026-05-24", want: 50},
		{name: "otherwise steady", date: "2026-05-08", want: 65},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			forecast := BuildDayForecast(mustParseDay(t, testCase.date), profile, nil, now, tuning)
			if forecast.PredictedEnergy == nil || *forecast.PredictedEnergy != testCase.want {
				t.Fatalf("expected tier energy %d, got %v", testCase.want, forecast.PredictedEnergy)
			}
		})
	}
}

func TestBuildDayForecast_RecurringSymptoms(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-01")
	profile := testProfile(t, "2026-05-01", 28)

	symptom := func(name string) []models.SymptomEntry {
		return []models.SymptomEntry{{Name: name, Category: models.SymptomCategoryPain, Intensity: 2}}
	}
	logs := []models.DailyLog{
		// previous cycles, all near cycle day 25
		{Date: mustParseDay(t, "2026-03-30"), Symptoms: append(symptom("Cramps"), symptom("Bloating")...)},
		{Date: mustParseDay(t, "2026-04-26"), Symptoms: append(symptom("Cramps"), symptom("Bloating")...)},
		{Date: mustParseDay(t, "2026-04-27"), Symptoms: append(symptom("Cramps"), symptom("Headache")...)},
		// a symptom seen only once stays out
		{Date: mustParseDay(t, "2026-04-25"), Symptoms: symptom("Acne")},
	}

	forecast := BuildDayForecast(mustParseDay(t, "2026-05-26"), profile, logs, now, DefaultCycleTuning())

	if len(forecast.Symptoms) != 2 {
		t.Fatalf("expected two recurring symptoms, got %v", forecast.Symptoms)
	}
	if forecast.Symptoms[0] != "Cramps" || forecast.Symptoms[1] != "Bloating" {
		t.Fatalf("expected most frequent first, got %v", forecast.Symptoms)
	}
}

func TestBuildDayForecast_ConfidenceDefaultsWithoutHistory(t *testing.T) {
	t.Parallel()

	now := mustParseDay(t, "2026-05-01")
	profile := testProfile(t, "2026-05-01", 28)

	forecast := BuildDayForecast(mustParseDay(t, "2026-05-13"), profile, nil, now, DefaultCycleTuning())
	if forecast.Confidence != 50 {
		t.Fatalf("expected default confidence 50 with no history, got %d", forecast.Confidence)
	}
}
