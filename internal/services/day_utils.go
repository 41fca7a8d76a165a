package services

import "time"

const dayKeyFormat = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD string. The zero time plus false signals an
// unparseable input; callers degrade to a baseline result instead of failing.
func ParseDay(raw string, location *time.Location) (time.Time, bool) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(dayKeyFormat, raw, location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func dayKey(value time.Time) string {
	return value.Format(dayKeyFormat)
}

func sameDay(a time.Time, b time.Time) bool {
	return a.Format(dayKeyFormat) == b.Format(dayKeyFormat)
}

// WholeDaysBetween returns to-from in whole calendar days, negative when to
// precedes from.
func WholeDaysBetween(from time.Time, to time.Time) int {
	fromDay := DateAtLocation(from, from.Location())
	toDay := DateAtLocation(to, from.Location())
	return int(toDay.Sub(fromDay).Hours() / 24)
}
