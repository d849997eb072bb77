package models

import "time"

// DayKeyFormat is the calendar-day key layout. Keys are always derived
// from the local calendar date, not UTC.
const DayKeyFormat = "2006-01-02"

const secondsPerDay = 86400

func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// TodayKey returns the local day key shifted by offsetDays.
func TodayKey(offsetDays int) string {
	return DayKey(time.Now().AddDate(0, 0, offsetDays))
}

// DayOrdinal converts a day key into days since the Unix epoch.
// Returns false for keys that do not parse as YYYY-MM-DD.
func DayOrdinal(key string) (uint32, bool) {
	t, err := time.Parse(DayKeyFormat, key)
	if err != nil || t.Unix() < 0 {
		return 0, false
	}
	return uint32(t.Unix() / secondsPerDay), true
}

// OrdinalOf returns the day ordinal of t's local calendar date.
func OrdinalOf(t time.Time) uint32 {
	y, m, d := t.Date()
	return uint32(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// KeyOfOrdinal is the inverse of DayOrdinal.
func KeyOfOrdinal(ord uint32) string {
	return time.Unix(int64(ord)*secondsPerDay, 0).UTC().Format(DayKeyFormat)
}
