package services

import "time"

// WeekBounds returns the Monday 00:00:00.000 UTC start and Sunday
// 23:59:59.999 UTC end of the week containing the reference instant. Every
// weekly read path shares this boundary so aggregation never drifts from
// what the validator saw.
func WeekBounds(reference time.Time) (time.Time, time.Time) {
	utc := reference.UTC()
	daysSinceMonday := (int(utc.Weekday()) + 6) % 7
	monday := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysSinceMonday)
	weekEnd := monday.AddDate(0, 0, 7).Add(-time.Millisecond)
	return monday, weekEnd
}
