package metrics

import "time"

// WeekNumber maps a date to a 1-indexed week relative to the epoch:
// floor(days since epoch / 7) + 1, both dates truncated to midnight.
// Dates before the epoch clamp to week 1. The anchor is the program
// start date, not the calendar year, so week boundaries stay stable
// across New Year.
func WeekNumber(date, epoch time.Time) int {
	d := midnight(date)
	e := midnight(epoch)
	if d.Before(e) {
		return 1
	}
	days := int(d.Sub(e).Hours() / 24)
	return days/7 + 1
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
