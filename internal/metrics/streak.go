package metrics

import (
	"time"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// streakBound caps the backward walk; a year of consecutive target days
// is the most the counter will ever report.
const streakBound = 365

// Streak counts consecutive days ending at (or adjacent to) asOf whose
// logged hours meet the daily target. The walk starts at asOf, or the
// day before when asOf itself has no record yet, and stops at the first
// missing or under-target day.
func Streak(records []store.DailyRecord, dailyTarget float64, asOf time.Time) int {
	byDate := make(map[string]store.DailyRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	day := midnight(asOf)
	if _, ok := byDate[day.Format(store.DateLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < streakBound; i++ {
		r, ok := byDate[day.Format(store.DateLayout)]
		if !ok || r.Hours < dailyTarget {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
