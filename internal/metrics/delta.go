package metrics

import "github.com/Thelousyprogrammer/dtr/internal/store"

// Level is the coarse good/fair/poor classification the presentation
// layer maps to colors. The core never names colors; it only ranks.
type Level int

const (
	LevelEmpty Level = iota
	LevelLow
	LevelMid
	LevelHigh
)

// Delta status labels.
const (
	DeltaAhead = "Ahead of target"
	DeltaOn    = "On target"
	DeltaBelow = "Below target"
)

// Trend labels for a record compared against the one before it.
const (
	TrendImproved = "Improved"
	TrendDeclined = "Declined"
	TrendSame     = "Same as before"
	TrendNone     = "No previous record"
)

// DeltaLevel ranks a day's delta: high above the "great" threshold, mid
// for any surplus, low for on-target or below.
func DeltaLevel(delta, greatThreshold float64) Level {
	switch {
	case delta > greatThreshold:
		return LevelHigh
	case delta > 0:
		return LevelMid
	default:
		return LevelLow
	}
}

// DeltaLabel names a day's standing against the daily target.
func DeltaLabel(delta, greatThreshold float64) string {
	switch {
	case delta > greatThreshold:
		return DeltaAhead
	case delta <= 0:
		return DeltaBelow
	default:
		return DeltaOn
	}
}

// Trend compares a record's delta to its predecessor's.
func Trend(records []store.DailyRecord, i int, dailyTarget float64) string {
	if i <= 0 || i >= len(records) {
		return TrendNone
	}
	cur := Delta(records[i], dailyTarget)
	prev := Delta(records[i-1], dailyTarget)
	switch {
	case cur > prev:
		return TrendImproved
	case cur < prev:
		return TrendDeclined
	default:
		return TrendSame
	}
}

// WeekLevel ranks a week's hours against the full-target week: low under
// half, mid under the full target, high at or above it.
func WeekLevel(weekHours, weeklyMax float64) Level {
	switch {
	case weekHours < weeklyMax*0.5:
		return LevelLow
	case weekHours < weeklyMax:
		return LevelMid
	default:
		return LevelHigh
	}
}

// PerformanceLevel ranks one day's raw hours for the velocity chart:
// empty for nothing logged, high at 10+, mid at 8+, low otherwise.
func PerformanceLevel(hours float64) Level {
	switch {
	case hours <= 0:
		return LevelEmpty
	case hours >= 10:
		return LevelHigh
	case hours >= 8:
		return LevelMid
	default:
		return LevelLow
	}
}
