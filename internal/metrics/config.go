package metrics

import (
	"strconv"
	"time"
)

// Config carries the goal constants every derivation is computed against.
// Values live in the store's settings table and are editable from the
// Settings view; defaults match the original OJT program.
type Config struct {
	MasterGoal  float64   // total goal hours
	DailyTarget float64   // reference hours per day
	GreatDelta  float64   // delta above which a day counts as "great"
	StartDate   time.Time // week-numbering epoch
	Deadline    time.Time // target completion date
}

const dateLayout = "2006-01-02"

// DefaultConfig returns the stock 500-hour program.
func DefaultConfig() Config {
	return Config{
		MasterGoal:  500,
		DailyTarget: 8,
		GreatDelta:  2,
		StartDate:   time.Date(2026, time.January, 26, 0, 0, 0, 0, time.UTC),
		Deadline:    time.Date(2026, time.April, 25, 0, 0, 0, 0, time.UTC),
	}
}

// ConfigFromSettings builds a Config from the settings key-value map,
// falling back to defaults for missing or unparsable entries.
func ConfigFromSettings(m map[string]string) Config {
	cfg := DefaultConfig()
	if v, err := strconv.ParseFloat(m["master_goal"], 64); err == nil && v > 0 {
		cfg.MasterGoal = v
	}
	if v, err := strconv.ParseFloat(m["daily_target"], 64); err == nil && v > 0 {
		cfg.DailyTarget = v
	}
	if v, err := strconv.ParseFloat(m["great_delta"], 64); err == nil {
		cfg.GreatDelta = v
	}
	if t, err := time.Parse(dateLayout, m["start_date"]); err == nil {
		cfg.StartDate = t
	}
	if t, err := time.Parse(dateLayout, m["deadline"]); err == nil {
		cfg.Deadline = t
	}
	return cfg
}

// WeeklyMax is the full-target week: DailyTarget hours on all seven days.
func (c Config) WeeklyMax() float64 {
	return c.DailyTarget * 7
}
