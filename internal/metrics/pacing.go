package metrics

import (
	"math"
	"time"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// Pacing status labels.
const (
	StatusGoalReached = "Goal Reached"
	StatusOnTrack     = "On Track"
	StatusBehind      = "Behind Schedule"
)

// Projection is the pacing snapshot the dashboard renders: how much is
// left, how fast the user is going, how fast they need to go, and when
// the goal lands at the current rate.
type Projection struct {
	TotalHours     float64
	RemainingHours float64
	DaysElapsed    int
	DaysRemaining  int
	OverallPace    float64 // hours/day since the start date
	RequiredRate   float64 // hours/day needed to hit the deadline
	RecentAverage  float64 // trailing 7-calendar-day rate
	Momentum       float64 // recent vs overall pace, percent
	ProjectedDate  time.Time
	Status         string
}

// Project derives the full pacing snapshot for asOf (normally today).
// Every division is guarded; with no data at all the projection pace
// falls back to 1 hour/day rather than dividing by zero.
func Project(records []store.DailyRecord, cfg Config, asOf time.Time) Projection {
	today := midnight(asOf)
	total := TotalHours(records)
	remaining := math.Max(0, cfg.MasterGoal-total)

	daysElapsed := ceilDays(midnight(cfg.StartDate), today)
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	daysRemaining := ceilDays(today, midnight(cfg.Deadline))
	if daysRemaining < 1 {
		daysRemaining = 1
	}

	overallPace := total / float64(daysElapsed)
	requiredRate := remaining / float64(daysRemaining)
	recent := RollingAverage(records, 7, today)

	pace := recent
	if pace <= 0 {
		pace = overallPace
	}
	if pace <= 0 {
		pace = 1
	}

	daysToFinish := remaining / pace
	projected := today.AddDate(0, 0, int(math.Ceil(daysToFinish)))

	momentum := 0.0
	if overallPace > 0 {
		momentum = (recent - overallPace) / overallPace * 100
	}

	status := StatusBehind
	switch {
	case remaining <= 0:
		status = StatusGoalReached
	case recent >= requiredRate:
		status = StatusOnTrack
	}

	return Projection{
		TotalHours:     total,
		RemainingHours: remaining,
		DaysElapsed:    daysElapsed,
		DaysRemaining:  daysRemaining,
		OverallPace:    overallPace,
		RequiredRate:   requiredRate,
		RecentAverage:  recent,
		Momentum:       momentum,
		ProjectedDate:  projected,
		Status:         status,
	}
}

func ceilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
