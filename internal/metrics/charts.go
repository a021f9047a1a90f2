package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// Series is one named value sequence within a chart dataset.
type Series struct {
	Label  string
	Values []float64
}

// Dataset is the chart-ready shape every builder returns. The TUI (or
// any other sink) owns widget lifecycle and styling; builders only shape
// numbers.
type Dataset struct {
	Labels []string
	Series []Series
}

// Trajectory builds the cumulative hours line from the start date through
// asOf, paired with the ideal straight line at DailyTarget per day.
func Trajectory(records []store.DailyRecord, cfg Config, asOf time.Time) Dataset {
	byDate := make(map[string]float64, len(records))
	for _, r := range records {
		byDate[r.Date] += r.Hours
	}

	var labels []string
	var actual, ideal []float64
	sum := 0.0
	day := 0
	end := midnight(asOf)
	for d := midnight(cfg.StartDate); !d.After(end); d = d.AddDate(0, 0, 1) {
		dStr := d.Format(store.DateLayout)
		labels = append(labels, dStr)
		sum += byDate[dStr]
		actual = append(actual, sum)
		day++
		ideal = append(ideal, float64(day)*cfg.DailyTarget)
	}

	return Dataset{
		Labels: labels,
		Series: []Series{
			{Label: "Actual", Values: actual},
			{Label: "Ideal", Values: ideal},
		},
	}
}

// Energy zone bucket order, lowest to highest output.
var EnergyZoneNames = []string{"Recovery", "Survival", "Solid", "Overdrive", "Elite"}

// EnergyZone classifies one day. Checks run in priority order: Elite
// (full work day plus at least an hour of personal practice) wins over
// Overdrive (combined load above 9), which wins over the plain
// hours-based buckets.
func EnergyZone(r store.DailyRecord) int {
	load := r.Hours + r.PersonalHours
	switch {
	case r.Hours >= 8 && r.PersonalHours >= 1:
		return 4 // Elite
	case load > 9:
		return 3 // Overdrive
	case r.Hours >= 8:
		return 2 // Solid
	case r.Hours >= 6:
		return 1 // Survival
	default:
		return 0 // Recovery
	}
}

// EnergyZones counts days per zone bucket.
func EnergyZones(records []store.DailyRecord) Dataset {
	counts := make([]float64, len(EnergyZoneNames))
	for _, r := range records {
		counts[EnergyZone(r)]++
	}
	return Dataset{
		Labels: EnergyZoneNames,
		Series: []Series{{Label: "Days", Values: counts}},
	}
}

// IdentityTrend averages non-zero identity scores per week, weeks
// ascending. Unrated days (score 0) are excluded from the mean.
func IdentityTrend(records []store.DailyRecord, epoch time.Time) Dataset {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range records {
		if r.IdentityScore <= 0 {
			continue
		}
		w := WeekNumber(r.Day(), epoch)
		sums[w] += float64(r.IdentityScore)
		counts[w]++
	}

	weeks := sortedWeeks(counts)
	var labels []string
	var values []float64
	for _, w := range weeks {
		labels = append(labels, fmt.Sprintf("Week %d", w))
		values = append(values, sums[w]/float64(counts[w]))
	}
	return Dataset{
		Labels: labels,
		Series: []Series{{Label: "Identity Alignment", Values: values}},
	}
}

// Velocity shapes the throughput chart: per-day hours when a specific
// week is selected, per-week sums when week is 0 ("all").
func Velocity(records []store.DailyRecord, epoch time.Time, week int) Dataset {
	if week > 0 {
		var labels []string
		var values []float64
		for _, r := range records {
			if WeekNumber(r.Day(), epoch) != week {
				continue
			}
			labels = append(labels, r.Date)
			values = append(values, r.Hours)
		}
		return Dataset{
			Labels: labels,
			Series: []Series{{Label: "Daily Hours", Values: values}},
		}
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, r := range records {
		w := WeekNumber(r.Day(), epoch)
		sums[w] += r.Hours
		counts[w]++
	}
	weeks := sortedWeeks(counts)
	var labels []string
	var values []float64
	for _, w := range weeks {
		labels = append(labels, fmt.Sprintf("Week %d", w))
		values = append(values, sums[w])
	}
	return Dataset{
		Labels: labels,
		Series: []Series{{Label: "Weekly Velocity", Values: values}},
	}
}

// Weeks lists every week number present in the sequence, descending, for
// the velocity week selector.
func Weeks(records []store.DailyRecord, epoch time.Time) []int {
	seen := make(map[int]int)
	for _, r := range records {
		seen[WeekNumber(r.Day(), epoch)]++
	}
	weeks := sortedWeeks(seen)
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}
	return weeks
}

func sortedWeeks(m map[int]int) []int {
	weeks := make([]int, 0, len(m))
	for w := range m {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}
