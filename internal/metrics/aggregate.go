package metrics

import (
	"sort"
	"time"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// TotalHours sums primary work hours over the whole sequence.
func TotalHours(records []store.DailyRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Hours
	}
	return sum
}

// TotalPersonalHours sums the secondary activity hours.
func TotalPersonalHours(records []store.DailyRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.PersonalHours
	}
	return sum
}

// WeekHours sums hours for records falling in the given epoch-relative week.
func WeekHours(records []store.DailyRecord, week int, epoch time.Time) float64 {
	var sum float64
	for _, r := range records {
		if WeekNumber(r.Day(), epoch) == week {
			sum += r.Hours
		}
	}
	return sum
}

// RollingAverage is the mean daily rate over the trailing calendar window:
// hours of every record dated within the windowDays days ending at asOf,
// divided by windowDays. Days without a record contribute zero, which
// keeps the rate honest when days are skipped.
func RollingAverage(records []store.DailyRecord, windowDays int, asOf time.Time) float64 {
	if windowDays <= 0 {
		return 0
	}
	end := midnight(asOf)
	start := end.AddDate(0, 0, -(windowDays - 1))

	var sum float64
	for _, r := range records {
		d := r.Day()
		if !d.Before(start) && !d.After(end) {
			sum += r.Hours
		}
	}
	return sum / float64(windowDays)
}

// Efficiency is work hours as a percentage of all logged hours.
// Zero when nothing is logged.
func Efficiency(records []store.DailyRecord) float64 {
	work := TotalHours(records)
	personal := TotalPersonalHours(records)
	if work+personal == 0 {
		return 0
	}
	return work / (work + personal) * 100
}

// Delta is the signed surplus or deficit for one day against the target.
func Delta(r store.DailyRecord, dailyTarget float64) float64 {
	return r.Hours - dailyTarget
}

// DatedNote is one accomplishment line attributed to the day it was logged.
type DatedNote struct {
	Date string
	Text string
}

// WeeklySummary is a compiled week: summed hours, every accomplishment with
// its date, and the union of tool names in first-seen order.
type WeeklySummary struct {
	Week            int
	DateRange       string // first date seen for the week
	TotalHours      float64
	Accomplishments []DatedNote
	Tools           []string
}

// CompileWeekly groups the sequence by week number, ascending. Tool names
// are deduplicated case-sensitively; record order within a week is the
// sequence order.
func CompileWeekly(records []store.DailyRecord, epoch time.Time) []WeeklySummary {
	byWeek := make(map[int]*WeeklySummary)
	seenTools := make(map[int]map[string]bool)

	for _, r := range records {
		w := WeekNumber(r.Day(), epoch)
		ws, ok := byWeek[w]
		if !ok {
			ws = &WeeklySummary{Week: w, DateRange: r.Date}
			byWeek[w] = ws
			seenTools[w] = make(map[string]bool)
		}
		ws.TotalHours += r.Hours
		for _, a := range r.Accomplishments {
			ws.Accomplishments = append(ws.Accomplishments, DatedNote{Date: r.Date, Text: a})
		}
		for _, t := range r.Tools {
			if !seenTools[w][t] {
				seenTools[w][t] = true
				ws.Tools = append(ws.Tools, t)
			}
		}
	}

	weeks := make([]WeeklySummary, 0, len(byWeek))
	for _, ws := range byWeek {
		weeks = append(weeks, *ws)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })
	return weeks
}
