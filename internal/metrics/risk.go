package metrics

import "github.com/Thelousyprogrammer/dtr/internal/store"

// RiskLevel is a discrete 0-2 classification produced by the risk scans.
// Each scan carries its own label set.
type RiskLevel int

const (
	RiskLow  RiskLevel = 0
	RiskMid  RiskLevel = 1
	RiskHigh RiskLevel = 2
)

var fatigueLabels = [3]string{"Stable", "Accumulating", "Burnout Risk"}
var cognitiveLabels = [3]string{"Healthy", "High Load", "REDLINE"}

// FatigueLabel names a fatigue scan result.
func FatigueLabel(r RiskLevel) string { return fatigueLabels[clampRisk(r)] }

// CognitiveLabel names a cognitive load scan result.
func CognitiveLabel(r RiskLevel) string { return cognitiveLabels[clampRisk(r)] }

func clampRisk(r RiskLevel) RiskLevel {
	if r < RiskLow {
		return RiskLow
	}
	if r > RiskHigh {
		return RiskHigh
	}
	return r
}

// FatigueRisk scans the date-ascending sequence counting consecutive days
// over the daily target. Three in a row latch the scan at Burnout; a day
// at or under target resets the run but never lowers a latched level.
// The mid "Accumulating" level exists in the label set but is not emitted
// by this scan.
func FatigueRisk(records []store.DailyRecord, dailyTarget float64) RiskLevel {
	risk := RiskLow
	run := 0
	for _, r := range records {
		if r.Hours > dailyTarget {
			run++
		} else {
			run = 0
		}
		if run >= 3 {
			risk = RiskHigh
		}
	}
	return risk
}

// CognitiveRisk scans combined daily load (work + personal hours). Loads
// over 11 add two to the pressure counter, loads over 10 add one, and a
// day at or under 10 clears it. Pressure of six or more means REDLINE,
// three or more at least High Load; once escalated a scan never
// downgrades.
func CognitiveRisk(records []store.DailyRecord) RiskLevel {
	risk := RiskLow
	pressure := 0
	for _, r := range records {
		load := r.Hours + r.PersonalHours
		switch {
		case load > 11:
			pressure += 2
		case load > 10:
			pressure++
		default:
			pressure = 0
		}
		if pressure >= 6 {
			risk = RiskHigh
		} else if pressure >= 3 && risk < RiskMid {
			risk = RiskMid
		}
	}
	return risk
}
