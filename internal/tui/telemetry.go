package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

type chartPage int

const (
	chartTrajectory chartPage = iota
	chartEnergy
	chartIdentity
	chartVelocity
)

var chartNames = []string{"Trajectory", "Energy Zones", "Identity", "Velocity"}

type telemetryModel struct {
	width  int
	height int

	records []store.DailyRecord
	cfg     metrics.Config

	page    chartPage
	weekIdx int // 0 = all weeks; otherwise index into weeks
	weeks   []int

	trajectory timeserieslinechart.Model
	energy     barchart.Model
	identity   sparkline.Model
	velocity   barchart.Model
}

func newTelemetryModel() telemetryModel {
	return telemetryModel{cfg: metrics.DefaultConfig()}
}

func (t *telemetryModel) setSize(w, h int) {
	t.width = w
	t.height = h
	t.buildCharts()
}

func (t *telemetryModel) setData(records []store.DailyRecord, cfg metrics.Config) {
	t.records = records
	t.cfg = cfg
	t.weeks = metrics.Weeks(records, cfg.StartDate)
	if t.weekIdx > len(t.weeks) {
		t.weekIdx = 0
	}
	t.buildCharts()
}

// selectedWeek is 0 for "all".
func (t telemetryModel) selectedWeek() int {
	if t.weekIdx == 0 || t.weekIdx > len(t.weeks) {
		return 0
	}
	return t.weeks[t.weekIdx-1]
}

func (t telemetryModel) update(msg tea.Msg) (telemetryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.page > 0 {
				t.page--
			}
			return t, nil
		case key.Matches(msg, keys.Down):
			if int(t.page) < len(chartNames)-1 {
				t.page++
			}
			return t, nil
		case key.Matches(msg, keys.Left):
			if t.weekIdx < len(t.weeks) {
				t.weekIdx++
				t.buildCharts()
			}
			return t, nil
		case key.Matches(msg, keys.Right):
			if t.weekIdx > 0 {
				t.weekIdx--
				t.buildCharts()
			}
			return t, nil
		}
	}
	return t, nil
}

func (t *telemetryModel) chartSize() (int, int) {
	w := t.width - 8
	if w < 20 {
		w = 20
	}
	h := 12
	if t.height > 30 {
		h = 16
	}
	return w, h
}

// buildCharts reshapes the pure datasets into widgets. Widgets are
// rebuilt from scratch on every data or size change; only the metrics
// package decides the numbers.
func (t *telemetryModel) buildCharts() {
	w, h := t.chartSize()
	now := time.Now().UTC()

	// Trajectory: actual cumulative hours vs the ideal line.
	traj := metrics.Trajectory(t.records, t.cfg, now)
	t.trajectory = timeserieslinechart.New(w, h)
	for i, label := range traj.Labels {
		day, err := time.Parse(store.DateLayout, label)
		if err != nil {
			continue
		}
		t.trajectory.PushDataSet("Actual", timeserieslinechart.TimePoint{Time: day, Value: traj.Series[0].Values[i]})
		t.trajectory.PushDataSet("Ideal", timeserieslinechart.TimePoint{Time: day, Value: traj.Series[1].Values[i]})
	}
	t.trajectory.SetDataSetStyle("Actual", lipgloss.NewStyle().Foreground(colorAccent))
	t.trajectory.SetDataSetStyle("Ideal", lipgloss.NewStyle().Foreground(colorSubtle))
	t.trajectory.DrawBrailleAll()

	// Energy zones: one bar per bucket, colored low to high.
	zones := metrics.EnergyZones(t.records)
	zoneColors := []lipgloss.Color{colorSubtle, colorError, colorWarning, colorSuccess, colorAccent}
	t.energy = barchart.New(w, h)
	var bars []barchart.BarData
	for i, label := range zones.Labels {
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  label,
				Value: zones.Series[0].Values[i],
				Style: lipgloss.NewStyle().Foreground(zoneColors[i]),
			}},
		})
	}
	t.energy.PushAll(bars)
	t.energy.Draw()

	// Identity alignment: weekly averages on a 0-5 scale.
	identity := metrics.IdentityTrend(t.records, t.cfg.StartDate)
	t.identity = sparkline.New(w, h, sparkline.WithMaxValue(5))
	t.identity.PushAll(identity.Series[0].Values)
	t.identity.Draw()

	// Velocity: per-day bars for a selected week, per-week bars for all.
	vel := metrics.Velocity(t.records, t.cfg.StartDate, t.selectedWeek())
	t.velocity = barchart.New(w, h)
	var velBars []barchart.BarData
	for i, label := range vel.Labels {
		v := vel.Series[0].Values[i]
		velBars = append(velBars, barchart.BarData{
			Label: shortLabel(label),
			Values: []barchart.BarValue{{
				Name:  label,
				Value: v,
				Style: levelStyle(metrics.PerformanceLevel(v)),
			}},
		})
	}
	t.velocity.PushAll(velBars)
	t.velocity.Draw()
}

// shortLabel trims "2026-01-26" to "01-26" and "Week 3" to "W3" so bar
// labels fit.
func shortLabel(label string) string {
	if len(label) == len(store.DateLayout) && label[4] == '-' {
		return label[5:]
	}
	return strings.Replace(label, "Week ", "W", 1)
}

func (t telemetryModel) view() string {
	w := t.width - 4

	var tabs []string
	for i, name := range chartNames {
		if chartPage(i) == t.page {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Telemetry"), "  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
	)

	var chartView, caption string
	switch t.page {
	case chartTrajectory:
		chartView = t.trajectory.View()
		caption = fmt.Sprintf("Cumulative hours since %s vs %.0fh/day ideal",
			t.cfg.StartDate.Format(store.DateLayout), t.cfg.DailyTarget)
	case chartEnergy:
		chartView = t.energy.View()
		caption = "Days per energy zone"
	case chartIdentity:
		chartView = t.identity.View()
		caption = "Weekly identity alignment average (unrated days excluded)"
	case chartVelocity:
		chartView = t.velocity.View()
		if week := t.selectedWeek(); week > 0 {
			caption = fmt.Sprintf("Daily hours, week %d", week)
		} else {
			caption = "Hours per week"
		}
	}

	weekLabel := "all weeks"
	if week := t.selectedWeek(); week > 0 {
		weekLabel = fmt.Sprintf("week %d", week)
	}
	nav := mutedStyle.Render(fmt.Sprintf("  ↑/↓: chart  ←/→: %s", weekLabel))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", mutedStyle.Render("  "+caption), nav,
		),
	)
}
