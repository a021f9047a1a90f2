package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

type dashboardModel struct {
	width  int
	height int

	records []store.DailyRecord
	cfg     metrics.Config
}

func newDashboardModel() dashboardModel {
	return dashboardModel{cfg: metrics.DefaultConfig()}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *dashboardModel) setData(records []store.DailyRecord, cfg metrics.Config) {
	d.records = records
	d.cfg = cfg
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	now := time.Now().UTC()

	pacing := d.renderPacingPanel(contentWidth, now)
	health := d.renderHealthPanel(contentWidth, now)
	latest := d.renderLatestPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, pacing, health, latest)
}

func (d dashboardModel) renderPacingPanel(w int, now time.Time) string {
	p := metrics.Project(d.records, d.cfg, now)

	statusStyle := errorStyle
	switch p.Status {
	case metrics.StatusGoalReached:
		statusStyle = highlightStyle
	case metrics.StatusOnTrack:
		statusStyle = successStyle
	}

	momentumStyle := errorStyle
	if p.Momentum >= 0 {
		momentumStyle = successStyle
	}

	header := fmt.Sprintf("%s  %s", titleStyle.Render("Pacing"), statusStyle.Render(p.Status))

	rows := []string{
		header,
		"",
		statRow("Remaining", statValueStyle.Render(fmt.Sprintf("%.1f hrs", p.RemainingHours))),
		statRow("Projected finish", statValueStyle.Render(p.ProjectedDate.Format("January 2, 2006"))),
		statRow("Required rate", statValueStyle.Render(formatPace(p.RequiredRate))),
		statRow("7-day average", statValueStyle.Render(formatPace(p.RecentAverage))),
		statRow("Overall pace", statValueStyle.Render(formatPace(p.OverallPace))),
		statRow("Efficiency", statValueStyle.Render(fmt.Sprintf("%.1f%%", metrics.Efficiency(d.records)))),
		statRow("Momentum", momentumStyle.Render(fmt.Sprintf("%+.1f%%", p.Momentum))),
		statRow("Days", mutedStyle.Render(fmt.Sprintf("%d elapsed / %d remaining", p.DaysElapsed, p.DaysRemaining))),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderHealthPanel(w int, now time.Time) string {
	fatigue := metrics.FatigueRisk(d.records, d.cfg.DailyTarget)
	cognitive := metrics.CognitiveRisk(d.records)
	streak := metrics.Streak(d.records, d.cfg.DailyTarget, now)

	rows := []string{
		titleStyle.Render("Health"),
		"",
		statRow("Streak", statValueStyle.Render(fmt.Sprintf("%d days", streak))),
		statRow("Fatigue", riskStyle(fatigue).Render(metrics.FatigueLabel(fatigue))),
		statRow("Cognitive load", riskStyle(cognitive).Render(metrics.CognitiveLabel(cognitive))),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderLatestPanel is the session delta summary: the most recent entry
// judged against the daily target, its trend against the entry before
// it, and the running week counter.
func (d dashboardModel) renderLatestPanel(w int) string {
	title := titleStyle.Render("Latest Entry")
	if len(d.records) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet. Press 2 then n to log a day."),
		)
		return panelStyle.Width(w).Render(content)
	}

	last := d.records[len(d.records)-1]
	delta := metrics.Delta(last, d.cfg.DailyTarget)
	deltaStr := levelStyle(metrics.DeltaLevel(delta, d.cfg.GreatDelta)).
		Render(fmt.Sprintf("%s hrs (%s)", formatDelta(delta), metrics.DeltaLabel(delta, d.cfg.GreatDelta)))

	trend := metrics.Trend(d.records, len(d.records)-1, d.cfg.DailyTarget)
	trendStyle := warningStyle
	switch trend {
	case metrics.TrendImproved:
		trendStyle = successStyle
	case metrics.TrendDeclined:
		trendStyle = errorStyle
	}

	week := metrics.WeekNumber(last.Day(), d.cfg.StartDate)
	weekHours := metrics.WeekHours(d.records, week, d.cfg.StartDate)
	weekMax := d.cfg.WeeklyMax()
	weekStr := levelStyle(metrics.WeekLevel(weekHours, weekMax)).
		Render(fmt.Sprintf("%.1f / %.0f", weekHours, weekMax))

	rows := []string{
		title,
		"",
		statRow("Date", normalItemStyle.Render(last.Date)),
		statRow("Hours worked", statValueStyle.Render(fmt.Sprintf("%.2f", last.Hours))),
		statRow("Delta", deltaStr),
		statRow("Trend", trendStyle.Render(trend)),
		statRow(fmt.Sprintf("Week %d hours", week), weekStr),
	}

	if last.Reflection != "" {
		rows = append(rows, "", mutedStyle.Render(truncate(last.Reflection, w-8)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func statRow(label, value string) string {
	return fmt.Sprintf("  %s %s", mutedStyle.Width(18).Render(label), value)
}

func truncate(s string, n int) string {
	if n < 4 || len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
