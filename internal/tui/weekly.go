package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// weeklyModel shows the compiled weekly DTR: summed hours, dated
// accomplishments, and the tools touched that week.
type weeklyModel struct {
	width  int
	height int

	records []store.DailyRecord
	cfg     metrics.Config
	weeks   []metrics.WeeklySummary
	cursor  int
}

func newWeeklyModel() weeklyModel {
	return weeklyModel{cfg: metrics.DefaultConfig()}
}

func (m *weeklyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *weeklyModel) setData(records []store.DailyRecord, cfg metrics.Config) {
	m.records = records
	m.cfg = cfg
	m.weeks = metrics.CompileWeekly(records, cfg.StartDate)
	if m.cursor >= len(m.weeks) {
		m.cursor = max(0, len(m.weeks)-1)
	}
}

func (m weeklyModel) update(msg tea.Msg) (weeklyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.weeks)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m weeklyModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Weekly DTR")

	if len(m.weeks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No records yet."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, wk := range m.weeks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		hoursStr := levelStyle(metrics.WeekLevel(wk.TotalHours, m.cfg.WeeklyMax())).
			Render(fmt.Sprintf("%6.1fh", wk.TotalHours))
		rows = append(rows, style.Render(fmt.Sprintf("%sWeek %-3d (from %s)  ", cursor, wk.Week, wk.DateRange))+hoursStr)
	}

	rows = append(rows, "")
	rows = append(rows, m.renderDetail(w)...)

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m weeklyModel) renderDetail(w int) []string {
	wk := m.weeks[m.cursor]

	rows := []string{titleStyle.Render(fmt.Sprintf("Week %d detail", wk.Week)), ""}

	if len(wk.Accomplishments) == 0 {
		rows = append(rows, mutedStyle.Render("  No accomplishments logged."))
	}
	limit := max(3, m.height-len(m.weeks)-14)
	for i, a := range wk.Accomplishments {
		if i >= limit {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(wk.Accomplishments)-i)))
			break
		}
		rows = append(rows, fmt.Sprintf("  %s  %s", mutedStyle.Render(a.Date), truncate(a.Text, max(0, w-20))))
	}

	if len(wk.Tools) > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("  Tools: ")+highlightStyle.Render(strings.Join(wk.Tools, ", ")))
	}
	return rows
}
