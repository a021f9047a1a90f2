package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	masterGoal  *string
	dailyTarget *string
	greatDelta  *string
	startDate   *string
	deadline    *string
}

func newSettingsModel(s *store.Store) settingsModel {
	mg, dt, gd, sd, dl := "", "", "", "", ""
	return settingsModel{
		store:       s,
		masterGoal:  &mg,
		dailyTarget: &dt,
		greatDelta:  &gd,
		startDate:   &sd,
		deadline:    &dl,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.masterGoal = s.getVal("master_goal", "500")
	*s.dailyTarget = s.getVal("daily_target", "8")
	*s.greatDelta = s.getVal("great_delta", "2")
	*s.startDate = s.getVal("start_date", "2026-01-26")
	*s.deadline = s.getVal("deadline", "2026-04-25")

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Master goal (hours)").Value(s.masterGoal),
			huh.NewInput().Title("Daily target (hours)").Value(s.dailyTarget),
			huh.NewInput().Title("Great delta threshold (hours)").Value(s.greatDelta),
		).Title("Goal"),
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(s.startDate),
			huh.NewInput().Title("Deadline (YYYY-MM-DD)").Value(s.deadline),
		).Title("Schedule"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, tea.Batch(
			s.refresh(),
			func() tea.Msg { return refreshMsg{} },
		)
	}

	return s, cmd
}

// saveSettings writes back only the values that parse; a typo keeps the
// previous setting rather than corrupting it.
func (s settingsModel) saveSettings() {
	if _, err := strconv.ParseFloat(*s.masterGoal, 64); err == nil {
		s.store.SetSetting("master_goal", *s.masterGoal)
	}
	if _, err := strconv.ParseFloat(*s.dailyTarget, 64); err == nil {
		s.store.SetSetting("daily_target", *s.dailyTarget)
	}
	if _, err := strconv.ParseFloat(*s.greatDelta, 64); err == nil {
		s.store.SetSetting("great_delta", *s.greatDelta)
	}
	if _, err := time.Parse(store.DateLayout, *s.startDate); err == nil {
		s.store.SetSetting("start_date", *s.startDate)
	}
	if _, err := time.Parse(store.DateLayout, *s.deadline); err == nil {
		s.store.SetSetting("deadline", *s.deadline)
	}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "master_goal", "daily_target", "great_delta":
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return fmt.Sprintf("%g hours", f)
		}
	}
	return v
}
