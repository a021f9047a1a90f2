package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thelousyprogrammer/dtr/internal/export"
	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// App is the root Bubble Tea model. It owns the record sequence and the
// config; every mutation triggers a full reload-and-recompute pass, so
// no derived value ever outlives one render.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	records []store.DailyRecord
	cfg     metrics.Config

	dashboard dashboardModel
	journal   journalModel
	telemetry telemetryModel
	weekly    weeklyModel
	settings  settingsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewDashboard,
		cfg:        metrics.DefaultConfig(),
		dashboard:  newDashboardModel(),
		journal:    newJournalModel(s),
		telemetry:  newTelemetryModel(),
		weekly:     newWeeklyModel(),
		settings:   newSettingsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return a.loadData()
}

// loadData is the single suspension point: one asynchronous read of the
// full sequence plus settings. Everything downstream is synchronous.
func (a App) loadData() tea.Cmd {
	return func() tea.Msg {
		records, err := a.store.ListRecords()
		if err != nil {
			records = nil
		}
		cfg := metrics.DefaultConfig()
		if m, err := a.store.SettingsMap(); err == nil {
			cfg = metrics.ConfigFromSettings(m)
		}
		return dataMsg{records: records, cfg: cfg}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.journal.setSize(a.width, contentHeight)
		a.telemetry.setSize(a.width, contentHeight)
		a.weekly.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case dataMsg:
		a.records = msg.records
		a.cfg = msg.cfg
		a.dashboard.setData(msg.records, msg.cfg)
		a.journal.setData(msg.records, msg.cfg)
		a.telemetry.setData(msg.records, msg.cfg)
		a.weekly.setData(msg.records, msg.cfg)
		return a, nil

	case refreshMsg:
		return a, a.loadData()

	case recordSavedMsg:
		a.status = "DTR entry saved"
		return a, a.loadData()

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (form or dialog), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewJournal
			return a, a.loadData()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTelemetry
			return a, a.loadData()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewWeekly
			return a, a.loadData()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, a.settings.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			if a.activeView == viewSettings {
				return a, a.settings.refresh()
			}
			return a, a.loadData()
		}
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewJournal:
		a.journal, cmd = a.journal.update(msg)
	case viewTelemetry:
		a.telemetry, cmd = a.telemetry.update(msg)
	case viewWeekly:
		a.weekly, cmd = a.weekly.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewJournal:
		return a.journal.capturing()
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewJournal:
		content = a.journal.view()
	case viewTelemetry:
		content = a.telemetry.view()
	case viewWeekly:
		content = a.weekly.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("dtr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Goal progress in the footer, always visible
	total := metrics.TotalHours(a.records)
	progress := highlightStyle.Render(fmt.Sprintf(" %.1f / %.0fh", total, a.cfg.MasterGoal))

	left := footerStyle.Render(helpView)
	right := progress + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV", "JSON", "Daily report", "Weekly report"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	records := a.records
	cfg := a.cfg
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format(store.DateLayout)

		var path string
		var err error
		switch format {
		case 0:
			path = filepath.Join(home, fmt.Sprintf("dtr-export-%s.csv", dateStr))
			err = export.ToCSV(records, path)
		case 1:
			path = filepath.Join(home, fmt.Sprintf("dtr-export-%s.json", dateStr))
			err = export.ToJSON(records, path)
		case 2:
			path = filepath.Join(home, fmt.Sprintf("Daily_DTR_Report_%s.txt", dateStr))
			err = export.DailyReport(records, cfg, path)
		case 3:
			path = filepath.Join(home, fmt.Sprintf("Weekly_DTR_Report_%s.txt", dateStr))
			err = export.WeeklyReport(metrics.CompileWeekly(records, cfg.StartDate), path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
