package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// conflictState tracks an unresolved duplicate-date insert. With one
// existing record the user picks replace-or-keep; with several (a
// corrupt pre-existing state) they pick which record survives.
type conflictState struct {
	pending  store.DailyRecord
	existing []store.DailyRecord
	cursor   int
}

type journalModel struct {
	store  *store.Store
	width  int
	height int

	records []store.DailyRecord
	cfg     metrics.Config
	cursor  int

	formActive bool
	form       *huh.Form

	conflict     *conflictState
	confirmDrop  bool
	confirmClear bool

	// Form field pointers (survive value copies)
	formDate       *string
	formHours      *string
	formPersonal   *string
	formScore      *string
	formReflection *string
	formNotes      *string
	formTools      *string
}

func newJournalModel(s *store.Store) journalModel {
	date, hours, personal, score := "", "", "", "0"
	reflection, notes, tools := "", "", ""
	return journalModel{
		store:          s,
		cfg:            metrics.DefaultConfig(),
		formDate:       &date,
		formHours:      &hours,
		formPersonal:   &personal,
		formScore:      &score,
		formReflection: &reflection,
		formNotes:      &notes,
		formTools:      &tools,
	}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

func (j *journalModel) setData(records []store.DailyRecord, cfg metrics.Config) {
	j.records = records
	j.cfg = cfg
	if j.cursor >= len(records) {
		j.cursor = max(0, len(records)-1)
	}
}

// capturing reports whether the journal owns the keyboard (form,
// conflict dialog, or a confirm prompt is up).
func (j journalModel) capturing() bool {
	return j.formActive || j.conflict != nil || j.confirmDrop || j.confirmClear
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}
	if j.conflict != nil {
		return j.updateConflict(msg)
	}
	if j.confirmDrop || j.confirmClear {
		return j.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.records)-1 {
				j.cursor++
			}
		case key.Matches(msg, keys.New):
			return j.showEntryForm()
		case key.Matches(msg, keys.DropLast):
			if len(j.records) == 0 {
				return j, advise("No records to delete.")
			}
			j.confirmDrop = true
		case key.Matches(msg, keys.ClearAll):
			if len(j.records) == 0 {
				return j, advise("No records to clear.")
			}
			j.confirmClear = true
		}
	}
	return j, nil
}

func advise(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// --- Entry form ---

var scoreOptions = []huh.Option[string]{
	huh.NewOption("Not rated", "0"),
	huh.NewOption("1", "1"),
	huh.NewOption("2", "2"),
	huh.NewOption("3", "3"),
	huh.NewOption("4", "4"),
	huh.NewOption("5", "5"),
}

func (j journalModel) showEntryForm() (journalModel, tea.Cmd) {
	*j.formDate = todayStr()
	*j.formHours = ""
	*j.formPersonal = ""
	*j.formScore = "0"
	*j.formReflection = ""
	*j.formNotes = ""
	*j.formTools = ""

	j.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(j.formDate),
			huh.NewInput().Title("Hours worked").Value(j.formHours),
			huh.NewInput().Title("Personal hours").Value(j.formPersonal),
			huh.NewSelect[string]().Title("Identity score").Options(scoreOptions...).Value(j.formScore),
		),
		huh.NewGroup(
			huh.NewText().Title("Reflection").Value(j.formReflection),
			huh.NewText().Title("Accomplishments (one per line)").Value(j.formNotes),
			huh.NewInput().Title("Tools (comma-separated)").Value(j.formTools),
		),
	).WithShowHelp(true).WithShowErrors(true)

	j.formActive = true
	return j, j.form.Init()
}

func (j journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			return j, nil
		}
	}

	form, cmd := j.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form = f
	}

	if j.form.State == huh.StateCompleted {
		j.formActive = false
		return j.submitEntry()
	}

	return j, cmd
}

// submitEntry builds a record from the form and routes it through the
// duplicate-date policy: clean dates insert directly, a single existing
// record raises the replace-or-keep dialog, several raise the survivor
// picker.
func (j journalModel) submitEntry() (journalModel, tea.Cmd) {
	record, err := j.buildRecord()
	if err != nil {
		return j, advise(fmt.Sprintf("Invalid entry: %v", err))
	}

	existing, err := j.store.FindByDate(record.Date)
	if err != nil {
		return j, advise(fmt.Sprintf("Error: %v", err))
	}

	if len(existing) == 0 {
		saved, err := j.store.InsertRecord(record)
		if err != nil {
			return j, advise(fmt.Sprintf("Error: %v", err))
		}
		return j, func() tea.Msg { return recordSavedMsg{record: saved} }
	}

	j.conflict = &conflictState{pending: record, existing: existing}
	return j, nil
}

func (j journalModel) buildRecord() (store.DailyRecord, error) {
	date := strings.TrimSpace(*j.formDate)
	if _, err := time.Parse(store.DateLayout, date); err != nil {
		return store.DailyRecord{}, fmt.Errorf("bad date %q", date)
	}

	var accomplishments []string
	for _, line := range strings.Split(*j.formNotes, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			accomplishments = append(accomplishments, s)
		}
	}
	var tools []string
	for _, t := range strings.Split(*j.formTools, ",") {
		if s := strings.TrimSpace(t); s != "" {
			tools = append(tools, s)
		}
	}

	score, _ := strconv.Atoi(*j.formScore)

	return store.DailyRecord{
		Date:            date,
		Hours:           coerceHours(*j.formHours),
		PersonalHours:   coerceHours(*j.formPersonal),
		IdentityScore:   score,
		Reflection:      strings.TrimSpace(*j.formReflection),
		Accomplishments: accomplishments,
		Tools:           tools,
	}, nil
}

// coerceHours turns unparsable or negative input into 0 rather than
// rejecting the entry.
func coerceHours(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// --- Conflict dialog ---

func (j journalModel) updateConflict(msg tea.Msg) (journalModel, tea.Cmd) {
	c := j.conflict
	options := j.conflictOptions()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(options)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.Enter):
			j.conflict = nil
			return j, j.resolveConflict(c)
		case key.Matches(msg, keys.Back):
			j.conflict = nil
			return j, advise("Entry discarded.")
		}
	}
	return j, nil
}

func (j journalModel) conflictOptions() []string {
	c := j.conflict
	if len(c.existing) == 1 {
		return []string{
			"Replace the existing entry",
			"Keep the existing entry (discard new)",
		}
	}
	options := make([]string, len(c.existing))
	for i, r := range c.existing {
		options[i] = fmt.Sprintf("Keep %s  %.2fh  %s", r.Date, r.Hours, truncate(r.Reflection, 30))
	}
	return options
}

func (j journalModel) resolveConflict(c *conflictState) tea.Cmd {
	if len(c.existing) == 1 {
		if c.cursor == 0 {
			saved, err := j.store.ReplaceRecord(c.existing[0].ID, c.pending)
			if err != nil {
				return advise(fmt.Sprintf("Error: %v", err))
			}
			return func() tea.Msg { return recordSavedMsg{record: saved} }
		}
		return advise("Kept the existing entry.")
	}

	keep := c.existing[c.cursor]
	saved, err := j.store.ResolveDuplicates(c.pending.Date, keep.ID, c.pending)
	if err != nil {
		return advise(fmt.Sprintf("Error: %v", err))
	}
	return func() tea.Msg { return recordSavedMsg{record: saved} }
}

// --- Drop/clear confirms ---

func (j journalModel) updateConfirm(msg tea.Msg) (journalModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Enter):
		if j.confirmDrop {
			j.confirmDrop = false
			if err := j.store.RemoveLast(); err != nil {
				return j, advise(fmt.Sprintf("%v", err))
			}
			return j, tea.Batch(
				advise("Last DTR entry deleted."),
				func() tea.Msg { return refreshMsg{} },
			)
		}
		j.confirmClear = false
		if err := j.store.ClearRecords(); err != nil {
			return j, advise(fmt.Sprintf("%v", err))
		}
		return j, tea.Batch(
			advise("All DTR records cleared."),
			func() tea.Msg { return refreshMsg{} },
		)
	case key.Matches(keyMsg, keys.Back):
		j.confirmDrop = false
		j.confirmClear = false
	}
	return j, nil
}

// --- Rendering ---

func (j journalModel) view() string {
	w := j.width - 4

	if j.formActive && j.form != nil {
		title := titleStyle.Render("New DTR Entry")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", j.form.View())
		return panelStyle.Width(w).Render(content)
	}
	if j.conflict != nil {
		return j.renderConflict(w)
	}
	if j.confirmDrop {
		return j.renderConfirm(w, "Delete the most recent DTR entry?")
	}
	if j.confirmClear {
		return j.renderConfirm(w, "This will delete ALL DTR records. Continue?")
	}

	return j.renderList(w)
}

func (j journalModel) renderList(w int) string {
	title := titleStyle.Render("Journal")

	if len(j.records) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No reflections saved yet. Press n to log a day."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title+"  "+j.renderWeekCounter())
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-12s %8s %9s  %-16s %s", "", "Date", "Hours", "Delta", "Trend", "Reflection"))
	rows = append(rows, header)

	start, end := viewportBounds(j.cursor, len(j.records), j.height-12)
	for i := start; i < end; i++ {
		r := j.records[i]
		delta := metrics.Delta(r, j.cfg.DailyTarget)
		deltaStr := levelStyle(metrics.DeltaLevel(delta, j.cfg.GreatDelta)).Render(fmt.Sprintf("%9s", formatDelta(delta)))

		cursor := "  "
		style := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%-3d %-12s %8.2f %s  %-16s %s",
			cursor, i+1, r.Date, r.Hours, deltaStr,
			metrics.Trend(j.records, i, j.cfg.DailyTarget),
			truncate(r.Reflection, max(0, w-62)),
		)
		rows = append(rows, style.Render(row))
	}

	rows = append(rows, "")
	rows = append(rows, j.renderActivityStrip(w))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: drop last  D: clear all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderWeekCounter shows the latest entry's week against a full-target
// week, colored by how far along it is.
func (j journalModel) renderWeekCounter() string {
	if len(j.records) == 0 {
		return ""
	}
	last := j.records[len(j.records)-1]
	week := metrics.WeekNumber(last.Day(), j.cfg.StartDate)
	hours := metrics.WeekHours(j.records, week, j.cfg.StartDate)
	maxH := j.cfg.WeeklyMax()
	counter := levelStyle(metrics.WeekLevel(hours, maxH)).Render(fmt.Sprintf("%.1f / %.0f", hours, maxH))
	return mutedStyle.Render(fmt.Sprintf("Week %d:", week)) + " " + counter
}

// renderActivityStrip is the contribution-style row: one square per
// record, colored by its delta level.
func (j journalModel) renderActivityStrip(w int) string {
	var b strings.Builder
	b.WriteString("  ")
	perRow := max(1, (w-6)/2)
	for i, r := range j.records {
		if i > 0 && i%perRow == 0 {
			b.WriteString("\n  ")
		}
		delta := metrics.Delta(r, j.cfg.DailyTarget)
		b.WriteString(levelStyle(metrics.DeltaLevel(delta, j.cfg.GreatDelta)).Render("■ "))
	}
	return b.String()
}

func (j journalModel) renderConflict(w int) string {
	c := j.conflict
	title := titleStyle.Render(fmt.Sprintf("Duplicate date: %s", c.pending.Date))

	hint := "An entry for this date already exists."
	if len(c.existing) > 1 {
		hint = fmt.Sprintf("%d entries share this date. Pick the one to keep; the rest are dropped and the new entry is added.", len(c.existing))
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render(hint))
	rows = append(rows, "")
	for i, opt := range j.conflictOptions() {
		cursor := "  "
		style := normalItemStyle
		if i == c.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+opt))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: choose  esc: discard new entry"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (j journalModel) renderConfirm(w int, prompt string) string {
	rows := []string{
		titleStyle.Render("Confirm"),
		"",
		warningStyle.Render("  " + prompt),
		"",
		mutedStyle.Render("  enter: yes  esc: no"),
	}
	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// viewportBounds keeps the cursor visible in a list taller than the
// available rows.
func viewportBounds(cursor, total, visible int) (int, int) {
	if visible < 1 {
		visible = 1
	}
	if total <= visible {
		return 0, total
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}
