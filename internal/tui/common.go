package tui

import (
	"fmt"
	"time"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewJournal
	viewTelemetry
	viewWeekly
	viewSettings
)

var viewNames = []string{"Dashboard", "Journal", "Telemetry", "Weekly", "Settings"}

// --- Messages ---

// dataMsg carries the freshly loaded record sequence and config. Every
// view derives what it shows from these two values alone; nothing is
// cached across renders.
type dataMsg struct {
	records []store.DailyRecord
	cfg     metrics.Config
}

// refreshMsg asks the app for a full reload-and-recompute pass.
type refreshMsg struct{}

type recordSavedMsg struct {
	record *store.DailyRecord
}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func formatPace(h float64) string {
	return fmt.Sprintf("%.1fh/day", h)
}

func formatDelta(d float64) string {
	return fmt.Sprintf("%+.2f", d)
}

func todayStr() string {
	return time.Now().UTC().Format(store.DateLayout)
}
