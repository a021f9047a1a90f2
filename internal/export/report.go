package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

const (
	reportWidth = 80
	pageLines   = 44
)

// reportWriter accumulates lines and inserts a form feed at page
// boundaries, mirroring the paginated document the web version printed.
type reportWriter struct {
	lines []string
	page  int
}

func (w *reportWriter) line(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
	w.page++
	if w.page >= pageLines {
		w.lines = append(w.lines, "\f")
		w.page = 0
	}
}

func (w *reportWriter) blank() { w.line("") }

func (w *reportWriter) save(path string) error {
	data := strings.Join(w.lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// DailyReport writes every record as a dated block: hours, signed delta,
// wrapped reflection, accomplishments, and tools.
func DailyReport(records []store.DailyRecord, cfg metrics.Config, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	w := &reportWriter{}
	w.line("%s", center("Daily DTR Report"))
	w.blank()

	for _, r := range records {
		delta := metrics.Delta(r, cfg.DailyTarget)
		w.line("Date: %s", r.Date)
		w.line("Hours Worked: %.2f", r.Hours)
		w.line("Delta: %+.2f hours", delta)

		if r.Reflection != "" {
			w.line("Reflection:")
			for _, l := range wrap(r.Reflection, reportWidth-2) {
				w.line("  %s", l)
			}
		}

		if len(r.Accomplishments) > 0 {
			w.line("Accomplishments:")
			for _, a := range r.Accomplishments {
				for j, l := range wrap(a, reportWidth-4) {
					if j == 0 {
						w.line("  - %s", l)
					} else {
						w.line("    %s", l)
					}
				}
			}
		}

		if len(r.Tools) > 0 {
			w.line("Tools Used: %s", strings.Join(r.Tools, ", "))
		}
		w.blank()
	}

	return w.save(path)
}

// WeeklyReport writes the compiled weekly summaries: totals, every
// accomplishment with the day it was logged, and the week's tool union.
func WeeklyReport(weeks []metrics.WeeklySummary, path string) error {
	if len(weeks) == 0 {
		return ErrNoRecords
	}

	w := &reportWriter{}
	w.line("%s", center("Weekly DTR Report"))
	w.blank()

	for _, wk := range weeks {
		w.line("Week %d | Total Hours: %.2f", wk.Week, wk.TotalHours)
		if len(wk.Accomplishments) > 0 {
			w.line("Accomplishments:")
			for _, a := range wk.Accomplishments {
				for j, l := range wrap(a.Text, reportWidth-16) {
					if j == 0 {
						w.line("  %s  - %s", a.Date, l)
					} else {
						w.line("              %s", l)
					}
				}
			}
		}
		if len(wk.Tools) > 0 {
			w.line("Tools Used: %s", strings.Join(wk.Tools, ", "))
		}
		w.blank()
	}

	return w.save(path)
}

func center(s string) string {
	pad := (reportWidth - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// wrap breaks text on word boundaries at the given width. Words longer
// than the width land on their own line untouched.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if len(cur)+1+len(word) > width {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur += " " + word
	}
	return append(lines, cur)
}
