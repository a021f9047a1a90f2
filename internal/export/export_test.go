package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Thelousyprogrammer/dtr/internal/metrics"
	"github.com/Thelousyprogrammer/dtr/internal/store"
)

func sampleRecords() []store.DailyRecord {
	return []store.DailyRecord{
		{
			Date:            "2026-01-26",
			Hours:           8.5,
			PersonalHours:   1,
			IdentityScore:   4,
			Reflection:      "First day, got the environment running.",
			Accomplishments: []string{"set up toolchain", "read the codebase"},
			Tools:           []string{"Go", "git"},
		},
		{
			Date:  "2026-01-27",
			Hours: 6,
		},
	}
}

// ============================================================
// CSV export
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleRecords(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][5] != "Accomplishments" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2026-01-26" || rows[1][1] != "8.50" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[1][5] != "set up toolchain; read the codebase" {
		t.Fatalf("accomplishments not joined: %q", rows[1][5])
	}
	if rows[1][6] != "Go, git" {
		t.Fatalf("tools not joined: %q", rows[1][6])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(nil, path); err != ErrNoRecords {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no file should be created for an empty export")
	}
}

// ============================================================
// JSON export
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleRecords(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Records    []struct {
			Date            string   `json:"date"`
			Hours           float64  `json:"hours"`
			PersonalHours   float64  `json:"personal_hours"`
			IdentityScore   int      `json:"identity_score"`
			Reflection      string   `json:"reflection"`
			Accomplishments []string `json:"accomplishments"`
			Tools           []string `json:"tools"`
		} `json:"records"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Records) != 2 {
		t.Fatalf("expected 2 records, got count=%d len=%d", out.Count, len(out.Records))
	}
	if out.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	r := out.Records[0]
	if r.Date != "2026-01-26" || r.Hours != 8.5 || r.PersonalHours != 1 || r.IdentityScore != 4 {
		t.Fatalf("record fields lost: %+v", r)
	}
	if len(r.Accomplishments) != 2 || len(r.Tools) != 2 {
		t.Fatalf("list fields lost: %+v", r)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(nil, path); err != ErrNoRecords {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

// ============================================================
// Text reports
// ============================================================

func TestDailyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.txt")
	if err := DailyReport(sampleRecords(), metrics.DefaultConfig(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if !strings.Contains(text, "Daily DTR Report") {
		t.Fatal("title missing")
	}
	if !strings.Contains(text, "Date: 2026-01-26") {
		t.Fatal("first record missing")
	}
	if !strings.Contains(text, "Delta: +0.50 hours") {
		t.Fatal("signed delta missing for the 8.5h day")
	}
	if !strings.Contains(text, "Delta: -2.00 hours") {
		t.Fatal("signed delta missing for the 6h day")
	}
	if !strings.Contains(text, "  - set up toolchain") {
		t.Fatal("accomplishments missing")
	}
	if !strings.Contains(text, "Tools Used: Go, git") {
		t.Fatal("tools line missing")
	}
}

func TestDailyReportPaginates(t *testing.T) {
	var records []store.DailyRecord
	for i := 0; i < 40; i++ {
		records = append(records, store.DailyRecord{Date: "2026-01-26", Hours: 8})
	}
	path := filepath.Join(t.TempDir(), "daily.txt")
	if err := DailyReport(records, metrics.DefaultConfig(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\f") {
		t.Fatal("long report should contain page breaks")
	}
}

func TestWeeklyReport(t *testing.T) {
	weeks := []metrics.WeeklySummary{
		{
			Week:       1,
			TotalHours: 42.5,
			Accomplishments: []metrics.DatedNote{
				{Date: "2026-01-26", Text: "shipped the importer"},
			},
			Tools: []string{"Go", "make"},
		},
	}
	path := filepath.Join(t.TempDir(), "weekly.txt")
	if err := WeeklyReport(weeks, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "Week 1 | Total Hours: 42.50") {
		t.Fatal("week header missing")
	}
	if !strings.Contains(text, "2026-01-26  - shipped the importer") {
		t.Fatal("dated accomplishment missing")
	}
	if !strings.Contains(text, "Tools Used: Go, make") {
		t.Fatal("tool union missing")
	}
}

func TestWeeklyReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weekly.txt")
	if err := WeeklyReport(nil, path); err != ErrNoRecords {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

// ============================================================
// Word wrapping
// ============================================================

func TestWrap(t *testing.T) {
	lines := wrap("one two three four", 10)
	if len(lines) != 2 || lines[0] != "one two" || lines[1] != "three four" {
		t.Fatalf("unexpected wrap: %v", lines)
	}
	if wrap("", 10) != nil {
		t.Fatal("empty text should wrap to nil")
	}
	long := wrap("supercalifragilistic", 5)
	if len(long) != 1 || long[0] != "supercalifragilistic" {
		t.Fatalf("overlong word should stay on its own line: %v", long)
	}
}
