package store

import (
	"fmt"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(date string) DailyRecord {
	return DailyRecord{
		Date:            date,
		Hours:           8.5,
		PersonalHours:   1.25,
		IdentityScore:   4,
		Reflection:      "solid day,\nwith a newline",
		Accomplishments: []string{"fixed the importer", "wrote docs"},
		Tools:           []string{"Go", "sqlite"},
		Images:          []string{"shot1.png"},
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/dtr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen, should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationSeedsSettings(t *testing.T) {
	s := newTestStore(t)
	m, err := s.SettingsMap()
	if err != nil {
		t.Fatal(err)
	}
	if m["master_goal"] != "500" || m["daily_target"] != "8" {
		t.Fatalf("default settings missing: %v", m)
	}
}

// ============================================================
// Record CRUD
// ============================================================

func TestInsertAndGetRecord(t *testing.T) {
	s := newTestStore(t)
	in := sampleRecord("2026-02-03")
	saved, err := s.InsertRecord(in)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	got, err := s.GetRecord(saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Date != in.Date || got.Hours != in.Hours || got.PersonalHours != in.PersonalHours {
		t.Fatalf("numeric fields lost: %+v", got)
	}
	if got.IdentityScore != 4 {
		t.Fatalf("expected score 4, got %d", got.IdentityScore)
	}
	if got.Reflection != in.Reflection {
		t.Fatalf("reflection lost newlines: %q", got.Reflection)
	}
	if len(got.Accomplishments) != 2 || got.Accomplishments[1] != "wrote docs" {
		t.Fatalf("accomplishments lost order: %v", got.Accomplishments)
	}
	if len(got.Tools) != 2 || got.Tools[0] != "Go" {
		t.Fatalf("tools mangled: %v", got.Tools)
	}
	if len(got.Images) != 1 || got.Images[0] != "shot1.png" {
		t.Fatalf("images mangled: %v", got.Images)
	}
}

func TestInsertRecordEmptyLists(t *testing.T) {
	s := newTestStore(t)
	saved, err := s.InsertRecord(DailyRecord{Date: "2026-02-03", Hours: 2})
	if err != nil {
		t.Fatal(err)
	}
	if saved.Accomplishments != nil || saved.Tools != nil || saved.Images != nil {
		t.Fatalf("empty lists should read back nil: %+v", saved)
	}
}

func TestListRecordsOrderedByDate(t *testing.T) {
	s := newTestStore(t)
	// Insert out of order.
	for _, d := range []string{"2026-02-05", "2026-02-01", "2026-02-03"} {
		if _, err := s.InsertRecord(DailyRecord{Date: d, Hours: 1}); err != nil {
			t.Fatal(err)
		}
	}
	records, err := s.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date < records[i-1].Date {
			t.Fatalf("records out of date order: %v %v", records[i-1].Date, records[i].Date)
		}
	}
}

func TestFindByDate(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.InsertRecord(DailyRecord{Date: "2026-02-03", Hours: 1}); err != nil {
		t.Fatal(err)
	}

	got, err := s.FindByDate("2026-02-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}

	none, err := s.FindByDate("2026-02-04")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestReplaceRecordKeepsCount(t *testing.T) {
	s := newTestStore(t)
	old, err := s.InsertRecord(DailyRecord{Date: "2026-02-03", Hours: 3, Reflection: "old"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := s.ReplaceRecord(old.ID, DailyRecord{Date: "2026-02-03", Hours: 9, Reflection: "new"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ID != old.ID {
		t.Fatalf("replace must reuse the row, got id %d", updated.ID)
	}
	if updated.Hours != 9 || updated.Reflection != "new" {
		t.Fatalf("old values survived: %+v", updated)
	}

	records, err := s.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("replace must not change the count, got %d", len(records))
	}
}

func TestResolveDuplicates(t *testing.T) {
	s := newTestStore(t)
	// Three records on one date, simulating a hand-edited database.
	var ids []int64
	for i := 0; i < 3; i++ {
		r, err := s.InsertRecord(DailyRecord{Date: "2026-02-03", Hours: float64(i + 1)})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, r.ID)
	}

	saved, err := s.ResolveDuplicates("2026-02-03", ids[1], DailyRecord{Date: "2026-02-03", Hours: 7})
	if err != nil {
		t.Fatal(err)
	}
	if saved.Hours != 7 {
		t.Fatalf("new record not saved: %+v", saved)
	}

	got, err := s.FindByDate("2026-02-03")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected survivor plus new record, got %d", len(got))
	}
	hours := map[float64]bool{}
	for _, r := range got {
		hours[r.Hours] = true
	}
	if !hours[2] || !hours[7] {
		t.Fatalf("wrong survivors: %+v", got)
	}
}

func TestRemoveLast(t *testing.T) {
	s := newTestStore(t)
	for _, d := range []string{"2026-02-01", "2026-02-05", "2026-02-03"} {
		if _, err := s.InsertRecord(DailyRecord{Date: d, Hours: 1}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.RemoveLast(); err != nil {
		t.Fatal(err)
	}
	records, _ := s.ListRecords()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Latest by date goes first, regardless of insertion order.
	for _, r := range records {
		if r.Date == "2026-02-05" {
			t.Fatal("latest-dated record should have been deleted")
		}
	}
}

func TestRemoveLastEmpty(t *testing.T) {
	s := newTestStore(t)
	err := s.RemoveLast()
	if err == nil {
		t.Fatal("expected error on empty store")
	}
	if !strings.Contains(err.Error(), "no records") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearRecords(t *testing.T) {
	s := newTestStore(t)
	for i := 1; i <= 3; i++ {
		date := fmt.Sprintf("2026-02-0%d", i)
		if _, err := s.InsertRecord(DailyRecord{Date: date, Hours: 1}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.ClearRecords(); err != nil {
		t.Fatal(err)
	}
	records, err := s.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}
}

// ============================================================
// Corrupt row handling
// ============================================================

func TestScanCoercesMalformedNumerics(t *testing.T) {
	s := newTestStore(t)
	// SQLite columns are dynamically typed; plant text where numbers belong.
	_, err := s.db.Exec(
		`INSERT INTO records (date, hours, personal_hours, identity_score, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		"2026-02-03", "eight", "-2", "11", "2026-02-03T08:00:00Z",
	)
	if err != nil {
		t.Fatal(err)
	}

	records, err := s.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("corrupt row should still load, got %d records", len(records))
	}
	r := records[0]
	if r.Hours != 0 {
		t.Fatalf("non-numeric hours should coerce to 0, got %v", r.Hours)
	}
	if r.PersonalHours != 0 {
		t.Fatalf("negative personal hours should coerce to 0, got %v", r.PersonalHours)
	}
	if r.IdentityScore != 0 {
		t.Fatalf("out-of-range score should coerce to 0, got %d", r.IdentityScore)
	}
}

func TestDayParsesDate(t *testing.T) {
	r := DailyRecord{Date: "2026-02-03"}
	d := r.Day()
	if d.Year() != 2026 || d.Month() != 2 || d.Day() != 3 {
		t.Fatalf("bad parse: %v", d)
	}
	if !(DailyRecord{Date: "garbage"}).Day().IsZero() {
		t.Fatal("malformed date should yield zero time")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSetAndGetSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("daily_target", "6"); err != nil {
		t.Fatal(err)
	}
	v, err := s.GetSetting("daily_target")
	if err != nil {
		t.Fatal(err)
	}
	if v != "6" {
		t.Fatalf("expected 6, got %q", v)
	}

	// Upsert overwrites.
	if err := s.SetSetting("daily_target", "7"); err != nil {
		t.Fatal(err)
	}
	v, _ = s.GetSetting("daily_target")
	if v != "7" {
		t.Fatalf("expected 7 after upsert, got %q", v)
	}
}

func TestRemoveSetting(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("scratch", "x"); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveSetting("scratch"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetSetting("scratch"); err == nil {
		t.Fatal("expected error for removed key")
	}
}

func TestSettingsMap(t *testing.T) {
	s := newTestStore(t)
	m, err := s.SettingsMap()
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"master_goal", "daily_target", "great_delta", "start_date", "deadline"} {
		if m[key] == "" {
			t.Fatalf("seeded key %q missing", key)
		}
	}
}
