package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Storage forms for list-valued fields: accomplishments and images keep
// their order newline-joined, tools stay comma-joined exactly as typed,
// duplicates included.

func joinLines(items []string) string { return strings.Join(items, "\n") }
func joinComma(items []string) string { return strings.Join(items, ",") }

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func splitComma(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// InsertRecord appends a record. Duplicate-date handling is the caller's
// concern: check FindByDate first and route through ReplaceRecord or
// ResolveDuplicates when the date is already taken.
func (s *Store) InsertRecord(r DailyRecord) (*DailyRecord, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO records (date, hours, personal_hours, identity_score, reflection, accomplishments, tools, images, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Date, r.Hours, r.PersonalHours, r.IdentityScore, r.Reflection,
		joinLines(r.Accomplishments), joinComma(r.Tools), joinLines(r.Images), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetRecord(id)
}

// ReplaceRecord overwrites the record with the given id. This is the
// "replace" arm of the duplicate-date conflict flow.
func (s *Store) ReplaceRecord(id int64, r DailyRecord) (*DailyRecord, error) {
	_, err := s.db.Exec(
		`UPDATE records SET date = ?, hours = ?, personal_hours = ?, identity_score = ?,
		 reflection = ?, accomplishments = ?, tools = ?, images = ? WHERE id = ?`,
		r.Date, r.Hours, r.PersonalHours, r.IdentityScore, r.Reflection,
		joinLines(r.Accomplishments), joinComma(r.Tools), joinLines(r.Images), id,
	)
	if err != nil {
		return nil, fmt.Errorf("replace record %d: %w", id, err)
	}
	return s.GetRecord(id)
}

// ResolveDuplicates handles the corrupt pre-existing state where several
// records share one date: every record at date except keepID is dropped,
// then the new record is inserted. The date-ordered read path normalizes
// ordering.
func (s *Store) ResolveDuplicates(date string, keepID int64, r DailyRecord) (*DailyRecord, error) {
	_, err := s.db.Exec(`DELETE FROM records WHERE date = ? AND id != ?`, date, keepID)
	if err != nil {
		return nil, fmt.Errorf("resolve duplicates for %s: %w", date, err)
	}
	return s.InsertRecord(r)
}

func (s *Store) GetRecord(id int64) (*DailyRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, date, hours, personal_hours, identity_score, reflection, accomplishments, tools, images, created_at
		 FROM records WHERE id = ?`, id,
	)
	r, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	return r, nil
}

// FindByDate returns every record logged for a date: zero, one, or — in
// the corrupt pre-existing state — several.
func (s *Store) FindByDate(date string) ([]DailyRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date, hours, personal_hours, identity_score, reflection, accomplishments, tools, images, created_at
		 FROM records WHERE date = ? ORDER BY id`, date,
	)
	if err != nil {
		return nil, fmt.Errorf("find by date %s: %w", date, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListRecords returns the full sequence ordered by date ascending. Rows
// that fail to scan are skipped rather than failing the whole load.
func (s *Store) ListRecords() ([]DailyRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, date, hours, personal_hours, identity_score, reflection, accomplishments, tools, images, created_at
		 FROM records ORDER BY date, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// RemoveLast deletes the most recent record (latest date, then latest id).
func (s *Store) RemoveLast() error {
	res, err := s.db.Exec(
		`DELETE FROM records WHERE id = (SELECT id FROM records ORDER BY date DESC, id DESC LIMIT 1)`,
	)
	if err != nil {
		return fmt.Errorf("remove last record: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no records to delete")
	}
	return nil
}

// ClearRecords deletes the entire sequence.
func (s *Store) ClearRecords() error {
	_, err := s.db.Exec(`DELETE FROM records`)
	if err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row, coercing malformed numeric fields to 0 and
// clamping the identity score into [0,5]. SQLite columns are dynamically
// typed, so a hand-edited database can hold text where a number belongs;
// those values degrade to 0 instead of failing the load.
func scanRecord(row rowScanner) (*DailyRecord, error) {
	var r DailyRecord
	var hours, personal, identity, createdAt string
	var accomplishments, tools, images string

	err := row.Scan(&r.ID, &r.Date, &hours, &personal, &identity,
		&r.Reflection, &accomplishments, &tools, &images, &createdAt)
	if err != nil {
		return nil, err
	}

	r.Hours = parseHours(hours)
	r.PersonalHours = parseHours(personal)
	r.IdentityScore = parseScore(identity)
	r.Accomplishments = splitLines(accomplishments)
	r.Tools = splitComma(tools)
	r.Images = splitLines(images)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

func collectRecords(rows *sql.Rows) ([]DailyRecord, error) {
	var records []DailyRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			continue
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func parseHours(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseScore(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 5 {
		return 0
	}
	return v
}
