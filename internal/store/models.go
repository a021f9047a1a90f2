package store

import "time"

// DateLayout is the canonical YYYY-MM-DD form used for record dates.
const DateLayout = "2006-01-02"

// DailyRecord is one logged work day (a DTR entry).
type DailyRecord struct {
	ID              int64
	Date            string // YYYY-MM-DD
	Hours           float64
	PersonalHours   float64
	IdentityScore   int // 0-5, 0 means unrated
	Reflection      string
	Accomplishments []string
	Tools           []string
	Images          []string
	CreatedAt       time.Time
}

// Day returns the record's date at midnight UTC. A malformed date
// yields the zero time.
func (r DailyRecord) Day() time.Time {
	t, _ := time.Parse(DateLayout, r.Date)
	return t
}

type Setting struct {
	Key   string
	Value string
}
