package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Records    []jsonRecord `json:"records"`
}

type jsonRecord struct {
	Date            string   `json:"date"`
	Hours           float64  `json:"hours"`
	PersonalHours   float64  `json:"personal_hours"`
	IdentityScore   int      `json:"identity_score"`
	Reflection      string   `json:"reflection,omitempty"`
	Accomplishments []string `json:"accomplishments,omitempty"`
	Tools           []string `json:"tools,omitempty"`
	Images          []string `json:"images,omitempty"`
}

func ToJSON(records []store.DailyRecord, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(records),
	}

	for _, r := range records {
		export.Records = append(export.Records, jsonRecord{
			Date:            r.Date,
			Hours:           r.Hours,
			PersonalHours:   r.PersonalHours,
			IdentityScore:   r.IdentityScore,
			Reflection:      r.Reflection,
			Accomplishments: r.Accomplishments,
			Tools:           r.Tools,
			Images:          r.Images,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
