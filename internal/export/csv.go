package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Thelousyprogrammer/dtr/internal/store"
)

// ErrNoRecords is returned by every exporter when there is nothing to
// write; callers surface it as an advisory message.
var ErrNoRecords = errors.New("no records to export")

func ToCSV(records []store.DailyRecord, path string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Hours", "Personal Hours", "Identity Score", "Reflection", "Accomplishments", "Tools"}); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Date,
			fmt.Sprintf("%.2f", r.Hours),
			fmt.Sprintf("%.2f", r.PersonalHours),
			fmt.Sprintf("%d", r.IdentityScore),
			r.Reflection,
			strings.Join(r.Accomplishments, "; "),
			strings.Join(r.Tools, ", "),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
