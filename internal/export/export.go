// Package export serializes a date-range view of the schedule to flat (CSV)
// or structured (JSON) form. Both are pure projections; sink write errors are
// returned to the caller, never retried.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/usecase/queries"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatJSON
}

func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

func (f Format) FileName() string {
	if f == FormatJSON {
		return "schedule.json"
	}
	return "schedule.csv"
}

// WriteCSV writes one row per reservation, ordered by date then start time.
func WriteCSV(w io.Writer, days []queries.DaySchedule) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"customer", "start", "end"}); err != nil {
		return err
	}
	for _, day := range days {
		for _, e := range day.Entries {
			record := []string{
				e.CustomerName,
				e.Start.Format(dateutil.DateTimeLayout),
				e.End.Format(dateutil.DateTimeLayout),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonEntry struct {
	Customer string `json:"customer"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

type jsonDay struct {
	Date         string      `json:"date"`
	Reservations []jsonEntry `json:"reservations"`
}

// WriteJSON writes the same data nested by date.
func WriteJSON(w io.Writer, days []queries.DaySchedule) error {
	out := make([]jsonDay, 0, len(days))
	for _, day := range days {
		entries := make([]jsonEntry, 0, len(day.Entries))
		for _, e := range day.Entries {
			entries = append(entries, jsonEntry{
				Customer: e.CustomerName,
				Start:    e.Start.Format(dateutil.DateTimeLayout),
				End:      e.End.Format(dateutil.DateTimeLayout),
			})
		}
		out = append(out, jsonDay{
			Date:         day.Date.Format(dateutil.DateLayout),
			Reservations: entries,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
