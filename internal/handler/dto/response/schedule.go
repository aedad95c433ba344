package response

import (
	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ScheduleEntryResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Customer      string    `json:"customer"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
}

type DayScheduleResponse struct {
	Date         string                  `json:"date"`
	Reservations []ScheduleEntryResponse `json:"reservations"`
}

func FromDaySchedules(days []queries.DaySchedule) []DayScheduleResponse {
	out := make([]DayScheduleResponse, 0, len(days))
	for _, day := range days {
		entries := make([]ScheduleEntryResponse, 0, len(day.Entries))
		for _, e := range day.Entries {
			entries = append(entries, ScheduleEntryResponse{
				ReservationID: e.ReservationID,
				Customer:      e.CustomerName,
				Start:         e.Start.Format(dateutil.DateTimeLayout),
				End:           e.End.Format(dateutil.DateTimeLayout),
			})
		}
		out = append(out, DayScheduleResponse{
			Date:         day.Date.Format(dateutil.DateLayout),
			Reservations: entries,
		})
	}
	return out
}
