package request

import (
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/usecase/commands"
)

type SubmitReservationRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Date            string `json:"date" binding:"required"`             // "2006-01-02"
	Time            string `json:"time" binding:"required"`             // "15:04"
	DurationMinutes int    `json:"duration_minutes" binding:"required"` // 30, 60 or 90
}

// ToCommand parses the wire format into a submit command. Date and time are
// local, minute precision, no offset.
func (r SubmitReservationRequest) ToCommand() (commands.SubmitReservationCommand, error) {
	start, err := time.ParseInLocation(dateutil.DateTimeLayout, r.Date+" "+r.Time, time.Local)
	if err != nil {
		return commands.SubmitReservationCommand{}, err
	}

	duration, err := reservation.NewDuration(r.DurationMinutes)
	if err != nil {
		return commands.SubmitReservationCommand{}, err
	}

	return commands.SubmitReservationCommand{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Start:     start,
		Duration:  duration,
	}, nil
}
