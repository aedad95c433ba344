package response

import (
	"time"

	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubmitReservationResponse struct {
	ReservationID uuid.UUID `json:"reservation_id"`
}

func FromSubmitResult(result *commands.SubmitReservationResult) *SubmitReservationResponse {
	return &SubmitReservationResponse{
		ReservationID: result.ReservationID,
	}
}

// ConflictResponse carries the optional alternative-slot suggestion alongside
// the rejection.
type ConflictResponse struct {
	Error          string  `json:"error"`
	SuggestedStart *string `json:"suggested_start,omitempty"`
}

func NewConflictResponse(suggested *time.Time) *ConflictResponse {
	resp := &ConflictResponse{Error: "Time slot is not available"}
	if suggested != nil {
		s := suggested.Format(dateutil.DateTimeLayout)
		resp.SuggestedStart = &s
	}
	return resp
}
