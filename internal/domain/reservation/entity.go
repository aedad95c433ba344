package reservation

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	id         uuid.UUID
	customerID uuid.UUID
	timeSlot   TimeSlot
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(customerID uuid.UUID, slot TimeSlot) *Reservation {
	return &Reservation{
		id:         uuid.New(),
		customerID: customerID,
		timeSlot:   slot,
		status:     StatusConfirmed,
	}
}

func ReconstructReservation(
	id, customerID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		customerID: customerID,
		timeSlot:   timeSlot,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCanceled() bool {
	return r.status == StatusCanceled
}

func (r *Reservation) HasExpired(now time.Time) bool {
	return now.After(r.timeSlot.End())
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) CustomerID() uuid.UUID { return r.customerID }
func (r *Reservation) TimeSlot() TimeSlot    { return r.timeSlot }
func (r *Reservation) Status() Status        { return r.status }
func (r *Reservation) CreatedAt() time.Time  { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time  { return r.updatedAt }
