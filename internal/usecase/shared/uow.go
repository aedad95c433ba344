package shared

import (
	"context"
	"time"

	"courtbook/internal/domain/reservation"

	"github.com/google/uuid"
)

// UnitOfWork scopes a booking decision to one transaction. The availability
// check and the insert are a check-then-act pair and must share this scope.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Customers() CustomerRepository
	Reservations() ReservationRepository
}

// CustomerRepository is the two-step directory capability: lookup and create
// are separate so the engine can distinguish existing from new customers.
type CustomerRepository interface {
	// FindIDByName returns nil (no error) when the identity pair is unseen.
	FindIDByName(ctx context.Context, firstName, lastName string) (*uuid.UUID, error)
	Create(ctx context.Context, firstName, lastName string) (uuid.UUID, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	// ActiveSlotsWithin returns confirmed slots intersecting [from, to),
	// ordered by start time.
	ActiveSlotsWithin(ctx context.Context, from, to time.Time) ([]reservation.TimeSlot, error)
	// CountActiveForCustomerBetween counts confirmed reservations for the
	// customer whose start lies in [from, to).
	CountActiveForCustomerBetween(ctx context.Context, customerID uuid.UUID, from, to time.Time) (int, error)
	// Cancel marks the reservation canceled. Unknown or already-canceled ids
	// are a no-op.
	Cancel(ctx context.Context, id uuid.UUID) error
}
