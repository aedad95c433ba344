package commands

import (
	"context"
	"fmt"
	"time"

	"courtbook/internal/domain/customer"
	"courtbook/internal/domain/reservation"
	"courtbook/internal/infra"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// SlotConflictError is returned when the requested slot is taken. It carries
// the earliest free start after the requested slot, within the rest of the
// requested day, when one exists. A quota or lead-time rejection never
// carries a suggestion.
type SlotConflictError struct {
	SuggestedStart *time.Time
}

func (e *SlotConflictError) Error() string {
	if e.SuggestedStart != nil {
		return fmt.Sprintf("time slot taken, next available at %s", e.SuggestedStart.Format(dateutil.DateTimeLayout))
	}
	return "time slot taken"
}

func (e *SlotConflictError) Is(target error) bool {
	return target == errs.ErrReservationConflict
}

type SubmitReservationCommand struct {
	FirstName string
	LastName  string
	Start     time.Time
	Duration  reservation.Duration
}

type SubmitReservationResult struct {
	ReservationID uuid.UUID
}

type ReservationCommands interface {
	SubmitReservation(ctx context.Context, cmd SubmitReservationCommand) (*SubmitReservationResult, error)
	CancelReservation(ctx context.Context, id uuid.UUID) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		clock: clk,
		cfg:   cfg.Booking,
	}
}

// SubmitReservation runs the booking decision end to end: input validation,
// lead time, customer resolution, weekly quota, then the availability check
// and insert inside one transaction.
func (c *reservationCommandsImpl) SubmitReservation(ctx context.Context, cmd SubmitReservationCommand) (*SubmitReservationResult, error) {
	name, err := customer.NewName(cmd.FirstName, cmd.LastName)
	if err != nil {
		return nil, err
	}

	slot, err := reservation.NewTimeSlot(cmd.Start, cmd.Duration)
	if err != nil {
		return nil, err
	}

	if err := slot.ValidateLeadTimeAt(c.clock.Now(), c.cfg.LeadTimeMinutes); err != nil {
		return nil, err
	}

	var result *SubmitReservationResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		customerID, existed, err := c.resolveCustomer(ctx, tx, name)
		if err != nil {
			return err
		}

		// A customer seen for the first time cannot hold prior reservations,
		// so the quota only applies to existing ones.
		if existed {
			if err := c.checkWeeklyQuota(ctx, tx, customerID, slot.Start()); err != nil {
				return err
			}
		}

		if err := c.checkAvailability(ctx, tx, slot); err != nil {
			return err
		}

		id, err := tx.Reservations().Insert(ctx, reservation.NewReservation(customerID, slot))
		if err != nil {
			// The exclusion constraint is the backstop for races the
			// in-transaction check cannot see.
			if infra.IsKind(err, infra.KindConflict) {
				return &SlotConflictError{}
			}
			return errs.Mark(err, errs.ErrStorageFailure)
		}

		result = &SubmitReservationResult{ReservationID: id}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *reservationCommandsImpl) resolveCustomer(ctx context.Context, tx shared.Tx, name customer.Name) (uuid.UUID, bool, error) {
	existingID, err := tx.Customers().FindIDByName(ctx, name.FirstName(), name.LastName())
	if err != nil {
		return uuid.Nil, false, errs.Mark(err, errs.ErrStorageFailure)
	}
	if existingID != nil {
		return *existingID, true, nil
	}

	id, err := tx.Customers().Create(ctx, name.FirstName(), name.LastName())
	if err != nil {
		return uuid.Nil, false, errs.Mark(err, errs.ErrStorageFailure)
	}
	return id, false, nil
}

func (c *reservationCommandsImpl) checkWeeklyQuota(ctx context.Context, tx shared.Tx, customerID uuid.UUID, start time.Time) error {
	weekStart, weekEnd := dateutil.WeekBounds(start)
	count, err := tx.Reservations().CountActiveForCustomerBetween(ctx, customerID, weekStart, weekEnd)
	if err != nil {
		return errs.Mark(err, errs.ErrStorageFailure)
	}
	if count >= c.cfg.WeeklyQuota {
		return errs.ErrWeeklyQuotaExceeded
	}
	return nil
}

func (c *reservationCommandsImpl) checkAvailability(ctx context.Context, tx shared.Tx, slot reservation.TimeSlot) error {
	dayStart := dateutil.StartOfDay(slot.Start())
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := tx.Reservations().ActiveSlotsWithin(ctx, dayStart, dayEnd)
	if err != nil {
		return errs.Mark(err, errs.ErrStorageFailure)
	}

	if !reservation.HasConflict(booked, slot) {
		return nil
	}

	// The scan starts where the requested slot would have ended, so the
	// suggestion never overlaps what the caller just asked for.
	finder := reservation.NewSlotFinder(time.Duration(c.cfg.SuggestionStepMinutes) * time.Minute)
	suggested := finder.NextAvailable(booked, slot.End(), slot.Duration(), dayEnd)
	return &SlotConflictError{SuggestedStart: suggested}
}

// CancelReservation is idempotent: cancelling an unknown or already-canceled
// reservation is an ack, not an error.
func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, id uuid.UUID) error {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reservations().Cancel(ctx, id)
	})
	if err != nil {
		return errs.Mark(err, errs.ErrStorageFailure)
	}
	return nil
}
