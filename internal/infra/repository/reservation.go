package repository

import (
	"context"
	"errors"
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeExclusionViolation = "23P01"

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	const query = `
		INSERT INTO reservations (id, customer_id, start_at, end_at, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	slot := res.TimeSlot()
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		res.ID(),
		res.CustomerID(),
		slot.Start(),
		slot.End(),
		slot.Duration().Minutes(),
		res.Status().String(),
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeExclusionViolation {
			return uuid.Nil, infra.WrapRepoErr("reservation overlaps an existing one", err, infra.KindConflict)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to insert reservation", err)
	}
	return id, nil
}

func (r *ReservationRepository) ActiveSlotsWithin(ctx context.Context, from, to time.Time) ([]reservation.TimeSlot, error) {
	const query = `
		SELECT start_at, duration_minutes
		FROM reservations
		WHERE status = $1 AND start_at < $2 AND end_at > $3
		ORDER BY start_at`

	rows, err := r.db.Query(ctx, query, reservation.StatusConfirmed.String(), to, from)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active slots", err)
	}
	defer rows.Close()

	var slots []reservation.TimeSlot
	for rows.Next() {
		var (
			start       time.Time
			durationMin int
		)
		if err := rows.Scan(&start, &durationMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan active slot", err)
		}

		duration, err := reservation.NewDuration(durationMin)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid duration", err)
		}
		slot, err := reservation.NewTimeSlot(start, duration)
		if err != nil {
			return nil, infra.WrapRepoErr("stored reservation has invalid slot", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read active slots", err)
	}
	return slots, nil
}

func (r *ReservationRepository) CountActiveForCustomerBetween(ctx context.Context, customerID uuid.UUID, from, to time.Time) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM reservations
		WHERE customer_id = $1 AND status = $2 AND start_at >= $3 AND start_at < $4`

	var count int
	err := r.db.QueryRow(ctx, query, customerID, reservation.StatusConfirmed.String(), from, to).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count customer reservations", err)
	}
	return count, nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE reservations
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`

	// Zero rows affected means unknown or already-canceled: a no-op, not an
	// error.
	_, err := r.db.Exec(ctx, query, reservation.StatusCanceled.String(), id, reservation.StatusConfirmed.String())
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	return nil
}
