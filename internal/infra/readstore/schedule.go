package readstore

import (
	"context"
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/usecase/queries"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

// ReservationsInRange joins reservations with their customers for schedule
// listings and exports. from and to are dates; the range is inclusive.
func (s *ScheduleReadStore) ReservationsInRange(ctx context.Context, from, to time.Time) ([]*queries.ScheduleRow, error) {
	const query = `
		SELECT r.id, c.first_name, c.last_name, r.start_at, r.end_at
		FROM reservations r
		JOIN customers c ON c.id = r.customer_id
		WHERE r.status = $1 AND r.start_at >= $2 AND r.start_at < $3
		ORDER BY r.start_at`

	rows, err := s.db.Query(ctx, query,
		reservation.StatusConfirmed.String(),
		dateutil.StartOfDay(from),
		dateutil.StartOfDay(to).AddDate(0, 0, 1),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query schedule range", err)
	}
	defer rows.Close()

	var result []*queries.ScheduleRow
	for rows.Next() {
		var row queries.ScheduleRow
		if err := rows.Scan(&row.ReservationID, &row.FirstName, &row.LastName, &row.Start, &row.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule row", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule rows", err)
	}
	return result, nil
}
