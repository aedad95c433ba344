//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadStore struct {
	rows []*queries.ScheduleRow
	err  error
}

func (s *stubReadStore) ReservationsInRange(_ context.Context, _, _ time.Time) ([]*queries.ScheduleRow, error) {
	return s.rows, s.err
}

func TestScheduleList(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	t.Run("groups rows by date and skips empty dates", func(t *testing.T) {
		rows := []*queries.ScheduleRow{
			{
				ReservationID: uuid.New(),
				FirstName:     "Anna",
				LastName:      "Nowak",
				Start:         day1.Add(10 * time.Hour),
				End:           day1.Add(11 * time.Hour),
			},
			{
				ReservationID: uuid.New(),
				FirstName:     "Jan",
				LastName:      "Kowalski",
				Start:         day1.Add(14 * time.Hour),
				End:           day1.Add(14*time.Hour + 30*time.Minute),
			},
			{
				ReservationID: uuid.New(),
				FirstName:     "Anna",
				LastName:      "Nowak",
				Start:         day3.Add(9 * time.Hour),
				End:           day3.Add(10*time.Hour + 30*time.Minute),
			},
		}
		q := queries.NewScheduleQueries(&stubReadStore{rows: rows})

		days, err := q.List(ctx, day1, day3)
		require.NoError(t, err)

		require.Len(t, days, 2)
		assert.Equal(t, day1, days[0].Date)
		require.Len(t, days[0].Entries, 2)
		assert.Equal(t, "Anna Nowak", days[0].Entries[0].CustomerName)
		assert.Equal(t, "Jan Kowalski", days[0].Entries[1].CustomerName)
		assert.Equal(t, day3, days[1].Date)
		require.Len(t, days[1].Entries, 1)
	})

	t.Run("empty range yields no days", func(t *testing.T) {
		q := queries.NewScheduleQueries(&stubReadStore{})
		days, err := q.List(ctx, day1, day3)
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("reversed range is rejected before hitting the store", func(t *testing.T) {
		q := queries.NewScheduleQueries(&stubReadStore{err: errs.New("store must not be called")})
		_, err := q.List(ctx, day3, day1)
		assert.ErrorIs(t, err, errs.ErrInvalidDateRange)
	})

	t.Run("store failures are marked", func(t *testing.T) {
		q := queries.NewScheduleQueries(&stubReadStore{err: errs.New("connection lost")})
		_, err := q.List(ctx, day1, day3)
		assert.ErrorIs(t, err, errs.ErrStorageFailure)
	})
}
