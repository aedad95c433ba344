package queries

import (
	"context"
	"time"

	"courtbook/internal/pkg/dateutil"
	"courtbook/internal/pkg/errs"

	"github.com/google/uuid"
)

// ScheduleRow is the raw read-model row: one reservation joined with its
// customer's name.
type ScheduleRow struct {
	ReservationID uuid.UUID
	FirstName     string
	LastName      string
	Start         time.Time
	End           time.Time
}

type ScheduleEntry struct {
	ReservationID uuid.UUID
	CustomerName  string
	Start         time.Time
	End           time.Time
}

// DaySchedule groups the entries of one calendar date. Dates without
// reservations are omitted from listings.
type DaySchedule struct {
	Date    time.Time
	Entries []ScheduleEntry
}

type ScheduleReadStore interface {
	// ReservationsInRange returns confirmed reservations starting on any date
	// from from to to inclusive, ordered by start time.
	ReservationsInRange(ctx context.Context, from, to time.Time) ([]*ScheduleRow, error)
}

type ScheduleQueries interface {
	List(ctx context.Context, from, to time.Time) ([]DaySchedule, error)
}

type scheduleQueriesImpl struct {
	store ScheduleReadStore
}

func NewScheduleQueries(store ScheduleReadStore) ScheduleQueries {
	return &scheduleQueriesImpl{store: store}
}

func (q *scheduleQueriesImpl) List(ctx context.Context, from, to time.Time) ([]DaySchedule, error) {
	if _, err := dateutil.DatesBetween(from, to); err != nil {
		return nil, err
	}

	rows, err := q.store.ReservationsInRange(ctx, from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	return groupByDate(rows), nil
}

func groupByDate(rows []*ScheduleRow) []DaySchedule {
	var days []DaySchedule
	for _, row := range rows {
		date := dateutil.StartOfDay(row.Start)
		entry := ScheduleEntry{
			ReservationID: row.ReservationID,
			CustomerName:  row.FirstName + " " + row.LastName,
			Start:         row.Start,
			End:           row.End,
		}

		if n := len(days); n > 0 && days[n-1].Date.Equal(date) {
			days[n-1].Entries = append(days[n-1].Entries, entry)
			continue
		}
		days = append(days, DaySchedule{Date: date, Entries: []ScheduleEntry{entry}})
	}
	return days
}
