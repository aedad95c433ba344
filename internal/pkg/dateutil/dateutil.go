package dateutil

import (
	"time"

	"courtbook/internal/pkg/errs"
)

// Layouts for the local, minute-precision wire format used everywhere.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

// DatesBetween returns every calendar date from from to to inclusive,
// ascending. Time-of-day components of the arguments are ignored.
func DatesBetween(from, to time.Time) ([]time.Time, error) {
	start := StartOfDay(from)
	end := StartOfDay(to)
	if start.After(end) {
		return nil, errs.ErrInvalidDateRange
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekBounds returns the ISO week containing t as the half-open interval
// [monday 00:00, next monday 00:00).
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := StartOfDay(t)
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}
