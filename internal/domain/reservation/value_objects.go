package reservation

import (
	"time"

	"courtbook/internal/pkg/errs"
)

// Duration is one of the bookable slot lengths, in minutes.
type Duration int

const (
	Duration30 Duration = 30
	Duration60 Duration = 60
	Duration90 Duration = 90
)

func NewDuration(minutes int) (Duration, error) {
	switch d := Duration(minutes); d {
	case Duration30, Duration60, Duration90:
		return d, nil
	default:
		return 0, errs.ErrInvalidDuration
	}
}

func (d Duration) Minutes() int { return int(d) }

func (d Duration) IsValid() bool {
	switch d {
	case Duration30, Duration60, Duration90:
		return true
	default:
		return false
	}
}

func (d Duration) AsTimeDuration() time.Duration {
	return time.Duration(d) * time.Minute
}

// TimeSlot is a half-open interval [start, end) on the court calendar.
// Half-open so that back-to-back bookings (end == next start) do not conflict.
type TimeSlot struct {
	start    time.Time
	duration Duration
}

func NewTimeSlot(start time.Time, duration Duration) (TimeSlot, error) {
	if !duration.IsValid() {
		return TimeSlot{}, errs.ErrInvalidDuration
	}
	// The calendar works at minute precision.
	start = start.Truncate(time.Minute)
	if start.IsZero() {
		return TimeSlot{}, errs.ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, duration: duration}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.start.Add(ts.duration.AsTimeDuration())
}

func (ts TimeSlot) Duration() Duration {
	return ts.duration
}

// Overlaps reports whether two half-open intervals intersect.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.End()) && other.start.Before(ts.End())
}

// MeetsLeadTimeAt reports whether the slot starts at least leadTimeMinutes
// after now. Starts in the past never meet the lead time.
func (ts TimeSlot) MeetsLeadTimeAt(now time.Time, leadTimeMinutes int) bool {
	return ts.start.Sub(now) >= time.Duration(leadTimeMinutes)*time.Minute
}

func (ts TimeSlot) ValidateLeadTimeAt(now time.Time, leadTimeMinutes int) error {
	if !ts.MeetsLeadTimeAt(now, leadTimeMinutes) {
		return errs.ErrInsufficientLeadTime
	}
	return nil
}
