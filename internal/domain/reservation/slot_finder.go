package reservation

import "time"

// DefaultSearchStep is the granularity of the forward scan for a free slot.
// The scan is deterministic and always yields the earliest qualifying start.
const DefaultSearchStep = 15 * time.Minute

// HasConflict reports whether candidate intersects any of the booked slots.
func HasConflict(booked []TimeSlot, candidate TimeSlot) bool {
	for _, b := range booked {
		if b.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// SlotFinder searches for the earliest free start time on the court.
type SlotFinder struct {
	Step time.Duration
}

func NewSlotFinder(step time.Duration) *SlotFinder {
	if step <= 0 {
		step = DefaultSearchStep
	}
	return &SlotFinder{Step: step}
}

// NextAvailable probes candidate starts at after, after+step, ... and returns
// the first one whose slot fits before until without touching a booked slot.
// Returns nil when the window holds no free slot.
func (f *SlotFinder) NextAvailable(booked []TimeSlot, after time.Time, duration Duration, until time.Time) *time.Time {
	after = after.Truncate(time.Minute)

	for probe := after; !probe.Add(duration.AsTimeDuration()).After(until); probe = probe.Add(f.Step) {
		candidate := TimeSlot{start: probe, duration: duration}
		if !HasConflict(booked, candidate) {
			start := candidate.Start()
			return &start
		}
	}
	return nil
}
