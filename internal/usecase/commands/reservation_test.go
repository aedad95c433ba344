//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"courtbook/internal/domain/reservation"
	"courtbook/internal/pkg/clock"
	"courtbook/internal/pkg/config"
	"courtbook/internal/pkg/errs"
	"courtbook/internal/usecase/commands"
	"courtbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stand-in for the transactional store. Within runs the function
// directly against shared state, which is exactly what a single-threaded unit
// test needs.
type fakeStore struct {
	customers    map[string]uuid.UUID
	reservations map[uuid.UUID]*storedReservation
}

type storedReservation struct {
	customerID uuid.UUID
	slot       reservation.TimeSlot
	status     reservation.Status
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:    make(map[string]uuid.UUID),
		reservations: make(map[uuid.UUID]*storedReservation),
	}
}

func (s *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: s})
}

func (s *fakeStore) addCustomer(firstName, lastName string) uuid.UUID {
	id := uuid.New()
	s.customers[firstName+"\x00"+lastName] = id
	return id
}

func (s *fakeStore) addReservation(customerID uuid.UUID, slot reservation.TimeSlot) uuid.UUID {
	id := uuid.New()
	s.reservations[id] = &storedReservation{
		customerID: customerID,
		slot:       slot,
		status:     reservation.StatusConfirmed,
	}
	return id
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Customers() shared.CustomerRepository       { return (*fakeCustomerRepo)(t) }
func (t *fakeTx) Reservations() shared.ReservationRepository { return (*fakeReservationRepo)(t) }

type fakeCustomerRepo fakeTx

func (r *fakeCustomerRepo) FindIDByName(_ context.Context, firstName, lastName string) (*uuid.UUID, error) {
	if id, ok := r.store.customers[firstName+"\x00"+lastName]; ok {
		return &id, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, firstName, lastName string) (uuid.UUID, error) {
	id := uuid.New()
	r.store.customers[firstName+"\x00"+lastName] = id
	return id, nil
}

type fakeReservationRepo fakeTx

func (r *fakeReservationRepo) Insert(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	r.store.reservations[res.ID()] = &storedReservation{
		customerID: res.CustomerID(),
		slot:       res.TimeSlot(),
		status:     res.Status(),
	}
	return res.ID(), nil
}

func (r *fakeReservationRepo) ActiveSlotsWithin(_ context.Context, from, to time.Time) ([]reservation.TimeSlot, error) {
	var slots []reservation.TimeSlot
	for _, sr := range r.store.reservations {
		if sr.status != reservation.StatusConfirmed {
			continue
		}
		if sr.slot.Start().Before(to) && sr.slot.End().After(from) {
			slots = append(slots, sr.slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start().Before(slots[j].Start()) })
	return slots, nil
}

func (r *fakeReservationRepo) CountActiveForCustomerBetween(_ context.Context, customerID uuid.UUID, from, to time.Time) (int, error) {
	count := 0
	for _, sr := range r.store.reservations {
		if sr.customerID != customerID || sr.status != reservation.StatusConfirmed {
			continue
		}
		if !sr.slot.Start().Before(from) && sr.slot.Start().Before(to) {
			count++
		}
	}
	return count, nil
}

func (r *fakeReservationRepo) Cancel(_ context.Context, id uuid.UUID) error {
	if sr, ok := r.store.reservations[id]; ok && sr.status == reservation.StatusConfirmed {
		sr.status = reservation.StatusCanceled
	}
	return nil
}

func newCommands(store *fakeStore, now time.Time) commands.ReservationCommands {
	return commands.NewReservationCommands(store, clock.NewMockClock(now), config.NewTestConfig())
}

func mustDuration(t *testing.T, minutes int) reservation.Duration {
	t.Helper()
	d, err := reservation.NewDuration(minutes)
	require.NoError(t, err)
	return d
}

func mustSlot(t *testing.T, start time.Time, minutes int) reservation.TimeSlot {
	t.Helper()
	slot, err := reservation.NewTimeSlot(start, mustDuration(t, minutes))
	require.NoError(t, err)
	return slot
}

func submitCmd(t *testing.T, start time.Time, minutes int) commands.SubmitReservationCommand {
	t.Helper()
	return commands.SubmitReservationCommand{
		FirstName: "Anna",
		LastName:  "Nowak",
		Start:     start,
		Duration:  mustDuration(t, minutes),
	}
}

func TestSubmitReservation(t *testing.T) {
	ctx := context.Background()
	// 2025-06-02 is a Monday
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	morning := day.Add(8 * time.Hour)

	t.Run("books a free slot for a new customer", func(t *testing.T) {
		store := newFakeStore()
		uc := newCommands(store, morning)

		result, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(10*time.Hour), 60))
		require.NoError(t, err)
		require.NotNil(t, result)

		sr, ok := store.reservations[result.ReservationID]
		require.True(t, ok)
		assert.Equal(t, reservation.StatusConfirmed, sr.status)
		assert.Equal(t, day.Add(10*time.Hour), sr.slot.Start())
		assert.Equal(t, day.Add(11*time.Hour), sr.slot.End())
		assert.Len(t, store.customers, 1)
	})

	t.Run("reuses the existing customer identity", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("Anna", "Nowak")
		uc := newCommands(store, morning)

		result, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(10*time.Hour), 60))
		require.NoError(t, err)

		assert.Len(t, store.customers, 1)
		assert.Equal(t, customerID, store.reservations[result.ReservationID].customerID)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		store := newFakeStore()
		uc := newCommands(store, morning)

		cmd := submitCmd(t, day.Add(10*time.Hour), 60)
		cmd.FirstName = "   "
		_, err := uc.SubmitReservation(ctx, cmd)
		assert.ErrorIs(t, err, errs.ErrEmptyCustomerName)
		assert.Empty(t, store.reservations)
	})

	t.Run("lead time boundary", func(t *testing.T) {
		start := day.Add(10 * time.Hour)

		t.Run("exactly one hour ahead passes", func(t *testing.T) {
			store := newFakeStore()
			uc := newCommands(store, start.Add(-time.Hour))
			_, err := uc.SubmitReservation(ctx, submitCmd(t, start, 60))
			assert.NoError(t, err)
		})

		t.Run("half an hour ahead is rejected", func(t *testing.T) {
			store := newFakeStore()
			uc := newCommands(store, start.Add(-30*time.Minute))
			_, err := uc.SubmitReservation(ctx, submitCmd(t, start, 60))
			assert.ErrorIs(t, err, errs.ErrInsufficientLeadTime)
		})

		t.Run("start in the past is rejected", func(t *testing.T) {
			store := newFakeStore()
			uc := newCommands(store, start.Add(time.Hour))
			_, err := uc.SubmitReservation(ctx, submitCmd(t, start, 60))
			assert.ErrorIs(t, err, errs.ErrInsufficientLeadTime)
		})
	})

	t.Run("conflicting slot returns a suggestion", func(t *testing.T) {
		store := newFakeStore()
		other := store.addCustomer("Jan", "Kowalski")
		store.addReservation(other, mustSlot(t, day.Add(10*time.Hour), 60))
		uc := newCommands(store, morning)

		_, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(10*time.Hour), 60))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrReservationConflict)

		var conflictErr *commands.SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.NotNil(t, conflictErr.SuggestedStart)
		assert.Equal(t, day.Add(11*time.Hour), *conflictErr.SuggestedStart)
	})

	t.Run("no suggestion when the rest of the day cannot fit the slot", func(t *testing.T) {
		store := newFakeStore()
		other := store.addCustomer("Jan", "Kowalski")
		store.addReservation(other, mustSlot(t, day.Add(23*time.Hour), 60))
		uc := newCommands(store, day.Add(20*time.Hour))

		_, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(23*time.Hour), 90))
		require.Error(t, err)

		var conflictErr *commands.SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Nil(t, conflictErr.SuggestedStart)
	})

	t.Run("back to back bookings do not conflict", func(t *testing.T) {
		store := newFakeStore()
		other := store.addCustomer("Jan", "Kowalski")
		store.addReservation(other, mustSlot(t, day.Add(10*time.Hour), 60))
		uc := newCommands(store, morning)

		_, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(11*time.Hour), 60))
		assert.NoError(t, err)
	})

	t.Run("weekly quota", func(t *testing.T) {
		t.Run("third booking in the same week is rejected", func(t *testing.T) {
			store := newFakeStore()
			customerID := store.addCustomer("Anna", "Nowak")
			store.addReservation(customerID, mustSlot(t, day.Add(10*time.Hour), 60))
			store.addReservation(customerID, mustSlot(t, day.AddDate(0, 0, 1).Add(10*time.Hour), 60))
			uc := newCommands(store, morning)

			_, err := uc.SubmitReservation(ctx, submitCmd(t, day.AddDate(0, 0, 2).Add(10*time.Hour), 60))
			assert.ErrorIs(t, err, errs.ErrWeeklyQuotaExceeded)
		})

		t.Run("quota resets in the next week", func(t *testing.T) {
			store := newFakeStore()
			customerID := store.addCustomer("Anna", "Nowak")
			store.addReservation(customerID, mustSlot(t, day.Add(10*time.Hour), 60))
			store.addReservation(customerID, mustSlot(t, day.AddDate(0, 0, 1).Add(10*time.Hour), 60))
			uc := newCommands(store, morning)

			_, err := uc.SubmitReservation(ctx, submitCmd(t, day.AddDate(0, 0, 7).Add(10*time.Hour), 60))
			assert.NoError(t, err)
		})

		t.Run("canceled reservations do not count", func(t *testing.T) {
			store := newFakeStore()
			customerID := store.addCustomer("Anna", "Nowak")
			store.addReservation(customerID, mustSlot(t, day.Add(10*time.Hour), 60))
			id := store.addReservation(customerID, mustSlot(t, day.AddDate(0, 0, 1).Add(10*time.Hour), 60))
			store.reservations[id].status = reservation.StatusCanceled
			uc := newCommands(store, morning)

			_, err := uc.SubmitReservation(ctx, submitCmd(t, day.AddDate(0, 0, 2).Add(10*time.Hour), 60))
			assert.NoError(t, err)
		})

		t.Run("other customers are unaffected", func(t *testing.T) {
			store := newFakeStore()
			other := store.addCustomer("Jan", "Kowalski")
			store.addReservation(other, mustSlot(t, day.Add(8*time.Hour), 30))
			store.addReservation(other, mustSlot(t, day.Add(9*time.Hour), 30))
			uc := newCommands(store, morning)

			_, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(10*time.Hour), 60))
			assert.NoError(t, err)
		})
	})
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("cancels a confirmed reservation", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("Anna", "Nowak")
		id := store.addReservation(customerID, mustSlot(t, day.Add(10*time.Hour), 60))
		uc := newCommands(store, day)

		require.NoError(t, uc.CancelReservation(ctx, id))
		assert.Equal(t, reservation.StatusCanceled, store.reservations[id].status)
	})

	t.Run("canceled slot becomes bookable again", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("Jan", "Kowalski")
		id := store.addReservation(customerID, mustSlot(t, day.Add(10*time.Hour), 60))
		uc := newCommands(store, day.Add(8*time.Hour))

		require.NoError(t, uc.CancelReservation(ctx, id))

		_, err := uc.SubmitReservation(ctx, submitCmd(t, day.Add(10*time.Hour), 60))
		assert.NoError(t, err)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store := newFakeStore()
		uc := newCommands(store, day)
		assert.NoError(t, uc.CancelReservation(ctx, uuid.New()))
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		store := newFakeStore()
		customerID := store.addCustomer("Anna", "Nowak")
		id := store.addReservation(customerID, mustSlot(t, day.Add(10*time.Hour), 60))
		uc := newCommands(store, day)

		require.NoError(t, uc.CancelReservation(ctx, id))
		require.NoError(t, uc.CancelReservation(ctx, id))
		assert.Equal(t, reservation.StatusCanceled, store.reservations[id].status)
	})
}

func TestSlotConflictError(t *testing.T) {
	start := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)

	withSuggestion := &commands.SlotConflictError{SuggestedStart: &start}
	assert.True(t, errors.Is(withSuggestion, errs.ErrReservationConflict))
	assert.Contains(t, withSuggestion.Error(), "2025-06-02 11:00")

	withoutSuggestion := &commands.SlotConflictError{}
	assert.True(t, errors.Is(withoutSuggestion, errs.ErrReservationConflict))
	assert.Equal(t, "time slot taken", withoutSuggestion.Error())
}
