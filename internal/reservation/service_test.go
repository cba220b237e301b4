package reservation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// fakeStore is an in-memory Store.  Its CreateReservation holds the
// same contract as the MySQL implementation: overlap checks and the
// insert happen under one lock, and a losing writer gets ErrConflict.
type fakeStore struct {
	mu           sync.Mutex
	tables       []model.Table
	reservations []model.Reservation
	nextID       uint64
}

func newFakeStore(tables ...model.Table) *fakeStore {
	return &fakeStore{tables: tables}
}

func (f *fakeStore) ListActiveTables(ctx context.Context) ([]model.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Table, 0, len(f.tables))
	for _, t := range f.tables {
		if t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

func (f *fakeStore) GetTable(ctx context.Context, id uint64) (model.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tables {
		if t.ID == id && t.IsActive {
			return t, nil
		}
	}
	return model.Table{}, repository.ErrTableNotFound
}

func (f *fakeStore) ActiveReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.TableID == tableID && r.Date == date && !model.IsTerminalStatus(r.Status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveReservationsForDate(ctx context.Context, date string) ([]model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Reservation
	for _, r := range f.reservations {
		if r.Date == date && !model.IsTerminalStatus(r.Status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateReservation(ctx context.Context, res *model.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ns, err := clock.ToMinutes(res.StartTime)
	if err != nil {
		return err
	}
	ne, err := clock.EndToMinutes(res.EndTime)
	if err != nil {
		return err
	}
	for _, r := range f.reservations {
		if r.TableID != res.TableID || r.Date != res.Date || model.IsTerminalStatus(r.Status) {
			continue
		}
		rs, _ := clock.ToMinutes(r.StartTime)
		re, _ := clock.EndToMinutes(r.EndTime)
		if clock.IntervalsOverlap(ns, ne, rs, re) {
			return repository.ErrConflict
		}
	}
	f.nextID++
	res.ID = f.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.reservations = append(f.reservations, *res)
	return nil
}

func (f *fakeStore) GetReservation(ctx context.Context, id uint64) (model.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID != id {
			continue
		}
		det := model.ReservationDetail{Reservation: r}
		for _, t := range f.tables {
			if t.ID == r.TableID {
				det.TableNumber = t.Number
				det.TableName = t.Name
				det.TableCapacity = t.Capacity
			}
		}
		return det, nil
	}
	return model.ReservationDetail{}, repository.ErrReservationNotFound
}

func (f *fakeStore) ListReservationsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReservationDetail
	for _, r := range f.reservations {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, model.ReservationDetail{Reservation: r})
		}
	}
	return out, nil
}

func (f *fakeStore) ListReservationsByDate(ctx context.Context, date string) ([]model.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ReservationDetail
	for _, r := range f.reservations {
		if r.Date == date {
			out = append(out, model.ReservationDetail{Reservation: r})
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations[i].Status = status
			return nil
		}
	}
	return repository.ErrReservationNotFound
}

func (f *fakeStore) UpdateReservationContact(ctx context.Context, id uint64, name, email, phone, specialRequests string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations[i].CustomerName = name
			f.reservations[i].CustomerEmail = email
			f.reservations[i].CustomerPhone = phone
			f.reservations[i].SpecialRequests = specialRequests
			return nil
		}
	}
	return repository.ErrReservationNotFound
}

func (f *fakeStore) CountActiveFutureByContact(ctx context.Context, email, phone, fromDate string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.reservations {
		if model.IsTerminalStatus(r.Status) || r.Date < fromDate {
			continue
		}
		if r.CustomerEmail == email || r.CustomerPhone == phone {
			n++
		}
	}
	return n, nil
}

// seed inserts a reservation directly, bypassing the service.
func (f *fakeStore) seed(r model.Reservation) model.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	f.reservations = append(f.reservations, r)
	return r
}

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

// capturePublisher records confirmed events on a channel so tests can
// wait for the async publish.
type capturePublisher struct {
	events chan queue.ReservationConfirmedEvent
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{events: make(chan queue.ReservationConfirmedEvent, 8)}
}

func (p *capturePublisher) PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error {
	p.events <- ev
	return nil
}

// testNow is two weeks before the date most tests book, mid-morning.
var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

const testDate = "2026-09-15"

func floorPlan() []model.Table {
	return []model.Table{
		{ID: 1, Number: 1, Name: "Window deuce", Capacity: 2, MinPartySize: 1, TableType: model.TableTypeStandard, IsActive: true},
		{ID: 2, Number: 2, Name: "Center four-top", Capacity: 4, MinPartySize: 1, TableType: model.TableTypeStandard, IsActive: true},
		{ID: 3, Number: 3, Name: "Garden room", Capacity: 4, MinPartySize: 1, TableType: model.TableTypePrivate, IsActive: true},
	}
}

func newTestService(store Store) *Service {
	return New(store, nil, nil, DefaultPolicy(), fakeClock{now: testNow})
}

func validInput() CreateInput {
	return CreateInput{
		CustomerName:  "Alice Moreau",
		CustomerEmail: "alice@example.com",
		CustomerPhone: "+1 555 012 3456",
		Date:          testDate,
		StartTime:     "19:00",
		PartySize:     2,
	}
}

func TestCreateAssignsBestFitTable(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	det, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// The deuce wastes no seats; the four-top wastes two and the
	// private room wastes two plus the penalty.
	assert.Equal(t, uint64(1), det.TableID)
	assert.Equal(t, uint32(1), det.TableNumber)
	assert.Equal(t, "19:00:00", det.StartTime)
	assert.Equal(t, "20:45:00", det.EndTime)
	assert.Equal(t, model.StatusConfirmed, det.Status)
	assert.NotEmpty(t, det.ConfirmationCode)
}

func TestCreatePrefersStandardOverPrivateOnTie(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	in := validInput()
	in.PartySize = 4

	det, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), det.TableID, "equal capacity, but the private room carries a penalty")
}

func TestCreateFallsBackWhenBestTableTaken(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	first, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, uint64(1), first.TableID)

	second, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.TableID)
}

func TestCreateBackToBackOnSameTable(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	in := validInput()
	in.StartTime = "12:00"
	first, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	// [12:00, 13:45) and [13:45, 15:30) share a boundary minute but
	// not a table minute.
	in.StartTime = "13:45"
	second, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.TableID, second.TableID)
}

func TestCreateLastEveningSeating(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	// 22:59 is the latest bookable start; the party sits until 00:44
	// the next morning.  The window stays on the reservation's own
	// date as [22:59, 24:44).
	in := validInput()
	in.StartTime = "22:59"
	det, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "22:59:00", det.StartTime)
	assert.Equal(t, "24:44:00", det.EndTime)
	assert.Equal(t, model.StatusConfirmed, det.Status)

	// The late seating blocks its table for any evening start that
	// runs into it.
	avail, err := svc.IsTableAvailable(context.Background(), det.TableID, testDate, "22:00")
	require.NoError(t, err)
	require.False(t, avail.Available)
	require.NotNil(t, avail.Conflict)
	assert.Equal(t, "24:44:00", avail.Conflict.EndTime)

	// The day report still computes cleanly with the past-midnight end
	// time on file: the 22:00 slot loses exactly the booked table.
	report, err := svc.TimeSlotAvailability(context.Background(), testDate, 2)
	require.NoError(t, err)
	last := report[len(report)-1]
	require.Equal(t, "22:00", last.Time)
	assert.Equal(t, 2, last.AvailableTables)
	assert.True(t, last.Available)
}

func TestCreateNoAvailability(t *testing.T) {
	store := newFakeStore(floorPlan()[0]) // single deuce
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.StartTime = "19:30" // overlaps [19:00, 20:45)
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrNoAvailability)
}

func TestCreateValidationListsEveryViolatedField(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), CreateInput{
		CustomerName:  "A",
		CustomerEmail: "not-an-email",
		CustomerPhone: "123",
		Date:          "2026-08-01", // in the past relative to the test clock
		StartTime:     "07:30",
		PartySize:     0,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{
		"customer_name", "customer_email", "customer_phone",
		"date", "start_time", "party_size",
	}, fields)
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	store := newFakeStore(floorPlan()[0]) // one table, one slot
	svc := newTestService(store)

	const callers = 8
	results := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), validInput())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, misses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNoAvailability):
			misses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one caller may hold the slot")
	assert.Equal(t, callers-1, misses)

	stored, err := store.ActiveReservations(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreatePublishesConfirmationEvent(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	pub := newCapturePublisher()
	svc := New(store, pub, nil, DefaultPolicy(), fakeClock{now: testNow})

	det, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	select {
	case ev := <-pub.events:
		assert.Equal(t, det.ID, ev.ReservationID)
		assert.Equal(t, det.ConfirmationCode, ev.ConfirmationCode)
		assert.Equal(t, "alice@example.com", ev.CustomerEmail)
		assert.Equal(t, uint32(1), ev.TableNumber)
		assert.Equal(t, testDate, ev.Date)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation event was never published")
	}
}

func seedConfirmed(store *fakeStore, userID *uint64, date, start string) model.Reservation {
	end, _ := clock.AddMinutes(start, DefaultPolicy().ServiceDurationMin)
	return store.seed(model.Reservation{
		TableID:          1,
		UserID:           userID,
		CustomerName:     "Alice Moreau",
		CustomerEmail:    "alice@example.com",
		CustomerPhone:    "+1 555 012 3456",
		Date:             date,
		StartTime:        start,
		EndTime:          end,
		PartySize:        2,
		Status:           model.StatusConfirmed,
		ConfirmationCode: "code-abc",
	})
}

func TestCancelOutsideCutoff(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	uid := uint64(7)
	// Starts at 12:01 today; the clock reads 10:00, so 2h01m remain.
	res := seedConfirmed(store, &uid, "2026-09-01", "12:01:00")

	det, err := svc.Cancel(context.Background(), res.ID, &uid, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, det.Status)
}

func TestCancelInsideCutoffRejected(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	uid := uint64(7)
	// 1h59m before start is inside the two hour cutoff.
	res := seedConfirmed(store, &uid, "2026-09-01", "11:59:00")

	_, err := svc.Cancel(context.Background(), res.ID, &uid, "")
	assert.ErrorIs(t, err, ErrCancellationWindow)
}

func TestCancelFreesSlotForRebooking(t *testing.T) {
	store := newFakeStore(floorPlan()[0])
	svc := newTestService(store)

	uid := uint64(7)
	first, err := svc.Create(context.Background(), withUser(validInput(), &uid))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), first.ID, &uid, "")
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, first.TableID, second.TableID)
}

func withUser(in CreateInput, uid *uint64) CreateInput {
	in.UserID = uid
	return in
}

func TestGuestAccessByConfirmationCode(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	res := seedConfirmed(store, nil, testDate, "19:00:00")

	det, err := svc.Get(context.Background(), res.ID, nil, "code-abc")
	require.NoError(t, err)
	assert.Equal(t, res.ID, det.ID)

	_, err = svc.Get(context.Background(), res.ID, nil, "wrong-code")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), res.ID, nil, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetHidesOtherUsersReservations(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	owner := uint64(7)
	stranger := uint64(8)
	res := seedConfirmed(store, &owner, testDate, "19:00:00")

	det, err := svc.Get(context.Background(), res.ID, &owner, "")
	require.NoError(t, err)
	assert.Equal(t, res.ID, det.ID)

	// Absent and invisible must be indistinguishable.
	_, err = svc.Get(context.Background(), res.ID, &stranger, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), 9999, &owner, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelByStrangerWithCodeRejected(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	owner := uint64(7)
	stranger := uint64(8)
	res := seedConfirmed(store, &owner, testDate, "19:00:00")

	// The code makes the booking visible, but cancellation still
	// requires ownership for account-held reservations.
	_, err := svc.Cancel(context.Background(), res.ID, &stranger, "code-abc")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancelTerminalReservationRejected(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	uid := uint64(7)
	res := seedConfirmed(store, &uid, testDate, "19:00:00")
	require.NoError(t, store.UpdateReservationStatus(context.Background(), res.ID, model.StatusCompleted))

	_, err := svc.Cancel(context.Background(), res.ID, &uid, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateContactOnly(t *testing.T) {
	store := newFakeStore(floorPlan()...)
	svc := newTestService(store)

	uid := uint64(7)
	res := seedConfirmed(store, &uid, testDate, "19:00:00")

	det, err := svc.Update(context.Background(), res.ID, &uid, "", UpdateInput{
		CustomerName:    "Alice Moreau-Lefevre",
		CustomerEmail:   "alice.ml@example.com",
		CustomerPhone:   "+33 1 42 68 53 00",
		SpecialRequests: "window seat please",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Moreau-Lefevre", det.CustomerName)
	assert.Equal(t, "window seat please", det.SpecialRequests)
	// Schedule and table are immutable.
	assert.Equal(t, "19:00:00", det.StartTime)
	assert.Equal(t, uint64(1), det.TableID)
}

func TestTransitionStatus(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"confirmed to seated", model.StatusConfirmed, model.StatusSeated, nil},
		{"confirmed to no-show", model.StatusConfirmed, model.StatusNoShow, nil},
		{"seated to completed", model.StatusSeated, model.StatusCompleted, nil},
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, nil},
		{"confirmed to completed skips seated", model.StatusConfirmed, model.StatusCompleted, ErrInvalidTransition},
		{"seated back to confirmed", model.StatusSeated, model.StatusConfirmed, ErrInvalidTransition},
		{"completed is terminal", model.StatusCompleted, model.StatusSeated, ErrInvalidTransition},
		{"cancelled is terminal", model.StatusCancelled, model.StatusConfirmed, ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore(floorPlan()...)
			svc := newTestService(store)

			res := seedConfirmed(store, nil, testDate, "19:00:00")
			require.NoError(t, store.UpdateReservationStatus(context.Background(), res.ID, tc.from))

			det, err := svc.TransitionStatus(context.Background(), res.ID, tc.to)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, det.Status)
		})
	}
}
