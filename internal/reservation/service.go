// Package reservation implements the table reservation engine: the
// table catalog view, per-table availability checks, best-fit table
// selection, the reservation lifecycle and the whole-day availability
// report.  Everything here runs against the Store interface; MySQL is
// wired in by the repository package and tests use in-memory fakes.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

// EventPublisher sends the reservation-confirmed event that feeds the
// confirmation email pipeline.  Publishing is best-effort: the service
// logs failures and never fails a reservation over them.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error
}

// Clock abstracts "now" so cutoff and horizon rules are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Service orchestrates the reservation lifecycle.  It owns no state of
// its own; the store is the single source of truth and the sole
// synchronization point.
type Service struct {
	store  Store
	events EventPublisher // nil disables the email pipeline
	abuse  *AbuseScorer   // nil disables advisory scoring
	policy Policy
	clock  Clock
}

// New constructs a Service.  events and abuse may be nil; a nil clk
// falls back to the system clock.
func New(store Store, events EventPublisher, abuse *AbuseScorer, policy Policy, clk Clock) *Service {
	if store == nil {
		panic("nil store passed to reservation.New")
	}
	if clk == nil {
		clk = systemClock{}
	}
	return &Service{store: store, events: events, abuse: abuse, policy: policy, clock: clk}
}

// Policy exposes the rules the service was built with, for handlers
// that surface them (grace period, sitting time, slot list).
func (s *Service) Policy() Policy { return s.policy }

// Create validates a reservation request, assigns the best-fit
// available table and persists the booking with status confirmed.
// Validation failures come back as *ValidationError listing every
// violated field; a full house comes back as ErrNoAvailability.  When
// a concurrent booking wins the chosen table first (surfaced by the
// store as repository.ErrConflict), selection is retried once with
// that table excluded before giving up; the losing caller just sees
// the table as unavailable, never a storage error.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.ReservationDetail, error) {
	now := s.clock.Now()
	if err := validateCreate(in, now, s.policy); err != nil {
		return nil, err
	}

	if s.abuse != nil {
		if score := s.abuse.Score(ctx, s.store, in); s.abuse.Flagged(score) {
			log.Printf("reservation: suspicious booking pattern (score=%d) for %s on %s %s",
				score, in.CustomerEmail, in.Date, in.StartTime)
		}
	}

	startTime, err := normalizeStart(in.StartTime)
	if err != nil {
		return nil, err // unreachable after validation
	}
	endTime, err := clock.AddMinutes(startTime, s.policy.ServiceDurationMin)
	if err != nil {
		return nil, err
	}

	var exclude []uint64
	for attempt := 0; attempt < 2; attempt++ {
		table, err := s.FindBestAvailableTable(ctx, in.PartySize, in.Date, startTime, exclude)
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, ErrNoAvailability
		}

		res := &model.Reservation{
			TableID:          table.ID,
			UserID:           in.UserID,
			CustomerName:     in.CustomerName,
			CustomerEmail:    in.CustomerEmail,
			CustomerPhone:    in.CustomerPhone,
			Date:             in.Date,
			StartTime:        startTime,
			EndTime:          endTime,
			PartySize:        in.PartySize,
			SpecialRequests:  in.SpecialRequests,
			Status:           model.StatusConfirmed,
			ConfirmationCode: uuid.NewString(),
		}
		err = s.store.CreateReservation(ctx, res)
		if errors.Is(err, repository.ErrConflict) {
			// Lost the slot race for this table; try the next best one.
			exclude = append(exclude, table.ID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("persist reservation: %w", err)
		}

		detail := &model.ReservationDetail{
			Reservation:   *res,
			TableNumber:   table.Number,
			TableName:     table.Name,
			TableCapacity: table.Capacity,
		}
		s.publishConfirmed(detail)
		return detail, nil
	}
	return nil, ErrNoAvailability
}

// publishConfirmed dispatches the confirmation event without blocking
// the caller.  Failures are logged; the reservation stands regardless.
func (s *Service) publishConfirmed(d *model.ReservationDetail) {
	if s.events == nil {
		return
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID:    d.ID,
		ConfirmationCode: d.ConfirmationCode,
		CustomerName:     d.CustomerName,
		CustomerEmail:    d.CustomerEmail,
		TableNumber:      d.TableNumber,
		TableName:        d.TableName,
		Date:             d.Date,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		PartySize:        d.PartySize,
		SpecialRequests:  d.SpecialRequests,
		ConfirmedAt:      s.clock.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.events.PublishReservationConfirmed(ctx, ev); err != nil {
			log.Printf("reservation %d: confirmation event publish failed: %v", ev.ReservationID, err)
		}
	}()
}

// Get fetches one reservation.  It is visible to its owning user, or
// to anyone presenting the matching confirmation code (the guest
// flow).  Anything else reads as not found so reservation ids cannot
// be probed for other people's bookings.
func (s *Service) Get(ctx context.Context, id uint64, requester *uint64, confirmationCode string) (*model.ReservationDetail, error) {
	det, err := s.store.GetReservation(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	if !visibleTo(det, requester, confirmationCode) {
		return nil, ErrNotFound
	}
	return &det, nil
}

// ListForUser returns a user's reservations, most recent first, with
// table display fields joined in.
func (s *Service) ListForUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	list, err := s.store.ListReservationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", userID, err)
	}
	return list, nil
}

// ListForDate returns every reservation on a date for the staff floor
// view.
func (s *Service) ListForDate(ctx context.Context, date string) ([]model.ReservationDetail, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		verr := &ValidationError{}
		verr.add("date", "date must be a valid calendar date in YYYY-MM-DD form")
		return nil, verr
	}
	list, err := s.store.ListReservationsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list reservations for %s: %w", date, err)
	}
	return list, nil
}

// Cancel transitions a reservation to cancelled, which immediately
// frees its slot for rebooking.  The requester must own the booking or
// present its confirmation code, the booking must still be open, and
// the policy cutoff must not have passed.
func (s *Service) Cancel(ctx context.Context, id uint64, requester *uint64, confirmationCode string) (*model.ReservationDetail, error) {
	det, err := s.store.GetReservation(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	if !visibleTo(det, requester, confirmationCode) {
		return nil, ErrNotFound
	}
	if requester != nil && det.UserID != nil && *det.UserID != *requester {
		return nil, ErrNotOwner
	}
	if model.IsTerminalStatus(det.Status) {
		return nil, ErrInvalidTransition
	}

	startAt, err := combineDateTime(det.Date, det.StartTime, s.clock.Now().Location())
	if err != nil {
		return nil, fmt.Errorf("reservation %d has malformed schedule: %w", id, err)
	}
	if startAt.Sub(s.clock.Now()) < s.policy.CancelCutoff {
		return nil, ErrCancellationWindow
	}

	if err := s.store.UpdateReservationStatus(ctx, id, model.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel reservation %d: %w", id, err)
	}
	det.Status = model.StatusCancelled
	return &det, nil
}

// Update replaces the contact fields and special requests of an open
// reservation.  The assigned table and the schedule are immutable;
// moving a booking is cancel-and-rebook.
func (s *Service) Update(ctx context.Context, id uint64, requester *uint64, confirmationCode string, in UpdateInput) (*model.ReservationDetail, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	det, err := s.store.GetReservation(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	if !visibleTo(det, requester, confirmationCode) {
		return nil, ErrNotFound
	}
	if requester != nil && det.UserID != nil && *det.UserID != *requester {
		return nil, ErrNotOwner
	}
	if model.IsTerminalStatus(det.Status) {
		return nil, ErrInvalidTransition
	}

	if err := s.store.UpdateReservationContact(ctx, id, in.CustomerName, in.CustomerEmail, in.CustomerPhone, in.SpecialRequests); err != nil {
		return nil, fmt.Errorf("update reservation %d: %w", id, err)
	}
	det.CustomerName = in.CustomerName
	det.CustomerEmail = in.CustomerEmail
	det.CustomerPhone = in.CustomerPhone
	det.SpecialRequests = in.SpecialRequests
	return &det, nil
}

// allowedTransitions is the staff-drivable part of the state machine.
// Terminal statuses have no outgoing edges.
var allowedTransitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusSeated, model.StatusNoShow, model.StatusCancelled},
	model.StatusSeated:    {model.StatusCompleted},
}

// TransitionStatus applies a staff-initiated status change (seated,
// completed, no_show).  Illegal edges, including anything out of a
// terminal status, return ErrInvalidTransition.
func (s *Service) TransitionStatus(ctx context.Context, id uint64, status string) (*model.ReservationDetail, error) {
	det, err := s.store.GetReservation(ctx, id)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	ok := false
	for _, next := range allowedTransitions[det.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	if err := s.store.UpdateReservationStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update reservation %d status: %w", id, err)
	}
	det.Status = status
	return &det, nil
}

// visibleTo implements the read-visibility rule shared by get, cancel
// and update.
func visibleTo(det model.ReservationDetail, requester *uint64, confirmationCode string) bool {
	if requester != nil && det.UserID != nil && *det.UserID == *requester {
		return true
	}
	if confirmationCode != "" && det.ConfirmationCode == confirmationCode {
		return true
	}
	// Guest bookings without a presented code stay reachable only via
	// the confirmation email.
	return false
}

// combineDateTime builds the wall-clock instant of a reservation start
// in the restaurant's timezone.
func combineDateTime(date, tod string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	m, err := clock.ToMinutes(tod)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(time.Duration(m) * time.Minute), nil
}
