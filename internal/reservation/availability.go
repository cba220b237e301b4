package reservation

import (
	"context"
	"fmt"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ConflictSummary is the public-safe view of a reservation blocking a
// requested slot.  It exposes only what a host would say out loud at
// the door: a name, a party size and the occupied window.  No ids and
// no contact details.
type ConflictSummary struct {
	CustomerName string `json:"customer_name"`
	PartySize    int    `json:"party_size"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// Availability is the outcome of checking one table for one slot.
type Availability struct {
	Available bool             `json:"available"`
	Conflict  *ConflictSummary `json:"conflicting_reservation,omitempty"`
}

// IsTableAvailable reports whether the table is free for the service
// window starting at startTime on date.  The candidate window is
// [start, start+serviceDuration) and conflicts are judged against
// every non-terminal reservation on that table and date using
// half-open interval overlap, so back-to-back bookings never collide.
func (s *Service) IsTableAvailable(ctx context.Context, tableID uint64, date, startTime string) (Availability, error) {
	startMin, err := clock.ToMinutes(startTime)
	if err != nil {
		return Availability{}, err
	}
	existing, err := s.store.ActiveReservations(ctx, tableID, date)
	if err != nil {
		return Availability{}, fmt.Errorf("load reservations for table %d on %s: %w", tableID, date, err)
	}
	conflict, err := findConflict(startMin, startMin+s.policy.ServiceDurationMin, existing)
	if err != nil {
		return Availability{}, err
	}
	if conflict != nil {
		return Availability{Available: false, Conflict: conflict}, nil
	}
	return Availability{Available: true}, nil
}

// findConflict returns a summary of the first stored reservation whose
// window overlaps [candStart, candEnd), or nil when the slot is free.
// Stored end times are authoritative; they were derived from the
// service duration at creation and may land past midnight for late
// seatings.
func findConflict(candStart, candEnd int, existing []model.Reservation) (*ConflictSummary, error) {
	for _, r := range existing {
		rs, err := clock.ToMinutes(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("reservation %d has malformed start_time %q: %w", r.ID, r.StartTime, err)
		}
		re, err := clock.EndToMinutes(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("reservation %d has malformed end_time %q: %w", r.ID, r.EndTime, err)
		}
		if clock.IntervalsOverlap(candStart, candEnd, rs, re) {
			return &ConflictSummary{
				CustomerName: r.CustomerName,
				PartySize:    r.PartySize,
				StartTime:    r.StartTime,
				EndTime:      r.EndTime,
			}, nil
		}
	}
	return nil, nil
}
