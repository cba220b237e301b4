package reservation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// SlotAvailability is one row of the whole-day availability report:
// for a given service slot, how many tables could seat the party and
// how many seats those tables hold in total.
type SlotAvailability struct {
	Time            string `json:"time"`
	AvailableTables int    `json:"available_tables"`
	TotalCapacity   int    `json:"total_capacity"`
	Available       bool   `json:"available"`
}

// TimeSlotAvailability computes per-slot availability for a whole day.
// The day's non-terminal reservations are loaded in one query and the
// per-table index is reused across every slot, so the report costs one
// reservations query regardless of how many slots the service list
// holds.
func (s *Service) TimeSlotAvailability(ctx context.Context, date string, partySize int) ([]SlotAvailability, error) {
	verr := &ValidationError{}
	if _, err := time.Parse(DateLayout, date); err != nil {
		verr.add("date", "date must be a valid calendar date in YYYY-MM-DD form")
	}
	if partySize < s.policy.MinPartySize || partySize > s.policy.MaxPartySize {
		verr.add("party_size", fmt.Sprintf("party size must be between %d and %d", s.policy.MinPartySize, s.policy.MaxPartySize))
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	tables, err := s.store.ListActiveTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	dayReservations, err := s.store.ActiveReservationsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load reservations for %s: %w", date, err)
	}
	byTable := make(map[uint64][]model.Reservation)
	for _, r := range dayReservations {
		byTable[r.TableID] = append(byTable[r.TableID], r)
	}

	report := make([]SlotAvailability, 0, len(s.policy.ServiceSlots))
	for _, slot := range s.policy.ServiceSlots {
		startMin, err := clock.ToMinutes(slot)
		if err != nil {
			return nil, fmt.Errorf("malformed service slot %q: %w", slot, err)
		}
		free, err := freeTablesAt(tables, partySize, startMin, s.policy.ServiceDurationMin, byTable)
		if err != nil {
			return nil, err
		}
		capacity := 0
		for _, t := range free {
			capacity += t.Capacity
		}
		report = append(report, SlotAvailability{
			Time:            slot,
			AvailableTables: len(free),
			TotalCapacity:   capacity,
			Available:       len(free) > 0,
		})
	}
	return report, nil
}

// TableOption is one candidate table offered for a specific slot,
// annotated with its fit score for the requesting party.
type TableOption struct {
	Table    model.Table `json:"table"`
	FitScore int         `json:"fit_score"`
}

// AvailableTables lists every table that could seat the party at the
// given date and time, best fit first.  It backs the endpoint that
// lets a guest pick a specific table rather than take the default
// assignment.
func (s *Service) AvailableTables(ctx context.Context, partySize int, date, startTime string) ([]TableOption, error) {
	verr := &ValidationError{}
	if _, err := time.Parse(DateLayout, date); err != nil {
		verr.add("date", "date must be a valid calendar date in YYYY-MM-DD form")
	}
	startMin, terr := clock.ToMinutes(startTime)
	if terr != nil {
		verr.add("time", "time must be a valid time in HH:MM form")
	}
	if partySize < s.policy.MinPartySize || partySize > s.policy.MaxPartySize {
		verr.add("party_size", fmt.Sprintf("party size must be between %d and %d", s.policy.MinPartySize, s.policy.MaxPartySize))
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	tables, err := s.store.ListActiveTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	dayReservations, err := s.store.ActiveReservationsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load reservations for %s: %w", date, err)
	}
	byTable := make(map[uint64][]model.Reservation)
	for _, r := range dayReservations {
		byTable[r.TableID] = append(byTable[r.TableID], r)
	}

	free, err := freeTablesAt(tables, partySize, startMin, s.policy.ServiceDurationMin, byTable)
	if err != nil {
		return nil, err
	}
	options := make([]TableOption, 0, len(free))
	for _, t := range free {
		score, _ := FitScore(t, partySize)
		options = append(options, TableOption{Table: t, FitScore: score})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].FitScore != options[j].FitScore {
			return options[i].FitScore < options[j].FitScore
		}
		return options[i].Table.Number < options[j].Table.Number
	})
	return options, nil
}
