package reservation

import (
	"context"
	"fmt"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// FindBestAvailableTable picks the free table that wastes the least
// capacity for the party at the given date and start time.  Tables in
// exclude are skipped (used when retrying after losing a slot race).
// Ties on fit score go to the lower table number so selection is
// deterministic.  A nil table with a nil error means nothing is
// available; that is a normal outcome, not a failure.
func (s *Service) FindBestAvailableTable(ctx context.Context, partySize int, date, startTime string, exclude []uint64) (*model.Table, error) {
	tables, err := s.store.ListActiveTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	excluded := make(map[uint64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	var best *model.Table
	bestScore := fitScoreInvalid
	for i := range tables {
		t := tables[i]
		if _, skip := excluded[t.ID]; skip {
			continue
		}
		score, ok := FitScore(t, partySize)
		if !ok {
			continue
		}
		// Availability is checked per candidate; restaurant floors are
		// tens of tables, so O(tables) queries per call is fine.
		avail, err := s.IsTableAvailable(ctx, t.ID, date, startTime)
		if err != nil {
			return nil, err
		}
		if !avail.Available {
			continue
		}
		if score < bestScore || (score == bestScore && best != nil && t.Number < best.Number) {
			tt := t
			best = &tt
			bestScore = score
		}
	}
	return best, nil
}

// freeTablesAt filters tables to those that can seat the party and
// have no conflicting reservation at the slot, judging against the
// preloaded per-table reservation index instead of the store.  The
// whole-day report uses this to avoid one query per (table, slot)
// pair.
func freeTablesAt(tables []model.Table, partySize, startMin, durationMin int, byTable map[uint64][]model.Reservation) ([]model.Table, error) {
	var free []model.Table
	for _, t := range tables {
		if !CanAccommodate(t, partySize) {
			continue
		}
		conflict, err := findConflict(startMin, startMin+durationMin, byTable[t.ID])
		if err != nil {
			return nil, err
		}
		if conflict == nil {
			free = append(free, t)
		}
	}
	return free, nil
}

// normalizeStart re-renders a time-of-day input as the canonical
// "HH:MM:SS" storage form.
func normalizeStart(startTime string) (string, error) {
	m, err := clock.ToMinutes(startTime)
	if err != nil {
		return "", err
	}
	return clock.FromMinutes(m), nil
}
