package reservation

import (
	"math"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// privateTablePenalty is added to the fit score of private tables so
// that ordinary parties land on standard seating when both fit equally
// well.  An accommodable private table is never excluded, only
// deprioritized.
const privateTablePenalty = 5

// fitScoreInvalid sorts tables that cannot seat the party after every
// real score.
const fitScoreInvalid = math.MaxInt

// CanAccommodate reports whether a table may seat a party of the given
// size: the table must be active and the size must fall inside the
// table's [MinPartySize, Capacity] range.
func CanAccommodate(t model.Table, partySize int) bool {
	return t.IsActive && partySize >= t.MinPartySize && partySize <= t.Capacity
}

// FitScore measures how well a table matches a party size; lower is
// better.  The score is the wasted capacity plus a fixed penalty for
// private tables.  ok is false when the table cannot seat the party at
// all, in which case the sentinel score is returned so invalid tables
// always sort last.
func FitScore(t model.Table, partySize int) (score int, ok bool) {
	if !CanAccommodate(t, partySize) {
		return fitScoreInvalid, false
	}
	score = t.Capacity - partySize
	if t.TableType == model.TableTypePrivate {
		score += privateTablePenalty
	}
	return score, true
}
