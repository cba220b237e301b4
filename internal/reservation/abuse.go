package reservation

import (
	"context"
	"log"
)

// AbuseScorer is an advisory heuristic that flags suspicious booking
// patterns.  It is intentionally separate from hard validation: the
// thresholds can be tuned or the scorer disabled entirely without
// touching any correctness rule, and a flagged request is still
// served.  The score only produces a log line for staff review.
type AbuseScorer struct {
	// MaxActiveFuture is how many open future bookings one contact may
	// hold before further requests are flagged.
	MaxActiveFuture int
	// FlagThreshold is the score at or above which a request is
	// reported.
	FlagThreshold int
}

// NewAbuseScorer returns a scorer with conservative defaults: a
// contact holding three or more open future bookings is worth
// flagging.
func NewAbuseScorer() *AbuseScorer {
	return &AbuseScorer{MaxActiveFuture: 3, FlagThreshold: 3}
}

// Score rates a create request against existing bookings.  A zero
// score means nothing suspicious.  Errors from the store are swallowed
// after logging: the scorer must never block or fail a reservation.
func (a *AbuseScorer) Score(ctx context.Context, store Store, in CreateInput) int {
	count, err := store.CountActiveFutureByContact(ctx, in.CustomerEmail, in.CustomerPhone, in.Date)
	if err != nil {
		log.Printf("abuse-scorer: contact lookup failed: %v", err)
		return 0
	}
	score := 0
	if count >= a.MaxActiveFuture {
		score += 3
	} else if count > 1 {
		score += count - 1
	}
	return score
}

// Flagged reports whether a score crosses the reporting threshold.
func (a *AbuseScorer) Flagged(score int) bool {
	return score >= a.FlagThreshold
}
