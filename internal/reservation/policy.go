package reservation

import "time"

// Policy bundles the booking rules of the restaurant.  The values are
// business policy, not per-row data: every table follows the same
// service duration and the same hours.  A Policy is built once at
// startup (from config) and injected into the Service.
type Policy struct {
	// ServiceDurationMin is how long a reservation occupies a table,
	// in minutes.  All overlap math uses this value.
	ServiceDurationMin int
	// GracePeriodMin is how late a customer may arrive before the
	// slot is released.  Informational: it is surfaced to clients but
	// does not change overlap math.
	GracePeriodMin int
	// MaxSittingMin is the upper bound communicated to guests.  It is
	// display-only and deliberately not used for conflict checks.
	MaxSittingMin int
	// OpenTime and CloseTime bound bookable start times.  A start is
	// valid when OpenTime <= start < CloseTime.
	OpenTime  string
	CloseTime string
	// BookingHorizonDays is how far into the future a reservation may
	// be placed.
	BookingHorizonDays int
	// CancelCutoff is the minimum lead time before the reservation
	// start at which a cancellation is still accepted.
	CancelCutoff time.Duration
	// MinPartySize and MaxPartySize bound the guest count.
	MinPartySize int
	MaxPartySize int
	// ServiceSlots is the fixed, ordered list of start times the
	// availability report iterates over.
	ServiceSlots []string
}

// DefaultPolicy returns the restaurant's standard rules: 105-minute
// service windows, doors 08:00-23:00, bookings up to 60 days out,
// parties of 1-20, cancellation up to 2 hours before the slot, and
// lunch/dinner service slots in 30-minute steps.
func DefaultPolicy() Policy {
	return Policy{
		ServiceDurationMin: 105,
		GracePeriodMin:     15,
		MaxSittingMin:      120,
		OpenTime:           "08:00",
		CloseTime:          "23:00",
		BookingHorizonDays: 60,
		CancelCutoff:       2 * time.Hour,
		MinPartySize:       1,
		MaxPartySize:       20,
		ServiceSlots: []string{
			"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
			"19:00", "19:30", "20:00", "20:30", "21:00", "21:30", "22:00",
		},
	}
}

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"
