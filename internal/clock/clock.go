// Package clock provides pure helpers for working with wall-clock
// time-of-day strings ("HH:MM" or "HH:MM:SS") as minute offsets since
// midnight.  Reservation times are stored as TIME columns and travel
// through the system as strings; all interval arithmetic happens on the
// minute offsets produced here.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in a calendar day.
const MinutesPerDay = 24 * 60

// ToMinutes parses a time-of-day string in "HH:MM" or "HH:MM:SS" form
// and returns the number of minutes since midnight.  Seconds are
// accepted for compatibility with TIME column values but ignored.  An
// error is returned for malformed input, hours above 23 or minutes
// above 59.
func ToMinutes(tod string) (int, error) {
	return parseMinutes(tod, 23)
}

// EndToMinutes parses a service-window end time.  A late seating runs
// past midnight, so hours up to 24 are accepted here and counted
// forward from the same midnight as the start ("24:44:00" -> 1484).
// Everything else follows ToMinutes.
func EndToMinutes(tod string) (int, error) {
	return parseMinutes(tod, 24)
}

func parseMinutes(tod string, maxHour int) (int, error) {
	parts := strings.Split(tod, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM or HH:MM:SS", tod)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) == 0 {
		return 0, fmt.Errorf("invalid time %q: bad hour", tod)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) == 0 {
		return 0, fmt.Errorf("invalid time %q: bad minute", tod)
	}
	if len(parts) == 3 {
		s, err := strconv.Atoi(parts[2])
		if err != nil || s < 0 || s > 59 {
			return 0, fmt.Errorf("invalid time %q: bad second", tod)
		}
	}
	if h < 0 || h > maxHour {
		return 0, fmt.Errorf("invalid time %q: hour out of range", tod)
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: minute out of range", tod)
	}
	return h*60 + m, nil
}

// FromMinutes renders a minute offset as an "HH:MM:SS" string.  Offsets
// are not wrapped past midnight; values at or above 24:00 are rendered
// as-is (e.g. 1484 -> "24:44:00").  A late seating legitimately ends in
// the hour after midnight and EndToMinutes parses such values back.
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// AddMinutes returns tod shifted forward by delta minutes as an
// "HH:MM:SS" string.  The same overflow policy as FromMinutes applies.
func AddMinutes(tod string, delta int) (string, error) {
	m, err := ToMinutes(tod)
	if err != nil {
		return "", err
	}
	return FromMinutes(m + delta), nil
}

// IntervalsOverlap reports whether the half-open intervals [startA, endA)
// and [startB, endB) intersect.  Half-open semantics mean a reservation
// ending exactly when another starts does not conflict, which is what
// allows back-to-back bookings on the same table.
func IntervalsOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}
