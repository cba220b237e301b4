// Domain error taxonomy for the reservation service.  Handlers map
// these onto HTTP responses; nothing below ever carries raw storage
// errors to the caller.
package reservation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAvailability is the expected business outcome when no table can
// seat the requested party at the requested slot.  It is user-facing
// and not logged as an application error.  Storage-level conflicts
// from the double-booking guard are translated into this error as
// well: from the caller's point of view the table simply became
// unavailable.
var ErrNoAvailability = errors.New("no tables available for the requested date, time and party size")

// ErrNotFound is returned when a reservation does not exist or is not
// visible to the requester.  Invisible and absent are deliberately
// indistinguishable so ids cannot be probed.
var ErrNotFound = errors.New("reservation not found")

// ErrNotOwner is returned when an ownership check fails for an
// operation that admits distinguishing it from absence (cancel and
// update on own bookings).
var ErrNotOwner = errors.New("reservation belongs to another customer")

// ErrCancellationWindow is returned when a cancellation arrives closer
// to the reservation start than the policy cutoff permits.
var ErrCancellationWindow = errors.New("too close to the reservation time to cancel")

// ErrInvalidTransition is returned when a status change is requested
// that the reservation state machine does not allow, including any
// transition out of a terminal status.
var ErrInvalidTransition = errors.New("status transition not allowed")

// FieldError attributes one validation failure to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of a request, not just
// the first, so a client can fix a whole form in one round trip.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil returns the error only when at least one field failed, so
// callers can write `if err := ...; err != nil`.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
