package reservation

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
)

// validate is shared across requests; validator.Validate is safe for
// concurrent use.
var validate = validator.New()

var (
	// namePattern allows letters (including accented ones), spaces,
	// hyphens and apostrophes.  Length is checked separately in runes
	// so multi-byte names are not short-changed.
	namePattern = regexp.MustCompile(`^[\p{L}][\p{L} '\-]*$`)
	// phonePattern accepts common written forms: optional leading +,
	// digits, spaces, dots, parentheses and dashes.
	phonePattern = regexp.MustCompile(`^\+?[0-9 ().\-]+$`)
	phoneDigits  = regexp.MustCompile(`[0-9]`)
)

// CreateInput carries a reservation request across the API boundary.
type CreateInput struct {
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	PartySize       int     `json:"party_size"`
	SpecialRequests string  `json:"special_requests"`
	UserID          *uint64 `json:"-"`
}

// UpdateInput carries the only mutable fields of an existing
// reservation: contact details and special requests.  Table, date and
// time reassignment is not supported; the customer cancels and
// rebooks.
type UpdateInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	SpecialRequests string `json:"special_requests"`
}

// validateContact checks the contact fields shared by create and
// update, appending every violation to verr.
func validateContact(verr *ValidationError, name, email, phone string) {
	nameLen := utf8.RuneCountInString(name)
	switch {
	case name == "":
		verr.add("customer_name", "name is required")
	case nameLen < 2 || nameLen > 100:
		verr.add("customer_name", "name must be between 2 and 100 characters")
	case !namePattern.MatchString(name):
		verr.add("customer_name", "name may only contain letters, spaces, hyphens and apostrophes")
	}

	if email == "" {
		verr.add("customer_email", "email is required")
	} else if err := validate.Var(email, "email"); err != nil {
		verr.add("customer_email", "email address is not valid")
	}

	digits := len(phoneDigits.FindAllString(phone, -1))
	switch {
	case phone == "":
		verr.add("customer_phone", "phone number is required")
	case !phonePattern.MatchString(phone) || digits < 7 || digits > 15:
		verr.add("customer_phone", "phone number is not valid")
	}
}

// validateCreate applies every hard business rule to a reservation
// request and returns a ValidationError enumerating all violated
// fields, or nil.  Anti-abuse scoring is deliberately not part of
// this: it is a separately tunable advisory policy.
func validateCreate(in CreateInput, now time.Time, p Policy) error {
	verr := &ValidationError{}

	validateContact(verr, in.CustomerName, in.CustomerEmail, in.CustomerPhone)

	date, err := time.ParseInLocation(DateLayout, in.Date, now.Location())
	if err != nil {
		verr.add("date", "date must be a valid calendar date in YYYY-MM-DD form")
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			verr.add("date", "date must not be in the past")
		} else if date.After(today.AddDate(0, 0, p.BookingHorizonDays)) {
			verr.add("date", fmt.Sprintf("date must be within %d days from today", p.BookingHorizonDays))
		}
	}

	startMin, err := clock.ToMinutes(in.StartTime)
	if err != nil {
		verr.add("start_time", "start time must be a valid time in HH:MM form")
	} else {
		openMin, _ := clock.ToMinutes(p.OpenTime)
		closeMin, _ := clock.ToMinutes(p.CloseTime)
		if startMin < openMin || startMin >= closeMin {
			verr.add("start_time", fmt.Sprintf("reservations start between %s and %s", p.OpenTime, p.CloseTime))
		}
	}

	if in.PartySize < p.MinPartySize || in.PartySize > p.MaxPartySize {
		verr.add("party_size", fmt.Sprintf("party size must be between %d and %d", p.MinPartySize, p.MaxPartySize))
	}

	return verr.orNil()
}

// validateUpdate checks the mutable fields of an update request.
func validateUpdate(in UpdateInput) error {
	verr := &ValidationError{}
	validateContact(verr, in.CustomerName, in.CustomerEmail, in.CustomerPhone)
	return verr.orNil()
}
