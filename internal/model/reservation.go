package model

import "time"

// Reservation statuses as stored in reservations.status.  A newly
// created reservation is confirmed immediately; there is no separate
// staff confirmation step.  Cancelled, completed and no_show are
// terminal: they never transition again and the slot they occupied is
// considered free by every availability check.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusSeated    = "seated"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// IsTerminalStatus reports whether a status excludes the reservation
// from overlap checks and from further transitions.
func IsTerminalStatus(s string) bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// Reservation records a booking of one table for one service window on
// a calendar date.  Times are stored as TIME-of-day strings and dates
// as "YYYY-MM-DD"; the restaurant operates in a single timezone so no
// zone information is persisted.
//
// Fields:
//  ID               – primary key identifier.
//  TableID          – table assigned at creation; never reassigned.
//  UserID           – owning account, nil for guest bookings.
//  CustomerName     – name the booking is held under.
//  CustomerEmail    – contact email, receives the confirmation.
//  CustomerPhone    – contact phone number.
//  Date             – calendar date ("2006-01-02").
//  StartTime        – service window start ("15:04:05").
//  EndTime          – StartTime plus the fixed service duration.
//  PartySize        – number of guests, 1–20.
//  SpecialRequests  – optional free text.
//  Status           – lifecycle state, see status constants.
//  ConfirmationCode – opaque code quoted in the confirmation email.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
	ID               uint64    `json:"id"`                // reservations.id
	TableID          uint64    `json:"table_id"`          // reservations.table_id
	UserID           *uint64   `json:"user_id,omitempty"` // reservations.user_id (nullable)
	CustomerName     string    `json:"customer_name"`     // reservations.customer_name
	CustomerEmail    string    `json:"customer_email"`    // reservations.customer_email
	CustomerPhone    string    `json:"customer_phone"`    // reservations.customer_phone
	Date             string    `json:"date"`              // reservations.reservation_date
	StartTime        string    `json:"start_time"`        // reservations.start_time
	EndTime          string    `json:"end_time"`          // reservations.end_time
	PartySize        int       `json:"party_size"`        // reservations.party_size
	SpecialRequests  string    `json:"special_requests,omitempty"` // reservations.special_requests
	Status           string    `json:"status"`            // reservations.status
	ConfirmationCode string    `json:"confirmation_code"` // reservations.confirmation_code
	CreatedAt        time.Time `json:"created_at"`        // reservations.created_at
	UpdatedAt        time.Time `json:"updated_at"`        // reservations.updated_at
}

// ReservationDetail is a Reservation joined with the display fields of
// its table, as returned to customers when fetching or listing their
// bookings.
type ReservationDetail struct {
	Reservation
	TableNumber   uint32 `json:"table_number"`   // restaurant_tables.table_number
	TableName     string `json:"table_name"`     // restaurant_tables.name
	TableCapacity int    `json:"table_capacity"` // restaurant_tables.capacity
}
