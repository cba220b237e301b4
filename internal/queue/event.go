// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a table reservation is
// successfully confirmed.  It carries everything the mail consumer
// needs to render a confirmation without querying the primary
// database.
type ReservationConfirmedEvent struct {
	ReservationID    uint64 `json:"reservation_id"`
	ConfirmationCode string `json:"confirmation_code"`
	CustomerName     string `json:"customer_name"`
	CustomerEmail    string `json:"customer_email"`
	TableNumber      uint32 `json:"table_number"`
	TableName        string `json:"table_name"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	PartySize        int    `json:"party_size"`
	SpecialRequests  string `json:"special_requests,omitempty"`
	ConfirmedAt      string `json:"confirmed_at"`
}
