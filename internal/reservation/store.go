package reservation

import (
	"context"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Store is the persistence surface the reservation engine runs
// against.  The production implementation lives in the repository
// package on top of MySQL; tests supply in-memory fakes.  The store is
// the single synchronization point of the system: CreateReservation
// must guarantee that no two non-terminal reservations for the same
// table ever hold overlapping windows, even under concurrent calls,
// and must return repository.ErrConflict when a concurrent writer wins
// the slot first.
type Store interface {
	// ListActiveTables returns active tables ordered by capacity
	// ascending, then table number ascending.
	ListActiveTables(ctx context.Context) ([]model.Table, error)
	// GetTable returns a table by id or repository.ErrTableNotFound.
	GetTable(ctx context.Context, id uint64) (model.Table, error)

	// ActiveReservations returns the non-terminal reservations held
	// against one table on one date.
	ActiveReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error)
	// ActiveReservationsForDate returns every non-terminal reservation
	// on a date across all tables, for batched whole-day reports.
	ActiveReservationsForDate(ctx context.Context, date string) ([]model.Reservation, error)

	// CreateReservation persists a new reservation, filling in the
	// generated id and timestamps.  See the interface comment for the
	// concurrency contract.
	CreateReservation(ctx context.Context, res *model.Reservation) error
	// GetReservation returns a reservation joined with its table's
	// display fields, or repository.ErrReservationNotFound.
	GetReservation(ctx context.Context, id uint64) (model.ReservationDetail, error)
	// ListReservationsByUser returns a user's reservations, most
	// recent first.
	ListReservationsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error)
	// ListReservationsByDate returns every reservation on a date for
	// the staff floor view, ordered by start time.
	ListReservationsByDate(ctx context.Context, date string) ([]model.ReservationDetail, error)

	// UpdateReservationStatus sets a new lifecycle status.
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
	// UpdateReservationContact replaces the contact fields and special
	// requests.  Table, date and time are immutable after creation.
	UpdateReservationContact(ctx context.Context, id uint64, name, email, phone, specialRequests string) error

	// CountActiveFutureByContact counts non-terminal reservations on
	// or after fromDate sharing the given email or phone.  Used only
	// by the advisory abuse scorer.
	CountActiveFutureByContact(ctx context.Context, email, phone, fromDate string) (int, error)
}
