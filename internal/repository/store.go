package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/restaurant-table-reservation/internal/clock"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// Store bundles the table and reservation repositories behind the
// persistence interface the reservation service runs against.  It
// owns the one piece of concurrency-critical logic in the system: the
// check-and-insert transaction in CreateReservation.
type Store struct {
	db           *sql.DB
	Tables       *TableRepo
	Reservations *ReservationRepo
}

// NewStore returns a Store over the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Tables:       NewTableRepo(db),
		Reservations: NewReservationRepo(db),
	}
}

func (s *Store) ListActiveTables(ctx context.Context) ([]model.Table, error) {
	return s.Tables.ListActive(ctx)
}

func (s *Store) GetTable(ctx context.Context, id uint64) (model.Table, error) {
	return s.Tables.GetByID(ctx, id)
}

func (s *Store) ActiveReservations(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	return s.Reservations.ListActiveByTableDate(ctx, tableID, date)
}

func (s *Store) ActiveReservationsForDate(ctx context.Context, date string) ([]model.Reservation, error) {
	return s.Reservations.ListActiveByDate(ctx, date)
}

// CreateReservation inserts a reservation under the double-booking
// guard.  Within one transaction it (1) takes a row lock on the table,
// serializing writers per table, (2) re-checks overlap against the
// now-stable set of non-terminal reservations, and (3) inserts.  The
// unique key on (table_id, reservation_date, start_time) for
// non-terminal rows backs the same guarantee at the schema level; both
// paths surface as ErrConflict.  Two concurrent callers for the same
// slot therefore always end as one confirmed row and one ErrConflict,
// never two overlapping rows.
func (s *Store) CreateReservation(ctx context.Context, res *model.Reservation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.Tables.LockTx(ctx, tx, res.TableID); err != nil {
		return err
	}

	existing, err := s.Reservations.ListActiveByTableDateTx(ctx, tx, res.TableID, res.Date)
	if err != nil {
		return err
	}
	candStart, candEnd, err := windowMinutes(res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	for _, other := range existing {
		os, oe, err := windowMinutes(other.StartTime, other.EndTime)
		if err != nil {
			return fmt.Errorf("reservation %d has malformed window: %w", other.ID, err)
		}
		// Half-open overlap: back-to-back windows do not collide.
		if candStart < oe && os < candEnd {
			return ErrConflict
		}
	}

	if err := s.Reservations.CreateTx(ctx, tx, res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reservation tx: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) GetReservation(ctx context.Context, id uint64) (model.ReservationDetail, error) {
	return s.Reservations.GetDetail(ctx, id)
}

func (s *Store) ListReservationsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	return s.Reservations.ListDetailsByUser(ctx, userID)
}

func (s *Store) ListReservationsByDate(ctx context.Context, date string) ([]model.ReservationDetail, error) {
	return s.Reservations.ListDetailsByDate(ctx, date)
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	return s.Reservations.UpdateStatus(ctx, id, status)
}

func (s *Store) UpdateReservationContact(ctx context.Context, id uint64, name, email, phone, specialRequests string) error {
	return s.Reservations.UpdateContact(ctx, id, name, email, phone, specialRequests)
}

func (s *Store) CountActiveFutureByContact(ctx context.Context, email, phone, fromDate string) (int, error) {
	return s.Reservations.CountActiveFutureByContact(ctx, email, phone, fromDate)
}

// windowMinutes parses a stored "HH:MM:SS" window into minute offsets.
// End times of late seatings land past midnight ("24:44:00") and are
// still counted on the reservation's own date.
func windowMinutes(start, end string) (int, int, error) {
	sMin, err := clock.ToMinutes(start)
	if err != nil {
		return 0, 0, err
	}
	eMin, err := clock.EndToMinutes(end)
	if err != nil {
		return 0, 0, err
	}
	return sMin, eMin, nil
}
