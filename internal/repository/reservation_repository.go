package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for the reservations table.
// Dates are stored as DATE and times as TIME; the driver hands DATE
// back as time.Time (parseTime=true) while TIME columns arrive as
// strings, so this repository converts at the scan boundary and the
// rest of the system works with "2006-01-02" and "15:04:05" strings.
//
// Terminal statuses (cancelled, completed, no_show) are excluded from
// every availability-relevant query; a cancelled booking frees its
// slot the moment the status lands.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction management by the
// store layer.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const dateLayout = "2006-01-02"

const reservationColumns = `r.id, r.table_id, r.user_id, r.customer_name, r.customer_email, r.customer_phone,
       r.reservation_date, r.start_time, r.end_time, r.party_size, r.special_requests,
       r.status, r.confirmation_code, r.created_at, r.updated_at`

// activeStatusFilter keeps only reservations that still hold their
// slot.
const activeStatusFilter = `r.status NOT IN ('cancelled', 'completed', 'no_show')`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var (
		res      model.Reservation
		userID   sql.NullInt64
		date     time.Time
		requests sql.NullString
	)
	err := row.Scan(&res.ID, &res.TableID, &userID, &res.CustomerName, &res.CustomerEmail, &res.CustomerPhone,
		&date, &res.StartTime, &res.EndTime, &res.PartySize, &requests,
		&res.Status, &res.ConfirmationCode, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return model.Reservation{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		res.UserID = &uid
	}
	res.Date = date.Format(dateLayout)
	if requests.Valid {
		res.SpecialRequests = requests.String
	}
	return res, nil
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActiveByTableDate returns the non-terminal reservations held
// against one table on one date, ordered by start time.
func (r *ReservationRepo) ListActiveByTableDate(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations r
	           WHERE r.table_id = ? AND r.reservation_date = ? AND ` + activeStatusFilter + `
	           ORDER BY r.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, tableID, date)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListActiveByTableDateTx is ListActiveByTableDate inside an existing
// transaction.  The guarded insert re-checks overlap through this
// after taking the table lock, so the rows it sees cannot change
// before the insert commits.
func (r *ReservationRepo) ListActiveByTableDateTx(ctx context.Context, tx *sql.Tx, tableID uint64, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations r
	           WHERE r.table_id = ? AND r.reservation_date = ? AND ` + activeStatusFilter + `
	           ORDER BY r.start_time ASC`
	rows, err := tx.QueryContext(ctx, q, tableID, date)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListActiveByDate returns every non-terminal reservation on a date
// across all tables.  The whole-day availability report uses this to
// spend one query per day instead of one per (table, slot) pair.
func (r *ReservationRepo) ListActiveByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
	           FROM reservations r
	           WHERE r.reservation_date = ? AND ` + activeStatusFilter + `
	           ORDER BY r.table_id ASC, r.start_time ASC`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// CreateTx inserts a new reservation within an existing transaction,
// populating the generated id and timestamps on the record.  The
// schema carries a unique key over (table_id, reservation_date,
// start_time) for non-terminal rows; a duplicate-key failure is
// translated to ErrConflict so the caller can treat the table as
// having just become unavailable.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (table_id, user_id, customer_name, customer_email, customer_phone,
	            reservation_date, start_time, end_time, party_size, special_requests,
	            status, confirmation_code)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.TableID, res.UserID, res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.Date, res.StartTime, res.EndTime, res.PartySize, nullIfEmpty(res.SpecialRequests),
		res.Status, res.ConfirmationCode)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == 1062 {
			return ErrConflict
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row to populate timestamps and defaults.
	const sel = `SELECT ` + reservationColumns + ` FROM reservations r WHERE r.id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = got
	return nil
}

const detailColumns = reservationColumns + `, t.table_number, t.name, t.capacity`

func scanDetail(row interface{ Scan(...any) error }) (model.ReservationDetail, error) {
	var (
		det      model.ReservationDetail
		userID   sql.NullInt64
		date     time.Time
		requests sql.NullString
	)
	err := row.Scan(&det.ID, &det.TableID, &userID, &det.CustomerName, &det.CustomerEmail, &det.CustomerPhone,
		&date, &det.StartTime, &det.EndTime, &det.PartySize, &requests,
		&det.Status, &det.ConfirmationCode, &det.CreatedAt, &det.UpdatedAt,
		&det.TableNumber, &det.TableName, &det.TableCapacity)
	if err != nil {
		return model.ReservationDetail{}, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		det.UserID = &uid
	}
	det.Date = date.Format(dateLayout)
	if requests.Valid {
		det.SpecialRequests = requests.String
	}
	return det, nil
}

// GetDetail returns one reservation joined with its table's display
// fields, or ErrReservationNotFound.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (model.ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN restaurant_tables t ON t.id = r.table_id
	           WHERE r.id = ?`
	det, err := scanDetail(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReservationDetail{}, ErrReservationNotFound
	}
	return det, err
}

func (r *ReservationRepo) collectDetails(ctx context.Context, q string, args ...any) ([]model.ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ReservationDetail, 0)
	for rows.Next() {
		det, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDetailsByUser returns a user's reservations, most recent first.
func (r *ReservationRepo) ListDetailsByUser(ctx context.Context, userID uint64) ([]model.ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN restaurant_tables t ON t.id = r.table_id
	           WHERE r.user_id = ?
	           ORDER BY r.reservation_date DESC, r.start_time DESC`
	return r.collectDetails(ctx, q, userID)
}

// ListDetailsByDate returns every reservation on a date in floor
// order: by start time, then table number.
func (r *ReservationRepo) ListDetailsByDate(ctx context.Context, date string) ([]model.ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN restaurant_tables t ON t.id = r.table_id
	           WHERE r.reservation_date = ?
	           ORDER BY r.start_time ASC, t.table_number ASC`
	return r.collectDetails(ctx, q, date)
}

// UpdateStatus sets the lifecycle status of a reservation.  The state
// machine is enforced by the service; this only touches the row.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// UpdateContact replaces the contact fields and the special requests.
// Table, date and time columns are deliberately absent: a booking is
// never moved, only cancelled and rebooked.
func (r *ReservationRepo) UpdateContact(ctx context.Context, id uint64, name, email, phone, specialRequests string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations
		 SET customer_name = ?, customer_email = ?, customer_phone = ?, special_requests = ?
		 WHERE id = ?`,
		name, email, phone, nullIfEmpty(specialRequests), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// CountActiveFutureByContact counts open reservations on or after
// fromDate that share the given email or phone.  Feeds the advisory
// abuse scorer only.
func (r *ReservationRepo) CountActiveFutureByContact(ctx context.Context, email, phone, fromDate string) (int, error) {
	const q = `SELECT COUNT(*)
	           FROM reservations r
	           WHERE (r.customer_email = ? OR r.customer_phone = ?)
	             AND r.reservation_date >= ? AND ` + activeStatusFilter
	var n int
	err := r.db.QueryRowContext(ctx, q, email, phone, fromDate).Scan(&n)
	return n, err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
