package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// TableRepo provides read access to the restaurant_tables table.  The
// floor layout is read-mostly; all writes happen out of band, so this
// repository exposes no mutations.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo returns a TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, table_number, name, capacity, min_party_size, table_type, location_description, is_active, created_at, updated_at`

func scanTable(row interface{ Scan(...any) error }) (model.Table, error) {
	var t model.Table
	err := row.Scan(&t.ID, &t.Number, &t.Name, &t.Capacity, &t.MinPartySize,
		&t.TableType, &t.Location, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListActive returns every active table ordered by capacity ascending
// then table number ascending.  The order is deterministic so
// downstream tie-breaking and display stay stable.
func (r *TableRepo) ListActive(ctx context.Context) ([]model.Table, error) {
	const q = `SELECT ` + tableColumns + `
	           FROM restaurant_tables
	           WHERE is_active = 1
	           ORDER BY capacity ASC, table_number ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tables := make([]model.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// GetByID returns one active table or ErrTableNotFound.  Inactive
// tables are invisible here on purpose: nothing in the system may
// consider them.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (model.Table, error) {
	const q = `SELECT ` + tableColumns + `
	           FROM restaurant_tables
	           WHERE id = ? AND is_active = 1`
	t, err := scanTable(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Table{}, ErrTableNotFound
	}
	return t, err
}

// LockTx takes a row lock on one table inside the given transaction.
// Concurrent reservation attempts for the same table serialize on this
// lock, which closes the window between the availability check and the
// insert.  Returns ErrTableNotFound when the table is absent or
// inactive.
func (r *TableRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `SELECT id FROM restaurant_tables WHERE id = ? AND is_active = 1 FOR UPDATE`
	var got uint64
	err := tx.QueryRowContext(ctx, q, id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTableNotFound
	}
	return err
}
