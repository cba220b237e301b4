package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

// MenuRepo provides read access to the menu for public browsing.
// Catalog management is out of band, so there are no writes here.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// ListCategories returns active categories in display order.
func (r *MenuRepo) ListCategories(ctx context.Context) ([]model.MenuCategory, error) {
	const q = `SELECT id, name, description, sort_order, is_active, created_at
	           FROM menu_categories
	           WHERE is_active = 1
	           ORDER BY sort_order ASC, name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuCategory, 0)
	for rows.Next() {
		var c model.MenuCategory
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc, &c.SortOrder, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			c.Description = desc.String
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListItems returns active menu items, optionally filtered to one
// category, ordered by name.
func (r *MenuRepo) ListItems(ctx context.Context, categoryID *uint64) ([]model.MenuItem, error) {
	q := `SELECT id, category_id, name, description, price_cents, image_url, is_available, is_active, created_at, updated_at
	      FROM menu_items
	      WHERE is_active = 1`
	args := []any{}
	if categoryID != nil {
		q += ` AND category_id = ?`
		args = append(args, *categoryID)
	}
	q += ` ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuItem, 0)
	for rows.Next() {
		var m model.MenuItem
		var desc, img sql.NullString
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &desc, &m.PriceCents, &img,
			&m.IsAvailable, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		if desc.Valid {
			m.Description = desc.String
		}
		if img.Valid {
			m.ImageURL = img.String
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
