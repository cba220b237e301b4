package model

import "time"

// MenuCategory groups menu items for browsing, as stored in the
// `menu_categories` table.  The public API only ever reads these rows;
// catalog management happens out of band.
type MenuCategory struct {
	ID          uint64    `json:"id"`           // menu_categories.id
	Name        string    `json:"name"`         // menu_categories.name
	Description string    `json:"description"`  // menu_categories.description
	SortOrder   int       `json:"sort_order"`   // menu_categories.sort_order
	IsActive    bool      `json:"-"`            // menu_categories.is_active
	CreatedAt   time.Time `json:"-"`            // menu_categories.created_at
}

// MenuItem is a dish or drink on the menu, stored in `menu_items`.
// Prices are kept in cents to avoid floating point money.
type MenuItem struct {
	ID          uint64    `json:"id"`          // menu_items.id
	CategoryID  uint64    `json:"category_id"` // menu_items.category_id
	Name        string    `json:"name"`        // menu_items.name
	Description string    `json:"description"` // menu_items.description
	PriceCents  uint32    `json:"price_cents"` // menu_items.price_cents
	ImageURL    string    `json:"image_url,omitempty"` // menu_items.image_url
	IsAvailable bool      `json:"is_available"`// menu_items.is_available
	IsActive    bool      `json:"-"`           // menu_items.is_active
	CreatedAt   time.Time `json:"-"`           // menu_items.created_at
	UpdatedAt   time.Time `json:"-"`           // menu_items.updated_at
}
