package model

import "time"

// Table types as stored in restaurant_tables.table_type.  Private
// tables carry a fit-score penalty so ordinary parties are steered
// towards standard seating first.
const (
	TableTypeStandard = "standard"
	TableTypePrivate  = "private"
)

// Table describes a physical table in the dining room as stored in the
// `restaurant_tables` table.  Tables are read-mostly: the floor layout
// changes rarely, while reservations against a table change constantly.
//
// Fields:
//  ID           – primary key identifier.
//  Number       – display ordinal printed on the table.
//  Name         – display name (e.g. "Window booth").
//  Capacity     – maximum party size the table seats.
//  MinPartySize – smallest party the table is given to (<= Capacity).
//  TableType    – "standard" or "private".
//  Location     – free-text placement description for staff and guests.
//  IsActive     – inactive tables are invisible to every operation.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Table struct {
	ID           uint64    `json:"id"`            // restaurant_tables.id
	Number       uint32    `json:"number"`        // restaurant_tables.table_number
	Name         string    `json:"name"`          // restaurant_tables.name
	Capacity     int       `json:"capacity"`      // restaurant_tables.capacity
	MinPartySize int       `json:"min_party_size"`// restaurant_tables.min_party_size
	TableType    string    `json:"table_type"`    // restaurant_tables.table_type
	Location     string    `json:"location"`      // restaurant_tables.location_description
	IsActive     bool      `json:"is_active"`     // restaurant_tables.is_active
	CreatedAt    time.Time `json:"-"`             // restaurant_tables.created_at
	UpdatedAt    time.Time `json:"-"`             // restaurant_tables.updated_at
}
