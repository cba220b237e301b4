// Package repository implements parameterized-SQL persistence for the
// reservation system on MySQL.  This file defines sentinel errors that
// are reused across repositories so higher layers can distinguish
// failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrTableNotFound is returned when a restaurant table id does not
// exist or the table is inactive.
var ErrTableNotFound = errors.New("table not found")

// ErrReservationNotFound is returned when a reservation id does not
// exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned by the guarded reservation insert when a
// concurrent booking took the slot between selection and insert.  The
// service layer treats it as "the table just became unavailable" and
// retries selection, never surfacing a raw storage error.
var ErrConflict = errors.New("conflicting reservation for this table and slot")

// ErrEmailExists is returned when registering a user with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")
