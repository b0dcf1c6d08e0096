// Package repository holds the data access layer: thin structs over
// *sql.DB with transactional variants for multi-step writes. This file
// defines sentinel errors shared across repositories so handlers can
// map failure scenarios onto HTTP responses without string matching.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of
// conflicting state: a candidate slot overlapping an existing booking,
// deleting a room that still has pending or confirmed bookings, or an
// illegal status transition. Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrRoomNotFound is returned when a room lookup fails.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrConsumableNotFound is returned when a consumable lookup fails.
var ErrConsumableNotFound = errors.New("consumable not found")

// ErrFormulaNotFound is returned when a formula lookup fails.
var ErrFormulaNotFound = errors.New("formula not found")

// ErrImmutable is returned when mutating a completed booking, which
// the domain treats as frozen history.
var ErrImmutable = errors.New("booking immutable")
