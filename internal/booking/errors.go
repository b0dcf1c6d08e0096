// Package booking contains the pure domain logic of the room rental
// system: clock arithmetic and slot generation, the availability
// checker, the price calculator, the booking draft state machine and
// the generic list filtering/pagination helpers. Nothing in this
// package performs I/O; all failures are reported through the typed
// errors below so that handlers can map them onto HTTP responses
// without string matching.
package booking

import "errors"

// ErrInvalidRange is returned by GenerateTimeSlots when the opening
// hour is not strictly before the closing hour or the step is not a
// positive number of minutes.
var ErrInvalidRange = errors.New("invalid time range")

// ErrInvalidTimeFormat is returned when a clock string is not a valid
// "HH:MM" value, or when an end time does not come after its start.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ErrInvalidAmount is returned by FormatCurrency for NaN or infinite
// amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidDuration is returned by Quote when the candidate slot has
// a non-positive duration.
var ErrInvalidDuration = errors.New("invalid duration")

// ErrUnknownConsumable is returned by Quote when a selection references
// a consumable that does not exist in the catalogue.
var ErrUnknownConsumable = errors.New("unknown consumable")

// ErrInvalidQuantity is returned by Quote when a selection carries a
// quantity of zero or less.
var ErrInvalidQuantity = errors.New("invalid quantity")

// ErrSlotConflict is returned when a candidate slot overlaps an
// existing pending or confirmed booking for the same room and date.
var ErrSlotConflict = errors.New("slot conflict")

// ErrGuestCount is returned when the number of guests is below one or
// above the room capacity.
var ErrGuestCount = errors.New("guest count out of range")

// ErrIncompleteSlot is returned by the draft when advancing past slot
// selection before date, start and end are all set.
var ErrIncompleteSlot = errors.New("incomplete slot")

// ErrBadTransition is returned by the draft and the status enum when a
// transition is not allowed from the current state.
var ErrBadTransition = errors.New("transition not allowed")

// ErrSubmitInFlight is returned by Draft.Submit while another
// submission on the same draft has not finished yet.
var ErrSubmitInFlight = errors.New("submission already in flight")
