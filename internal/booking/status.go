package booking

import "fmt"

// Status is the canonical booking status vocabulary. The values are
// stored and serialized verbatim, so they stay lowercase.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Blocking reports whether a booking in this status occupies its slot.
// Only pending and confirmed bookings count for availability; cancelled
// and completed ones do not block new reservations.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransition reports whether a booking may move from s to next.
// Pending bookings can be confirmed or cancelled, confirmed ones can be
// completed or cancelled. Completed bookings are immutable and
// cancelled is terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Transition validates the move from s to next and returns next, or
// ErrBadTransition wrapped with both values.
func (s Status) Transition(next Status) (Status, error) {
	if !next.Valid() {
		return s, fmt.Errorf("%w: unknown status %q", ErrBadTransition, next)
	}
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrBadTransition, s, next)
	}
	return next, nil
}
