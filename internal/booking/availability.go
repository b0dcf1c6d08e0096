package booking

// Slot is a candidate (date, start, end) interval for a room. The
// date is an ISO "YYYY-MM-DD" string; start and end are minute-of-day
// clocks with end strictly after start. Intervals are half-open
// [start, end): a booking ending at 16:00 does not collide with one
// starting at 16:00.
type Slot struct {
	Date  string
	Start Clock
	End   Clock
}

// Overlaps applies the half-open overlap rule to two slots on the same
// date. Slots on different dates never overlap.
func (s Slot) Overlaps(other Slot) bool {
	if s.Date != other.Date {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// BookedSlot is an existing booking's interval together with the
// fields the checker needs: its reference for conflict reporting and
// its status, since only pending and confirmed bookings block a slot.
type BookedSlot struct {
	Reference string
	Slot      Slot
	Status    Status
}

// Availability is the checker's verdict. Conflict is nil when the
// slot is free; otherwise it points at the first blocking booking
// found, in source order.
type Availability struct {
	Available bool
	Conflict  *BookedSlot
}

// CheckSlot decides whether candidate can be booked given the room's
// existing bookings. It scans the list once, ignoring bookings on
// other dates and bookings whose status does not block the slot.
// This is the optimistic client-facing pre-check; the repository runs
// the same rule again inside the booking transaction.
func CheckSlot(existing []BookedSlot, candidate Slot) Availability {
	for i := range existing {
		b := &existing[i]
		if !b.Status.Blocking() {
			continue
		}
		if candidate.Overlaps(b.Slot) {
			return Availability{Available: false, Conflict: b}
		}
	}
	return Availability{Available: true}
}
