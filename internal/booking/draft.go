package booking

import (
	"context"
	"fmt"
	"sync"
)

// DraftState is the wizard step a draft is currently in.
type DraftState string

const (
	StateSelectingSlot    DraftState = "selecting_slot"
	StateSelectingDetails DraftState = "selecting_details"
	StateConfirming       DraftState = "confirming"
	StateSubmitted        DraftState = "submitted"
)

// DraftRoom carries the room facts the draft needs for its guards:
// capacity for the guest bound and the price basis for the final
// quote.
type DraftRoom struct {
	ID       uint64
	Capacity int
	Basis    PriceBasis
}

// SubmitResult is what a successful submission hands back: the
// persisted booking's identifiers and the server-computed total.
type SubmitResult struct {
	BookingID  uint64
	Reference  string
	TotalCents int64
}

// Submitter persists a finished draft. Implementations are expected
// to run the authoritative conflict check and return ErrSlotConflict
// (possibly wrapped) when the slot was taken between the optimistic
// check and the commit.
type Submitter interface {
	Submit(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error)

func (f SubmitterFunc) Submit(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error) {
	return f(ctx, room, slot, guests, items, special, quote)
}

// Draft accumulates a candidate booking across the three wizard steps
// (slot selection, guest details, confirmation) and guards every
// forward transition. Fields survive Back/Next navigation untouched.
// A Draft is safe for concurrent use; at most one submission can be
// outstanding, and once a submission succeeds every later Submit is a
// no-op returning the original result.
type Draft struct {
	mu sync.Mutex

	room     DraftRoom
	existing []BookedSlot
	cat      Catalogue
	submit   Submitter

	state   DraftState
	slot    Slot
	slotSet bool
	guests  int
	items   []Selection
	special string

	inFlight bool
	result   *SubmitResult
}

// NewDraft starts a draft for the given room. existing is the room's
// current booking list used by the optimistic availability guard, cat
// the consumable catalogue for pricing, and submit the persistence
// boundary invoked on confirmation.
func NewDraft(room DraftRoom, existing []BookedSlot, cat Catalogue, submit Submitter) *Draft {
	return &Draft{
		room:     room,
		existing: existing,
		cat:      cat,
		submit:   submit,
		state:    StateSelectingSlot,
	}
}

// State returns the current wizard step.
func (d *Draft) State() DraftState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SelectSlot records the candidate interval. Allowed only while on
// the slot selection step. Malformed times fail with
// ErrInvalidTimeFormat; an empty date or end <= start leaves the
// previous selection in place.
func (d *Draft) SelectSlot(date, start, end string) error {
	s, err := ParseClock(start)
	if err != nil {
		return err
	}
	e, err := ParseClock(end)
	if err != nil {
		return err
	}
	if date == "" || e <= s {
		return fmt.Errorf("%w: %s %s-%s", ErrIncompleteSlot, date, start, end)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSelectingSlot {
		return fmt.Errorf("%w: select slot in %s", ErrBadTransition, d.state)
	}
	d.slot = Slot{Date: date, Start: s, End: e}
	d.slotSet = true
	return nil
}

// SetDetails records the guest count and optional special requests.
// Allowed on the details step.
func (d *Draft) SetDetails(guests int, special string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSelectingDetails {
		return fmt.Errorf("%w: set details in %s", ErrBadTransition, d.state)
	}
	d.guests = guests
	d.special = special
	return nil
}

// SetConsumables replaces the selected add-ons. Allowed on the
// details step; quantities are validated at quote time.
func (d *Draft) SetConsumables(items []Selection) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSelectingDetails {
		return fmt.Errorf("%w: set consumables in %s", ErrBadTransition, d.state)
	}
	d.items = append([]Selection(nil), items...)
	return nil
}

// Next advances the wizard one step, running the guard of the current
// step. From slot selection it requires a complete, available slot;
// from the details step it requires the guest count to be within the
// room capacity. Advancing from confirmation goes through Submit.
func (d *Draft) Next() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case StateSelectingSlot:
		if !d.slotSet {
			return ErrIncompleteSlot
		}
		if avail := CheckSlot(d.existing, d.slot); !avail.Available {
			return fmt.Errorf("%w: overlaps booking %s", ErrSlotConflict, avail.Conflict.Reference)
		}
		d.state = StateSelectingDetails
		return nil
	case StateSelectingDetails:
		if d.guests < 1 || d.guests > d.room.Capacity {
			return fmt.Errorf("%w: %d guests, capacity %d", ErrGuestCount, d.guests, d.room.Capacity)
		}
		d.state = StateConfirming
		return nil
	}
	return fmt.Errorf("%w: next in %s", ErrBadTransition, d.state)
}

// Back returns to the previous step without discarding anything.
// Going back from the first step or after submission is rejected.
func (d *Draft) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch d.state {
	case StateSelectingDetails:
		d.state = StateSelectingSlot
	case StateConfirming:
		d.state = StateSelectingDetails
	default:
		return fmt.Errorf("%w: back in %s", ErrBadTransition, d.state)
	}
	return nil
}

// Quote prices the draft as it stands. Available from the details and
// confirmation steps.
func (d *Draft) Quote() (Quote, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateSelectingDetails && d.state != StateConfirming {
		return Quote{}, fmt.Errorf("%w: quote in %s", ErrBadTransition, d.state)
	}
	return ComputeQuote(d.room.Basis, d.slot.Start, d.slot.End, d.items, d.cat)
}

// Submit finalises the draft: it computes the quote and calls the
// Submitter. On failure the draft stays on the confirmation step and
// the error is surfaced. On success the draft moves to Submitted and
// memoizes the result, making any later Submit a no-op that returns
// the same result. While a submission is in flight, concurrent Submit
// calls fail with ErrSubmitInFlight instead of double-submitting.
func (d *Draft) Submit(ctx context.Context) (SubmitResult, error) {
	d.mu.Lock()
	if d.result != nil {
		res := *d.result
		d.mu.Unlock()
		return res, nil
	}
	if d.inFlight {
		d.mu.Unlock()
		return SubmitResult{}, ErrSubmitInFlight
	}
	if d.state != StateConfirming {
		d.mu.Unlock()
		return SubmitResult{}, fmt.Errorf("%w: submit in %s", ErrBadTransition, d.state)
	}
	quote, err := ComputeQuote(d.room.Basis, d.slot.Start, d.slot.End, d.items, d.cat)
	if err != nil {
		d.mu.Unlock()
		return SubmitResult{}, err
	}
	d.inFlight = true
	room, slot, guests, special := d.room, d.slot, d.guests, d.special
	items := append([]Selection(nil), d.items...)
	d.mu.Unlock()

	res, err := d.submit.Submit(ctx, room, slot, guests, items, special, quote)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight = false
	if err != nil {
		// stay on confirmation so the user can fix the slot and retry
		return SubmitResult{}, err
	}
	d.state = StateSubmitted
	d.result = &res
	return res, nil
}
