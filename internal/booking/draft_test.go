package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom() DraftRoom {
	return DraftRoom{ID: 7, Capacity: 8, Basis: Hourly(5000)}
}

func okSubmitter(res SubmitResult) Submitter {
	return SubmitterFunc(func(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error) {
		res.TotalCents = quote.TotalCents
		return res, nil
	})
}

func TestDraftHappyPath(t *testing.T) {
	d := NewDraft(testRoom(), nil, testCatalogue(), okSubmitter(SubmitResult{BookingID: 42, Reference: "ref-42"}))
	assert.Equal(t, StateSelectingSlot, d.State())

	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	require.NoError(t, d.Next())
	assert.Equal(t, StateSelectingDetails, d.State())

	require.NoError(t, d.SetDetails(4, "birthday"))
	require.NoError(t, d.SetConsumables([]Selection{{ConsumableID: 1, Quantity: 2}}))
	require.NoError(t, d.Next())
	assert.Equal(t, StateConfirming, d.State())

	res, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(42), res.BookingID)
	assert.Equal(t, int64(11200), res.TotalCents) // 100.00 room + 2x6.00
	assert.Equal(t, StateSubmitted, d.State())
}

func TestDraftSlotGuard(t *testing.T) {
	existing := []BookedSlot{
		{Reference: "bk-9", Slot: mustSlot(t, "2026-09-01", "15:00", "17:00"), Status: StatusConfirmed},
	}
	d := NewDraft(testRoom(), existing, testCatalogue(), okSubmitter(SubmitResult{}))

	// advancing without a slot fails
	assert.ErrorIs(t, d.Next(), ErrIncompleteSlot)

	// an unavailable slot keeps the draft on the slot step
	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	err := d.Next()
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, StateSelectingSlot, d.State())

	// picking a free slot unblocks
	require.NoError(t, d.SelectSlot("2026-09-01", "12:00", "15:00"))
	require.NoError(t, d.Next())
	assert.Equal(t, StateSelectingDetails, d.State())
}

func TestDraftGuestGuard(t *testing.T) {
	d := NewDraft(testRoom(), nil, testCatalogue(), okSubmitter(SubmitResult{}))
	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	require.NoError(t, d.Next())

	for _, guests := range []int{0, -1, 9} {
		require.NoError(t, d.SetDetails(guests, ""))
		assert.ErrorIs(t, d.Next(), ErrGuestCount, "guests=%d", guests)
		assert.Equal(t, StateSelectingDetails, d.State())
	}
	require.NoError(t, d.SetDetails(8, ""))
	require.NoError(t, d.Next())
	assert.Equal(t, StateConfirming, d.State())
}

func TestDraftBackKeepsFields(t *testing.T) {
	d := NewDraft(testRoom(), nil, testCatalogue(), okSubmitter(SubmitResult{BookingID: 1}))
	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	require.NoError(t, d.Next())
	require.NoError(t, d.SetDetails(3, "projector please"))
	require.NoError(t, d.Next())

	// back to the start and forward again without re-entering anything
	require.NoError(t, d.Back())
	require.NoError(t, d.Back())
	assert.Equal(t, StateSelectingSlot, d.State())
	require.NoError(t, d.Next())
	require.NoError(t, d.Next())
	assert.Equal(t, StateConfirming, d.State())

	// backing out of the first step is rejected
	require.NoError(t, d.Back())
	require.NoError(t, d.Back())
	assert.ErrorIs(t, d.Back(), ErrBadTransition)
}

func TestDraftSubmitFailureReturnsToConfirming(t *testing.T) {
	boom := errors.New("slot taken at commit")
	calls := 0
	sub := SubmitterFunc(func(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error) {
		calls++
		if calls == 1 {
			return SubmitResult{}, boom
		}
		return SubmitResult{BookingID: 5, Reference: "ref-5", TotalCents: quote.TotalCents}, nil
	})
	d := NewDraft(testRoom(), nil, testCatalogue(), sub)
	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	require.NoError(t, d.Next())
	require.NoError(t, d.SetDetails(2, ""))
	require.NoError(t, d.Next())

	_, err := d.Submit(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateConfirming, d.State())

	res, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), res.BookingID)
}

func TestDraftDoubleSubmitIsNoop(t *testing.T) {
	calls := 0
	sub := SubmitterFunc(func(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error) {
		calls++
		return SubmitResult{BookingID: 11, Reference: "ref-11", TotalCents: quote.TotalCents}, nil
	})
	d := NewDraft(testRoom(), nil, testCatalogue(), sub)
	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	require.NoError(t, d.Next())
	require.NoError(t, d.SetDetails(2, ""))
	require.NoError(t, d.Next())

	first, err := d.Submit(context.Background())
	require.NoError(t, err)
	second, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestDraftSingleOutstandingSubmission(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sub := SubmitterFunc(func(ctx context.Context, room DraftRoom, slot Slot, guests int, items []Selection, special string, quote Quote) (SubmitResult, error) {
		close(entered)
		<-release
		return SubmitResult{BookingID: 3, TotalCents: quote.TotalCents}, nil
	})
	d := NewDraft(testRoom(), nil, testCatalogue(), sub)
	require.NoError(t, d.SelectSlot("2026-09-01", "14:00", "16:00"))
	require.NoError(t, d.Next())
	require.NoError(t, d.SetDetails(2, ""))
	require.NoError(t, d.Next())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := d.Submit(context.Background())
		assert.NoError(t, err)
	}()

	<-entered
	_, err := d.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	close(release)
	wg.Wait()

	res, err := d.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.BookingID)
}

func TestDraftRejectsOutOfOrderCalls(t *testing.T) {
	d := NewDraft(testRoom(), nil, testCatalogue(), okSubmitter(SubmitResult{}))
	assert.ErrorIs(t, d.SetDetails(2, ""), ErrBadTransition)
	_, err := d.Quote()
	assert.ErrorIs(t, err, ErrBadTransition)
	_, err = d.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBadTransition)

	assert.ErrorIs(t, d.SelectSlot("2026-09-01", "bad", "16:00"), ErrInvalidTimeFormat)
	assert.ErrorIs(t, d.SelectSlot("2026-09-01", "16:00", "14:00"), ErrIncompleteSlot)
	assert.ErrorIs(t, d.SelectSlot("", "14:00", "16:00"), ErrIncompleteSlot)
}
