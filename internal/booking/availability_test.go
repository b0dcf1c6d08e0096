package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, date, start, end string) Slot {
	t.Helper()
	s, err := ParseClock(start)
	require.NoError(t, err)
	e, err := ParseClock(end)
	require.NoError(t, err)
	return Slot{Date: date, Start: s, End: e}
}

func TestCheckSlotOverlap(t *testing.T) {
	existing := []BookedSlot{
		{Reference: "bk-1", Slot: mustSlot(t, "2026-09-01", "14:00", "16:00"), Status: StatusConfirmed},
		{Reference: "bk-2", Slot: mustSlot(t, "2026-09-01", "18:00", "20:00"), Status: StatusPending},
		{Reference: "bk-3", Slot: mustSlot(t, "2026-09-01", "10:00", "12:00"), Status: StatusCancelled},
		{Reference: "bk-4", Slot: mustSlot(t, "2026-09-02", "14:00", "16:00"), Status: StatusConfirmed},
	}

	cases := []struct {
		name      string
		candidate Slot
		available bool
		conflict  string
	}{
		{"full overlap", mustSlot(t, "2026-09-01", "14:00", "16:00"), false, "bk-1"},
		{"partial head", mustSlot(t, "2026-09-01", "13:00", "15:00"), false, "bk-1"},
		{"partial tail", mustSlot(t, "2026-09-01", "15:30", "17:00"), false, "bk-1"},
		{"contained", mustSlot(t, "2026-09-01", "14:30", "15:30"), false, "bk-1"},
		{"containing", mustSlot(t, "2026-09-01", "13:00", "17:00"), false, "bk-1"},
		{"pending blocks too", mustSlot(t, "2026-09-01", "19:00", "21:00"), false, "bk-2"},
		{"back to back after", mustSlot(t, "2026-09-01", "16:00", "18:00"), true, ""},
		{"back to back before", mustSlot(t, "2026-09-01", "12:00", "14:00"), true, ""},
		{"cancelled ignored", mustSlot(t, "2026-09-01", "10:30", "11:30"), true, ""},
		{"other date ignored", mustSlot(t, "2026-09-03", "14:00", "16:00"), true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckSlot(existing, tc.candidate)
			assert.Equal(t, tc.available, got.Available)
			if tc.available {
				assert.Nil(t, got.Conflict)
			} else {
				require.NotNil(t, got.Conflict)
				assert.Equal(t, tc.conflict, got.Conflict.Reference)
			}
		})
	}
}

func TestCheckSlotSymmetry(t *testing.T) {
	// if A blocks B then B given A must also be unavailable
	a := mustSlot(t, "2026-09-01", "14:00", "16:00")
	b := mustSlot(t, "2026-09-01", "15:00", "17:00")
	assert.False(t, CheckSlot([]BookedSlot{{Reference: "a", Slot: a, Status: StatusPending}}, b).Available)
	assert.False(t, CheckSlot([]BookedSlot{{Reference: "b", Slot: b, Status: StatusPending}}, a).Available)
}

func TestCheckSlotEmpty(t *testing.T) {
	got := CheckSlot(nil, mustSlot(t, "2026-09-01", "14:00", "16:00"))
	assert.True(t, got.Available)
}
