package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-room-booking/internal/booking"
)

func TestResultConstructors(t *testing.T) {
	s := Success([]int{1, 2, 3})
	assert.Equal(t, StateSuccess, s.State)
	assert.Equal(t, []int{1, 2, 3}, s.Data)
	assert.Empty(t, s.Message)

	e := Empty[[]int]()
	assert.Equal(t, StateEmpty, e.State)
	assert.Nil(t, e.Data)

	f := Failure[[]int]("boom")
	assert.Equal(t, StateError, f.State)
	assert.Equal(t, "boom", f.Message)
}

func TestResultMatchDispatchesExactlyOnce(t *testing.T) {
	cases := []struct {
		name string
		in   Result[string]
		want string
	}{
		{"idle", Result[string]{State: StateIdle}, "idle"},
		{"loading", Result[string]{State: StateLoading}, "loading"},
		{"success", Success("payload"), "success:payload"},
		{"empty", Empty[string](), "empty"},
		{"error", Failure[string]("nope"), "error:nope"},
		{"unknown state falls through to error", Result[string]{State: "???"}, "error:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls []string
			tc.in.Match(
				func() { calls = append(calls, "idle") },
				func() { calls = append(calls, "loading") },
				func(v string) { calls = append(calls, "success:"+v) },
				func() { calls = append(calls, "empty") },
				func(msg string) { calls = append(calls, "error:"+msg) },
			)
			require.Len(t, calls, 1)
			assert.Equal(t, tc.want, calls[0])
		})
	}
}

func TestPageResult(t *testing.T) {
	empty := pageResult(booking.Paginate([]string{}, 1, 10))
	assert.Equal(t, StateEmpty, empty.State)

	items := []string{"a", "b", "c"}
	full := pageResult(booking.Paginate(items, 1, 2))
	require.Equal(t, StateSuccess, full.State)
	assert.Equal(t, []string{"a", "b"}, full.Data.Items)
	assert.Equal(t, 1, full.Data.Page)
	assert.Equal(t, 2, full.Data.TotalPages)
	assert.Equal(t, 3, full.Data.TotalItems)
}

func TestValidDate(t *testing.T) {
	assert.True(t, validDate("2026-08-31"))
	assert.True(t, validDate("1999-01-01"))
	assert.False(t, validDate(""))
	assert.False(t, validDate("2026-8-31"))
	assert.False(t, validDate("2026/08/31"))
	assert.False(t, validDate("26-08-2031x"))
	assert.False(t, validDate("abcd-ef-gh"))

	// well-shaped but impossible dates
	assert.False(t, validDate("2026-02-30"))
	assert.False(t, validDate("2026-13-01"))
	assert.False(t, validDate("2026-00-10"))
}
