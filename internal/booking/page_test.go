package booking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%02d", i+1)
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := numbered(37)

	p := Paginate(items, 1, 15)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 37, p.TotalItems)
	assert.Len(t, p.Items, 15)
	assert.Equal(t, "item-01", p.Items[0])

	p = Paginate(items, 3, 15)
	assert.Len(t, p.Items, 7)
	assert.Equal(t, "item-31", p.Items[0])
	assert.Equal(t, "item-37", p.Items[6])

	// out-of-range pages clamp to [1, totalPages]
	p = Paginate(items, 0, 15)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, "item-01", p.Items[0])
	p = Paginate(items, 4, 15)
	assert.Equal(t, 3, p.Current)
	assert.Len(t, p.Items, 7)

	// empty source still reports one (empty) page
	p = Paginate([]string{}, 2, 15)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
}

func TestPagerRetainOrReset(t *testing.T) {
	pg := NewPager(10)
	pg.SetPage(3)

	// 35 items: page 3 stays valid and is retained
	p := Apply(pg, numbered(35))
	assert.Equal(t, 3, p.Current)
	assert.Equal(t, 3, pg.Current)

	// narrowing the filter to 12 items pushes page 3 out of range -> reset
	p = Apply(pg, numbered(12))
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, 1, pg.Current)

	// widening again keeps page 1
	p = Apply(pg, numbered(35))
	assert.Equal(t, 1, p.Current)
}

func TestMatchText(t *testing.T) {
	assert.True(t, MatchText("salle a", "Salle A", "Grande salle premium"))
	assert.True(t, MatchText("PREMIUM", "Salle A", "Grande salle premium"))
	assert.True(t, MatchText("  ", "anything"))
	assert.True(t, MatchText("", "anything"))
	assert.False(t, MatchText("salle b", "Salle A"))
	assert.False(t, MatchText("x", ""))
}

func TestFilterComposition(t *testing.T) {
	type row struct {
		Room   string
		Status Status
	}
	rows := []row{
		{"Salle A", StatusConfirmed},
		{"Salle B", StatusConfirmed},
		{"Salle A", StatusPending},
		{"Salle A premium", StatusConfirmed},
	}
	got := Filter(rows,
		func(r row) bool { return MatchText("Salle A", r.Room) },
		func(r row) bool { return r.Status == StatusConfirmed },
	)
	// both predicates must hold, source order preserved
	assert.Equal(t, []row{
		{"Salle A", StatusConfirmed},
		{"Salle A premium", StatusConfirmed},
	}, got)

	// no predicates is a pass-through
	assert.Len(t, Filter(rows), 4)
}
