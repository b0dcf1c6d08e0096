package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogue() Catalogue {
	return Catalogue{
		1: {ID: 1, Name: "Popcorn XL", PriceCents: 600, IsAvailable: true},
		2: {ID: 2, Name: "Soda", PriceCents: 450, IsAvailable: true},
		3: {ID: 3, Name: "Menu Duo", PriceCents: 1990, IsAvailable: true},
	}
}

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestComputeQuoteHourly(t *testing.T) {
	// 50/h for 2h plus 2x popcorn@6 and 1x soda@4.50 -> 116.00
	q, err := ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "16:00"),
		[]Selection{{ConsumableID: 1, Quantity: 2}, {ConsumableID: 2, Quantity: 1}}, testCatalogue())
	require.NoError(t, err)
	assert.Equal(t, 120, q.Minutes)
	assert.Equal(t, int64(10000), q.RoomCents)
	assert.Equal(t, int64(11650), q.TotalCents)
	assert.Equal(t, "116.50 €", q.Total())
}

func TestComputeQuoteFractionalHours(t *testing.T) {
	// 1.5h at 50/h -> 75.00, no consumables
	q, err := ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "15:30"), nil, testCatalogue())
	require.NoError(t, err)
	assert.Equal(t, int64(7500), q.RoomCents)
	assert.Equal(t, int64(7500), q.TotalCents)
}

func TestComputeQuoteFormulaBasis(t *testing.T) {
	// formula bookings ignore the duration for the room part
	q, err := ComputeQuote(Formula(12900), mustClock(t, "14:00"), mustClock(t, "17:00"),
		[]Selection{{ConsumableID: 3, Quantity: 1}}, testCatalogue())
	require.NoError(t, err)
	assert.Equal(t, int64(12900), q.RoomCents)
	assert.Equal(t, int64(14890), q.TotalCents)
}

func TestComputeQuoteOrderIndependent(t *testing.T) {
	cat := testCatalogue()
	a := []Selection{{ConsumableID: 1, Quantity: 2}, {ConsumableID: 2, Quantity: 1}, {ConsumableID: 3, Quantity: 1}}
	b := []Selection{{ConsumableID: 3, Quantity: 1}, {ConsumableID: 1, Quantity: 2}, {ConsumableID: 2, Quantity: 1}}
	qa, err := ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "16:00"), a, cat)
	require.NoError(t, err)
	qb, err := ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "16:00"), b, cat)
	require.NoError(t, err)
	assert.Equal(t, qa.TotalCents, qb.TotalCents)
}

func TestComputeQuoteErrors(t *testing.T) {
	cat := testCatalogue()

	_, err := ComputeQuote(Hourly(5000), mustClock(t, "16:00"), mustClock(t, "14:00"), nil, cat)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "14:00"), nil, cat)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "16:00"),
		[]Selection{{ConsumableID: 99, Quantity: 1}}, cat)
	assert.ErrorIs(t, err, ErrUnknownConsumable)

	_, err = ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "16:00"),
		[]Selection{{ConsumableID: 1, Quantity: 0}}, cat)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeQuote(Hourly(5000), mustClock(t, "14:00"), mustClock(t, "16:00"),
		[]Selection{{ConsumableID: 1, Quantity: -2}}, cat)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestComputeQuoteRounding(t *testing.T) {
	// 40 minutes at 10.00/h is 666.67 cents, rounded to the nearest cent
	q, err := ComputeQuote(Hourly(1000), mustClock(t, "14:00"), mustClock(t, "14:40"), nil, testCatalogue())
	require.NoError(t, err)
	assert.Equal(t, int64(667), q.RoomCents)
}
