package booking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"09-30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, c.Minutes())
		assert.Equal(t, tc.in, c.String())
	}
}

func TestGenerateTimeSlots(t *testing.T) {
	slots, err := GenerateTimeSlots(10, 12, 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30"}, slots)

	// a slot ending exactly at closing is the last one
	slots, err = GenerateTimeSlots(9, 10, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slots)

	// a start whose interval would cross closing is dropped
	slots, err = GenerateTimeSlots(10, 11, 45)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, slots)

	// an interval wider than the whole window yields no slots
	slots, err = GenerateTimeSlots(22, 23, 240)
	require.NoError(t, err)
	assert.Empty(t, slots)

	for _, bad := range [][3]int{{12, 12, 30}, {14, 10, 30}, {10, 12, 0}, {10, 12, -15}, {-1, 12, 30}, {10, 25, 30}} {
		_, err := GenerateTimeSlots(bad[0], bad[1], bad[2])
		assert.ErrorIs(t, err, ErrInvalidRange, "args %v", bad)
	}
}

func TestCalculateDuration(t *testing.T) {
	d, err := CalculateDuration("14:00", "16:30")
	require.NoError(t, err)
	assert.Equal(t, 150, d.TotalMinutes())
	assert.Equal(t, "2h30", d.String())

	d, err = CalculateDuration("10:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, "2h", d.String())

	d, err = CalculateDuration("10:00", "10:45")
	require.NoError(t, err)
	assert.Equal(t, "45min", d.String())

	_, err = CalculateDuration("16:00", "14:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	_, err = CalculateDuration("14:00", "14:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	_, err = CalculateDuration("nope", "14:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestFormatCurrency(t *testing.T) {
	s, err := FormatCurrency(116)
	require.NoError(t, err)
	assert.Equal(t, "116.00 €", s)

	s, err = FormatCurrency(16.5)
	require.NoError(t, err)
	assert.Equal(t, "16.50 €", s)

	// refund-style amounts keep their sign
	s, err = FormatCurrency(-5.25)
	require.NoError(t, err)
	assert.Equal(t, "-5.25 €", s)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := FormatCurrency(bad)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	assert.Equal(t, "116.50 €", FormatCents(11650))
	assert.Equal(t, "0.05 €", FormatCents(5))
	assert.Equal(t, "-116.50 €", FormatCents(-11650))
}
