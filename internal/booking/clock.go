package booking

import (
	"fmt"
	"math"
)

// Clock is a time of day expressed as minutes since midnight. Slots
// and bookings never cross midnight, so a bare minute count keeps the
// interval arithmetic trivial (same idiom as the agenda in the
// original reservation service: parse once, compare integers).
type Clock int

// ParseClock parses a strict "HH:MM" string into a Clock. Both fields
// must be two digits; hours run 00-23 and minutes 00-59. Any other
// shape yields ErrInvalidTimeFormat.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return Clock(h*60 + m), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// String renders the clock back into "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Minutes returns the minute-of-day value as a plain int.
func (c Clock) Minutes() int { return int(c) }

// GenerateTimeSlots produces the ordered list of candidate start times
// from startHour, stepping by intervalMinutes. Only starts whose full
// interval ends by endHour are emitted, so a slot never runs past the
// closing hour. ErrInvalidRange is returned when startHour >= endHour,
// either hour is outside 0-24, or the interval is not positive.
func GenerateTimeSlots(startHour, endHour, intervalMinutes int) ([]string, error) {
	if startHour >= endHour || intervalMinutes <= 0 {
		return nil, ErrInvalidRange
	}
	if startHour < 0 || endHour > 24 {
		return nil, ErrInvalidRange
	}
	var slots []string
	for m := startHour * 60; m+intervalMinutes <= endHour*60; m += intervalMinutes {
		slots = append(slots, Clock(m).String())
	}
	return slots, nil
}

// Duration is the elapsed time between two clocks, split into whole
// hours and leftover minutes.
type Duration struct {
	Hours   int
	Minutes int
}

// TotalMinutes returns the duration as a single minute count.
func (d Duration) TotalMinutes() int { return d.Hours*60 + d.Minutes }

// String renders a compact "2h30" form; whole hours drop the minute
// part ("2h") and sub-hour durations drop the hour part ("45min").
func (d Duration) String() string {
	switch {
	case d.Hours == 0:
		return fmt.Sprintf("%dmin", d.Minutes)
	case d.Minutes == 0:
		return fmt.Sprintf("%dh", d.Hours)
	default:
		return fmt.Sprintf("%dh%02d", d.Hours, d.Minutes)
	}
}

// CalculateDuration parses two "HH:MM" strings and returns the elapsed
// time between them. It fails with ErrInvalidTimeFormat when either
// string is malformed or when end is not strictly after start.
func CalculateDuration(start, end string) (Duration, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Duration{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Duration{}, err
	}
	if e <= s {
		return Duration{}, fmt.Errorf("%w: end %q not after start %q", ErrInvalidTimeFormat, end, start)
	}
	total := int(e - s)
	return Duration{Hours: total / 60, Minutes: total % 60}, nil
}

// FormatCurrency renders an amount in euros with two decimals, e.g.
// "116.00 €". Only non-finite amounts fail with ErrInvalidAmount;
// negatives format with their sign, as in a refund line.
func FormatCurrency(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrInvalidAmount
	}
	return fmt.Sprintf("%.2f €", amount), nil
}

// FormatCents is the integer fast path for money already held in
// cents, which is how every price in this module is stored.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d €", sign, cents/100, cents%100)
}
