package model

// Formula is a pre-packaged seating/price bundle offered as an
// alternative to hourly room pricing. Static configuration: bookings
// reference a formula by ID only, the bundle itself is never copied
// into the booking row beyond the captured price.
type Formula struct {
	ID             uint64 // formulas.id
	Name           string // formulas.name
	Seats          int    // formulas.seats
	BasePriceCents int64  // formulas.base_price_cents
	Color          string // formulas.color (display metadata)
	Icon           string // formulas.icon (display metadata)
}
