package model

import "time"

// Booking records a user's rental of a room for a time slot on a
// given calendar date, together with any consumable add-ons. The slot
// interval is half-open: [StartTime, EndTime), so back-to-back
// bookings on the same room are legal. TotalPriceCents is always
// recomputed server-side from the room rate (or formula base price)
// and the consumable lines; client-provided totals are ignored.
//
// Fields:
//  ID              – primary key identifier.
//  Reference       – public UUID handed to clients and event consumers.
//  RoomID          – booked room.
//  UserID          – booking owner.
//  FormulaID       – optional formula bundle the booking is priced on.
//  Date            – calendar date, ISO "YYYY-MM-DD".
//  StartTime       – slot start, "HH:MM".
//  EndTime         – slot end, "HH:MM", strictly after StartTime.
//  NumberOfGuests  – 1..Room.Capacity.
//  Status          – pending | confirmed | cancelled | completed.
//  TotalPriceCents – derived total in cents, non-negative.
//  SpecialRequests – optional free text.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	Reference       string    // bookings.reference
	RoomID          uint64    // bookings.room_id
	UserID          uint64    // bookings.user_id
	FormulaID       *uint64   // bookings.formula_id (nullable)
	Date            string    // bookings.date
	StartTime       string    // bookings.start_time
	EndTime         string    // bookings.end_time
	NumberOfGuests  int       // bookings.number_of_guests
	Status          string    // bookings.status
	TotalPriceCents int64     // bookings.total_price_cents
	SpecialRequests *string   // bookings.special_requests (nullable)
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}

// BookingConsumable is one add-on line attached to a booking. The
// unit price is captured at booking time so later catalogue price
// changes do not rewrite history. Lines keep their insertion order.
type BookingConsumable struct {
	ID             uint64 // booking_consumables.id
	BookingID      uint64 // booking_consumables.booking_id
	ConsumableID   uint64 // booking_consumables.consumable_id
	Quantity       int    // booking_consumables.quantity
	UnitPriceCents int64  // booking_consumables.unit_price_cents
}
