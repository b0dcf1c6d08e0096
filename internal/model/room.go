package model

import "time"

// Room represents a rentable private cinema room. Rooms are owned by
// the administrative domain and mutated only through admin operations.
// A room is never deleted while pending or confirmed bookings still
// reference it; the repository enforces that with ErrConflict.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – display name (e.g. "Salle A").
//  Description       – optional marketing description.
//  Capacity          – maximum number of guests (positive).
//  PricePerHourCents – hourly rate in cents (non-negative).
//  IsAvailable       – whether the room can currently be booked.
//  Rating            – average rating, 0 when unrated.
//  Equipment         – set of equipment tags (screen, sound, ...).
//  ImageURL          – optional illustration URL.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Room struct {
	ID                uint64    // rooms.id
	Name              string    // rooms.name
	Description       *string   // rooms.description (nullable)
	Capacity          int       // rooms.capacity
	PricePerHourCents int64     // rooms.price_per_hour_cents
	IsAvailable       bool      // rooms.is_available
	Rating            float64   // rooms.rating
	Equipment         []string  // rooms.equipment (comma-separated column)
	ImageURL          *string   // rooms.image_url (nullable)
	CreatedAt         time.Time // rooms.created_at
	UpdatedAt         time.Time // rooms.updated_at
}
