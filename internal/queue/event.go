// Package queue defines the message payloads exchanged over the
// broker and the background consumer that journals them.
package queue

// Queue names. Durable queues on the default exchange, routing key =
// queue name.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingCreatedEvent is published when a booking is persisted. It
// carries enough for downstream consumers (notifications, analytics,
// the journal) to act without querying the primary database.
type BookingCreatedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	Reference       string `json:"reference"`
	UserID          uint64 `json:"user_id"`
	RoomID          uint64 `json:"room_id"`
	RoomName        string `json:"room_name"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	NumberOfGuests  int    `json:"number_of_guests"`
	TotalPriceCents int64  `json:"total_price_cents"`
	CreatedAt       string `json:"created_at"`
}

// BookingCancelledEvent is published when a customer cancels a
// booking, freeing its slot.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	Reference   string `json:"reference"`
	UserID      uint64 `json:"user_id"`
	RoomID      uint64 `json:"room_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	CancelledAt string `json:"cancelled_at"`
}
