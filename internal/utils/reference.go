package utils

import "github.com/google/uuid"

// NewBookingReference returns the public identifier handed to clients
// and event consumers for a booking. UUIDv4, so references leak no
// information about booking volume the way sequential IDs would.
func NewBookingReference() string {
	return uuid.NewString()
}
