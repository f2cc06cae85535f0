package model

import "time"

// Booking lifecycle event types published to the booking-events topic.
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is the payload the reconciler consumes to run targeted
// inventory checks. ReleasedRoomIDs and OccupiedRoomIDs describe the
// inventory delta the operation applied (or attempted to apply).
type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"bookingId"`
	ReleasedRoomIDs []string  `json:"releasedRoomIds,omitempty"`
	OccupiedRoomIDs []string  `json:"occupiedRoomIds,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}
