package model

import "time"

// RoomCounts is the requested room mix. Field spelling follows the external
// contract (lowercase-leading numOf*), applied uniformly across create,
// update and list.
type RoomCounts struct {
	NumOfSingleRooms int `json:"numOfSingleRooms" bson:"num_of_single_rooms" validate:"min=0"`
	NumOfDoubleRooms int `json:"numOfDoubleRooms" bson:"num_of_double_rooms" validate:"min=0"`
	NumOfSuiteRooms  int `json:"numOfSuiteRooms" bson:"num_of_suite_rooms" validate:"min=0"`
}

func (c RoomCounts) Of(t RoomType) int {
	switch t {
	case Single:
		return c.NumOfSingleRooms
	case Double:
		return c.NumOfDoubleRooms
	case Suite:
		return c.NumOfSuiteRooms
	}
	return 0
}

// Total is the number of rooms requested across all types.
func (c RoomCounts) Total() int {
	return c.NumOfSingleRooms + c.NumOfDoubleRooms + c.NumOfSuiteRooms
}

type Booking struct {
	BookingID  string     `json:"bookingId" bson:"_id"`
	Name       string     `json:"name" bson:"name"`
	Email      string     `json:"email" bson:"email"`
	Guests     int        `json:"guests" bson:"guests"`
	RoomCounts RoomCounts `json:"roomCounts" bson:"room_counts"`
	CheckIn    string     `json:"checkIn" bson:"check_in"`
	CheckOut   string     `json:"checkOut" bson:"check_out"`
	RoomIDs    []string   `json:"roomIds" bson:"room_ids"`
	TotalPrice int        `json:"totalPrice" bson:"total_price"`
	CreatedAt  time.Time  `json:"createdAt" bson:"created_at"`
}

// CreateBookingRequest is the create payload. Struct tags cover per-field
// shape; cross-field invariants (guests vs beds, date ordering) are checked
// by the booking validator.
type CreateBookingRequest struct {
	Name             string `json:"name" validate:"required,min=2,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Guests           int    `json:"guests" validate:"required,min=1"`
	NumOfSingleRooms int    `json:"numOfSingleRooms" validate:"min=0"`
	NumOfDoubleRooms int    `json:"numOfDoubleRooms" validate:"min=0"`
	NumOfSuiteRooms  int    `json:"numOfSuiteRooms" validate:"min=0"`
	CheckIn          string `json:"checkIn" validate:"required,calendardate"`
	CheckOut         string `json:"checkOut" validate:"required,calendardate"`
}

func (r *CreateBookingRequest) Counts() RoomCounts {
	return RoomCounts{
		NumOfSingleRooms: r.NumOfSingleRooms,
		NumOfDoubleRooms: r.NumOfDoubleRooms,
		NumOfSuiteRooms:  r.NumOfSuiteRooms,
	}
}

// UpdateBookingRequest is the update payload: the create shape minus
// name/email, which are immutable after creation.
type UpdateBookingRequest struct {
	Guests           int    `json:"guests" validate:"required,min=1"`
	NumOfSingleRooms int    `json:"numOfSingleRooms" validate:"min=0"`
	NumOfDoubleRooms int    `json:"numOfDoubleRooms" validate:"min=0"`
	NumOfSuiteRooms  int    `json:"numOfSuiteRooms" validate:"min=0"`
	CheckIn          string `json:"checkIn" validate:"required,calendardate"`
	CheckOut         string `json:"checkOut" validate:"required,calendardate"`
}

func (r *UpdateBookingRequest) Counts() RoomCounts {
	return RoomCounts{
		NumOfSingleRooms: r.NumOfSingleRooms,
		NumOfDoubleRooms: r.NumOfDoubleRooms,
		NumOfSuiteRooms:  r.NumOfSuiteRooms,
	}
}

// CreateBookingResponse mirrors the external contract for a successful create.
type CreateBookingResponse struct {
	BookingID  string   `json:"bookingId"`
	RoomIDs    []string `json:"roomIds"`
	TotalPrice int      `json:"totalPrice"`
}

// UpdatedAttributes is returned from a successful update.
type UpdatedAttributes struct {
	Guests     int `json:"guests"`
	RoomCounts
	CheckIn    string   `json:"checkIn"`
	CheckOut   string   `json:"checkOut"`
	RoomIDs    []string `json:"roomIds"`
	TotalPrice int      `json:"totalPrice"`
}

// BookingSummary is the list projection. Zero room counts are omitted so the
// serialized record stays sparse.
type BookingSummary struct {
	BookingID        string `json:"bookingId"`
	Name             string `json:"name"`
	Guests           int    `json:"guests"`
	CheckIn          string `json:"checkIn"`
	CheckOut         string `json:"checkOut"`
	NumOfSingleRooms int    `json:"numOfSingleRooms,omitempty"`
	NumOfDoubleRooms int    `json:"numOfDoubleRooms,omitempty"`
	NumOfSuiteRooms  int    `json:"numOfSuiteRooms,omitempty"`
}

func (b *Booking) Summary() BookingSummary {
	return BookingSummary{
		BookingID:        b.BookingID,
		Name:             b.Name,
		Guests:           b.Guests,
		CheckIn:          b.CheckIn,
		CheckOut:         b.CheckOut,
		NumOfSingleRooms: b.RoomCounts.NumOfSingleRooms,
		NumOfDoubleRooms: b.RoomCounts.NumOfDoubleRooms,
		NumOfSuiteRooms:  b.RoomCounts.NumOfSuiteRooms,
	}
}

// AllocationResult is the outcome of planning a room mix against held rooms
// and an availability snapshot. ToRelease and ToOccupy are disjoint by
// construction.
type AllocationResult struct {
	AssignedRoomIDs []string
	ToRelease       []string
	ToOccupy        []string
}
