package model

// RoomType is the closed room-type vocabulary used at every boundary.
type RoomType string

const (
	Single RoomType = "Single"
	Double RoomType = "Double"
	Suite  RoomType = "Suite"
)

// RoomTypes lists the types in canonical order. Allocation and pricing walk
// this slice so results are deterministic across operations.
var RoomTypes = []RoomType{Single, Double, Suite}

func (t RoomType) Valid() bool {
	switch t {
	case Single, Double, Suite:
		return true
	}
	return false
}

// Room is one inventory record. Rooms are provisioned externally (the migrate
// job); the service only ever flips the availability flag.
type Room struct {
	RoomID    string   `json:"roomId" bson:"_id"`
	Type      RoomType `json:"roomType" bson:"room_type"`
	Available bool     `json:"roomIsAvailable" bson:"available"`
}
