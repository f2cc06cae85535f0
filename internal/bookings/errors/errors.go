package errors

import (
	"errors"
	"fmt"
	"strings"

	"bonzai/pkg/model"
)

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrRoomNotFound = errors.New("room not found in inventory")

	ErrInvalidDateRange = errors.New("check-out must be after check-in")
)

// Shortfall reports one room type the inventory could not satisfy.
type Shortfall struct {
	RoomType  model.RoomType
	Requested int
	Available int
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s: requested %d, available %d", s.RoomType, s.Requested, s.Available)
}

// InsufficientInventoryError carries every deficient room type from a failed
// allocation. Allocation is all-or-nothing, so no partial assignment
// accompanies this error.
type InsufficientInventoryError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientInventoryError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, s.String())
	}
	return "not enough available rooms: " + strings.Join(parts, "; ")
}

// Details renders the shortfalls as an error-response detail map.
func (e *InsufficientInventoryError) Details() map[string]any {
	details := make(map[string]any, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		details[string(s.RoomType)] = map[string]any{
			"requested": s.Requested,
			"available": s.Available,
		}
	}
	return details
}
