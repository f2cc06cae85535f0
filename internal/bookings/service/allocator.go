package service

import (
	bookingserrors "bonzai/internal/bookings/errors"
	"bonzai/pkg/model"
)

// Allocate plans which rooms satisfy a requested mix. Rooms the booking
// already holds are kept first, so an update that repeats the same mix is a
// no-op on inventory. The remainder is drawn from the availability snapshot
// in its given order. Planning is all-or-nothing: if any room type falls
// short, no assignment is produced and every deficient type is reported.
//
// Allocate performs no I/O. The caller is responsible for fetching held
// rooms and the snapshot, and for applying ToRelease and ToOccupy.
func Allocate(required model.RoomCounts, held []model.Room, snapshot []model.Room) (model.AllocationResult, error) {
	var result model.AllocationResult
	var shortfalls []bookingserrors.Shortfall

	assignedByType := make(map[model.RoomType][]string, len(model.RoomTypes))
	taken := make(map[string]bool, len(held))

	for _, t := range model.RoomTypes {
		want := required.Of(t)

		var kept []string
		var surplus []string
		for _, room := range held {
			if room.Type != t {
				continue
			}
			if len(kept) < want {
				kept = append(kept, room.RoomID)
				taken[room.RoomID] = true
			} else {
				surplus = append(surplus, room.RoomID)
			}
		}

		available := len(kept)
		for _, room := range snapshot {
			if room.Type != t || taken[room.RoomID] {
				continue
			}
			available++
			if len(kept) < want {
				kept = append(kept, room.RoomID)
				taken[room.RoomID] = true
				result.ToOccupy = append(result.ToOccupy, room.RoomID)
			}
		}

		if len(kept) < want {
			shortfalls = append(shortfalls, bookingserrors.Shortfall{
				RoomType:  t,
				Requested: want,
				Available: available,
			})
			continue
		}

		assignedByType[t] = kept
		result.ToRelease = append(result.ToRelease, surplus...)
	}

	if len(shortfalls) > 0 {
		return model.AllocationResult{}, &bookingserrors.InsufficientInventoryError{Shortfalls: shortfalls}
	}

	for _, t := range model.RoomTypes {
		result.AssignedRoomIDs = append(result.AssignedRoomIDs, assignedByType[t]...)
	}

	return result, nil
}
