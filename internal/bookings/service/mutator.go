package service

import (
	"context"
	"sync"

	"bonzai/internal/bookings/repository"
	apperrors "bonzai/pkg/errors"
	"bonzai/pkg/logger"
)

// InventoryMutator flips room availability flags one document at a time.
// There is no multi-document transaction here: each flip is an independent
// conditional write, and a failure mid-batch leaves the remaining flips
// unapplied. The reconciler repairs that drift from the booking records.
type InventoryMutator struct {
	rooms repository.RoomRepository
	log   *logger.Logger
}

func NewInventoryMutator(rooms repository.RoomRepository, log *logger.Logger) *InventoryMutator {
	return &InventoryMutator{rooms: rooms, log: log}
}

// Apply releases and occupies the given rooms. All flips run concurrently;
// the first failure is returned, with every failed room logged.
func (m *InventoryMutator) Apply(ctx context.Context, toRelease, toOccupy []string) error {
	type flip struct {
		roomID    string
		available bool
	}

	flips := make([]flip, 0, len(toRelease)+len(toOccupy))
	for _, id := range toRelease {
		flips = append(flips, flip{roomID: id, available: true})
	}
	for _, id := range toOccupy {
		flips = append(flips, flip{roomID: id, available: false})
	}
	if len(flips) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	wg.Add(len(flips))
	for _, f := range flips {
		go func(f flip) {
			defer wg.Done()
			if err := m.rooms.SetAvailability(ctx, f.roomID, f.available); err != nil {
				m.log.Error("Failed to update room availability",
					"room_id", f.roomID,
					"available", f.available,
					"error", err,
				)
				mu.Lock()
				if firstErr == nil {
					firstErr = apperrors.InventoryUpdateFailed(f.roomID, err)
				}
				mu.Unlock()
			}
		}(f)
	}
	wg.Wait()

	return firstErr
}
