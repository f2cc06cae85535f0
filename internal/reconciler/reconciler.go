package reconciler

import (
	"context"
	"fmt"
	"time"

	"bonzai/internal/bookings/repository"
	"bonzai/pkg/config"
	"bonzai/pkg/kafka"
	"bonzai/pkg/logger"
	"bonzai/pkg/model"
)

// Reconciler repairs drift between bookings and room availability. Booking
// writes and inventory flips are separate operations, so a crash between
// them can strand a room: flagged unavailable with no booking referencing
// it, or the reverse. Booking records are the source of truth; availability
// flags are rewritten to match them.
type Reconciler struct {
	bookings repository.BookingRepository
	rooms    repository.RoomRepository
	interval time.Duration
	log      *logger.Logger
}

func NewReconciler(bookings repository.BookingRepository, rooms repository.RoomRepository, cfg *config.Config) *Reconciler {
	return &Reconciler{
		bookings: bookings,
		rooms:    rooms,
		interval: cfg.ReconcileInterval,
		log:      cfg.Log,
	}
}

// Run sweeps the full inventory on a fixed interval until the context is
// cancelled. The first sweep happens immediately.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		repaired, err := r.Sweep(ctx)
		if err != nil {
			r.log.Error("Inventory sweep failed", "error", err)
		} else if repaired > 0 {
			r.log.Warn("Inventory sweep repaired drift", "repaired", repaired)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sweep checks every room against the booking records and flips any flag
// that disagrees. Returns the number of rooms repaired.
func (r *Reconciler) Sweep(ctx context.Context) (int, error) {
	referenced, err := r.referencedRooms(ctx)
	if err != nil {
		return 0, err
	}

	rooms, err := r.rooms.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load rooms: %w", err)
	}

	return r.repair(ctx, rooms, referenced), nil
}

// CheckRooms runs a targeted check on the given rooms only. Used by the
// event consumer to verify a mutation right after it happened.
func (r *Reconciler) CheckRooms(ctx context.Context, roomIDs []string) (int, error) {
	if len(roomIDs) == 0 {
		return 0, nil
	}

	referenced, err := r.referencedRooms(ctx)
	if err != nil {
		return 0, err
	}

	rooms, err := r.rooms.FindByIDs(ctx, roomIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load rooms: %w", err)
	}

	return r.repair(ctx, rooms, referenced), nil
}

// EventHandler adapts the reconciler to the booking-events topic. Each event
// names the rooms its operation touched; only those are re-checked.
func (r *Reconciler) EventHandler() kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event model.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			r.log.Error("Failed to decode booking event", "error", err, "offset", msg.Offset)
			// Undecodable events are skipped, not retried.
			return nil
		}

		roomIDs := append(append([]string(nil), event.ReleasedRoomIDs...), event.OccupiedRoomIDs...)
		repaired, err := r.CheckRooms(ctx, roomIDs)
		if err != nil {
			return err
		}
		if repaired > 0 {
			r.log.Warn("Targeted check repaired drift",
				"event_type", event.Type,
				"booking_id", event.BookingID,
				"repaired", repaired,
			)
		}
		return nil
	}
}

func (r *Reconciler) referencedRooms(ctx context.Context) (map[string]bool, error) {
	bookings, err := r.bookings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	referenced := make(map[string]bool)
	for _, b := range bookings {
		for _, id := range b.RoomIDs {
			referenced[id] = true
		}
	}
	return referenced, nil
}

func (r *Reconciler) repair(ctx context.Context, rooms []model.Room, referenced map[string]bool) int {
	repaired := 0
	for _, room := range rooms {
		shouldBeAvailable := !referenced[room.RoomID]
		if room.Available == shouldBeAvailable {
			continue
		}

		if err := r.rooms.SetAvailability(ctx, room.RoomID, shouldBeAvailable); err != nil {
			r.log.Error("Failed to repair room",
				"room_id", room.RoomID,
				"available", shouldBeAvailable,
				"error", err,
			)
			continue
		}

		r.log.Info("Repaired room availability",
			"room_id", room.RoomID,
			"available", shouldBeAvailable,
		)
		repaired++
	}
	return repaired
}
