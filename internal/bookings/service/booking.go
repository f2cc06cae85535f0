package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "bonzai/internal/bookings/errors"
	"bonzai/internal/bookings/repository"
	"bonzai/internal/bookings/validator"
	"bonzai/pkg/config"
	apperrors "bonzai/pkg/errors"
	"bonzai/pkg/events"
	"bonzai/pkg/model"
	"bonzai/pkg/sanitizer"

	"github.com/google/uuid"
)

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context) ([]model.BookingSummary, error)
	Update(ctx context.Context, id string, req *model.UpdateBookingRequest) (*model.UpdatedAttributes, error)
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	rooms     repository.RoomRepository
	validator *validator.BookingValidator
	pricing   *PricingCalculator
	mutator   *InventoryMutator
	publisher events.Publisher
	cfg       *config.Config

	now func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	rooms repository.RoomRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		rooms:     rooms,
		validator: bookingValidator,
		pricing:   NewPricingCalculator(cfg.Policy),
		mutator:   NewInventoryMutator(rooms, cfg.Log),
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) today() string {
	return s.now().UTC().Format(validator.DateLayout)
}

func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	req.Name = sanitizer.SanitizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateCreate(req, s.today()); err != nil {
		s.cfg.Log.Warn("Booking create validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	counts := req.Counts()
	snapshot, err := s.availabilitySnapshot(ctx, counts)
	if err != nil {
		return nil, err
	}

	plan, err := Allocate(counts, nil, snapshot)
	if err != nil {
		return nil, s.allocationError(err)
	}

	nights, err := Nights(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	booking := &model.Booking{
		BookingID:  uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Guests:     req.Guests,
		RoomCounts: counts,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		RoomIDs:    plan.AssignedRoomIDs,
		TotalPrice: s.pricing.TotalPrice(counts, nights),
	}

	if err := s.repo.Insert(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to insert booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	applyErr := s.mutator.Apply(ctx, nil, plan.ToOccupy)
	s.publish(ctx, model.BookingEvent{
		Type:            model.EventBookingCreated,
		BookingID:       booking.BookingID,
		OccupiedRoomIDs: plan.ToOccupy,
		OccurredAt:      s.now().UTC(),
	})
	if applyErr != nil {
		return nil, applyErr
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.BookingID,
		"rooms", len(booking.RoomIDs),
		"total_price", booking.TotalPrice,
	)
	return &model.CreateBookingResponse{
		BookingID:  booking.BookingID,
		RoomIDs:    booking.RoomIDs,
		TotalPrice: booking.TotalPrice,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	return booking, nil
}

// List returns every booking as a sparse summary. It reads only: no
// allocation state is touched.
func (s *bookingService) List(ctx context.Context) ([]model.BookingSummary, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	summaries := make([]model.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summaries = append(summaries, b.Summary())
	}
	return summaries, nil
}

func (s *bookingService) Update(ctx context.Context, id string, req *model.UpdateBookingRequest) (*model.UpdatedAttributes, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	if err := s.validator.ValidateUpdate(req, s.today()); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update request", map[string]any{"error": err.Error()})
	}

	held, err := s.rooms.FindByIDs(ctx, existing.RoomIDs)
	if err != nil {
		s.cfg.Log.Error("Failed to load held rooms", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to load booked rooms", err)
	}

	counts := req.Counts()
	snapshot, err := s.availabilitySnapshot(ctx, counts)
	if err != nil {
		return nil, err
	}

	plan, err := Allocate(counts, held, snapshot)
	if err != nil {
		return nil, s.allocationError(err)
	}

	nights, err := Nights(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	updated := *existing
	updated.Guests = req.Guests
	updated.RoomCounts = counts
	updated.CheckIn = req.CheckIn
	updated.CheckOut = req.CheckOut
	updated.RoomIDs = plan.AssignedRoomIDs
	updated.TotalPrice = s.pricing.TotalPrice(counts, nights)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}

	applyErr := s.mutator.Apply(ctx, plan.ToRelease, plan.ToOccupy)
	s.publish(ctx, model.BookingEvent{
		Type:            model.EventBookingUpdated,
		BookingID:       id,
		ReleasedRoomIDs: plan.ToRelease,
		OccupiedRoomIDs: plan.ToOccupy,
		OccurredAt:      s.now().UTC(),
	})
	if applyErr != nil {
		return nil, applyErr
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", id,
		"released", len(plan.ToRelease),
		"occupied", len(plan.ToOccupy),
	)
	return &model.UpdatedAttributes{
		Guests:     updated.Guests,
		RoomCounts: updated.RoomCounts,
		CheckIn:    updated.CheckIn,
		CheckOut:   updated.CheckOut,
		RoomIDs:    updated.RoomIDs,
		TotalPrice: updated.TotalPrice,
	}, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.lookupError(id, err)
	}

	if err := s.checkCancellationWindow(existing.CheckIn); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Internal("Failed to cancel booking", err)
	}

	applyErr := s.mutator.Apply(ctx, existing.RoomIDs, nil)
	s.publish(ctx, model.BookingEvent{
		Type:            model.EventBookingCancelled,
		BookingID:       id,
		ReleasedRoomIDs: existing.RoomIDs,
		OccurredAt:      s.now().UTC(),
	})
	if applyErr != nil {
		return applyErr
	}

	s.cfg.Log.Info("Booking cancelled successfully", "id", id, "released", len(existing.RoomIDs))
	return nil
}

// --- Helpers ---

// availabilitySnapshot scans free rooms for every requested type. Types with
// a zero count are skipped.
func (s *bookingService) availabilitySnapshot(ctx context.Context, counts model.RoomCounts) ([]model.Room, error) {
	var snapshot []model.Room
	for _, t := range model.RoomTypes {
		if counts.Of(t) == 0 {
			continue
		}
		rooms, err := s.rooms.FindAvailableByType(ctx, t)
		if err != nil {
			s.cfg.Log.Error("Failed to scan available rooms", "room_type", t, "error", err)
			return nil, apperrors.Internal("Failed to check room availability", err)
		}
		snapshot = append(snapshot, rooms...)
	}
	return snapshot, nil
}

// checkCancellationWindow rejects a cancellation when check-in is within the
// configured cutoff. A booking checking in cutoff+1 days out is still
// cancellable; one at exactly the cutoff is not.
func (s *bookingService) checkCancellationWindow(checkIn string) error {
	in, err := time.Parse(validator.DateLayout, checkIn)
	if err != nil {
		return apperrors.Internal("Stored check-in date is malformed", err)
	}
	today, err := time.Parse(validator.DateLayout, s.today())
	if err != nil {
		return apperrors.Internal("Failed to resolve current date", err)
	}

	daysUntil := int(in.Sub(today).Hours() / 24)
	if daysUntil <= s.cfg.Policy.CancellationCutoffDays {
		return apperrors.CancellationExpired(
			"Bookings can no longer be cancelled this close to check-in")
	}
	return nil
}

func (s *bookingService) allocationError(err error) error {
	var insufficient *bookingserrors.InsufficientInventoryError
	if errors.As(err, &insufficient) {
		s.cfg.Log.Warn("Allocation failed", "error", err)
		return apperrors.InsufficientInventory(insufficient.Error(), insufficient.Details())
	}
	return apperrors.Internal("Failed to allocate rooms", err)
}

func (s *bookingService) lookupError(id string, err error) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error("Failed to retrieve booking", "id", id, "error", err)
	return apperrors.Internal("Failed to retrieve booking", err)
}

func (s *bookingService) publish(ctx context.Context, event model.BookingEvent) {
	if s.publisher == nil {
		return
	}
	// Failures are logged by the publisher; lifecycle operations never fail
	// because an event could not be written.
	_ = s.publisher.PublishBookingEvent(ctx, event)
}
