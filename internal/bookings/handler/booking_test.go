package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "bonzai/pkg/errors"
	"bonzai/pkg/logger"
	"bonzai/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockBookingService struct {
	createFunc func(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error)
	updateFunc func(ctx context.Context, id string, req *model.UpdateBookingRequest) (*model.UpdatedAttributes, error)
	cancelFunc func(ctx context.Context, id string) error
	listFunc   func(ctx context.Context) ([]model.BookingSummary, error)
}

func (m *mockBookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &model.CreateBookingResponse{}, nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockBookingService) List(ctx context.Context) ([]model.BookingSummary, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, req *model.UpdateBookingRequest) (*model.UpdatedAttributes, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, req)
	}
	return &model.UpdatedAttributes{}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func newRouter(service *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(service, testLogger()).RegisterRoutes(router)
	return router
}

func TestCreate_ReturnsCreatedPayload(t *testing.T) {
	service := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
			return &model.CreateBookingResponse{
				BookingID:  "0b39a2a7-15c9-41b5-96a8-2d9ee1a69e6c",
				RoomIDs:    []string{"d1"},
				TotalPrice: 2000,
			}, nil
		},
	}
	router := newRouter(service)

	body := `{"name":"Maja Gran","email":"maja@example.com","guests":2,"numOfDoubleRooms":1,"checkIn":"2030-01-10","checkOut":"2030-01-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var resp struct {
		Data model.CreateBookingResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.BookingID != "0b39a2a7-15c9-41b5-96a8-2d9ee1a69e6c" {
		t.Errorf("bookingId = %q", resp.Data.BookingID)
	}
	if resp.Data.TotalPrice != 2000 {
		t.Errorf("totalPrice = %d, want 2000", resp.Data.TotalPrice)
	}
}

func TestCreate_MalformedBody(t *testing.T) {
	router := newRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreate_InsufficientInventoryStatus(t *testing.T) {
	service := &mockBookingService{
		createFunc: func(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
			return nil, apperrors.InsufficientInventory("not enough available rooms", map[string]any{
				"single": map[string]any{"requested": 3, "available": 2},
			})
		},
	}
	router := newRouter(service)

	body := `{"name":"Maja Gran","email":"maja@example.com","guests":3,"numOfSingleRooms":3,"checkIn":"2030-01-10","checkOut":"2030-01-12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp struct {
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Details == nil {
		t.Error("expected per-type shortfall details")
	}
}

func TestUpdate_ReturnsUpdatedAttributes(t *testing.T) {
	service := &mockBookingService{
		updateFunc: func(ctx context.Context, id string, req *model.UpdateBookingRequest) (*model.UpdatedAttributes, error) {
			return &model.UpdatedAttributes{
				Guests:     2,
				RoomCounts: model.RoomCounts{NumOfDoubleRooms: 1},
				CheckIn:    "2030-01-10",
				CheckOut:   "2030-01-14",
				RoomIDs:    []string{"d1"},
				TotalPrice: 4000,
			}, nil
		},
	}
	router := newRouter(service)

	body := `{"guests":2,"numOfDoubleRooms":1,"checkIn":"2030-01-10","checkOut":"2030-01-14"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/id/0b39a2a7-15c9-41b5-96a8-2d9ee1a69e6c", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data struct {
			UpdatedAttributes map[string]any `json:"updatedAttributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.UpdatedAttributes["totalPrice"] != float64(4000) {
		t.Errorf("totalPrice = %v, want 4000", resp.Data.UpdatedAttributes["totalPrice"])
	}
	// Embedded counts must flatten into the attribute object.
	if resp.Data.UpdatedAttributes["numOfDoubleRooms"] != float64(1) {
		t.Errorf("numOfDoubleRooms = %v, want 1", resp.Data.UpdatedAttributes["numOfDoubleRooms"])
	}
}

func TestCancel_WindowExpiredStatus(t *testing.T) {
	service := &mockBookingService{
		cancelFunc: func(ctx context.Context, id string) error {
			return apperrors.CancellationExpired("Bookings can no longer be cancelled this close to check-in")
		},
	}
	router := newRouter(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/0b39a2a7-15c9-41b5-96a8-2d9ee1a69e6c", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestList_SparseSummaries(t *testing.T) {
	service := &mockBookingService{
		listFunc: func(ctx context.Context) ([]model.BookingSummary, error) {
			return []model.BookingSummary{
				{
					BookingID:        "0b39a2a7-15c9-41b5-96a8-2d9ee1a69e6c",
					Name:             "Maja Gran",
					Guests:           2,
					CheckIn:          "2030-01-10",
					CheckOut:         "2030-01-12",
					NumOfDoubleRooms: 1,
				},
			}, nil
		},
	}
	router := newRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	// Zero room counts must be omitted from the serialized record.
	payload := rec.Body.String()
	if !strings.Contains(payload, "numOfDoubleRooms") {
		t.Error("expected numOfDoubleRooms in payload")
	}
	if strings.Contains(payload, "numOfSingleRooms") || strings.Contains(payload, "numOfSuiteRooms") {
		t.Errorf("zero counts must be omitted, got %s", payload)
	}
}
