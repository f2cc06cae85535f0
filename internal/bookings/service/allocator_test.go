package service

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	bookingserrors "bonzai/internal/bookings/errors"
	"bonzai/pkg/model"
)

func room(id string, t model.RoomType, available bool) model.Room {
	return model.Room{RoomID: id, Type: t, Available: available}
}

func TestAllocate_FreshBooking(t *testing.T) {
	snapshot := []model.Room{
		room("s1", model.Single, true),
		room("s2", model.Single, true),
		room("d1", model.Double, true),
		room("d2", model.Double, true),
	}

	required := model.RoomCounts{NumOfSingleRooms: 1, NumOfDoubleRooms: 2}

	result, err := Allocate(required, nil, snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAssigned := []string{"s1", "d1", "d2"}
	if !reflect.DeepEqual(result.AssignedRoomIDs, wantAssigned) {
		t.Errorf("assigned = %v, want %v", result.AssignedRoomIDs, wantAssigned)
	}
	if !reflect.DeepEqual(result.ToOccupy, wantAssigned) {
		t.Errorf("toOccupy = %v, want %v", result.ToOccupy, wantAssigned)
	}
	if len(result.ToRelease) != 0 {
		t.Errorf("toRelease = %v, want empty", result.ToRelease)
	}
}

func TestAllocate_InsufficientInventory(t *testing.T) {
	snapshot := []model.Room{
		room("s1", model.Single, true),
		room("s2", model.Single, true),
	}

	required := model.RoomCounts{NumOfSingleRooms: 3}

	result, err := Allocate(required, nil, snapshot)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var insufficient *bookingserrors.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientInventoryError, got %T", err)
	}

	if len(insufficient.Shortfalls) != 1 {
		t.Fatalf("expected 1 shortfall, got %d", len(insufficient.Shortfalls))
	}
	sf := insufficient.Shortfalls[0]
	if sf.RoomType != model.Single || sf.Requested != 3 || sf.Available != 2 {
		t.Errorf("shortfall = %+v, want {Single 3 2}", sf)
	}

	if len(result.AssignedRoomIDs) != 0 || len(result.ToOccupy) != 0 || len(result.ToRelease) != 0 {
		t.Errorf("failed allocation must not produce an assignment: %+v", result)
	}
}

func TestAllocate_AllOrNothing(t *testing.T) {
	// Doubles are plentiful but singles fall short: nothing is assigned.
	snapshot := []model.Room{
		room("d1", model.Double, true),
		room("d2", model.Double, true),
		room("d3", model.Double, true),
	}

	required := model.RoomCounts{NumOfSingleRooms: 1, NumOfDoubleRooms: 1}

	result, err := Allocate(required, nil, snapshot)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(result.ToOccupy) != 0 {
		t.Errorf("toOccupy = %v, want empty", result.ToOccupy)
	}
}

func TestAllocate_ReportsEveryShortfall(t *testing.T) {
	required := model.RoomCounts{NumOfSingleRooms: 2, NumOfSuiteRooms: 1}

	_, err := Allocate(required, nil, nil)

	var insufficient *bookingserrors.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	if len(insufficient.Shortfalls) != 2 {
		t.Fatalf("expected 2 shortfalls, got %d: %v", len(insufficient.Shortfalls), insufficient.Shortfalls)
	}
}

func TestAllocate_UpdateKeepsHeldRooms(t *testing.T) {
	held := []model.Room{
		room("d1", model.Double, false),
		room("d2", model.Double, false),
	}
	snapshot := []model.Room{
		room("d5", model.Double, true),
	}

	required := model.RoomCounts{NumOfDoubleRooms: 2}

	result, err := Allocate(required, held, snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAssigned := []string{"d1", "d2"}
	if !reflect.DeepEqual(result.AssignedRoomIDs, wantAssigned) {
		t.Errorf("assigned = %v, want %v", result.AssignedRoomIDs, wantAssigned)
	}
	if len(result.ToOccupy) != 0 || len(result.ToRelease) != 0 {
		t.Errorf("same mix must not move inventory: occupy=%v release=%v",
			result.ToOccupy, result.ToRelease)
	}
}

func TestAllocate_UpdateShrinksMix(t *testing.T) {
	held := []model.Room{
		room("d1", model.Double, false),
		room("d2", model.Double, false),
		room("s1", model.Single, false),
	}

	required := model.RoomCounts{NumOfDoubleRooms: 1}

	result, err := Allocate(required, held, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(result.AssignedRoomIDs, []string{"d1"}) {
		t.Errorf("assigned = %v, want [d1]", result.AssignedRoomIDs)
	}

	wantReleased := []string{"d2", "s1"}
	gotReleased := append([]string(nil), result.ToRelease...)
	sort.Strings(gotReleased)
	if !reflect.DeepEqual(gotReleased, wantReleased) {
		t.Errorf("toRelease = %v, want %v", result.ToRelease, wantReleased)
	}
	if len(result.ToOccupy) != 0 {
		t.Errorf("toOccupy = %v, want empty", result.ToOccupy)
	}
}

func TestAllocate_UpdateGrowsMix(t *testing.T) {
	held := []model.Room{
		room("d1", model.Double, false),
	}
	snapshot := []model.Room{
		room("d3", model.Double, true),
		room("s2", model.Single, true),
	}

	required := model.RoomCounts{NumOfSingleRooms: 1, NumOfDoubleRooms: 2}

	result, err := Allocate(required, held, snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantAssigned := []string{"s2", "d1", "d3"}
	if !reflect.DeepEqual(result.AssignedRoomIDs, wantAssigned) {
		t.Errorf("assigned = %v, want %v", result.AssignedRoomIDs, wantAssigned)
	}

	wantOccupy := []string{"s2", "d3"}
	if !reflect.DeepEqual(result.ToOccupy, wantOccupy) {
		t.Errorf("toOccupy = %v, want %v", result.ToOccupy, wantOccupy)
	}
	if len(result.ToRelease) != 0 {
		t.Errorf("toRelease = %v, want empty", result.ToRelease)
	}
}

func TestAllocate_ShortfallCountsHeldRooms(t *testing.T) {
	// Two doubles held, one free: asking for four reports three available.
	held := []model.Room{
		room("d1", model.Double, false),
		room("d2", model.Double, false),
	}
	snapshot := []model.Room{
		room("d3", model.Double, true),
	}

	required := model.RoomCounts{NumOfDoubleRooms: 4}

	_, err := Allocate(required, held, snapshot)

	var insufficient *bookingserrors.InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientInventoryError, got %v", err)
	}
	sf := insufficient.Shortfalls[0]
	if sf.Requested != 4 || sf.Available != 3 {
		t.Errorf("shortfall = %+v, want requested 4, available 3", sf)
	}
}
