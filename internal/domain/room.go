package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// OperationalState is the housekeeping state of a physical room
type OperationalState string

const (
	StateInService   OperationalState = "in_service"
	StateMaintenance OperationalState = "maintenance"
	StateCleaning    OperationalState = "cleaning"
)

// IsValid reports whether the state is known
func (s OperationalState) IsValid() bool {
	switch s {
	case StateInService, StateMaintenance, StateCleaning:
		return true
	}
	return false
}

// Room represents a physical hotel room
type Room struct {
	Number      string
	Floor       int
	Capacity    int
	ExtraBeds   int // guests above capacity the room can take with a surcharge
	BasePrice   decimal.Decimal
	RoomTypeID  *int64
	CustomPrice *decimal.Decimal
	Amenities   []string
	Description string

	State      OperationalState
	StateSince *types.Date // nil = since forever
	StateUntil *types.Date // nil = open-ended
}

// MaxOccupancy returns the largest guest count the room accepts
func (r *Room) MaxOccupancy() int {
	return r.Capacity + r.ExtraBeds
}

// IsOutOfService returns true if the room is under maintenance or being cleaned
func (r *Room) IsOutOfService() bool {
	return r.State == StateMaintenance || r.State == StateCleaning
}

// StateBlocks reports whether the room's maintenance or cleaning window intersects the stay
func (r *Room) StateBlocks(stay StayRange) bool {
	if !r.IsOutOfService() {
		return false
	}
	startsBeforeEnd := r.StateSince == nil || r.StateSince.Before(stay.CheckOut)
	endsAfterStart := r.StateUntil == nil || r.StateUntil.After(stay.CheckIn)
	return startsBeforeEnd && endsAfterStart
}

// RoomType groups rooms sharing a price list
type RoomType struct {
	ID          int64
	Name        string
	Description string
	BasePrice   *decimal.Decimal
	CustomPrice *decimal.Decimal
}

// InventorySnapshot is a point-in-time read of all rooms and room types
type InventorySnapshot struct {
	Rooms     []Room
	RoomTypes []RoomType
}

// RoomTypeByID looks up a room type in the snapshot
func (s *InventorySnapshot) RoomTypeByID(id int64) (*RoomType, bool) {
	for i := range s.RoomTypes {
		if s.RoomTypes[i].ID == id {
			return &s.RoomTypes[i], true
		}
	}
	return nil, false
}

// RoomTypeOf returns the type the room belongs to, or nil
func (s *InventorySnapshot) RoomTypeOf(room *Room) *RoomType {
	if room.RoomTypeID == nil {
		return nil
	}
	rt, ok := s.RoomTypeByID(*room.RoomTypeID)
	if !ok {
		return nil
	}
	return rt
}

// FindRoom looks up a room by its number
func (s *InventorySnapshot) FindRoom(number string) (*Room, bool) {
	for i := range s.Rooms {
		if s.Rooms[i].Number == number {
			return &s.Rooms[i], true
		}
	}
	return nil, false
}

// RoomStateUpdate changes the operational state of a room
type RoomStateUpdate struct {
	RoomNumber string
	State      OperationalState
	Since      *types.Date
	Until      *types.Date
}
