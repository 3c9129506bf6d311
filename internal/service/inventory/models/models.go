package models

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// SetRoomStateRequest запрос на смену эксплуатационного состояния номера
type SetRoomStateRequest struct {
	State string      `json:"state"`
	Since *types.Date `json:"since,omitempty"`
	Until *types.Date `json:"until,omitempty"` // nil - до отмены
}

// RoomResponse номер
type RoomResponse struct {
	Number      string      `json:"number"`
	Floor       int         `json:"floor"`
	Capacity    int         `json:"capacity"`
	ExtraBeds   int         `json:"extraBeds"`
	BasePrice   string      `json:"basePrice"`
	RoomTypeID  *int64      `json:"roomTypeId,omitempty"`
	CustomPrice *string     `json:"customPrice,omitempty"`
	Amenities   []string    `json:"amenities"`
	Description string      `json:"description,omitempty"`
	State       string      `json:"state"`
	StateSince  *types.Date `json:"stateSince,omitempty"`
	StateUntil  *types.Date `json:"stateUntil,omitempty"`
}

// RoomTypeResponse тип номера
type RoomTypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	BasePrice   *string `json:"basePrice,omitempty"`
	CustomPrice *string `json:"customPrice,omitempty"`
}

// RoomListResponse список номеров
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// RoomTypeListResponse список типов номеров
type RoomTypeListResponse struct {
	RoomTypes []RoomTypeResponse `json:"roomTypes"`
}

// FromDomainRoom конвертирует номер в DTO
func FromDomainRoom(r *domain.Room) RoomResponse {
	resp := RoomResponse{
		Number:      r.Number,
		Floor:       r.Floor,
		Capacity:    r.Capacity,
		ExtraBeds:   r.ExtraBeds,
		BasePrice:   r.BasePrice.StringFixed(2),
		RoomTypeID:  r.RoomTypeID,
		Amenities:   r.Amenities,
		Description: r.Description,
		State:       string(r.State),
		StateSince:  r.StateSince,
		StateUntil:  r.StateUntil,
	}
	if r.CustomPrice != nil {
		price := r.CustomPrice.StringFixed(2)
		resp.CustomPrice = &price
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	return resp
}

// FromDomainRoomType конвертирует тип номера в DTO
func FromDomainRoomType(rt *domain.RoomType) RoomTypeResponse {
	resp := RoomTypeResponse{
		ID:          rt.ID,
		Name:        rt.Name,
		Description: rt.Description,
	}
	if rt.BasePrice != nil {
		price := rt.BasePrice.StringFixed(2)
		resp.BasePrice = &price
	}
	if rt.CustomPrice != nil {
		price := rt.CustomPrice.StringFixed(2)
		resp.CustomPrice = &price
	}
	return resp
}
