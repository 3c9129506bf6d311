package get_availability

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модель запроса доступности
type Request struct {
	CheckIn    types.Date
	CheckOut   types.Date
	Guests     int
	RoomTypeID *int64 // nil - все типы
}

// Response модель ответа с доступностью номеров
type Response struct {
	Stay        domain.StayRange
	Guests      int
	Today       types.Date
	Rooms       []RoomItem // по этажу, затем по номеру
	Counts      availability.Counts
	FilteredOut int
}

// RoomItem статус номера и цена, если номер можно забронировать
type RoomItem struct {
	availability.RoomAvailability
	Quote *pricing.Quote
}
