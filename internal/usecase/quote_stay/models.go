package quote_stay

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модель запроса расчета стоимости
type Request struct {
	RoomNumber string
	CheckIn    types.Date
	CheckOut   types.Date
	Adults     int
	Children   int
	Services   []domain.ServiceSelection
}

// Response модель ответа с расчетом
type Response struct {
	Quote *pricing.Quote
}
