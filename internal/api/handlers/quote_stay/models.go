package quote_stay

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	quoteStay "github.com/m04kA/SMC-HotelBookingService/internal/usecase/quote_stay"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	RoomNumber string                             `json:"roomNumber"`
	CheckIn    types.Date                         `json:"checkIn"`
	CheckOut   types.Date                         `json:"checkOut"`
	Adults     int                                `json:"adults"`
	Children   int                                `json:"children"`
	Services   []handlers.ServiceSelectionRequest `json:"services,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() *quoteStay.Request {
	return &quoteStay.Request{
		RoomNumber: r.RoomNumber,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Adults:     r.Adults,
		Children:   r.Children,
		Services:   handlers.ToDomainSelections(r.Services),
	}
}
