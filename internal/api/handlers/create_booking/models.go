package create_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomNumber string     `json:"roomNumber"`
	CheckIn    types.Date `json:"checkIn"`  // "2025-10-15"
	CheckOut   types.Date `json:"checkOut"` // "2025-10-17"
	Adults     int        `json:"adults"`
	Children   int        `json:"children"`

	GuestName  string  `json:"guestName"`
	GuestPhone string  `json:"guestPhone,omitempty"`
	GuestEmail string  `json:"guestEmail,omitempty"`
	Notes      *string `json:"notes,omitempty"`

	Services       []handlers.ServiceSelectionRequest `json:"services,omitempty"`
	PaidAmount     *decimal.Decimal                   `json:"paidAmount,omitempty"`
	OwnerReference bool                               `json:"ownerReference"`
	Pending        bool                               `json:"pending"`
	Backfill       bool                               `json:"backfill"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reservation *models.ReservationResponse `json:"reservation"`
	Quote       *handlers.QuoteResponse     `json:"quote"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	paid := decimal.Zero
	if r.PaidAmount != nil {
		paid = *r.PaidAmount
	}

	return &createBooking.Request{
		RoomNumber:     r.RoomNumber,
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		Adults:         r.Adults,
		Children:       r.Children,
		GuestName:      r.GuestName,
		GuestPhone:     r.GuestPhone,
		GuestEmail:     r.GuestEmail,
		Notes:          r.Notes,
		Services:       handlers.ToDomainSelections(r.Services),
		PaidAmount:     paid,
		OwnerReference: r.OwnerReference,
		Pending:        r.Pending,
		Backfill:       r.Backfill,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Reservation: models.FromDomainReservation(resp.Reservation),
		Quote:       handlers.FromQuote(resp.Quote),
	}
}
