package cancel_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason       string           `json:"reason"`
	Fee          *decimal.Decimal `json:"fee,omitempty"`          // штраф оператора, по умолчанию по политике
	RefundAmount *decimal.Decimal `json:"refundAmount,omitempty"` // возврат, показанный оператору
	Version      *int64           `json:"version,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Reservation *models.ReservationResponse `json:"reservation"`
	Settlement  *models.SettlementResponse  `json:"settlement"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		ReservationID:   bookingID,
		Reason:          domain.CancellationReason(r.Reason),
		Fee:             r.Fee,
		SubmittedRefund: r.RefundAmount,
		Version:         r.Version,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Reservation: models.FromDomainReservation(resp.Reservation),
		Settlement:  models.FromDomainSettlement(resp.Settlement),
	}
}
