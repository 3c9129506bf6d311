package preview_cancellation

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

// ToUseCaseRequest собирает запрос предпросмотра из query параметров
func ToUseCaseRequest(r *http.Request, bookingID int64) (*cancelBooking.Request, error) {
	query := r.URL.Query()

	req := &cancelBooking.Request{
		ReservationID: bookingID,
		Reason:        domain.CancellationReason(query.Get("reason")),
	}
	if req.Reason == "" {
		req.Reason = domain.ReasonGuestRequest
	}

	if raw := query.Get("fee"); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("fee must be a decimal number, got %q", raw)
		}
		req.Fee = &fee
	}

	return req, nil
}
