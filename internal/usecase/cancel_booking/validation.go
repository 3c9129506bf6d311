package cancel_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}
	if !req.Reason.IsValid() {
		return fmt.Errorf("%w: unknown cancellation reason %q", ErrInvalidInput, req.Reason)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

// refundPaymentStatus статус оплаты после отмены.
// Если гость ничего не платил, статус не меняется.
func refundPaymentStatus(current domain.PaymentStatus, paid, refund decimal.Decimal) domain.PaymentStatus {
	if !paid.IsPositive() {
		return current
	}
	if refund.GreaterThanOrEqual(paid) {
		return domain.PaymentRefunded
	}
	return domain.PaymentPartiallyRefunded
}
