package cancel_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Request модель запроса на отмену брони
type Request struct {
	ReservationID   int64
	Reason          domain.CancellationReason
	Fee             *decimal.Decimal // штраф оператора, nil - по политике
	SubmittedRefund *decimal.Decimal // сумма возврата, которую видел клиент
	Version         *int64           // ожидаемая версия брони
	Notes           *string
}

// Response модель ответа с отмененной бронью и расчетом
type Response struct {
	Reservation *domain.Reservation
	Settlement  *domain.CancellationSettlement
}
