package refund

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при отрицательной сумме или неизвестной причине отмены
	ErrInvalidInput = fmt.Errorf("refund: invalid input: %w", domain.ErrValidation)

	// ErrRefundMismatch присланная клиентом сумма возврата не совпадает с пересчитанной
	ErrRefundMismatch = fmt.Errorf("refund: submitted refund does not match: %w", domain.ErrValidation)
)
