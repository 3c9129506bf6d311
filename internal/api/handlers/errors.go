package handlers

import (
	"errors"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

func asFeeError(err error) (*domain.FeeError, bool) {
	var feeErr *domain.FeeError
	if errors.As(err, &feeErr) {
		return feeErr, true
	}
	return nil, false
}
