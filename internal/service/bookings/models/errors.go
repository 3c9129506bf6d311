package models

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = fmt.Errorf("invalid reservation status: %w", domain.ErrValidation)
