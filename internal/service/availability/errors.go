package availability

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidQuery возвращается при некорректном периоде или числе гостей
	ErrInvalidQuery = fmt.Errorf("availability: invalid query: %w", domain.ErrValidation)
)
