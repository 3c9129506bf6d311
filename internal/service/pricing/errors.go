package pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrInvalidRange возвращается, когда в периоде меньше одной ночи
	ErrInvalidRange = fmt.Errorf("pricing: invalid range: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных гостях, услугах или цене
	ErrInvalidInput = fmt.Errorf("pricing: invalid input: %w", domain.ErrValidation)

	// ErrUnknownService выбранной услуги нет в каталоге
	ErrUnknownService = fmt.Errorf("pricing: unknown service: %w", domain.ErrNotFound)

	// ErrTotalMismatch итог не сходится с суммой слагаемых
	ErrTotalMismatch = errors.New("pricing: total does not match its parts")
)
