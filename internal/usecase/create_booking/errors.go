package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = fmt.Errorf("create_booking: room not found: %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = fmt.Errorf("create_booking: service not found: %w", domain.ErrNotFound)

	// ErrRoomUnavailable возвращается, когда номер занят на период (в т.ч. конкурентной бронью)
	ErrRoomUnavailable = fmt.Errorf("create_booking: room is unavailable: %w", domain.ErrRoomUnavailable)

	// ErrCheckInInPast возвращается, когда дата заезда в прошлом, а backfill не указан
	ErrCheckInInPast = fmt.Errorf("create_booking: check-in date is in the past: %w", domain.ErrValidation)

	// ErrPaymentRequired возвращается, когда требуется предоплата, а она не внесена
	ErrPaymentRequired = fmt.Errorf("create_booking: advance payment is required: %w", domain.ErrValidation)

	// ErrInvalidPayment возвращается, когда оплата вне диапазона [0, total]
	ErrInvalidPayment = fmt.Errorf("create_booking: paid amount is out of range: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
