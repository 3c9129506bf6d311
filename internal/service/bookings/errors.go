package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = fmt.Errorf("bookings: reservation not found: %w", domain.ErrNotFound)

	// ErrSettlementNotFound возвращается, когда у брони нет расчета отмены
	ErrSettlementNotFound = fmt.Errorf("bookings: settlement not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: invalid input data: %w", domain.ErrValidation)

	// ErrStaleVersion возвращается, когда бронь изменили после того, как клиент ее прочитал
	ErrStaleVersion = fmt.Errorf("bookings: reservation was modified: %w", domain.ErrConflictingUpdate)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
