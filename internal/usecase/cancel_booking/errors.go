package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = fmt.Errorf("cancel_booking: reservation not found: %w", domain.ErrNotFound)

	// ErrNotCancellable возвращается, когда бронь уже отменена, заселена или закрыта
	ErrNotCancellable = fmt.Errorf("cancel_booking: reservation cannot be cancelled: %w", domain.ErrValidation)

	// ErrStaleVersion возвращается, когда бронь изменилась с момента чтения клиентом
	ErrStaleVersion = fmt.Errorf("cancel_booking: reservation was changed: %w", domain.ErrConflictingUpdate)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_booking: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
