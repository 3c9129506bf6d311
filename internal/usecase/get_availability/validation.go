package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.StayRange, error) {
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return domain.StayRange{}, fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	stay, err := domain.NewStayRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.StayRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if stay.Nights() > domain.MaxStayNights {
		return domain.StayRange{}, fmt.Errorf("%w: stay is longer than %d nights", ErrInvalidInput, domain.MaxStayNights)
	}

	if req.Guests < domain.MinAdults {
		return domain.StayRange{}, fmt.Errorf("%w: guests must be at least %d", ErrInvalidInput, domain.MinAdults)
	}

	if req.RoomTypeID != nil && *req.RoomTypeID <= 0 {
		return domain.StayRange{}, fmt.Errorf("%w: roomTypeId must be positive", ErrInvalidInput)
	}

	return stay, nil
}
