package quote_stay

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.StayRange, error) {
	if req.RoomNumber == "" {
		return domain.StayRange{}, fmt.Errorf("%w: roomNumber is required", ErrInvalidInput)
	}

	stay, err := domain.NewStayRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return domain.StayRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if stay.Nights() > domain.MaxStayNights {
		return domain.StayRange{}, fmt.Errorf("%w: stay is longer than %d nights", ErrInvalidInput, domain.MaxStayNights)
	}

	if req.Adults < domain.MinAdults {
		return domain.StayRange{}, fmt.Errorf("%w: at least %d adult is required", ErrInvalidInput, domain.MinAdults)
	}
	if req.Children < 0 {
		return domain.StayRange{}, fmt.Errorf("%w: children must not be negative", ErrInvalidInput)
	}

	for _, s := range req.Services {
		if s.ServiceID <= 0 {
			return domain.StayRange{}, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
		if s.Quantity < 1 || s.Quantity > domain.MaxServiceQuantity {
			return domain.StayRange{}, fmt.Errorf("%w: quantity of service %d must be within [1, %d]",
				ErrInvalidInput, s.ServiceID, domain.MaxServiceQuantity)
		}
	}

	return stay, nil
}

// serviceIDs собирает ID выбранных услуг
func serviceIDs(selections []domain.ServiceSelection) []int64 {
	ids := make([]int64, 0, len(selections))
	for _, s := range selections {
		ids = append(ids, s.ServiceID)
	}
	return ids
}
