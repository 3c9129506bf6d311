package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
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

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return domain.StayRange{}, fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxGuestNameLength {
		return domain.StayRange{}, fmt.Errorf("%w: guestName is longer than %d characters", ErrInvalidInput, domain.MaxGuestNameLength)
	}
	if req.GuestEmail != "" && !strings.Contains(req.GuestEmail, "@") {
		return domain.StayRange{}, fmt.Errorf("%w: guestEmail is malformed", ErrInvalidInput)
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return domain.StayRange{}, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
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

	if req.PaidAmount.IsNegative() {
		return domain.StayRange{}, fmt.Errorf("%w: paidAmount %s is negative", ErrInvalidPayment, req.PaidAmount)
	}

	return stay, nil
}

// validateCheckIn запрещает заезд в прошлом без явного backfill
func validateCheckIn(stay domain.StayRange, today types.Date, backfill bool) error {
	if stay.CheckIn.Before(today) && !backfill {
		return fmt.Errorf("%w: %s is before %s", ErrCheckInInPast, stay.CheckIn, today)
	}
	return nil
}

// validatePayment проверяет оплату относительно рассчитанной суммы
func validatePayment(req *Request, total decimal.Decimal, requireAdvance bool) error {
	if req.PaidAmount.IsNegative() || req.PaidAmount.GreaterThan(total) {
		return fmt.Errorf("%w: paid %s, total %s", ErrInvalidPayment, req.PaidAmount, total)
	}
	if requireAdvance && !req.OwnerReference && !req.PaidAmount.IsPositive() {
		return ErrPaymentRequired
	}
	return nil
}

// serviceIDs собирает ID выбранных услуг
func serviceIDs(selections []domain.ServiceSelection) []int64 {
	ids := make([]int64, 0, len(selections))
	for _, s := range selections {
		ids = append(ids, s.ServiceID)
	}
	return ids
}
