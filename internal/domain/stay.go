package domain

import (
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// StayRange is a half-open interval of nights [CheckIn, CheckOut).
// A check-out and a check-in on the same calendar day do not overlap.
type StayRange struct {
	CheckIn  types.Date
	CheckOut types.Date
}

// NewStayRange validates the window. Dates are never swapped.
func NewStayRange(checkIn, checkOut types.Date) (StayRange, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return StayRange{}, fmt.Errorf("%w: check-in and check-out dates are required", ErrValidation)
	}
	if !checkOut.After(checkIn) {
		return StayRange{}, fmt.Errorf("%w: check-out %s must be after check-in %s", ErrValidation, checkOut, checkIn)
	}
	return StayRange{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights returns the number of nights in the stay
func (s StayRange) Nights() int {
	return s.CheckIn.DaysUntil(s.CheckOut)
}

// IsValid reports whether check-out is strictly after check-in
func (s StayRange) IsValid() bool {
	return !s.CheckIn.IsZero() && s.CheckOut.After(s.CheckIn)
}

// Overlaps reports whether two stays share at least one night
func (s StayRange) Overlaps(other StayRange) bool {
	return s.CheckIn.Before(other.CheckOut) && s.CheckOut.After(other.CheckIn)
}

// Contains reports whether the night starting on d belongs to the stay
func (s StayRange) Contains(d types.Date) bool {
	return !d.Before(s.CheckIn) && d.Before(s.CheckOut)
}

// Shift moves the stay by n days keeping its length
func (s StayRange) Shift(n int) StayRange {
	return StayRange{CheckIn: s.CheckIn.AddDays(n), CheckOut: s.CheckOut.AddDays(n)}
}

func (s StayRange) String() string {
	return fmt.Sprintf("[%s, %s)", s.CheckIn, s.CheckOut)
}
