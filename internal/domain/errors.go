package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrValidation malformed input: dates out of order, non-positive guest counts, unknown codes
	ErrValidation = errors.New("validation error")

	// ErrNotFound unknown room, room type, reservation or service
	ErrNotFound = errors.New("not found")

	// ErrRoomUnavailable the stay overlaps a reservation or an out-of-service window
	ErrRoomUnavailable = errors.New("room unavailable")

	// ErrInvalidFee the cancellation fee violates its bounds
	ErrInvalidFee = errors.New("invalid cancellation fee")

	// ErrConflictingUpdate the record was changed concurrently
	ErrConflictingUpdate = errors.New("conflicting update")
)

// ConflictError describes what holds the room over the requested stay.
// Either ReservationID is set (an overlapping reservation) or State (a housekeeping window).
type ConflictError struct {
	RoomNumber    string
	ReservationID int64
	Status        ReservationStatus
	State         OperationalState
	Stay          StayRange
}

func (e *ConflictError) Error() string {
	if e.ReservationID != 0 {
		return fmt.Sprintf("room %s is held by reservation %d (%s) for %s",
			e.RoomNumber, e.ReservationID, e.Status, e.Stay)
	}
	return fmt.Sprintf("room %s is in %s", e.RoomNumber, e.State)
}

func (e *ConflictError) Unwrap() error {
	return ErrRoomUnavailable
}

// AsConflictError extracts a *ConflictError from an error chain
func AsConflictError(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

// FeeError carries the violated bound of a cancellation fee
type FeeError struct {
	Fee   decimal.Decimal
	Bound decimal.Decimal
}

func (e *FeeError) Error() string {
	return fmt.Sprintf("cancellation fee %s is below %s", e.Fee, e.Bound)
}

func (e *FeeError) Unwrap() error {
	return ErrInvalidFee
}
