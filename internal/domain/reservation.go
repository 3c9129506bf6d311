package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCheckedIn  ReservationStatus = "checked_in"
	StatusCheckedOut ReservationStatus = "checked_out"
	StatusCancelled  ReservationStatus = "cancelled"
)

// IsValid reports whether the status is known
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents how much of a reservation has been paid or refunded
type PaymentStatus string

const (
	PaymentUnpaid            PaymentStatus = "unpaid"
	PaymentPartiallyPaid     PaymentStatus = "partially_paid"
	PaymentPaid              PaymentStatus = "paid"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

// PaymentStatusFor derives the payment status of a new reservation
func PaymentStatusFor(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.IsZero() && total.IsPositive():
		return PaymentUnpaid
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	default:
		return PaymentPartiallyPaid
	}
}

// Reservation represents a guest stay in a room
type Reservation struct {
	ID         int64
	RoomNumber string
	Stay       StayRange
	Adults     int
	Children   int
	Status     ReservationStatus

	GuestName      string
	GuestPhone     string
	GuestEmail     string
	Notes          *string
	OwnerReference bool

	// Price breakdown fixed at booking time
	NightlyRate     decimal.Decimal
	BaseTotal       decimal.Decimal
	ExtraGuestTotal decimal.Decimal
	ServicesTotal   decimal.Decimal
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	PaymentStatus   PaymentStatus
	Services        []ReservationService

	Version     int64
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Guests returns the total head count
func (r *Reservation) Guests() int {
	return r.Adults + r.Children
}

// IsBlocking returns true if the reservation holds its room.
// Pending reservations hold the room only when pendingBlocks is set.
func (r *Reservation) IsBlocking(pendingBlocks bool) bool {
	switch r.Status {
	case StatusConfirmed, StatusCheckedIn:
		return true
	case StatusPending:
		return pendingBlocks
	default:
		return false
	}
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// ValidateTransition checks a front-desk status change (cancellation has its own flow)
func (r *Reservation) ValidateTransition(next ReservationStatus, today types.Date) error {
	switch {
	case r.Status == StatusPending && next == StatusConfirmed:
		return nil
	case r.Status == StatusConfirmed && next == StatusCheckedIn:
		if today.Before(r.Stay.CheckIn) {
			return fmt.Errorf("%w: check-in is not possible before %s", ErrValidation, r.Stay.CheckIn)
		}
		return nil
	case r.Status == StatusCheckedIn && next == StatusCheckedOut:
		return nil
	default:
		return fmt.Errorf("%w: transition %s -> %s is not allowed", ErrValidation, r.Status, next)
	}
}

// ReservationService is an extra service attached to a reservation
type ReservationService struct {
	ServiceID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
}

// ReservationFilter selects reservations for listings and overlap checks
type ReservationFilter struct {
	RoomNumber       *string
	From             *types.Date // stays ending after From
	To               *types.Date // stays starting before To
	Status           *ReservationStatus
	IncludeCancelled bool
	Limit            int
	Offset           int
}

// BlockingStatuses returns the statuses that hold a room
func BlockingStatuses(pendingBlocks bool) []ReservationStatus {
	statuses := []ReservationStatus{StatusConfirmed, StatusCheckedIn}
	if pendingBlocks {
		statuses = append(statuses, StatusPending)
	}
	return statuses
}
