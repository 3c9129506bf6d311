package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

func TestReservation_IsBlocking(t *testing.T) {
	tests := []struct {
		status        ReservationStatus
		pendingBlocks bool
		want          bool
	}{
		{StatusConfirmed, false, true},
		{StatusCheckedIn, false, true},
		{StatusPending, true, true},
		{StatusPending, false, false},
		{StatusCheckedOut, true, false},
		{StatusCancelled, true, false},
	}

	for _, tt := range tests {
		r := &Reservation{Status: tt.status}
		assert.Equal(t, tt.want, r.IsBlocking(tt.pendingBlocks), "%s pendingBlocks=%v", tt.status, tt.pendingBlocks)
	}
}

func TestBlockingStatuses(t *testing.T) {
	assert.ElementsMatch(t, []ReservationStatus{StatusConfirmed, StatusCheckedIn, StatusPending}, BlockingStatuses(true))
	assert.ElementsMatch(t, []ReservationStatus{StatusConfirmed, StatusCheckedIn}, BlockingStatuses(false))
}

func TestReservation_ValidateTransition(t *testing.T) {
	s := stay(t, "2025-09-10", "2025-09-12")
	before := types.MustParseDate("2025-09-09")
	onDay := types.MustParseDate("2025-09-10")

	tests := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		today   types.Date
		wantErr bool
	}{
		{"confirm pending", StatusPending, StatusConfirmed, before, false},
		{"check in on the day", StatusConfirmed, StatusCheckedIn, onDay, false},
		{"check in too early", StatusConfirmed, StatusCheckedIn, before, true},
		{"check out", StatusCheckedIn, StatusCheckedOut, onDay, false},
		{"skip confirmation", StatusPending, StatusCheckedIn, onDay, true},
		{"reopen cancelled", StatusCancelled, StatusConfirmed, onDay, true},
		{"cancel via status", StatusConfirmed, StatusCancelled, onDay, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Reservation{Status: tt.from, Stay: s}
			err := r.ValidateTransition(tt.to, tt.today)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaymentStatusFor(t *testing.T) {
	total := decimal.NewFromInt(2000)

	assert.Equal(t, PaymentUnpaid, PaymentStatusFor(total, decimal.Zero))
	assert.Equal(t, PaymentPartiallyPaid, PaymentStatusFor(total, decimal.NewFromInt(500)))
	assert.Equal(t, PaymentPaid, PaymentStatusFor(total, total))
}

func TestRoom_StateBlocks(t *testing.T) {
	query := stay(t, "2025-09-10", "2025-09-12")

	tests := []struct {
		name string
		room Room
		want bool
	}{
		{"in service", Room{State: StateInService}, false},
		{"open-ended maintenance", Room{State: StateMaintenance}, true},
		{"cleaning ends before stay", Room{
			State:      StateCleaning,
			StateUntil: ptr.Ptr(types.MustParseDate("2025-09-10")),
		}, false},
		{"maintenance starts at check-out", Room{
			State:      StateMaintenance,
			StateSince: ptr.Ptr(types.MustParseDate("2025-09-12")),
		}, false},
		{"maintenance inside stay", Room{
			State:      StateMaintenance,
			StateSince: ptr.Ptr(types.MustParseDate("2025-09-11")),
			StateUntil: ptr.Ptr(types.MustParseDate("2025-09-15")),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.room.StateBlocks(query))
		})
	}
}

func TestConflictError_Unwraps(t *testing.T) {
	var err error = &ConflictError{RoomNumber: "101", ReservationID: 7, Status: StatusConfirmed}
	wrapped := errors.Join(errors.New("context"), err)

	assert.ErrorIs(t, wrapped, ErrRoomUnavailable)
	conflict, ok := AsConflictError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, int64(7), conflict.ReservationID)

	var feeErr error = &FeeError{Fee: decimal.NewFromInt(-1), Bound: decimal.Zero}
	assert.ErrorIs(t, feeErr, ErrInvalidFee)
}
