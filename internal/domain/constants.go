package domain

import "github.com/m04kA/SMC-HotelBookingService/pkg/types"

// Default configuration values
const (
	DefaultLookaheadDays = 30
	DefaultFeePercent    = 20
	DefaultPendingBlocks = true
)

// Business validation constants
const (
	MinAdults          = 1
	MaxStayNights      = 365
	MaxGuestNameLength = 200
	MaxNotesLength     = 500
	MaxServiceQuantity = 100
)

// NoRefundWarning is reported when an operator fee swallows the whole total
const NoRefundWarning = "no refund with this fee"

// DateFormat YYYY-MM-DD
const DateFormat = types.DateLayout

// CancellableStatuses statuses from which a reservation may be cancelled
var CancellableStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
