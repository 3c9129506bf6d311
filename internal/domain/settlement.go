package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CancellationReason is the reason code recorded with a cancellation
type CancellationReason string

const (
	ReasonGuestRequest       CancellationReason = "guest_request"
	ReasonChangeOfPlans      CancellationReason = "change_of_plans"
	ReasonMedicalEmergency   CancellationReason = "medical_emergency"
	ReasonTravelRestrictions CancellationReason = "travel_restrictions"
	ReasonHotelFault         CancellationReason = "hotel_fault"
	ReasonDuplicateBooking   CancellationReason = "duplicate_booking"
	ReasonNoShow             CancellationReason = "no_show"
	ReasonOther              CancellationReason = "other"
)

var reasonLabels = map[CancellationReason]string{
	ReasonGuestRequest:       "Guest request",
	ReasonChangeOfPlans:      "Change of plans",
	ReasonMedicalEmergency:   "Medical emergency",
	ReasonTravelRestrictions: "Travel restrictions",
	ReasonHotelFault:         "Hotel fault",
	ReasonDuplicateBooking:   "Duplicate booking",
	ReasonNoShow:             "No show",
	ReasonOther:              "Other",
}

// IsValid reports whether the reason code is known
func (r CancellationReason) IsValid() bool {
	_, ok := reasonLabels[r]
	return ok
}

// Label returns a human readable name of the reason
func (r CancellationReason) Label() string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return string(r)
}

// WaivesFee returns true for reasons that are refunded in full by policy
func (r CancellationReason) WaivesFee() bool {
	return r == ReasonMedicalEmergency || r == ReasonHotelFault
}

// RefundType labels a settlement
type RefundType string

const (
	RefundFull    RefundType = "Full Refund"
	RefundPartial RefundType = "Partial Refund"
)

// FeeSource tells where the cancellation fee came from
type FeeSource string

const (
	FeeSourcePolicy   FeeSource = "policy"
	FeeSourceOverride FeeSource = "override"
)

// CancellationSettlement is the fee/refund breakdown of a cancellation.
// Persisted once together with the status change and never updated.
type CancellationSettlement struct {
	ReservationID   int64
	OriginalAmount  decimal.Decimal
	CancellationFee decimal.Decimal
	RefundAmount    decimal.Decimal
	RefundType      RefundType
	Reason          CancellationReason
	PolicyLabel     string
	FeeSource       FeeSource
	Clamped         bool   // operator fee exceeded the total and was reduced to it
	Warning         string // set together with Clamped
	Notes           *string
	CreatedAt       time.Time
}
