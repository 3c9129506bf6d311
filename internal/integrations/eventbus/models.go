package eventbus

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Очереди событий
const (
	QueueReservationCreated   = "reservation.created"
	QueueReservationCancelled = "reservation.cancelled"
)

// ReservationCreatedEvent публикуется после коммита новой брони
type ReservationCreatedEvent struct {
	ReservationID int64                    `json:"reservation_id"`
	RoomNumber    string                   `json:"room_number"`
	CheckIn       types.Date               `json:"check_in"`
	CheckOut      types.Date               `json:"check_out"`
	Guests        int                      `json:"guests"`
	Status        domain.ReservationStatus `json:"status"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	PaidAmount    decimal.Decimal          `json:"paid_amount"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ReservationCancelledEvent публикуется после коммита отмены
type ReservationCancelledEvent struct {
	ReservationID   int64                     `json:"reservation_id"`
	RoomNumber      string                    `json:"room_number"`
	CheckIn         types.Date                `json:"check_in"`
	CheckOut        types.Date                `json:"check_out"`
	Reason          domain.CancellationReason `json:"reason"`
	CancellationFee decimal.Decimal           `json:"cancellation_fee"`
	RefundAmount    decimal.Decimal           `json:"refund_amount"`
	RefundType      domain.RefundType         `json:"refund_type"`
	CancelledAt     time.Time                 `json:"cancelled_at"`
}

// NewReservationCreatedEvent собирает событие из сохраненной брони
func NewReservationCreatedEvent(r *domain.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		ReservationID: r.ID,
		RoomNumber:    r.RoomNumber,
		CheckIn:       r.Stay.CheckIn,
		CheckOut:      r.Stay.CheckOut,
		Guests:        r.Guests(),
		Status:        r.Status,
		TotalAmount:   r.TotalAmount,
		PaidAmount:    r.PaidAmount,
		CreatedAt:     r.CreatedAt,
	}
}

// NewReservationCancelledEvent собирает событие из отмененной брони и расчета
func NewReservationCancelledEvent(r *domain.Reservation, s *domain.CancellationSettlement) ReservationCancelledEvent {
	event := ReservationCancelledEvent{
		ReservationID:   r.ID,
		RoomNumber:      r.RoomNumber,
		CheckIn:         r.Stay.CheckIn,
		CheckOut:        r.Stay.CheckOut,
		Reason:          s.Reason,
		CancellationFee: s.CancellationFee,
		RefundAmount:    s.RefundAmount,
		RefundType:      s.RefundType,
	}
	if r.CancelledAt != nil {
		event.CancelledAt = *r.CancelledAt
	}
	return event
}
