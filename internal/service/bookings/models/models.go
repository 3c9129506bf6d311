package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса брони
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Version *int64 `json:"version,omitempty"` // ожидаемая версия записи (опционально)
}

// ListRequest фильтр списка броней
type ListRequest struct {
	RoomNumber       *string
	From             *types.Date
	To               *types.Date
	Status           *string
	IncludeCancelled bool
	Limit            int
	Offset           int
}

// Response модели

// ServiceLineResponse доп. услуга в брони
type ServiceLineResponse struct {
	ServiceID int64  `json:"serviceId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID         int64      `json:"id"`
	RoomNumber string     `json:"roomNumber"`
	CheckIn    types.Date `json:"checkIn"`
	CheckOut   types.Date `json:"checkOut"`
	Nights     int        `json:"nights"`
	Adults     int        `json:"adults"`
	Children   int        `json:"children"`
	Status     string     `json:"status"`

	GuestName      string  `json:"guestName"`
	GuestPhone     string  `json:"guestPhone,omitempty"`
	GuestEmail     string  `json:"guestEmail,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	OwnerReference bool    `json:"ownerReference"`

	NightlyRate     string                `json:"nightlyRate"`
	BaseTotal       string                `json:"baseTotal"`
	ExtraGuestTotal string                `json:"extraGuestTotal"`
	ServicesTotal   string                `json:"servicesTotal"`
	TotalAmount     string                `json:"totalAmount"`
	PaidAmount      string                `json:"paidAmount"`
	PaymentStatus   string                `json:"paymentStatus"`
	Services        []ServiceLineResponse `json:"services"`

	Version     int64     `json:"version"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// SettlementResponse расчет отмены
type SettlementResponse struct {
	ReservationID   int64     `json:"reservationId"`
	OriginalAmount  string    `json:"originalAmount"`
	CancellationFee string    `json:"cancellationFee"`
	RefundAmount    string    `json:"refundAmount"`
	RefundType      string    `json:"refundType"`
	Reason          string    `json:"reason"`
	PolicyLabel     string    `json:"policyLabel"`
	FeeSource       string    `json:"feeSource"`
	Clamped         bool      `json:"clamped"`
	Warning         string    `json:"warning,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// Методы конвертации

// Money форматирует сумму с двумя знаками после запятой
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		RoomNumber:      r.RoomNumber,
		CheckIn:         r.Stay.CheckIn,
		CheckOut:        r.Stay.CheckOut,
		Nights:          r.Stay.Nights(),
		Adults:          r.Adults,
		Children:        r.Children,
		Status:          string(r.Status),
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		GuestEmail:      r.GuestEmail,
		Notes:           r.Notes,
		OwnerReference:  r.OwnerReference,
		NightlyRate:     Money(r.NightlyRate),
		BaseTotal:       Money(r.BaseTotal),
		ExtraGuestTotal: Money(r.ExtraGuestTotal),
		ServicesTotal:   Money(r.ServicesTotal),
		TotalAmount:     Money(r.TotalAmount),
		PaidAmount:      Money(r.PaidAmount),
		PaymentStatus:   string(r.PaymentStatus),
		Services:        make([]ServiceLineResponse, 0, len(r.Services)),
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	for _, s := range r.Services {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			UnitPrice: Money(s.UnitPrice),
			Quantity:  s.Quantity,
			Total:     Money(s.Total),
		})
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}

// FromDomainSettlement конвертирует расчет отмены в DTO
func FromDomainSettlement(s *domain.CancellationSettlement) *SettlementResponse {
	if s == nil {
		return nil
	}

	return &SettlementResponse{
		ReservationID:   s.ReservationID,
		OriginalAmount:  Money(s.OriginalAmount),
		CancellationFee: Money(s.CancellationFee),
		RefundAmount:    Money(s.RefundAmount),
		RefundType:      string(s.RefundType),
		Reason:          string(s.Reason),
		PolicyLabel:     s.PolicyLabel,
		FeeSource:       string(s.FeeSource),
		Clamped:         s.Clamped,
		Warning:         s.Warning,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
	}
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
