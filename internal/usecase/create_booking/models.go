package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Options настройки бронирования из конфигурации
type Options struct {
	PendingBlocks         bool           // pending бронь занимает номер
	RequireAdvancePayment bool           // бронь без предоплаты разрешена только владельцу
	Location              *time.Location // часовой пояс отеля
}

// Request модель запроса на создание брони
type Request struct {
	RoomNumber string
	CheckIn    types.Date
	CheckOut   types.Date
	Adults     int
	Children   int

	GuestName  string
	GuestPhone string
	GuestEmail string
	Notes      *string

	Services       []domain.ServiceSelection
	PaidAmount     decimal.Decimal
	OwnerReference bool // бронь владельца/своя, предоплата не нужна
	Pending        bool // создать в статусе pending вместо confirmed
	Backfill       bool // внесение прошедшего проживания задним числом
}

// Response модель ответа с созданной бронью
type Response struct {
	Reservation *domain.Reservation
	Quote       *pricing.Quote
}
