package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// RateSource откуда взята цена за ночь
type RateSource string

const (
	RateRoomCustom RateSource = "room_custom"
	RateTypeCustom RateSource = "type_custom"
	RateTypeBase   RateSource = "type_base"
	RateRoomBase   RateSource = "room_base"
)

// QuoteInput входные данные для расчета стоимости
type QuoteInput struct {
	Room     *domain.Room
	RoomType *domain.RoomType // может быть nil
	Stay     domain.StayRange
	Guests   int
	Services []ServiceLine
}

// ServiceLine выбранная доп. услуга с ценой из каталога
type ServiceLine struct {
	Service  domain.ExtraService
	Quantity int
}

// ServiceCharge строка расчета по доп. услуге
type ServiceCharge struct {
	ServiceID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
}

// Quote детализированный расчет стоимости проживания.
// Total всегда равен BaseTotal + ExtraGuestTotal + ServicesTotal без округлений.
type Quote struct {
	RoomNumber string
	Stay       domain.StayRange
	Nights     int
	Guests     int
	Currency   string

	NightlyRate decimal.Decimal
	RateSource  RateSource

	ExtraGuests        int
	ExtraGuestRate     decimal.Decimal
	ExtraGuestPerNight decimal.Decimal

	BaseTotal       decimal.Decimal
	ExtraGuestTotal decimal.Decimal
	ServicesTotal   decimal.Decimal
	Services        []ServiceCharge

	Total decimal.Decimal
}
