package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// ServiceChargeResponse строка расчета по доп. услуге
type ServiceChargeResponse struct {
	ServiceID int64  `json:"serviceId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// QuoteResponse расчет стоимости проживания. Суммы округлены до копеек только здесь.
type QuoteResponse struct {
	RoomNumber         string                  `json:"roomNumber"`
	CheckIn            types.Date              `json:"checkIn"`
	CheckOut           types.Date              `json:"checkOut"`
	Nights             int                     `json:"nights"`
	Guests             int                     `json:"guests"`
	Currency           string                  `json:"currency"`
	NightlyRate        string                  `json:"nightlyRate"`
	RateSource         string                  `json:"rateSource"`
	ExtraGuests        int                     `json:"extraGuests"`
	ExtraGuestPerNight string                  `json:"extraGuestPerNight"`
	BaseTotal          string                  `json:"baseTotal"`
	ExtraGuestTotal    string                  `json:"extraGuestTotal"`
	ServicesTotal      string                  `json:"servicesTotal"`
	Services           []ServiceChargeResponse `json:"services"`
	Total              string                  `json:"total"`
}

// Money форматирует сумму с двумя знаками после запятой
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FromQuote конвертирует расчет в DTO
func FromQuote(q *pricing.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}

	resp := &QuoteResponse{
		RoomNumber:         q.RoomNumber,
		CheckIn:            q.Stay.CheckIn,
		CheckOut:           q.Stay.CheckOut,
		Nights:             q.Nights,
		Guests:             q.Guests,
		Currency:           q.Currency,
		NightlyRate:        Money(q.NightlyRate),
		RateSource:         string(q.RateSource),
		ExtraGuests:        q.ExtraGuests,
		ExtraGuestPerNight: Money(q.ExtraGuestPerNight),
		BaseTotal:          Money(q.BaseTotal),
		ExtraGuestTotal:    Money(q.ExtraGuestTotal),
		ServicesTotal:      Money(q.ServicesTotal),
		Services:           make([]ServiceChargeResponse, 0, len(q.Services)),
		Total:              Money(q.Total),
	}

	for _, s := range q.Services {
		resp.Services = append(resp.Services, ServiceChargeResponse{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			UnitPrice: Money(s.UnitPrice),
			Quantity:  s.Quantity,
			Total:     Money(s.Total),
		})
	}

	return resp
}

// ServiceSelectionRequest выбранная доп. услуга в теле запроса
type ServiceSelectionRequest struct {
	ServiceID int64 `json:"serviceId"`
	Quantity  int   `json:"quantity"`
}

// ToDomainSelections конвертирует выбранные услуги в domain модель
func ToDomainSelections(items []ServiceSelectionRequest) []domain.ServiceSelection {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.ServiceSelection, 0, len(items))
	for _, item := range items {
		out = append(out, domain.ServiceSelection{ServiceID: item.ServiceID, Quantity: item.Quantity})
	}
	return out
}
