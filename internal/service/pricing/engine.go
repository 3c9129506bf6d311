package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Engine считает стоимость проживания. Все вычисления в decimal,
// округление только при выводе наружу.
type Engine struct {
	extraGuestRate decimal.Decimal
	currency       string
}

// NewEngine создает движок расчета. extraGuestRate - доплата за гостя сверх вместимости за ночь.
func NewEngine(extraGuestRate decimal.Decimal, currency string) *Engine {
	if extraGuestRate.IsNegative() {
		extraGuestRate = decimal.Zero
	}
	return &Engine{extraGuestRate: extraGuestRate, currency: currency}
}

// ExtraGuestRate доплата за гостя сверх вместимости за ночь
func (e *Engine) ExtraGuestRate() decimal.Decimal {
	return e.extraGuestRate
}

// Quote рассчитывает стоимость номера на период
func (e *Engine) Quote(in QuoteInput) (*Quote, error) {
	if in.Room == nil {
		return nil, fmt.Errorf("%w: room is required", ErrInvalidInput)
	}

	nights := in.Stay.Nights()
	if !in.Stay.IsValid() || nights < 1 {
		return nil, fmt.Errorf("%w: stay %s has %d nights", ErrInvalidRange, in.Stay, nights)
	}

	if in.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be positive, got %d", ErrInvalidInput, in.Guests)
	}

	// 1. Цена за ночь по приоритету
	rate, source := NightlyRate(in.Room, in.RoomType)
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: negative nightly rate %s for room %s", ErrInvalidInput, rate, in.Room.Number)
	}

	n := decimal.NewFromInt(int64(nights))

	// 2. Доплата за гостей сверх вместимости
	extraGuests := in.Guests - in.Room.Capacity
	if extraGuests < 0 {
		extraGuests = 0
	}
	extraPerNight := e.extraGuestRate.Mul(decimal.NewFromInt(int64(extraGuests)))

	// 3. Доп. услуги
	charges, servicesTotal, err := chargeServices(in.Services)
	if err != nil {
		return nil, err
	}

	baseTotal := rate.Mul(n)
	extraTotal := extraPerNight.Mul(n)

	return &Quote{
		RoomNumber:         in.Room.Number,
		Stay:               in.Stay,
		Nights:             nights,
		Guests:             in.Guests,
		Currency:           e.currency,
		NightlyRate:        rate,
		RateSource:         source,
		ExtraGuests:        extraGuests,
		ExtraGuestRate:     e.extraGuestRate,
		ExtraGuestPerNight: extraPerNight,
		BaseTotal:          baseTotal,
		ExtraGuestTotal:    extraTotal,
		ServicesTotal:      servicesTotal,
		Services:           charges,
		Total:              baseTotal.Add(extraTotal).Add(servicesTotal),
	}, nil
}

// NightlyRate выбирает цену за ночь:
// цена номера > спец. цена типа > базовая цена типа > базовая цена номера
func NightlyRate(room *domain.Room, roomType *domain.RoomType) (decimal.Decimal, RateSource) {
	if room.CustomPrice != nil {
		return *room.CustomPrice, RateRoomCustom
	}
	if roomType != nil {
		if roomType.CustomPrice != nil {
			return *roomType.CustomPrice, RateTypeCustom
		}
		if roomType.BasePrice != nil {
			return *roomType.BasePrice, RateTypeBase
		}
	}
	return room.BasePrice, RateRoomBase
}

// Verify пересчитывает итог из слагаемых
func (q *Quote) Verify() error {
	servicesTotal := decimal.Zero
	for _, s := range q.Services {
		servicesTotal = servicesTotal.Add(s.Total)
	}
	if !servicesTotal.Equal(q.ServicesTotal) {
		return fmt.Errorf("%w: services %s != %s", ErrTotalMismatch, servicesTotal, q.ServicesTotal)
	}

	sum := q.BaseTotal.Add(q.ExtraGuestTotal).Add(q.ServicesTotal)
	if !sum.Equal(q.Total) {
		return fmt.Errorf("%w: %s != %s", ErrTotalMismatch, sum, q.Total)
	}
	return nil
}

func chargeServices(lines []ServiceLine) ([]ServiceCharge, decimal.Decimal, error) {
	charges := make([]ServiceCharge, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, decimal.Zero, fmt.Errorf("%w: quantity of service %d must be at least 1", ErrInvalidInput, line.Service.ID)
		}
		if line.Service.Price.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: service %d has negative price", ErrInvalidInput, line.Service.ID)
		}

		lineTotal := line.Service.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		charges = append(charges, ServiceCharge{
			ServiceID: line.Service.ID,
			Name:      line.Service.Name,
			UnitPrice: line.Service.Price,
			Quantity:  line.Quantity,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return charges, total, nil
}

// LinesFor сопоставляет выбранные услуги с каталогом.
// Повторы одной услуги складываются в одну строку, порядок - по первому упоминанию.
func LinesFor(selections []domain.ServiceSelection, catalog map[int64]domain.ExtraService) ([]ServiceLine, error) {
	lines := make([]ServiceLine, 0, len(selections))
	position := make(map[int64]int, len(selections))

	for _, sel := range selections {
		if sel.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity of service %d must be at least 1", ErrInvalidInput, sel.ServiceID)
		}
		if i, ok := position[sel.ServiceID]; ok {
			lines[i].Quantity += sel.Quantity
			continue
		}

		service, ok := catalog[sel.ServiceID]
		if !ok {
			return nil, fmt.Errorf("%w: service %d is not in the catalog", ErrUnknownService, sel.ServiceID)
		}

		position[sel.ServiceID] = len(lines)
		lines = append(lines, ServiceLine{Service: service, Quantity: sel.Quantity})
	}

	return lines, nil
}
