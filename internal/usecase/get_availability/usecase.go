package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Исходы запроса доступности для метрик
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// UseCase use case для получения доступности номеров на период
type UseCase struct {
	inventory       InventorySource
	reservationRepo ReservationRepository
	index           *availability.Index
	pricing         *pricing.Engine
	metrics         Metrics
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	inventory InventorySource,
	reservationRepo ReservationRepository,
	index *availability.Index,
	pricingEngine *pricing.Engine,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		inventory:       inventory,
		reservationRepo: reservationRepo,
		index:           index,
		pricing:         pricingEngine,
		metrics:         metrics,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute классифицирует все номера на период и считает цену свободных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: checkIn=%s, checkOut=%s, guests=%d", req.CheckIn, req.CheckOut, req.Guests)

	// 1. Валидация входных данных
	stay, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		uc.metrics.IncAvailabilityQuery(outcomeInvalid)
		return nil, err
	}

	// 2. Текущая дата в часовом поясе отеля
	today := types.DateOf(uc.timeProvider.Now().In(uc.location))

	// 3. Номерной фонд
	snapshot, err := uc.inventory.GetSnapshot(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to load inventory: %v", err)
		uc.metrics.IncAvailabilityQuery(outcomeError)
		return nil, fmt.Errorf("%w: failed to load inventory: %v", ErrInternal, err)
	}

	// 4. Брони в окне [min(заезд, сегодня), выезд + горизонт):
	// текущие заселения, брони периода и следующие брони для поиска окна
	from := types.MinDate(stay.CheckIn, today)
	to := stay.CheckOut.AddDays(uc.index.LookaheadDays())

	reservations, err := uc.reservationRepo.ListOverlapping(ctx, from, to, domain.BlockingStatuses(uc.index.PendingBlocks()))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list reservations: %v", err)
		uc.metrics.IncAvailabilityQuery(outcomeError)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 5. Классификация
	result, err := uc.index.Classify(snapshot, reservations, availability.Query{
		Stay:       stay,
		Guests:     req.Guests,
		RoomTypeID: req.RoomTypeID,
	}, today)
	if err != nil {
		uc.logger.Warn("GetAvailability: classification rejected query: %v", err)
		uc.metrics.IncAvailabilityQuery(outcomeInvalid)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Цена для свободных номеров
	items := make([]RoomItem, 0, len(result.Rooms))
	for _, ra := range result.Rooms {
		item := RoomItem{RoomAvailability: ra}
		if ra.IsBookable {
			room := ra.Room
			quote, err := uc.pricing.Quote(pricing.QuoteInput{
				Room:     &room,
				RoomType: ra.RoomType,
				Stay:     stay,
				Guests:   req.Guests,
			})
			if err != nil {
				uc.logger.Warn("GetAvailability: cannot price room %s: %v", ra.Room.Number, err)
			} else {
				item.Quote = quote
			}
		}
		items = append(items, item)
	}

	uc.metrics.IncAvailabilityQuery(outcomeOK)
	uc.logger.Info("GetAvailability: %d rooms, %d available, %d filtered out",
		result.Counts.Total, result.Counts.Available, result.FilteredOut)

	return &Response{
		Stay:        stay,
		Guests:      req.Guests,
		Today:       today,
		Rooms:       items,
		Counts:      result.Counts,
		FilteredOut: result.FilteredOut,
	}, nil
}
