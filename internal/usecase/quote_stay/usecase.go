package quote_stay

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-HotelBookingService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
)

// UseCase use case для расчета стоимости проживания в номере
type UseCase struct {
	inventory InventorySource
	catalog   ServiceCatalogClient
	pricing   *pricing.Engine
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(inventory InventorySource, catalog ServiceCatalogClient, pricingEngine *pricing.Engine, logger Logger) *UseCase {
	return &UseCase{
		inventory: inventory,
		catalog:   catalog,
		pricing:   pricingEngine,
		logger:    logger,
	}
}

// Execute считает стоимость без записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteStay: room=%s, checkIn=%s, checkOut=%s, adults=%d, children=%d",
		req.RoomNumber, req.CheckIn, req.CheckOut, req.Adults, req.Children)

	// 1. Валидация входных данных
	stay, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("QuoteStay: validation failed: %v", err)
		return nil, err
	}

	// 2. Номер и его тип
	snapshot, err := uc.inventory.GetSnapshot(ctx)
	if err != nil {
		uc.logger.Error("QuoteStay: failed to load inventory: %v", err)
		return nil, fmt.Errorf("%w: failed to load inventory: %v", ErrInternal, err)
	}

	room, ok := snapshot.FindRoom(req.RoomNumber)
	if !ok {
		uc.logger.Warn("QuoteStay: room=%s not found", req.RoomNumber)
		return nil, ErrRoomNotFound
	}

	guests := req.Adults + req.Children
	if guests > room.MaxOccupancy() {
		return nil, fmt.Errorf("%w: room %s accepts at most %d guests", ErrInvalidInput, room.Number, room.MaxOccupancy())
	}

	// 3. Доп. услуги из каталога
	lines, err := uc.serviceLines(ctx, req.Services)
	if err != nil {
		return nil, err
	}

	// 4. Расчет
	quote, err := uc.pricing.Quote(pricing.QuoteInput{
		Room:     room,
		RoomType: snapshot.RoomTypeOf(room),
		Stay:     stay,
		Guests:   guests,
		Services: lines,
	})
	if err != nil {
		uc.logger.Warn("QuoteStay: pricing failed for room=%s: %v", room.Number, err)
		return nil, err
	}

	uc.logger.Info("QuoteStay: room=%s, nights=%d, total=%s", room.Number, quote.Nights, quote.Total.StringFixed(2))
	return &Response{Quote: quote}, nil
}

func (uc *UseCase) serviceLines(ctx context.Context, selections []domain.ServiceSelection) ([]pricing.ServiceLine, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	services, err := uc.catalog.GetServices(ctx, serviceIDs(selections))
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("QuoteStay: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("QuoteStay: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	lines, err := pricing.LinesFor(selections, services)
	if err != nil {
		return nil, err
	}
	return lines, nil
}
