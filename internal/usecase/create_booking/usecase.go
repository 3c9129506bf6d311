package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/inventory"
	reservationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
	catalogClient "github.com/m04kA/SMC-HotelBookingService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	inventoryRepo   InventoryRepository
	catalog         ServiceCatalogClient
	pricing         *pricing.Engine
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	options         Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	inventoryRepo InventoryRepository,
	catalog ServiceCatalogClient,
	pricingEngine *pricing.Engine,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	options Options,
	logger Logger,
) *UseCase {
	if options.Location == nil {
		options.Location = time.UTC
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		inventoryRepo:   inventoryRepo,
		catalog:         catalog,
		pricing:         pricingEngine,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		options:         options,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони.
// Проверка пересечений и вставка идут в одной сериализуемой транзакции под блокировкой номера,
// поэтому из двух конкурирующих заявок на один номер проходит только одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%s, checkIn=%s, checkOut=%s, adults=%d, children=%d",
		req.RoomNumber, req.CheckIn, req.CheckOut, req.Adults, req.Children)

	// 1. Валидация входных данных
	stay, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	today := types.DateOf(uc.timeProvider.Now().In(uc.options.Location))
	if err := validateCheckIn(stay, today, req.Backfill); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 2. Доп. услуги из каталога (вне транзакции, это сетевой вызов)
	services, err := uc.resolveServices(ctx, req.Services)
	if err != nil {
		return nil, err
	}

	var (
		result *domain.Reservation
		quote  *pricing.Quote
	)

	// 3. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем номер
		if err := uc.reservationRepo.LockRoom(txCtx, req.RoomNumber); err != nil {
			if errors.Is(err, reservationRepo.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: lock room %s: %v", ErrInternal, req.RoomNumber, err)
		}

		// 3.2. Актуальные данные номера под блокировкой
		room, roomType, err := uc.loadRoom(txCtx, req.RoomNumber)
		if err != nil {
			return err
		}

		if guests := req.Adults + req.Children; guests > room.MaxOccupancy() {
			return fmt.Errorf("%w: room %s accepts at most %d guests", ErrInvalidInput, room.Number, room.MaxOccupancy())
		}

		if room.StateBlocks(stay) {
			return stateConflict(room)
		}

		// 3.3. Перечитываем блокирующие брони номера на период
		existing, err := uc.reservationRepo.ListByRoom(txCtx, room.Number, stay, domain.BlockingStatuses(uc.options.PendingBlocks))
		if err != nil {
			return fmt.Errorf("%w: list room reservations: %v", ErrInternal, err)
		}

		if conflict := availability.FindConflict(existing, stay, uc.options.PendingBlocks); conflict != nil {
			return &domain.ConflictError{
				RoomNumber:    room.Number,
				ReservationID: conflict.ID,
				Status:        conflict.Status,
				Stay:          conflict.Stay,
			}
		}

		// 3.4. Считаем стоимость на сервере
		quote, err = uc.pricing.Quote(pricing.QuoteInput{
			Room:     room,
			RoomType: roomType,
			Stay:     stay,
			Guests:   req.Adults + req.Children,
			Services: services,
		})
		if err != nil {
			return err
		}

		if err := validatePayment(req, quote.Total, uc.options.RequireAdvancePayment); err != nil {
			return err
		}

		// 3.5. Сохраняем бронь
		created, err := uc.reservationRepo.Create(txCtx, newReservation(req, stay, quote))
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapError(ctx, req, stay, err)
	}

	uc.logger.Info("CreateBooking: created reservation id=%d, room=%s, total=%s",
		result.ID, result.RoomNumber, result.TotalAmount.StringFixed(2))
	uc.metrics.IncBookingCreated()

	// 4. Событие после коммита, ошибка публикации бронь не отменяет
	if err := uc.publisher.PublishReservationCreated(ctx, eventbus.NewReservationCreatedEvent(result)); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return &Response{Reservation: result, Quote: quote}, nil
}

func (uc *UseCase) resolveServices(ctx context.Context, selections []domain.ServiceSelection) ([]pricing.ServiceLine, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	catalog, err := uc.catalog.GetServices(ctx, serviceIDs(selections))
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
		}
		uc.logger.Error("CreateBooking: failed to get services: %v", err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	return pricing.LinesFor(selections, catalog)
}

func (uc *UseCase) loadRoom(ctx context.Context, number string) (*domain.Room, *domain.RoomType, error) {
	room, err := uc.inventoryRepo.GetRoom(ctx, number)
	if err != nil {
		if errors.Is(err, inventoryRepo.ErrRoomNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, fmt.Errorf("%w: get room %s: %v", ErrInternal, number, err)
	}

	if room.RoomTypeID == nil {
		return room, nil, nil
	}

	roomType, err := uc.inventoryRepo.GetRoomType(ctx, *room.RoomTypeID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: get room type %d: %v", ErrInternal, *room.RoomTypeID, err)
	}

	return room, roomType, nil
}

// mapError приводит ошибки транзакции к ошибкам use case
func (uc *UseCase) mapError(ctx context.Context, req *Request, stay domain.StayRange, err error) error {
	if conflict, ok := domain.AsConflictError(err); ok {
		uc.logger.Warn("CreateBooking: room=%s unavailable: %v", req.RoomNumber, conflict)
		uc.metrics.IncBookingConflict()
		return err
	}

	switch {
	case errors.Is(err, reservationRepo.ErrOverlap),
		errors.Is(err, reservationRepo.ErrSerialization),
		errors.Is(err, txmanager.ErrSerialization):
		// Параллельная транзакция успела занять номер
		uc.logger.Warn("CreateBooking: room=%s taken concurrently: %v", req.RoomNumber, err)
		uc.metrics.IncBookingConflict()
		if conflict := uc.committedConflict(ctx, req.RoomNumber, stay); conflict != nil {
			return fmt.Errorf("%w: %w", ErrRoomUnavailable, conflict)
		}
		return fmt.Errorf("%w: %v", ErrRoomUnavailable, err)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}
}

// committedConflict перечитывает брони номера вне транзакции.
// Снимок проигравшей транзакции не видит бронь победителя, свежее чтение видит.
func (uc *UseCase) committedConflict(ctx context.Context, roomNumber string, stay domain.StayRange) *domain.ConflictError {
	existing, err := uc.reservationRepo.ListByRoom(ctx, roomNumber, stay, domain.BlockingStatuses(uc.options.PendingBlocks))
	if err != nil {
		uc.logger.Error("CreateBooking: failed to re-read room=%s after conflict: %v", roomNumber, err)
		return nil
	}

	conflict := availability.FindConflict(existing, stay, uc.options.PendingBlocks)
	if conflict == nil {
		return nil
	}

	return &domain.ConflictError{
		RoomNumber:    roomNumber,
		ReservationID: conflict.ID,
		Status:        conflict.Status,
		Stay:          conflict.Stay,
	}
}

// stateConflict описывает окно обслуживания номера, открытые границы остаются пустыми
func stateConflict(room *domain.Room) *domain.ConflictError {
	conflict := &domain.ConflictError{RoomNumber: room.Number, State: room.State}
	if room.StateSince != nil {
		conflict.Stay.CheckIn = *room.StateSince
	}
	if room.StateUntil != nil {
		conflict.Stay.CheckOut = *room.StateUntil
	}
	return conflict
}

// newReservation собирает бронь из запроса и расчета
func newReservation(req *Request, stay domain.StayRange, quote *pricing.Quote) *domain.Reservation {
	status := domain.StatusConfirmed
	if req.Pending {
		status = domain.StatusPending
	}

	services := make([]domain.ReservationService, 0, len(quote.Services))
	for _, s := range quote.Services {
		services = append(services, domain.ReservationService{
			ServiceID: s.ServiceID,
			Name:      s.Name,
			UnitPrice: s.UnitPrice,
			Quantity:  s.Quantity,
			Total:     s.Total,
		})
	}

	return &domain.Reservation{
		RoomNumber:      req.RoomNumber,
		Stay:            stay,
		Adults:          req.Adults,
		Children:        req.Children,
		Status:          status,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestPhone:      req.GuestPhone,
		GuestEmail:      req.GuestEmail,
		Notes:           req.Notes,
		OwnerReference:  req.OwnerReference,
		NightlyRate:     quote.NightlyRate,
		BaseTotal:       quote.BaseTotal,
		ExtraGuestTotal: quote.ExtraGuestTotal,
		ServicesTotal:   quote.ServicesTotal,
		TotalAmount:     quote.Total,
		PaidAmount:      req.PaidAmount,
		PaymentStatus:   domain.PaymentStatusFor(quote.Total, req.PaidAmount),
		Services:        services,
	}
}
