package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Service сервис для просмотра броней и смены их статуса
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	pendingBlocks   bool
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	pendingBlocks bool,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		pendingBlocks:   pendingBlocks,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// List получает брони по фильтру: номер, период, статус
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	filter := domain.ReservationFilter{
		RoomNumber:       req.RoomNumber,
		From:             req.From,
		To:               req.To,
		IncludeCancelled: req.IncludeCancelled,
		Limit:            req.Limit,
		Offset:           req.Offset,
	}

	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит бронь по жизненному циклу:
// pending -> confirmed, confirmed -> checked_in (не раньше даты заезда), checked_in -> checked_out.
// Подтверждение pending брони повторно проверяет пересечения под блокировкой номера.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d, status=%s", id, req.Status)

	// 1. Валидация входных данных
	next, err := models.ToDomainStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if next == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: use the cancellation endpoint to cancel", ErrInvalidInput)
	}

	// 2. Находим номер брони, чтобы взять его блокировку
	current, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	today := types.DateOf(s.timeProvider.Now().In(s.location))
	var result *domain.Reservation

	// 3. Меняем статус в сериализуемой транзакции под блокировкой номера
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.LockRoom(txCtx, current.RoomNumber); err != nil {
			return fmt.Errorf("%w: lock room %s: %v", ErrInternal, current.RoomNumber, err)
		}

		// 3.1. Перечитываем бронь под блокировкой
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: reload reservation: %v", ErrInternal, err)
		}

		if req.Version != nil && *req.Version != reservation.Version {
			return fmt.Errorf("%w: expected version %d, actual %d", ErrStaleVersion, *req.Version, reservation.Version)
		}

		// 3.2. Проверяем переход
		if err := reservation.ValidateTransition(next, today); err != nil {
			return err
		}

		// 3.3. Неблокирующая pending бронь при подтверждении начинает занимать номер
		if next == domain.StatusConfirmed && !reservation.IsBlocking(s.pendingBlocks) {
			if err := s.checkConflicts(txCtx, reservation); err != nil {
				return err
			}
		}

		updated, err := s.reservationRepo.UpdateStatus(txCtx, reservation.ID, reservation.Version, next)
		if err != nil {
			return err
		}

		result = updated
		return nil
	})

	if err != nil {
		// Снимок транзакции мог не видеть чужую бронь, окно конфликта берем свежим чтением
		if errors.Is(err, reservationRepo.ErrOverlap) {
			if conflictErr := s.checkConflicts(ctx, current); conflictErr != nil {
				if _, ok := domain.AsConflictError(conflictErr); ok {
					err = conflictErr
				}
			}
		}
		return nil, s.mapWriteError("UpdateStatus", id, err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, result.Status)
	return models.FromDomainReservation(result), nil
}

// GetSettlement получает сохраненный расчет отмены брони
func (s *Service) GetSettlement(ctx context.Context, reservationID int64) (*models.SettlementResponse, error) {
	settlement, err := s.reservationRepo.GetSettlement(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSettlementNotFound) {
			s.logger.Warn("GetSettlement: no settlement for reservation id=%d", reservationID)
			return nil, ErrSettlementNotFound
		}
		s.logger.Error("GetSettlement: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: GetSettlement - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettlement(settlement), nil
}

// checkConflicts ищет блокирующие брони номера, пересекающиеся с reservation (кроме нее самой)
func (s *Service) checkConflicts(ctx context.Context, reservation *domain.Reservation) error {
	existing, err := s.reservationRepo.ListByRoom(ctx, reservation.RoomNumber, reservation.Stay, domain.BlockingStatuses(s.pendingBlocks))
	if err != nil {
		return fmt.Errorf("%w: list room reservations: %v", ErrInternal, err)
	}

	others := make([]*domain.Reservation, 0, len(existing))
	for _, r := range existing {
		if r.ID != reservation.ID {
			others = append(others, r)
		}
	}

	if conflict := availability.FindConflict(others, reservation.Stay, s.pendingBlocks); conflict != nil {
		return &domain.ConflictError{
			RoomNumber:    reservation.RoomNumber,
			ReservationID: conflict.ID,
			Status:        conflict.Status,
			Stay:          conflict.Stay,
		}
	}
	return nil
}

// mapWriteError приводит ошибки записи к ошибкам сервиса
func (s *Service) mapWriteError(method string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflictingUpdate),
		errors.Is(err, domain.ErrRoomUnavailable):
		s.logger.Warn("%s: reservation id=%d rejected: %v", method, id, err)
		return err
	case errors.Is(err, reservationRepo.ErrOverlap):
		s.logger.Warn("%s: reservation id=%d overlaps: %v", method, id, err)
		return fmt.Errorf("%w: %v", domain.ErrRoomUnavailable, err)
	case errors.Is(err, reservationRepo.ErrVersionConflict),
		errors.Is(err, reservationRepo.ErrSerialization),
		errors.Is(err, txmanager.ErrSerialization):
		s.logger.Warn("%s: reservation id=%d changed concurrently: %v", method, id, err)
		return fmt.Errorf("%w: %v", ErrStaleVersion, err)
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	default:
		s.logger.Error("%s: reservation id=%d failed: %v", method, id, err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrInternal, method, err)
	}
}
