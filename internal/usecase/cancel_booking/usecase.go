package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/refund"
	"github.com/m04kA/SMC-HotelBookingService/pkg/txmanager"
)

// UseCase use case для отмены брони
type UseCase struct {
	reservationRepo ReservationRepository
	calculator      *refund.Calculator
	publisher       EventPublisher
	metrics         Metrics
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	calculator *refund.Calculator,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		calculator:      calculator,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute отменяет бронь и сохраняет расчет штрафа и возврата.
// Идет под той же блокировкой номера, что и создание брони.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: reservation id=%d, reason=%s", req.ReservationID, req.Reason)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Номер брони нужен для блокировки
	current, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	var (
		cancelled  *domain.Reservation
		settlement *domain.CancellationSettlement
	)

	// 3. Отмена в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.reservationRepo.LockRoom(txCtx, current.RoomNumber); err != nil {
			return fmt.Errorf("%w: lock room %s: %v", ErrInternal, current.RoomNumber, err)
		}

		// 3.1. Перечитываем бронь под блокировкой
		reservation, err := uc.getReservation(txCtx, req.ReservationID)
		if err != nil {
			return err
		}

		if !reservation.CanBeCancelled() {
			return fmt.Errorf("%w: status is %s", ErrNotCancellable, reservation.Status)
		}
		if req.Version != nil && *req.Version != reservation.Version {
			return fmt.Errorf("%w: expected version %d, actual %d", ErrStaleVersion, *req.Version, reservation.Version)
		}

		// 3.2. Расчет и сверка с присланной суммой возврата
		computed, err := uc.settle(reservation, req)
		if err != nil {
			return err
		}

		// 3.3. Меняем статус с проверкой версии
		paymentStatus := refundPaymentStatus(reservation.PaymentStatus, reservation.PaidAmount, computed.RefundAmount)
		cancelled, err = uc.reservationRepo.Cancel(txCtx, reservation.ID, reservation.Version, paymentStatus)
		if err != nil {
			return err
		}

		// 3.4. Сохраняем расчет
		settlement, err = uc.reservationRepo.CreateSettlement(txCtx, computed)
		if err != nil {
			return fmt.Errorf("%w: save settlement: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.mapError(req.ReservationID, err)
	}

	uc.logger.Info("CancelBooking: reservation id=%d cancelled, fee=%s, refund=%s (%s)",
		cancelled.ID, settlement.CancellationFee.StringFixed(2), settlement.RefundAmount.StringFixed(2), settlement.RefundType)
	if settlement.Clamped {
		uc.logger.Warn("CancelBooking: reservation id=%d: %s", cancelled.ID, settlement.Warning)
	}
	uc.metrics.IncCancellation(string(settlement.RefundType))

	// 4. Событие после коммита
	event := eventbus.NewReservationCancelledEvent(cancelled, settlement)
	if err := uc.publisher.PublishReservationCancelled(ctx, event); err != nil {
		uc.logger.Error("CancelBooking: failed to publish event for reservation id=%d: %v", cancelled.ID, err)
	}

	return &Response{Reservation: cancelled, Settlement: settlement}, nil
}

// Preview считает штраф и возврат без записи
func (uc *UseCase) Preview(ctx context.Context, req *Request) (*domain.CancellationSettlement, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking.Preview: validation failed: %v", err)
		return nil, err
	}

	reservation, err := uc.getReservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanBeCancelled() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, reservation.Status)
	}

	settlement, err := uc.settle(reservation, req)
	if err != nil {
		uc.logger.Warn("CancelBooking.Preview: reservation id=%d: %v", req.ReservationID, err)
		return nil, err
	}

	return settlement, nil
}

func (uc *UseCase) settle(reservation *domain.Reservation, req *Request) (*domain.CancellationSettlement, error) {
	settlement, err := uc.calculator.Settle(refund.SettleInput{
		ReservationID: reservation.ID,
		Total:         reservation.TotalAmount,
		Reason:        req.Reason,
		FeeOverride:   req.Fee,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := refund.VerifySubmittedRefund(settlement, req.SubmittedRefund); err != nil {
		return nil, err
	}

	return settlement, nil
}

func (uc *UseCase) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelBooking: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelBooking: failed to get reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	return reservation, nil
}

// mapError приводит ошибки транзакции к ошибкам use case
func (uc *UseCase) mapError(id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFee),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflictingUpdate):
		uc.logger.Warn("CancelBooking: reservation id=%d rejected: %v", id, err)
		return err
	case errors.Is(err, reservationRepo.ErrVersionConflict),
		errors.Is(err, reservationRepo.ErrSerialization),
		errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CancelBooking: reservation id=%d changed concurrently: %v", id, err)
		return fmt.Errorf("%w: %v", ErrStaleVersion, err)
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	default:
		uc.logger.Error("CancelBooking: reservation id=%d failed: %v", id, err)
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}
}
