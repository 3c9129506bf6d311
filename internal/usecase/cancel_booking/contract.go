package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	LockRoom(ctx context.Context, roomNumber string) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id, expectedVersion int64, paymentStatus domain.PaymentStatus) (*domain.Reservation, error)
	CreateSettlement(ctx context.Context, settlement *domain.CancellationSettlement) (*domain.CancellationSettlement, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishReservationCancelled(ctx context.Context, event eventbus.ReservationCancelledEvent) error
}

// Metrics доменные счетчики
type Metrics interface {
	IncCancellation(refundType string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
