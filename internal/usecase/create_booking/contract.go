package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	LockRoom(ctx context.Context, roomNumber string) error
	ListByRoom(ctx context.Context, roomNumber string, stay domain.StayRange, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// InventoryRepository интерфейс репозитория номерного фонда.
// Читается внутри транзакции, после блокировки номера.
type InventoryRepository interface {
	GetRoom(ctx context.Context, number string) (*domain.Room, error)
	GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error)
}

// ServiceCatalogClient интерфейс клиента каталога доп. услуг
type ServiceCatalogClient interface {
	GetServices(ctx context.Context, ids []int64) (map[int64]domain.ExtraService, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, event eventbus.ReservationCreatedEvent) error
}

// Metrics доменные счетчики
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
