package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// InventorySource источник номерного фонда (кэш поверх БД)
type InventorySource interface {
	GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error)
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	ListOverlapping(ctx context.Context, from, to types.Date, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// Metrics счетчики запросов доступности
type Metrics interface {
	IncAvailabilityQuery(outcome string)
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
