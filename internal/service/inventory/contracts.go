package inventory

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// SnapshotSource источник номерного фонда (кэш поверх БД)
type SnapshotSource interface {
	GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error)
	Invalidate(ctx context.Context)
}

// RoomRepository интерфейс репозитория номеров
type RoomRepository interface {
	UpdateRoomState(ctx context.Context, update domain.RoomStateUpdate) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
