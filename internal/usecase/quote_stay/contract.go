package quote_stay

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// InventorySource источник номерного фонда (кэш поверх БД)
type InventorySource interface {
	GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error)
}

// ServiceCatalogClient интерфейс клиента каталога доп. услуг
type ServiceCatalogClient interface {
	GetServices(ctx context.Context, ids []int64) (map[int64]domain.ExtraService, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
