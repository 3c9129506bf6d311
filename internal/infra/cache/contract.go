package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Store команды Redis, которыми пользуется кэш (*redis.Client их реализует)
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SnapshotLoader источник номерного фонда при промахе кэша
type SnapshotLoader interface {
	GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error)
}

// Metrics счетчик обращений к кэшу
type Metrics interface {
	IncCacheLookup(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
