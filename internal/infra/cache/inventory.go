package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/metrics"
)

const (
	snapshotKey = "inventory:snapshot"

	resultHit     = "hit"
	resultMiss    = "miss"
	resultBypass  = "bypass"
	resultFailure = "error"
)

// InventoryCache кэширует номерной фонд в Redis.
// Брони не кэшируются: проверка пересечений всегда идет по БД.
type InventoryCache struct {
	client  Store
	loader  SnapshotLoader
	ttl     time.Duration
	logger  Logger
	metrics Metrics
}

// NewInventoryCache создает кэш. client может быть nil, тогда каждый вызов идет в loader.
func NewInventoryCache(client *redis.Client, loader SnapshotLoader, ttl time.Duration, logger Logger, m *metrics.Metrics) *InventoryCache {
	var store Store
	if client != nil {
		store = client
	}
	return newInventoryCache(store, loader, ttl, logger, m)
}

func newInventoryCache(store Store, loader SnapshotLoader, ttl time.Duration, logger Logger, m Metrics) *InventoryCache {
	return &InventoryCache{
		client:  store,
		loader:  loader,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// GetSnapshot возвращает номерной фонд из кэша или из БД
func (c *InventoryCache) GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error) {
	if c.client == nil {
		c.metrics.IncCacheLookup(resultBypass)
		return c.loader.GetSnapshot(ctx)
	}

	// 1. Пробуем кэш
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	switch {
	case err == nil:
		var snapshot domain.InventorySnapshot
		if err := json.Unmarshal(data, &snapshot); err == nil {
			c.metrics.IncCacheLookup(resultHit)
			return &snapshot, nil
		}
		c.logger.Warn("InventoryCache.GetSnapshot: broken cache entry, reloading: %v", err)
	case errors.Is(err, redis.Nil):
		c.metrics.IncCacheLookup(resultMiss)
	default:
		c.metrics.IncCacheLookup(resultFailure)
		c.logger.Warn("InventoryCache.GetSnapshot: redis get failed: %v", err)
	}

	// 2. Загружаем из БД
	snapshot, err := c.loader.GetSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Кладем в кэш, ошибка записи не мешает ответу
	if data, err := json.Marshal(snapshot); err == nil {
		if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("InventoryCache.GetSnapshot: redis set failed: %v", err)
		}
	}

	return snapshot, nil
}

// Invalidate сбрасывает кэш после изменения номеров
func (c *InventoryCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		c.logger.Error("InventoryCache.Invalidate: redis del failed: %v", err)
	}
}
