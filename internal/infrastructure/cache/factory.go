package cache

import (
	"context"

	"github.com/glambooking/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewStore returns a Redis store when Redis is configured and reachable.
// Otherwise it logs the reason and falls back to a MemoryStore, so a cache
// outage never prevents the service from starting.
func NewStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		logger.Info("Redis not configured, using in-memory cache")
		return NewMemoryStore()
	}

	store, err := NewRedisStore(ctx, RedisConfig{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Tenant cache invalidations will not reach other instances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewMemoryStore()
	}
	logger.Info("Using Redis cache", zap.String("addr", cfg.Addr()))
	return store
}
