package cache

import (
	"time"

	"go.uber.org/zap"

	"github.com/udyogerp/backend/internal/application/tax"
	"github.com/udyogerp/backend/internal/infrastructure/config"
)

// NewSummaryCache creates a summary cache backed by Redis, falling back to
// an in-memory cache when Redis is unreachable. The fallback keeps a
// single-instance deployment working without Redis; distributed deployments
// should treat the fallback warning as a configuration problem.
func NewSummaryCache(cfg *config.Config, logger *zap.Logger) tax.SummaryCache {
	ttl := cfg.Compliance.SummaryCacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	redisCache, err := NewRedisSummaryCache(RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, ttl)
	if err != nil {
		logger.Warn("redis unavailable, using in-memory summary cache",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		return NewInMemorySummaryCache(ttl)
	}

	logger.Info("using redis summary cache", zap.String("addr", cfg.Redis.Addr()))
	return redisCache
}
