package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/repositories"
	mem "tripplanner/pkg/memcache"
)

var Module = fx.Provide(
	provideStore,
	provideTripLeases,
	provideTripCache)

func provideStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.Store, error) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, using in-process cache")
		return mem.NewLocalStore(10 * time.Minute), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := infra.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseRedis(client, logger)
			return nil
		},
	})
	return infra.NewRedisStore(client), nil
}

func provideTripLeases(store mem.Store) mem.TripLeaseStore {
	return mem.NewTripLeases(store, mem.DefaultLeaseTTL)
}

func provideTripCache(store mem.Store, cfg *config.Config) repositories.TripCacheRepository {
	return repositories.NewTripCacheRepository(store, cfg.TripCacheTTL)
}
