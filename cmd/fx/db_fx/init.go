package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/infra"
	"tripplanner/internal/repositories"
)

var Module = fx.Provide(provideTripRepository)

// provideTripRepository archives trips in Postgres, or nowhere when
// POSTGRES_URL is unset.
func provideTripRepository(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repositories.TripRepository, error) {
	if cfg.PostgresURL == "" {
		logger.Warn("POSTGRES_URL not set, trips will only live in the cache")
		return repositories.NewNoopTripRepository(), nil
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return repositories.NewTripRepository(db, logger), nil
}
