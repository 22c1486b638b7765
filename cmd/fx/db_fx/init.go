package db_fx

import (
	"context"
	"os"

	"go.uber.org/fx"

	"adwiz/internal/infra"
	"adwiz/internal/repositories"
	"adwiz/pkg/logger"
)

var Module = fx.Provide(
	provideRelayCallRepository)

// provideRelayCallRepository backs the relay audit with Postgres when
// POSTGRES_URL is set, and with a no-op recorder otherwise.
func provideRelayCallRepository(lc fx.Lifecycle) (repositories.RelayCallRepository, error) {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		logger.L().Info("POSTGRES_URL not set, relay call audit disabled")
		return repositories.NoopRelayCallRepository{}, nil
	}

	db, err := infra.InitPostgresql(dsn)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return repositories.NewRelayCallRepository(db), nil
}
