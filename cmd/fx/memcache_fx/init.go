package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"adwiz/internal/wizard"
	"adwiz/pkg/logger"
	mem "adwiz/pkg/memcache"
	"adwiz/pkg/utils"
)

const sweepInterval = time.Minute

var Module = fx.Options(
	fx.Provide(provideSessionStore),
	fx.Invoke(startJanitor),
)

func provideSessionStore() mem.Store[*wizard.Session] {
	ttl := utils.GetDurationEnv("SESSION_TTL", time.Hour)
	logger.L().Infof("wizard sessions expire after %s idle", ttl)
	return mem.NewSessions[*wizard.Session](ttl)
}

func startJanitor(lc fx.Lifecycle, store mem.Store[*wizard.Session]) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go mem.RunJanitor(ctx, store, sweepInterval, func(removed int) {
				logger.L().Debugf("swept %d expired wizard sessions", removed)
			})
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
