package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"adwiz/cmd/fx/controllers_fx"
	"adwiz/cmd/fx/db_fx"
	"adwiz/cmd/fx/memcache_fx"
	"adwiz/cmd/fx/relay_fx"
	"adwiz/cmd/fx/telemetry_fx"
	"adwiz/cmd/fx/wizard_fx"
	"adwiz/internal/api"
	"adwiz/internal/api/controllers"
	"adwiz/pkg/logger"
	"adwiz/pkg/utils"
)

func main() {
	envErr := godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Getenv("LOG_FILE"))
	if envErr != nil {
		logger.L().Debug("no .env file loaded, using process environment")
	}

	app := fx.New(
		telemetry_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		relay_fx.Module,
		wizard_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + utils.GetEnvWithDefault("PORT", "8080"),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.L().Infof("Starting HTTP server at %s", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.L().Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.L().Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	relayController *controllers.RelayController,
	wizardController *controllers.WizardController,
	tokens *utils.SessionTokens) *gin.Engine {

	r := api.NewEngine()
	api.RegisterRelayRoutes(r, relayController)
	api.RegisterWizardRoutes(r, wizardController, tokens)
	return r
}
