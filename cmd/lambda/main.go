// Command lambda serves the relay route from AWS Lambda behind API Gateway.
// Wizard routes are not mounted: their sessions live in process memory and
// would not survive across Lambda instances.
package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"adwiz/cmd/fx/db_fx"
	"adwiz/cmd/fx/relay_fx"
	"adwiz/cmd/fx/telemetry_fx"
	"adwiz/internal/api"
	"adwiz/internal/api/controllers"
	"adwiz/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), "json", "")

	var engine *gin.Engine
	app := fx.New(
		telemetry_fx.Module,
		db_fx.Module,
		relay_fx.Module,
		fx.Provide(controllers.NewRelayController),
		fx.Provide(provideRelayRouter),
		fx.Populate(&engine),
		fx.NopLogger,
	)
	if err := app.Start(context.Background()); err != nil {
		logger.L().WithError(err).Fatal("failed to start lambda app")
	}

	lambda.Start(ginadapter.New(engine).ProxyWithContext)
}

func provideRelayRouter(relayController *controllers.RelayController) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := api.NewEngine()
	api.RegisterRelayRoutes(r, relayController)
	return r
}
