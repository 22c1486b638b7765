package relay_fx

import (
	"net/http"
	"os"

	"go.uber.org/fx"

	"adwiz/internal/repositories"
	"adwiz/internal/services"
	"adwiz/pkg/logger"
	"adwiz/pkg/utils"
)

var Module = fx.Provide(
	provideRelayConfig,
	provideHTTPClient,
	provideRelayService)

func provideRelayConfig() services.RelayConfig {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.L().Fatal("OPENAI_API_KEY is required")
	}
	return services.RelayConfig{
		BaseURL: utils.GetEnvWithDefault("OPENAI_BASE_URL", services.DefaultProviderBaseURL),
		APIKey:  apiKey,
	}
}

// No client timeout: provider calls run as long as the transport allows.
func provideHTTPClient() services.HTTPDoer {
	return &http.Client{}
}

func provideRelayService(
	cfg services.RelayConfig,
	client services.HTTPDoer,
	recorder repositories.RelayCallRepository,
) services.RelayServiceInterface {
	return services.NewRelayService(cfg, client, recorder)
}
