package wizard_fx

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"

	"adwiz/internal/services"
	"adwiz/internal/wizard"
	"adwiz/pkg/logger"
	mem "adwiz/pkg/memcache"
	"adwiz/pkg/utils"
)

const sessionTokenTTL = 24 * time.Hour

var Module = fx.Provide(
	provideSessionTokens,
	providePipeline,
	provideWizardService)

// provideSessionTokens signs session tokens with SESSION_SECRET. Without it a
// random key is used, so tokens do not survive a restart (neither do sessions).
func provideSessionTokens() (*utils.SessionTokens, error) {
	key := []byte(os.Getenv("SESSION_SECRET"))
	if len(key) == 0 {
		logger.L().Warn("SESSION_SECRET not set, using a random per-process key")
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
	}
	return utils.NewSessionTokens(key, sessionTokenTTL), nil
}

func providePipeline(relay services.RelayServiceInterface) *wizard.Pipeline {
	opts := wizard.DefaultOptions()
	opts.ChatModel = utils.GetEnvWithDefault("OPENAI_CHAT_MODEL", opts.ChatModel)
	opts.ImageModel = utils.GetEnvWithDefault("OPENAI_IMAGE_MODEL", opts.ImageModel)
	opts.Captions = utils.GetBoolEnv("WIZARD_CAPTIONS", false)

	logger.L().Infof("wizard pipeline: chat=%s image=%s captions=%t", opts.ChatModel, opts.ImageModel, opts.Captions)
	return wizard.NewPipeline(services.NewRelayGateway(relay), opts)
}

func provideWizardService(
	sessions mem.Store[*wizard.Session],
	pipeline *wizard.Pipeline,
	tokens *utils.SessionTokens,
) services.WizardServiceInterface {
	return services.NewWizardService(sessions, pipeline, tokens)
}
