package telemetry_fx

import (
	"context"
	"os"

	"go.uber.org/fx"

	"adwiz/pkg/logger"
	"adwiz/pkg/telemetry"
	"adwiz/pkg/utils"
)

var Module = fx.Invoke(startTelemetry)

func startTelemetry(lc fx.Lifecycle) error {
	shutdown, err := telemetry.Init(context.Background(), telemetry.Config{
		ExportDir:      os.Getenv("OTEL_EXPORT_DIR"),
		MetricInterval: utils.GetDurationEnv("OTEL_METRIC_INTERVAL", 0),
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := shutdown(ctx); err != nil {
				logger.L().WithError(err).Warn("telemetry shutdown")
			}
			return nil
		},
	})
	return nil
}
