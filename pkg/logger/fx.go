package logger

import (
	"context"

	"go.uber.org/fx"

	"scout/pkg/config"
)

// Module provides the logger for fx dependency injection.
var Module = fx.Module("logger",
	fx.Provide(ProvideLogger),
)

// ProvideLogger builds the logger from the loaded configuration.
func ProvideLogger(cfg *config.Config, lc fx.Lifecycle) (*Logger, error) {
	logCfg := DefaultConfig()
	if cfg.Logger.Level != "" {
		logCfg.Level = Level(cfg.Logger.Level)
	}
	if cfg.Logger.OutputPath != "" {
		logCfg.OutputPath = cfg.Logger.OutputPath
	}
	if cfg.Logger.MaxSizeMB > 0 {
		logCfg.MaxSize = cfg.Logger.MaxSizeMB
	}
	logCfg.Development = cfg.Logger.Development

	log, err := New(logCfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync may fail on stderr; nothing actionable.
			_ = log.Sync()
			return nil
		},
	})

	return log, nil
}
