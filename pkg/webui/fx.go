package webui

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"scout/pkg/config"
	"scout/pkg/logger"
)

// Module provides the settings server for fx dependency injection.
var Module = fx.Module("webui",
	fx.Provide(NewServer),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Server, cfg *config.Config, log *logger.Logger) {
	if !cfg.Server.Enabled {
		log.Info("Settings server disabled in config")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting settings server", zap.Int("port", cfg.Server.Port))
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return s.Stop(shutdownCtx)
		},
	})
}
