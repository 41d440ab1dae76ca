package state

import (
	"context"

	"go.uber.org/fx"

	"scout/pkg/config"
	"scout/pkg/logger"
)

// Module is the fx module for state storage.
var Module = fx.Module("state",
	fx.Provide(NewKVStore),
)

// NewKVStore creates the KV store for fx, choosing the backend from config.
func NewKVStore(
	lc fx.Lifecycle,
	log *logger.Logger,
	cfg *config.Config,
) (KV, error) {
	stateConfig := &Config{
		Backend:       BackendFile,
		FilePath:      cfg.State.FilePath,
		AutoSave:      cfg.State.AutoSave,
		SaveIntervalS: cfg.State.SaveIntervalS,
	}
	if stateConfig.FilePath == "" {
		stateConfig.FilePath = config.DefaultStatePath()
	}

	if cfg.State.Backend != "" {
		stateConfig.Backend = BackendType(cfg.State.Backend)
	}
	if cfg.Redis.Addr != "" {
		stateConfig.RedisAddr = cfg.Redis.Addr
		stateConfig.RedisPassword = cfg.Redis.Password
		stateConfig.RedisDB = cfg.Redis.DB
		if cfg.State.Prefix != "" {
			stateConfig.RedisPrefix = cfg.State.Prefix
		}
	}

	store, err := NewKV(log, stateConfig)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("State store initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}
