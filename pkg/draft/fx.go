package draft

import (
	"go.uber.org/fx"

	"scout/pkg/config"
	"scout/pkg/state"
)

// Module provides the draft settings manager.
var Module = fx.Module("draft",
	fx.Provide(provideManager),
)

func provideManager(kv state.KV, cfg *config.Config) *Manager {
	return New(kv, cfg.Search)
}
