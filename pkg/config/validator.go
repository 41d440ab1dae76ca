package config

import "fmt"

// ValidateConfig checks the configuration for values that would fail at
// runtime.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	switch cfg.State.Backend {
	case "", "file":
	case "redis":
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("state backend is redis but redis.addr is empty")
		}
	default:
		return fmt.Errorf("unknown state backend: %s", cfg.State.Backend)
	}

	switch cfg.Logger.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", cfg.Logger.Level)
	}

	return nil
}
