// Package providers contains dependency injection providers for the spelling engine.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/spellitplease/spellit/internal/config"
	"github.com/spellitplease/spellit/internal/logger"
)

// ProvideConfig provides configuration from the environment and .env file.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting spelling engine",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Storage.DataPath,
		"in_memory", cfg.Storage.InMemory,
	)

	return log, nil
}
