// Package di wires the spelling engine together with samber/do.
package di

import (
	"github.com/samber/do/v2"

	"github.com/spellitplease/spellit/internal/backup"
	"github.com/spellitplease/spellit/internal/config"
	"github.com/spellitplease/spellit/internal/di/providers"
	"github.com/spellitplease/spellit/internal/logger"
	"github.com/spellitplease/spellit/internal/phonetic"
)

// NewContainer creates and configures the DI container with all providers.
// Configuration is read from the environment.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	provideEngine(injector)
	return injector
}

// NewContainerWithConfig creates a container around an already loaded configuration.
func NewContainerWithConfig(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	provideEngine(injector)
	return injector
}

func provideEngine(injector do.Injector) {
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideWriter)

	// Engine
	do.Provide(injector, providers.ProvideConverter)
	do.Provide(injector, providers.ProvideBackupService)
}

// Engine is what a presentation layer holds on to.
type Engine struct {
	Converter *phonetic.Converter
	Backup    *backup.Service
	Logger    *logger.Logger
}

// Bootstrap initializes every service and returns the engine.
// Call injector.Shutdown to flush pending overrides and close the store.
func Bootstrap(injector *do.RootScope) (*Engine, error) {
	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		return nil, err
	}
	converter, err := do.Invoke[*phonetic.Converter](injector)
	if err != nil {
		return nil, err
	}
	backupService, err := do.Invoke[*backup.Service](injector)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Converter: converter,
		Backup:    backupService,
		Logger:    log,
	}, nil
}
