package providers

import (
	"context"
	"path/filepath"
	"time"

	"github.com/samber/do/v2"

	"github.com/spellitplease/spellit/internal/config"
	"github.com/spellitplease/spellit/internal/logger"
	"github.com/spellitplease/spellit/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the override store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Storage.InMemory {
		db, err := store.NewInMemory(log.Component("store"))
		if err != nil {
			return nil, err
		}
		log.Warn("Overrides are kept in memory and will not survive a restart")
		return &StoreHandle{Store: db}, nil
	}

	dbPath := filepath.Join(cfg.Storage.DataPath, storeDirName)
	db, err := store.New(dbPath, log.Component("store"))
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}

// WriterHandle wraps the background writer with its context for lifecycle management.
type WriterHandle struct {
	*store.Writer
	cancel  context.CancelFunc
	timeout time.Duration
	logger  *logger.Logger
}

// Shutdown implements do.Shutdownable. The pending snapshot is flushed
// before the loop's context is canceled.
func (h *WriterHandle) Shutdown() error {
	defer h.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	err := h.Writer.Shutdown(ctx)

	stats := h.Stats()
	log := h.logger.WithField("writes", stats.Writes).WithField("failures", stats.Failures)
	if err != nil {
		log.WithError(err).Warn("Override writer did not stop in time")
		return err
	}
	log.Info("Override writer stopped")
	return nil
}

// ProvideWriter provides the background writer in front of the store and starts it.
func ProvideWriter(i do.Injector) (*WriterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	writer := store.NewWriter(storeHandle.Store, log.Component("writer"),
		store.WithMinInterval(cfg.Persistence.MinWriteInterval))

	ctx, cancel := context.WithCancel(context.Background())
	go writer.Start(ctx)

	return &WriterHandle{
		Writer:  writer,
		cancel:  cancel,
		timeout: cfg.Persistence.ShutdownTimeout,
		logger:  log,
	}, nil
}
