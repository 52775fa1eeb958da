package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/spellitplease/spellit/internal/backup"
	"github.com/spellitplease/spellit/internal/logger"
	"github.com/spellitplease/spellit/internal/phonetic"
)

// ProvideConverter provides the phonetic converter, seeded from the store and
// persisting through the background writer.
func ProvideConverter(i do.Injector) (*phonetic.Converter, error) {
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	writerHandle := do.MustInvoke[*WriterHandle](i)

	return phonetic.New(context.Background(), storeHandle.Store, writerHandle.Writer, log.Component("converter")), nil
}

// ProvideBackupService provides override export and import.
func ProvideBackupService(i do.Injector) (*backup.Service, error) {
	log := do.MustInvoke[*logger.Logger](i)
	converter := do.MustInvoke[*phonetic.Converter](i)

	return backup.NewService(converter, log.Component("backup")), nil
}
