package di_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellitplease/spellit/internal/backup"
	"github.com/spellitplease/spellit/internal/config"
	"github.com/spellitplease/spellit/internal/di"
	"github.com/spellitplease/spellit/internal/di/providers"
)

func testConfig(dataPath string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Environment: "production"},
		Logger:  config.LoggerConfig{Level: "error"},
		Storage: config.StorageConfig{DataPath: dataPath},
		Persistence: config.PersistenceConfig{
			MinWriteInterval: 0,
			ShutdownTimeout:  5 * time.Second,
		},
	}
}

func TestBootstrap_PersistsAcrossContainers(t *testing.T) {
	dataPath := t.TempDir()

	injector := di.NewContainerWithConfig(testConfig(dataPath))
	engine, err := di.Bootstrap(injector)
	require.NoError(t, err)

	engine.Converter.UpdateCodeWord("a", "Apple")
	engine.Converter.UpdateCodeWord("!", "Bang")
	assert.Equal(t, "A: Apple\n!: Bang\n", engine.Converter.ClipboardText("a!"))

	injector.Shutdown()

	assert.DirExists(t, filepath.Join(dataPath, "overrides"))

	// A second session reads what the first one flushed on shutdown.
	injector = di.NewContainerWithConfig(testConfig(dataPath))
	engine, err = di.Bootstrap(injector)
	require.NoError(t, err)
	defer injector.Shutdown()

	assert.Equal(t, "Apple", engine.Converter.Convert("A").CodeWordOrEmpty())
	assert.Equal(t, "Bang", engine.Converter.Convert("!").CodeWordOrEmpty())
	assert.Equal(t, "Bravo", engine.Converter.Convert("b").CodeWordOrEmpty())
}

func TestBootstrap_InMemory(t *testing.T) {
	cfg := testConfig("")
	cfg.Storage.InMemory = true

	injector := di.NewContainerWithConfig(cfg)
	defer injector.Shutdown()

	engine, err := di.Bootstrap(injector)
	require.NoError(t, err)

	engine.Converter.UpdateCodeWord("z", "Zebra")
	assert.Equal(t, "Zebra", engine.Converter.Convert("Z").CodeWordOrEmpty())

	writer := do.MustInvoke[*providers.WriterHandle](injector)
	assert.Eventually(t, func() bool {
		return writer.Stats().Writes >= 1
	}, time.Second, 10*time.Millisecond)
}

func TestBootstrap_BackupRoundTrip(t *testing.T) {
	cfg := testConfig("")
	cfg.Storage.InMemory = true

	injector := di.NewContainerWithConfig(cfg)
	defer injector.Shutdown()

	engine, err := di.Bootstrap(injector)
	require.NoError(t, err)

	engine.Converter.UpdateCodeWord("q", "Queen")

	var buf bytes.Buffer
	_, err = engine.Backup.Export(&buf)
	require.NoError(t, err)

	engine.Converter.ResetAll()
	assert.Equal(t, "Quebec", engine.Converter.Convert("q").CodeWordOrEmpty())

	_, err = engine.Backup.Import(&buf, backup.DefaultRestoreOptions())
	require.NoError(t, err)
	assert.Equal(t, "Queen", engine.Converter.Convert("q").CodeWordOrEmpty())
}

func TestBootstrap_StoreOpenFailure(t *testing.T) {
	// A regular file where the data directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	injector := di.NewContainerWithConfig(testConfig(filepath.Join(blocker, "data")))
	defer injector.Shutdown()

	_, err := di.Bootstrap(injector)
	assert.Error(t, err)
}
