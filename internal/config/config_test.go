package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spellitplease/spellit/internal/errors"
)

// clearEnv isolates a test from the caller's environment and home directory.
func clearEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "DATA_PATH", "STORAGE_IN_MEMORY", "SAVE_MIN_INTERVAL", "SAVE_SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func noEnvFile(t *testing.T) string {
	t.Helper()
	return "-env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func validConfig() *Config {
	return &Config{
		App:         AppConfig{Environment: "development"},
		Logger:      LoggerConfig{Level: "info"},
		Storage:     StorageConfig{DataPath: "/data"},
		Persistence: PersistenceConfig{MinWriteInterval: 250 * time.Millisecond, ShutdownTimeout: 5 * time.Second},
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	home := clearEnv(t)

	cfg, err := LoadFrom([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, filepath.Join(home, "SpellIt", "data"), cfg.Storage.DataPath)
	assert.False(t, cfg.Storage.InMemory)
	assert.Equal(t, 250*time.Millisecond, cfg.Persistence.MinWriteInterval)
	assert.Equal(t, 5*time.Second, cfg.Persistence.ShutdownTimeout)
}

func TestLoadFrom_EnvironmentOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("SAVE_MIN_INTERVAL", "1s")
	t.Setenv("SAVE_SHUTDOWN_TIMEOUT", "1500")

	cfg, err := LoadFrom([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, time.Second, cfg.Persistence.MinWriteInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.Persistence.ShutdownTimeout, "bare numbers are milliseconds")
}

func TestLoadFrom_FlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATA_PATH", "/from/env")

	dir := t.TempDir()
	cfg, err := LoadFrom([]string{noEnvFile(t), "-log-level=debug", "-data-path=" + dir})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, dir, cfg.Storage.DataPath)
}

func TestLoadFrom_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "error")

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "# spellit settings\nexport ENV=staging\nLOG_LEVEL=debug\nDATA_PATH=\"~/custom\"\n\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := LoadFrom([]string{"-env-file=" + envFile})
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, "error", cfg.Logger.Level, "environment beats the .env file")
	assert.Equal(t, filepath.Join(home, "custom"), cfg.Storage.DataPath)
}

func TestLoadFrom_MalformedEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "bad.env")
	require.NoError(t, os.WriteFile(envFile, []byte("NOT A PAIR\n"), 0o600))

	_, err := LoadFrom([]string{"-env-file=" + envFile})
	assert.ErrorContains(t, err, "line 1")
}

func TestLoadFrom_InMemoryHasNoPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_IN_MEMORY", "yes")

	cfg, err := LoadFrom([]string{noEnvFile(t), "-data-path=/ignored"})
	require.NoError(t, err)

	assert.True(t, cfg.Storage.InMemory)
	assert.Empty(t, cfg.Storage.DataPath)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want string
	}{
		{name: "unknown flag", args: []string{"-port=80"}, want: "parse arguments"},
		{name: "bad duration", env: map[string]string{"SAVE_MIN_INTERVAL": "soon"}, want: "SAVE_MIN_INTERVAL"},
		{name: "bad environment", env: map[string]string{"ENV": "test"}, want: "config validation failed"},
		{name: "bad level", args: []string{"-log-level=loud"}, want: "config validation failed"},
		{name: "interval longer than shutdown timeout", env: map[string]string{"SAVE_MIN_INTERVAL": "10s", "SAVE_SHUTDOWN_TIMEOUT": "2s"}, want: "config validation failed"},
		{name: "zero shutdown timeout", env: map[string]string{"SAVE_SHUTDOWN_TIMEOUT": "0s"}, want: "config validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFrom(append([]string{noEnvFile(t)}, tt.args...))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"environment", func(c *Config) { c.App.Environment = "DEVELOPMENT" }, "App.Environment"},
		{"level", func(c *Config) { c.Logger.Level = "trace" }, "Logger.Level"},
		{"data path", func(c *Config) { c.Storage.DataPath = "" }, "Storage.DataPath"},
		{"negative interval", func(c *Config) { c.Persistence.MinWriteInterval = -time.Second }, "Persistence.MinWriteInterval"},
		{"zero timeout", func(c *Config) { c.Persistence.ShutdownTimeout = 0 }, "Persistence.ShutdownTimeout"},
		{"interval not below timeout", func(c *Config) { c.Persistence.MinWriteInterval = 5 * time.Second }, "Persistence.MinWriteInterval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var domainErr *errors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Contains(t, domainErr.Details, tt.field)
		})
	}
}

func TestValidate_InMemoryNeedsNoPath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage = StorageConfig{InMemory: true}

	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home := clearEnv(t)

	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("~/a/../b", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "b"), got)

	got, err = expandPath("rel", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
