// Package config loads engine configuration from command-line style arguments,
// environment variables, and .env files.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spellitplease/spellit/internal/validation"
)

// Config holds the engine configuration.
type Config struct {
	App         AppConfig
	Logger      LoggerConfig
	Storage     StorageConfig
	Persistence PersistenceConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"oneof=development staging production"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// StorageConfig holds override store configuration.
type StorageConfig struct {
	// DataPath is the Badger directory (default: ~/SpellIt/data).
	DataPath string `validate:"required_unless=InMemory true"`
	// InMemory keeps overrides for the current session only.
	InMemory bool
}

// PersistenceConfig tunes the background writer.
type PersistenceConfig struct {
	// MinWriteInterval is the minimum gap between two writes (default: 250ms).
	// Must be shorter than ShutdownTimeout.
	MinWriteInterval time.Duration `validate:"gte=0,ltfield=ShutdownTimeout"`
	// ShutdownTimeout bounds the final flush (default: 5s).
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Load reads configuration from the environment and a .env file in the working directory.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom loads configuration with precedence:
// 1. Arguments in args (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadFrom(args []string) (*Config, error) {
	fs := flag.NewFlagSet("spellit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Directory for the override store")
	inMemory := fs.String("in-memory", "", "Keep overrides in memory only")
	minInterval := fs.String("save-min-interval", "", "Minimum interval between override writes (default: 250ms)")
	shutdownTimeout := fs.String("save-shutdown-timeout", "", "Time allowed for the final write (default: 5s)")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	// A missing .env file is fine.
	if err := loadEnvFile(*envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: strings.ToLower(getConfigValue(*logLevel, "LOG_LEVEL", "info")),
		},
		Storage: StorageConfig{
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
			InMemory: getBoolConfigValue(*inMemory, "STORAGE_IN_MEMORY", false),
		},
	}

	var err error
	cfg.Persistence.MinWriteInterval, err = getDurationConfigValue(*minInterval, "SAVE_MIN_INTERVAL", 250*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.Persistence.ShutdownTimeout, err = getDurationConfigValue(*shutdownTimeout, "SAVE_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	return validation.New().Validate(c)
}

// expandDataPath applies the default and makes the path absolute.
// In-memory storage has no path.
func (c *Config) expandDataPath() error {
	if c.Storage.InMemory {
		c.Storage.DataPath = ""
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	expanded, err := expandPath(c.Storage.DataPath, filepath.Join(homeDir, "SpellIt", "data"))
	if err != nil {
		return err
	}
	c.Storage.DataPath = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// An empty path resolves to defaultPath.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	switch strings.ToLower(strValue) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// getDurationConfigValue parses a Go duration ("250ms", "5s"); a bare number means milliseconds.
func getDurationConfigValue(flagValue, envKey string, defaultValue time.Duration) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue, nil
	}
	if ms, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments). Variables already set win.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set env var %s: %w", key, err)
		}
	}

	return scanner.Err()
}
