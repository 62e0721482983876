// Package config resolves runtime settings from MINUTECLASS_* environment
// variables. Command-line flags override the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/minuteclass/minuteclass/internal/prefs"
	"github.com/minuteclass/minuteclass/internal/store"
)

// Config holds settings shared by the TUI and the CLI. LLM settings are
// resolved separately by llm.ResolveConfig.
type Config struct {
	// DBPath is the SQLite file for preferences and LLM events.
	// Empty means store.DefaultDBPath.
	DBPath string

	// PrefsEngine is one of prefs.Engines.
	PrefsEngine string

	// PrefsPath is the file used by the json engine. Empty means
	// prefs.json in the data directory.
	PrefsPath string

	RedisURL    string
	RedisPrefix string

	// LogFile receives log output. Empty means stderr for CLI commands
	// and minuteclass.log in the data directory for the TUI.
	LogFile  string
	LogLevel string
	LogMode  string
}

func DefaultConfig() Config {
	return Config{
		PrefsEngine: prefs.EngineSQLite,
		RedisPrefix: prefs.DefaultRedisPrefix,
		LogLevel:    "info",
		LogMode:     "dev",
	}
}

// FromEnv overlays environment variables on DefaultConfig.
func FromEnv() Config {
	cfg := DefaultConfig()
	setString(&cfg.DBPath, "MINUTECLASS_DB")
	setString(&cfg.PrefsEngine, "MINUTECLASS_PREFS")
	setString(&cfg.PrefsPath, "MINUTECLASS_PREFS_PATH")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.RedisURL, "MINUTECLASS_REDIS_URL")
	setString(&cfg.RedisPrefix, "MINUTECLASS_REDIS_PREFIX")
	setString(&cfg.LogFile, "MINUTECLASS_LOG_FILE")
	setString(&cfg.LogLevel, "MINUTECLASS_LOG_LEVEL")
	setString(&cfg.LogMode, "MINUTECLASS_LOG_MODE")
	cfg.PrefsEngine = strings.ToLower(strings.TrimSpace(cfg.PrefsEngine))
	return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(prefs.Engines, c.PrefsEngine) {
		errs = append(errs, fmt.Errorf("preference engine %q: want one of %s", c.PrefsEngine, strings.Join(prefs.Engines, ", ")))
	}
	if c.PrefsEngine == prefs.EngineRedis && strings.TrimSpace(c.RedisURL) == "" {
		errs = append(errs, errors.New("redis preferences need MINUTECLASS_REDIS_URL or --redis-url"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	switch strings.ToLower(c.LogMode) {
	case "dev", "prod", "production":
	default:
		errs = append(errs, fmt.Errorf("log mode %q: want dev or prod", c.LogMode))
	}
	return errors.Join(errs...)
}

// ResolveDBPath returns DBPath, or the default database location. The
// parent directory is created.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// ResolvePrefsPath returns PrefsPath, or prefs.json in the data directory.
func (c Config) ResolvePrefsPath() (string, error) {
	if c.PrefsPath != "" {
		return c.PrefsPath, store.EnsureDir(c.PrefsPath)
	}
	return store.DataPath("prefs.json")
}

// NeedsDB reports whether the preference engine lives in the SQLite
// database. LLM events always do.
func (c Config) NeedsDB() bool {
	return c.PrefsEngine == "" || c.PrefsEngine == prefs.EngineSQLite
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
