// Package prefs persists user preferences: language, streak, bookmarks,
// unlocked premium items and cached daily lessons.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/store"
)

// Store is a string key-value store. Implementations do not interpret
// values. There are no transactions.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys that start with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
	EngineRedis  = "redis"
	EngineMemory = "memory"
)

// Engines lists the supported engine names.
var Engines = []string{EngineSQLite, EngineJSON, EngineRedis, EngineMemory}

// ErrUnknownEngine is returned by Open for an unsupported engine name.
var ErrUnknownEngine = errors.New("unsupported preference engine")

// OpenOptions selects and configures a Store engine.
type OpenOptions struct {
	Engine string

	// DB backs the sqlite engine. The caller keeps ownership.
	DB *store.Store

	// Path is the JSON file for the json engine.
	Path string

	// RedisURL and RedisPrefix configure the redis engine.
	RedisURL    string
	RedisPrefix string

	// Log receives recoverable engine warnings, such as a corrupt JSON
	// file. Nil discards them.
	Log *logging.Logger
}

// Open returns the Store for opts.Engine. An empty engine means sqlite.
func Open(ctx context.Context, opts OpenOptions) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineSQLite:
		if opts.DB == nil {
			return nil, errors.New("sqlite preferences need an open database")
		}
		return NewSQLStore(opts.DB.PreferenceRepo()), nil
	case EngineJSON:
		return NewFileStore(opts.Path, opts.Log)
	case EngineRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.RedisPrefix)
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opts.Engine)
	}
}
