package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minuteclass/minuteclass/internal/config"
	"github.com/minuteclass/minuteclass/internal/controller"
	"github.com/minuteclass/minuteclass/internal/lessons"
	"github.com/minuteclass/minuteclass/internal/llm"
	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/prefs"
	"github.com/minuteclass/minuteclass/internal/store"
)

// newProvider builds the lesson model client. Tests replace it.
var newProvider = func(ctx context.Context, events store.EventRepo, log *logging.Logger) (llm.Provider, error) {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, cfg, events, log)
}

// clock is the wall clock for lesson dates, slots and streaks. Tests pin it.
var clock = time.Now

// appEnv is everything a command needs, opened from the resolved config.
type appEnv struct {
	cfg   config.Config
	log   *logging.Logger
	db    *store.Store
	prefs *prefs.Preferences
	ctrl  *controller.Controller
}

// loadConfig applies flags that were set explicitly on top of the
// environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"db":         &cfg.DBPath,
		"prefs":      &cfg.PrefsEngine,
		"prefs-path": &cfg.PrefsPath,
		"redis-url":  &cfg.RedisURL,
		"log-file":   &cfg.LogFile,
		"log-level":  &cfg.LogLevel,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if eph, _ := flags.GetBool("ephemeral"); eph {
		cfg.PrefsEngine = prefs.EngineMemory
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openLogger(cfg config.Config, tui bool) (*logging.Logger, error) {
	out := cfg.LogFile
	if out == "" && tui {
		p, err := store.DataPath("minuteclass.log")
		if err != nil {
			return nil, err
		}
		out = p
	}
	return logging.New(logging.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, OutputPath: out})
}

// openDB opens the application database without the rest of the
// environment. Used by commands that only read LLM events.
func openDB(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openEnv opens the database, preference store, model provider and
// controller. A missing model configuration is not an error: lesson
// fetches then fail and the rest of the app keeps working.
func openEnv(cmd *cobra.Command, tui bool) (*appEnv, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := openLogger(cfg, tui)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	env := &appEnv{cfg: cfg, log: log}
	ok := false
	defer func() {
		if !ok {
			env.Close()
		}
	}()

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	env.db, err = store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	opts := prefs.OpenOptions{
		Engine:      cfg.PrefsEngine,
		DB:          env.db,
		RedisURL:    cfg.RedisURL,
		RedisPrefix: cfg.RedisPrefix,
		Log:         log,
	}
	if cfg.PrefsEngine == prefs.EngineJSON {
		if opts.Path, err = cfg.ResolvePrefsPath(); err != nil {
			return nil, fmt.Errorf("resolve preferences path: %w", err)
		}
	}
	ps, err := prefs.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	env.prefs = prefs.New(ps, log)

	provider, err := newProvider(ctx, env.db.EventRepo(), log)
	if err != nil {
		log.Warn("lesson model not configured", "error", err)
		provider = unavailableProvider{err: err}
	}
	svc := lessons.NewService(provider, lessons.DefaultConfig()).WithClock(clock)
	env.ctrl = controller.New(ctx, svc, env.prefs, controller.WithClock(clock), controller.WithLogger(log))

	ok = true
	return env, nil
}

// Close releases everything openEnv acquired.
func (e *appEnv) Close() {
	if e.ctrl != nil {
		if err := e.ctrl.Close(); err != nil {
			e.log.Warn("close preferences", "error", err)
		}
	} else if e.prefs != nil {
		_ = e.prefs.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
	e.log.Sync()
}

// unavailableProvider stands in when no model is configured.
type unavailableProvider struct{ err error }

func (p unavailableProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	return nil, &llm.ErrProviderUnavailable{Err: p.err}
}

func (unavailableProvider) Name() string    { return "none" }
func (unavailableProvider) ModelID() string { return "none" }
