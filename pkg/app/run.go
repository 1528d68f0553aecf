// Package app wires configuration, logging, tracing, storage, and the HTTP
// gateway into a running lapwise instance.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lverne/lapwise/internal/assistant"
	"github.com/lverne/lapwise/internal/catalog"
	"github.com/lverne/lapwise/internal/config"
	"github.com/lverne/lapwise/internal/cron"
	"github.com/lverne/lapwise/internal/gateway"
	"github.com/lverne/lapwise/internal/moderation"
	"github.com/lverne/lapwise/internal/provider"
	"github.com/lverne/lapwise/internal/provider/openai"
)

// RunParams configures the main application loop.
type RunParams struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty, ResolveConfigPath is called automatically.
	ConfigPath string

	// Version, Commit, and Date are injected at build time via ldflags.
	Version string
	Commit  string
	Date    string
}

// Run loads configuration, starts the assistant, and blocks until a shutdown
// signal is received.
func Run(params RunParams) error {
	cfgPath := params.ConfigPath
	if cfgPath == "" {
		resolved, err := ResolveConfigPath()
		if err != nil {
			return err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	logger.Info("starting lapwise",
		"version", params.Version, "config", cfgPath)

	ctx := context.Background()

	shutdownTracing, err := setupTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if cfg.Catalog.Seed {
		if err := catalog.Seed(ctx, store); err != nil {
			return fmt.Errorf("app: seeding catalog: %w", err)
		}
	}
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	logger.Info("catalog opened", "path", cfg.Catalog.Path, "laptops", count)

	llm := openai.New(cfg.Provider, logger)
	classifier := moderation.NewOpenAIClassifier(cfg.Moderation)

	sessions := assistant.NewInMemorySessionStore()
	if cfg.Sessions.MaxSessions > 0 {
		sessions.SetMaxSessions(cfg.Sessions.MaxSessions)
	}

	engine, err := assistant.NewEngine(assistant.EngineConfig{
		Provider:   llm,
		Classifier: classifier,
		Ranker:     catalog.NewRanker(store),
		Store:      sessions,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	gw := gateway.New(cfg.Server, engine, logger)
	if hc, ok := provider.Provider(llm).(provider.HealthChecker); ok {
		gw.SetHealthCheck(hc.HealthCheck)
	}

	var scheduler *cron.Scheduler
	if cfg.Scheduler.Enabled {
		maxIdle, err := time.ParseDuration(cfg.Sessions.MaxIdle)
		if err != nil {
			return fmt.Errorf("app: invalid sessions.max_idle: %w", err)
		}

		scheduler = cron.NewScheduler(logger)
		jobs := []cron.Job{
			&cron.SessionPruneJob{
				Store:        sessions,
				MaxIdle:      maxIdle,
				Logger:       logger,
				ScheduleExpr: cfg.Scheduler.PruneSchedule,
			},
			&cron.CatalogReseedJob{
				Store:        store,
				Logger:       logger,
				ScheduleExpr: cfg.Scheduler.ReseedSchedule,
			},
		}
		for _, j := range jobs {
			if err := scheduler.RegisterJob(j); err != nil {
				return err
			}
		}
		if err := scheduler.Start(); err != nil {
			return err
		}
	}

	if err := gw.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	sig := <-sigCh
	logger.Info("shutdown signal received", "signal", sig.String())

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := gw.Stop(stopCtx); err != nil {
		logger.Warn("gateway stop failed", "error", err)
	}
	if scheduler != nil {
		if err := scheduler.Stop(stopCtx); err != nil {
			logger.Warn("scheduler stop failed", "error", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// NewLogger builds a slog.Logger from the log config.
func NewLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler), nil
}

// ResolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/lapwise/lapwise.yaml →
// ~/.config/lapwise/lapwise.yaml → ./lapwise.yaml
func ResolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "lapwise", "lapwise.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "lapwise", "lapwise.yaml"))
	}

	candidates = append(candidates, "lapwise.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}
