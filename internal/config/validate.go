package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Validate checks the structural validity of a Config. All problems are
// reported at once via errors.Join.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("config: log.format %q is not \"text\" or \"json\"", cfg.Log.Format))
	}

	if err := cfg.Server.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Provider.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Moderation.Validate(); err != nil {
		errs = append(errs, err)
	}

	if cfg.Sessions.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("config: sessions.max_sessions must not be negative"))
	}
	if _, err := time.ParseDuration(cfg.Sessions.MaxIdle); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid sessions.max_idle %q: %w", cfg.Sessions.MaxIdle, err))
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("config: tracing.endpoint is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}

// ParseLevel maps a config level string to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", level)
	}
}
