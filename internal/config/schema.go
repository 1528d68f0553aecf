// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for lapwise.
package config

import (
	"github.com/lverne/lapwise/internal/gateway"
	"github.com/lverne/lapwise/internal/moderation"
	"github.com/lverne/lapwise/internal/provider/openai"
)

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	Log        LogConfig               `yaml:"log"`
	Server     gateway.Config          `yaml:"server"`
	Provider   openai.Config           `yaml:"provider"`
	Moderation moderation.OpenAIConfig `yaml:"moderation"`
	Catalog    CatalogConfig           `yaml:"catalog"`
	Sessions   SessionConfig           `yaml:"sessions"`
	Scheduler  SchedulerConfig         `yaml:"scheduler"`
	Tracing    TracingConfig           `yaml:"tracing"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// CatalogConfig locates the laptop catalog database.
type CatalogConfig struct {
	// Path is the SQLite database file. Parent directories are created.
	Path string `yaml:"path"`

	// Seed inserts the bundled laptop dataset when the catalog is empty.
	Seed bool `yaml:"seed"`
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	// MaxSessions caps live sessions; 0 means unlimited.
	MaxSessions int `yaml:"max_sessions"`

	// MaxIdle is how long a session may sit idle before pruning
	// (Go duration string, e.g. "30m").
	MaxIdle string `yaml:"max_idle"`
}

// SchedulerConfig controls the background maintenance jobs.
type SchedulerConfig struct {
	Enabled bool `yaml:"enabled"`

	// PruneSchedule and ReseedSchedule are 5-field cron expressions;
	// empty uses the job defaults.
	PruneSchedule  string `yaml:"prune_schedule"`
	ReseedSchedule string `yaml:"reseed_schedule"`
}

// TracingConfig controls the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP/HTTP collector endpoint, e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// ServiceName overrides the reported service name.
	ServiceName string `yaml:"service_name"`
}
