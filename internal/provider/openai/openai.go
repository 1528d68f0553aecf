// Package openai implements provider.Provider on top of the OpenAI
// Chat Completions API, including forced function calling for
// schema-constrained structured completions.
package openai

import (
	"log/slog"
	"net/http"

	"github.com/lverne/lapwise/internal/provider"
)

// Compile-time interface guards.
var (
	_ provider.Provider      = (*Provider)(nil)
	_ provider.HealthChecker = (*Provider)(nil)
)

// Provider implements the OpenAI Chat Completions API.
type Provider struct {
	config Config
	logger *slog.Logger
	client *http.Client
}

// New creates a Provider from a validated Config. A nil logger falls back
// to slog.Default.
func New(cfg Config, logger *slog.Logger) *Provider {
	cfg.Defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		config: cfg,
		logger: logger,
		client: &http.Client{Timeout: cfg.parsedTimeout()},
	}
}

// ModelName returns the configured model identifier.
func (p *Provider) ModelName() string {
	return p.config.Model
}
