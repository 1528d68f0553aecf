// Package gateway provides the HTTP surface of the assistant: the
// conversation API, a transcript WebSocket stream, and monitoring endpoints.
// It binds to loopback by default.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/lverne/lapwise/internal/assistant"
)

// Gateway is the HTTP server wrapping an assistant engine.
type Gateway struct {
	config    Config
	engine    *assistant.Engine
	logger    *slog.Logger
	metrics   *Metrics
	server    *http.Server
	startedAt time.Time

	// Optional upstream probe, see SetHealthCheck.
	healthCheck func(ctx context.Context) error
}

// New creates a Gateway. The config is defaulted; call Config.Validate
// beforehand if the bind address comes from user input.
func New(cfg Config, engine *assistant.Engine, logger *slog.Logger) *Gateway {
	cfg.Defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		config:  cfg,
		engine:  engine,
		logger:  logger,
		metrics: NewMetrics(engine.Sessions().Len),
	}
}

// Start binds the listener and serves in the background.
func (g *Gateway) Start() error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down within the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
