package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/lverne/lapwise/internal/assistant"
)

// streamPollInterval is how often the stream checks a session for new
// transcript entries.
const streamPollInterval = 500 * time.Millisecond

// handleStream upgrades to a WebSocket and pushes transcript entries as they
// are committed. On connect the full current transcript is replayed, then
// only new entries follow.
func (g *Gateway) handleStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if _, err := g.engine.Transcript(id); err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			g.logger.Warn("stream accept failed", "session_id", id, "error", err)
			return
		}
		defer func() { _ = conn.Close(websocket.StatusInternalError, "unexpected close") }()

		g.metrics.StreamClients.Inc()
		defer g.metrics.StreamClients.Dec()
		g.logger.Info("stream client connected", "session_id", id)

		ctx := r.Context()
		sent := 0
		ticker := time.NewTicker(streamPollInterval)
		defer ticker.Stop()

		for {
			transcript, err := g.engine.Transcript(id)
			if err != nil {
				if errors.Is(err, assistant.ErrSessionNotFound) {
					_ = conn.Close(websocket.StatusNormalClosure, "session ended")
					return
				}
				_ = conn.Close(websocket.StatusInternalError, "transcript unavailable")
				return
			}

			// A reset shrinks the transcript; replay it from the start.
			if len(transcript) < sent {
				sent = 0
			}

			for ; sent < len(transcript); sent++ {
				if err := writeEntry(ctx, conn, transcript[sent]); err != nil {
					return
				}
			}

			select {
			case <-ctx.Done():
				_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			case <-ticker.C:
			}
		}
	}
}

func writeEntry(ctx context.Context, conn *websocket.Conn, entry assistant.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
