package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lverne/lapwise/internal/assistant"
	"github.com/lverne/lapwise/internal/provider"
)

// maxTurnBody caps inbound turn request bodies.
const maxTurnBody = 64 * 1024

// TurnRequest is the JSON body for POST /api/conversation.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// TranscriptResponse is the JSON response for transcript and reset endpoints.
type TranscriptResponse struct {
	SessionID  string            `json:"session_id"`
	Transcript []assistant.Entry `json:"transcript"`
}

// handleTurn processes one conversation turn. An empty session_id creates a
// new session and returns its generated ID in the result.
func (g *Gateway) handleTurn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TurnRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTurnBody)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Message == "" {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}

		if req.SessionID == "" {
			id, err := assistant.NewSessionID()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "session id generation failed")
				return
			}
			req.SessionID = id
		}

		start := time.Now()
		res, err := g.engine.Turn(r.Context(), req.SessionID, req.Message)
		if err != nil {
			g.logger.Error("turn failed", "session_id", req.SessionID, "error", err)
			code, msg := mapTurnError(err)
			writeError(w, code, msg)
			return
		}

		g.metrics.RecordTurn(string(res.Outcome), time.Since(start))
		writeJSON(w, http.StatusOK, res)
	}
}

// handleTranscript returns the full display log for a session.
func (g *Gateway) handleTranscript() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		transcript, err := g.engine.Transcript(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, TranscriptResponse{SessionID: id, Transcript: transcript})
	}
}

// handleReset reinitializes a session and returns the fresh transcript.
func (g *Gateway) handleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		transcript, err := g.engine.Reset(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		g.metrics.ResetsTotal.Inc()
		g.logger.Info("session reset via API", "session_id", id)
		writeJSON(w, http.StatusOK, TranscriptResponse{SessionID: id, Transcript: transcript})
	}
}

// mapTurnError maps engine errors to HTTP status codes.
func mapTurnError(err error) (int, string) {
	switch {
	case errors.Is(err, assistant.ErrSessionLimit):
		return http.StatusTooManyRequests, "session limit reached"
	case errors.Is(err, provider.ErrRateLimit):
		return http.StatusTooManyRequests, "upstream rate limited"
	case errors.Is(err, provider.ErrProviderDown), errors.Is(err, provider.ErrContextLength):
		return http.StatusBadGateway, "upstream provider error"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
