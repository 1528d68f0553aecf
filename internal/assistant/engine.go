package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lverne/lapwise/internal/catalog"
	"github.com/lverne/lapwise/internal/moderation"
	"github.com/lverne/lapwise/internal/provider"
)

// Sentinel errors for engine operations.
var (
	// ErrSessionNotFound indicates no session exists for the given ID.
	ErrSessionNotFound = errors.New("assistant: session not found")

	// ErrSessionLimit indicates the store refused to create a new session.
	ErrSessionLimit = errors.New("assistant: session limit reached")

	// ErrNoProvider and friends guard engine construction.
	ErrNoProvider   = errors.New("assistant: no provider configured")
	ErrNoClassifier = errors.New("assistant: no classifier configured")
	ErrNoRanker     = errors.New("assistant: no ranker configured")
)

// Outcome classifies what a turn did, so the presentation layer can decide
// rendering without inspecting session internals.
type Outcome string

// Outcome constants.
const (
	// OutcomeReply is a plain assistant reply (gathering loop or
	// post-recommendation Q&A).
	OutcomeReply Outcome = "reply"

	// OutcomeRecommended means the turn produced a validated, non-empty
	// recommendation set and the session moved to post-recommendation.
	OutcomeRecommended Outcome = "recommended"

	// OutcomeNoMatch means extraction succeeded but no laptop passed
	// validation; the session is parked in gathering for human escalation.
	OutcomeNoMatch Outcome = "no_match"

	// OutcomeExtractionFailed means the profile could not be parsed; the
	// session stays in confirmed and the user is asked to rephrase.
	OutcomeExtractionFailed Outcome = "extraction_failed"

	// OutcomeReset means moderation flagged a text and the session was
	// reset to its initial state.
	OutcomeReset Outcome = "reset"
)

// TurnResult is what one processed turn hands back to the presentation layer.
type TurnResult struct {
	SessionID  string  `json:"session_id"`
	Outcome    Outcome `json:"outcome"`
	Phase      Phase   `json:"phase"`
	Transcript []Entry `json:"transcript"`
}

// EngineConfig groups the collaborators of an Engine.
type EngineConfig struct {
	Provider   provider.Provider
	Classifier moderation.Classifier
	Ranker     *catalog.Ranker
	Store      SessionStore
	Logger     *slog.Logger
}

// Engine orchestrates the dialogue state machine. All mutation of a session
// happens inside Turn or Reset, under that session's lane lock.
type Engine struct {
	provider   provider.Provider
	classifier moderation.Classifier
	extractor  *Extractor
	ranker     *catalog.Ranker
	store      SessionStore
	lanes      *laneLock
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewEngine creates an Engine. Store defaults to a fresh in-memory store
// and Logger to slog.Default when unset.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Provider == nil {
		return nil, ErrNoProvider
	}
	if cfg.Classifier == nil {
		return nil, ErrNoClassifier
	}
	if cfg.Ranker == nil {
		return nil, ErrNoRanker
	}
	if cfg.Store == nil {
		cfg.Store = NewInMemorySessionStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Engine{
		provider:   cfg.Provider,
		classifier: cfg.Classifier,
		extractor:  NewExtractor(cfg.Provider),
		ranker:     cfg.Ranker,
		store:      cfg.Store,
		lanes:      newLaneLock(),
		logger:     cfg.Logger,
		tracer:     otel.Tracer("lapwise/assistant"),
	}, nil
}

// Sessions returns the session store for external inspection.
func (e *Engine) Sessions() SessionStore {
	return e.store
}

// Transcript returns the display log for the given session.
func (e *Engine) Transcript(sessionID string) ([]Entry, error) {
	e.lanes.acquire(sessionID)
	defer e.lanes.release(sessionID)

	sess := e.store.Get(sessionID)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess.TranscriptCopy(), nil
}

// Reset explicitly reinitializes a session and returns the fresh transcript.
// Resetting is idempotent: resetting twice equals resetting once.
func (e *Engine) Reset(sessionID string) ([]Entry, error) {
	e.lanes.acquire(sessionID)
	defer e.lanes.release(sessionID)

	sess := e.store.Get(sessionID)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	e.store.Reset(sessionID)
	return sess.TranscriptCopy(), nil
}

// Turn processes one inbound user message for the given session. Exactly one
// turn per session runs at a time; turns for different sessions proceed
// concurrently. Recoverable business outcomes (flagged text, no match,
// extraction failure) come back as TurnResult outcomes; external service
// failures come back as errors with the session left in its last safely
// committed state.
func (e *Engine) Turn(ctx context.Context, sessionID, text string) (TurnResult, error) {
	ctx, span := e.tracer.Start(ctx, "assistant.turn",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	e.lanes.acquire(sessionID)
	defer e.lanes.release(sessionID)

	sess, _ := e.store.GetOrCreate(sessionID)
	if sess == nil {
		return TurnResult{}, ErrSessionLimit
	}

	// Moderate the user message before committing it anywhere.
	flagged, err := e.flagged(ctx, text)
	if err != nil {
		return TurnResult{}, err
	}
	if flagged {
		return e.reset(sess, "user message flagged"), nil
	}

	sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerUser, Text: text})

	var res TurnResult
	if sess.Recommendations == nil {
		res, err = e.gatherTurn(ctx, sess, text)
	} else {
		res, err = e.recoTurn(ctx, sess, text)
	}
	if err != nil {
		span.RecordError(err)
		return TurnResult{}, err
	}

	span.SetAttributes(attribute.String("turn.outcome", string(res.Outcome)))
	return res, nil
}

// gatherTurn handles a turn while the session is collecting requirements
// (gathering or confirmed phase, no recommendations yet).
func (e *Engine) gatherTurn(ctx context.Context, sess *Session, text string) (TurnResult, error) {
	sess.Primary = append(sess.Primary, provider.LLMMessage{
		Role:    provider.MessageRoleUser,
		Content: text + gatherReminder,
	})

	resp, err := e.provider.Complete(ctx, provider.CompletionRequest{Messages: sess.Primary})
	if err != nil {
		return TurnResult{}, fmt.Errorf("assistant: completion: %w", err)
	}
	reply := resp.Content

	if flagged, err := e.flagged(ctx, reply); err != nil {
		return TurnResult{}, err
	} else if flagged {
		return e.reset(sess, "assistant reply flagged"), nil
	}

	verdict, err := confirmIntent(ctx, e.provider, reply)
	if err != nil {
		return TurnResult{}, err
	}
	if flagged, err := e.flagged(ctx, verdict); err != nil {
		return TurnResult{}, err
	} else if flagged {
		return e.reset(sess, "intent verdict flagged"), nil
	}

	if !intentConfirmed(verdict) {
		sess.Phase = PhaseGathering
		sess.Primary = append(sess.Primary, provider.LLMMessage{Role: provider.MessageRoleAssistant, Content: reply})
		sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerBot, Text: reply})
		return e.result(sess, OutcomeReply), nil
	}

	sess.Phase = PhaseConfirmed
	e.logger.Info("assistant: intent confirmed", "session_id", sess.ID)

	req, err := e.extractor.Extract(ctx, reply)
	if err != nil {
		if errors.Is(err, ErrExtraction) {
			// Recoverable: tell the user, stay in confirmed, commit nothing partial.
			e.logger.Warn("assistant: extraction failed", "session_id", sess.ID, "error", err)
			sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerBot, Text: msgExtractionFailed})
			return e.result(sess, OutcomeExtractionFailed), nil
		}
		return TurnResult{}, err
	}
	sess.Requirements = &req

	// Status entry for the user only; the model never sees it.
	sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerBot, Text: msgFetching})

	candidates, err := e.ranker.Rank(ctx, req)
	if err != nil {
		return TurnResult{}, err
	}
	validated := catalog.Validate(candidates)

	if len(validated) == 0 {
		// Parked for human escalation: profile retained, no recommendations.
		sess.Phase = PhaseGathering
		sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerBot, Text: msgNoMatch})
		e.logger.Info("assistant: no validated recommendations", "session_id", sess.ID)
		return e.result(sess, OutcomeNoMatch), nil
	}

	sess.Phase = PhaseRecommending
	sess.Reco = []provider.LLMMessage{
		{Role: provider.MessageRoleSystem, Content: recoSystemPrompt(validated)},
	}

	recoResp, err := e.provider.Complete(ctx, provider.CompletionRequest{Messages: sess.Reco})
	if err != nil {
		return TurnResult{}, fmt.Errorf("assistant: recommendation intro: %w", err)
	}
	recoReply := recoResp.Content

	if flagged, err := e.flagged(ctx, recoReply); err != nil {
		return TurnResult{}, err
	} else if flagged {
		return e.reset(sess, "recommendation intro flagged"), nil
	}

	sess.Recommendations = validated
	sess.Reco = append(sess.Reco,
		provider.LLMMessage{Role: provider.MessageRoleUser, Content: profileContext(req)},
		provider.LLMMessage{Role: provider.MessageRoleAssistant, Content: recoReply},
	)
	sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerBot, Text: recoReply})
	sess.Phase = PhasePostRecommendation

	e.logger.Info("assistant: recommendations presented",
		"session_id", sess.ID, "count", len(validated))
	return e.result(sess, OutcomeRecommended), nil
}

// recoTurn handles a turn once recommendations exist: Q&A over the
// recommendation history only. The primary history is never touched again.
func (e *Engine) recoTurn(ctx context.Context, sess *Session, text string) (TurnResult, error) {
	if sess.Reco == nil {
		sess.Reco = []provider.LLMMessage{
			{Role: provider.MessageRoleSystem, Content: recoSystemPrompt(sess.Recommendations)},
		}
	}

	sess.Reco = append(sess.Reco, provider.LLMMessage{Role: provider.MessageRoleUser, Content: text})

	resp, err := e.provider.Complete(ctx, provider.CompletionRequest{Messages: sess.Reco})
	if err != nil {
		return TurnResult{}, fmt.Errorf("assistant: recommendation completion: %w", err)
	}
	reply := resp.Content

	if flagged, err := e.flagged(ctx, reply); err != nil {
		return TurnResult{}, err
	} else if flagged {
		return e.reset(sess, "recommendation reply flagged"), nil
	}

	sess.Reco = append(sess.Reco, provider.LLMMessage{Role: provider.MessageRoleAssistant, Content: reply})
	sess.Transcript = append(sess.Transcript, Entry{Speaker: SpeakerBot, Text: reply})
	return e.result(sess, OutcomeReply), nil
}

// flagged runs the moderation gate over one text.
func (e *Engine) flagged(ctx context.Context, text string) (bool, error) {
	result, err := e.classifier.Classify(ctx, text)
	if err != nil {
		return false, fmt.Errorf("assistant: moderation: %w", err)
	}
	return result.Flagged(), nil
}

// reset wipes the session back to its initial state after a flag.
func (e *Engine) reset(sess *Session, reason string) TurnResult {
	e.logger.Warn("assistant: session reset", "session_id", sess.ID, "reason", reason)
	e.store.Reset(sess.ID)
	return e.result(sess, OutcomeReset)
}

func (e *Engine) result(sess *Session, outcome Outcome) TurnResult {
	return TurnResult{
		SessionID:  sess.ID,
		Outcome:    outcome,
		Phase:      sess.Phase,
		Transcript: sess.TranscriptCopy(),
	}
}
