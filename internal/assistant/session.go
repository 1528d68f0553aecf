// Package assistant implements the dialogue state machine that drives a
// laptop-shopping conversation: requirement gathering, intent confirmation,
// profile extraction, recommendation, and post-recommendation Q&A. Every
// text entering a history or the display log is moderated first; a flagged
// text resets the session completely.
package assistant

import (
	"time"

	"github.com/lverne/lapwise/internal/catalog"
	"github.com/lverne/lapwise/internal/provider"
)

// Phase is the session's position in the dialogue state machine.
type Phase string

// Phase constants. Gathering and PostRecommendation are resting states;
// Confirmed marks a session whose intent was confirmed but whose profile
// extraction has not succeeded yet, and Recommending is only observable
// while a turn is building the recommendation set.
const (
	PhaseGathering          Phase = "gathering"
	PhaseConfirmed          Phase = "confirmed"
	PhaseRecommending       Phase = "recommending"
	PhasePostRecommendation Phase = "post_recommendation"
)

// Speaker identifies who produced a display log entry.
type Speaker string

// Speaker constants.
const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

// Entry is one display log line shown to the end user. The display log is a
// projection of the model histories plus transient status messages that are
// never sent to the model.
type Entry struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Session is the mutable state of one conversation. It is owned by exactly
// one turn at a time; the store's lane lock enforces that.
type Session struct {
	ID           string
	Phase        Phase
	CreatedAt    time.Time
	LastActiveAt time.Time

	// Primary is the model history used while gathering and confirming.
	Primary []provider.LLMMessage

	// Reco is the model history used once recommendations exist. It is
	// initialized lazily, exactly once per session.
	Reco []provider.LLMMessage

	// Transcript is the user-facing display log.
	Transcript []Entry

	// Requirements is the extracted profile, nil until extraction succeeds.
	Requirements *catalog.Requirements

	// Recommendations is the validated candidate set. It is nil until a
	// non-empty validated set exists; an empty validated set leaves it nil
	// and the session parked in Gathering.
	Recommendations []catalog.Candidate
}

// initialize seeds a fresh session: gathering phase, primary history with
// the system instruction and the opening greeting, matching greeting in the
// transcript, and no profile or recommendations.
func (s *Session) initialize() {
	s.Phase = PhaseGathering
	s.Primary = []provider.LLMMessage{
		{Role: provider.MessageRoleSystem, Content: systemPrompt},
		{Role: provider.MessageRoleAssistant, Content: greeting},
	}
	s.Reco = nil
	s.Transcript = []Entry{{Speaker: SpeakerBot, Text: greeting}}
	s.Requirements = nil
	s.Recommendations = nil
}

// TranscriptCopy returns a snapshot of the display log safe to hand across
// the store boundary.
func (s *Session) TranscriptCopy() []Entry {
	out := make([]Entry, len(s.Transcript))
	copy(out, s.Transcript)
	return out
}
