// Package moderation classifies text against a content policy. Every text
// that reaches a conversation history or the display log must pass through
// a Classifier first; a Flagged result forces a full session reset.
package moderation

import "context"

// Result is the outcome of a moderation check.
type Result string

// Result constants.
const (
	ResultClean   Result = "clean"
	ResultFlagged Result = "flagged"
)

// Flagged reports whether the result indicates a policy violation.
func (r Result) Flagged() bool {
	return r == ResultFlagged
}

// Classifier decides whether a piece of text violates the content policy.
// Implementations must be side-effect free: a check commits nothing.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, text string) (Result, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, text string) (Result, error) {
	return f(ctx, text)
}
