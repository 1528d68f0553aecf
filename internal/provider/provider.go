// Package provider defines the Provider interface for communicating with LLMs
// and the shared request/response types used across the assistant.
package provider

import (
	"context"
	"encoding/json"
)

// Provider is the interface for communicating with an LLM.
// Concrete implementations live in separate packages (e.g., provider/openai).
type Provider interface {
	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// CompleteStructured forces the model to answer through the given
	// function schema and returns the raw JSON arguments of that call.
	// Callers are responsible for unmarshalling and validating the payload.
	CompleteStructured(ctx context.Context, req StructuredRequest) (json.RawMessage, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}

// HealthChecker is an optional interface that providers may implement
// to support active health probing.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
