package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lverne/lapwise/internal/catalog"
	"github.com/lverne/lapwise/internal/provider"
)

// ErrExtraction marks a recoverable extraction failure: the model's
// structured response did not fit the requirement profile shape. The
// session must not advance, and nothing partial may be committed.
var ErrExtraction = errors.New("assistant: requirement extraction failed")

// requirementsSchema is the JSON Schema for the forced extraction call.
var requirementsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"gpu_intensity":    {"type": "string", "enum": ["low", "medium", "high"]},
		"display_quality":  {"type": "string", "enum": ["low", "medium", "high"]},
		"portability":      {"type": "string", "enum": ["low", "medium", "high"]},
		"multitasking":     {"type": "string", "enum": ["low", "medium", "high"]},
		"processing_speed": {"type": "string", "enum": ["low", "medium", "high"]},
		"budget":           {"type": "integer", "minimum": 1}
	},
	"required": ["gpu_intensity", "display_quality", "portability", "multitasking", "processing_speed", "budget"]
}`)

const extractionInstruction = `Extract the laptop requirement profile from the following confirmed summary of a user's needs. Every value must be derivable from the text.

Summary:
`

// Extractor converts confirmed-intent text into a structured requirement
// profile through a schema-constrained model call.
type Extractor struct {
	provider provider.Provider
}

// NewExtractor creates an Extractor over the given provider.
func NewExtractor(p provider.Provider) *Extractor {
	return &Extractor{provider: p}
}

// Extract runs the schema-constrained call and parses the result. Shape and
// validation failures are wrapped in ErrExtraction (recoverable, session
// stays put); transport errors pass through untouched so callers can tell
// the two apart.
func (e *Extractor) Extract(ctx context.Context, confirmedText string) (catalog.Requirements, error) {
	args, err := e.provider.CompleteStructured(ctx, provider.StructuredRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleUser, Content: extractionInstruction + confirmedText},
		},
		Function: provider.FunctionSchema{
			Name:        "extract_requirements",
			Description: "Record the user's laptop requirement profile.",
			Parameters:  requirementsSchema,
		},
	})
	if err != nil {
		if errors.Is(err, provider.ErrNoFunctionCall) {
			return catalog.Requirements{}, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
		return catalog.Requirements{}, err
	}

	var req catalog.Requirements
	if err := json.Unmarshal(args, &req); err != nil {
		return catalog.Requirements{}, fmt.Errorf("%w: unmarshal arguments: %v", ErrExtraction, err)
	}
	if err := req.Validate(); err != nil {
		return catalog.Requirements{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	return req, nil
}
