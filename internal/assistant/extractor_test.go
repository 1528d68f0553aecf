package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lverne/lapwise/internal/catalog"
	"github.com/lverne/lapwise/internal/provider"
	"github.com/lverne/lapwise/internal/provider/providertest"
)

const validArgs = `{
	"gpu_intensity": "high",
	"display_quality": "medium",
	"portability": "low",
	"multitasking": "high",
	"processing_speed": "high",
	"budget": 1200
}`

func structuredMock(args string, err error) *providertest.MockProvider {
	return &providertest.MockProvider{
		CompleteStructuredFunc: func(_ context.Context, _ provider.StructuredRequest) (json.RawMessage, error) {
			if err != nil {
				return nil, err
			}
			return json.RawMessage(args), nil
		},
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	req, err := NewExtractor(structuredMock(validArgs, nil)).Extract(context.Background(), "confirmed summary")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := catalog.Requirements{
		GPUIntensity:    catalog.TierHigh,
		DisplayQuality:  catalog.TierMedium,
		Portability:     catalog.TierLow,
		Multitasking:    catalog.TierHigh,
		ProcessingSpeed: catalog.TierHigh,
		Budget:          1200,
	}
	if req != want {
		t.Errorf("Extract = %+v, want %+v", req, want)
	}
}

func TestExtract_RecoverableFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args string
		err  error
	}{
		{"malformed json", `{"budget": `, nil},
		{"missing fields", `{"budget": 900}`, nil},
		{"bad tier", `{"gpu_intensity":"enormous","display_quality":"high","portability":"high","multitasking":"high","processing_speed":"high","budget":900}`, nil},
		{"zero budget", `{"gpu_intensity":"low","display_quality":"low","portability":"low","multitasking":"low","processing_speed":"low","budget":0}`, nil},
		{"no function call", "", provider.ErrNoFunctionCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewExtractor(structuredMock(tt.args, tt.err)).Extract(context.Background(), "summary")
			if !errors.Is(err, ErrExtraction) {
				t.Errorf("error = %v, want ErrExtraction", err)
			}
		})
	}
}

func TestExtract_TransportErrorPassesThrough(t *testing.T) {
	t.Parallel()

	_, err := NewExtractor(structuredMock("", provider.ErrProviderDown)).Extract(context.Background(), "summary")
	if errors.Is(err, ErrExtraction) {
		t.Error("transport error must not be wrapped as ErrExtraction")
	}
	if !errors.Is(err, provider.ErrProviderDown) {
		t.Errorf("error = %v, want ErrProviderDown", err)
	}
}
