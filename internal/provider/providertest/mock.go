// Package providertest provides test helpers for the provider package.
package providertest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/lverne/lapwise/internal/provider"
)

// MockProvider is a configurable test double for provider.Provider.
// Set the Func fields to control behavior. Unset funcs panic on call.
// All methods are safe for concurrent use.
type MockProvider struct {
	CompleteFunc           func(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error)
	CompleteStructuredFunc func(ctx context.Context, req provider.StructuredRequest) (json.RawMessage, error)
	ModelNameFunc          func() string

	mu              sync.Mutex
	CompleteCalls   int
	StructuredCalls int
}

// Complete delegates to CompleteFunc and tracks call count.
func (m *MockProvider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	m.mu.Lock()
	m.CompleteCalls++
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// CompleteStructured delegates to CompleteStructuredFunc and tracks call count.
func (m *MockProvider) CompleteStructured(ctx context.Context, req provider.StructuredRequest) (json.RawMessage, error) {
	m.mu.Lock()
	m.StructuredCalls++
	m.mu.Unlock()
	return m.CompleteStructuredFunc(ctx, req)
}

// ModelName delegates to ModelNameFunc, or returns "mock" when unset.
func (m *MockProvider) ModelName() string {
	if m.ModelNameFunc == nil {
		return "mock"
	}
	return m.ModelNameFunc()
}

// Scripted returns a MockProvider whose Complete calls return the given
// replies in order. Calls past the end repeat the last reply.
func Scripted(replies ...string) *MockProvider {
	i := 0
	var mu sync.Mutex
	return &MockProvider{
		CompleteFunc: func(_ context.Context, _ provider.CompletionRequest) (provider.CompletionResponse, error) {
			mu.Lock()
			defer mu.Unlock()
			reply := replies[i]
			if i < len(replies)-1 {
				i++
			}
			return provider.CompletionResponse{
				Content:      reply,
				FinishReason: provider.FinishReasonStop,
			}, nil
		},
	}
}
