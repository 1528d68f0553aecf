package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lverne/lapwise/internal/provider"
)

// newTestProvider returns a Provider pointed at a httptest server that
// replies with the given handler.
func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Config{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: srv.URL,
	}, nil)
}

func TestComplete(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotReq chatRequest
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{
				Message:      chatMessage{Role: "assistant", Content: "hello there"},
				FinishReason: strPtr("stop"),
			}},
			Usage: chatUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	})

	resp, err := p.Complete(context.Background(), provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleSystem, Content: "be helpful"},
			{Role: provider.MessageRoleUser, Content: "hi"},
		},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
	if resp.Content != "hello there" {
		t.Errorf("Content = %q, want %q", resp.Content, "hello there")
	}
	if resp.FinishReason != provider.FinishReasonStop {
		t.Errorf("FinishReason = %q, want stop", resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", resp.Usage.TotalTokens)
	}
}

func TestComplete_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    error
	}{
		{"rate limit", 429, `{"error":{"message":"slow down"}}`, provider.ErrRateLimit},
		{"auth", 401, `{"error":{"message":"bad key"}}`, errAuth},
		{"server error", 500, `{"error":{"message":"oops"}}`, provider.ErrProviderDown},
		{"context length", 400, `{"error":{"message":"context_length_exceeded"}}`, provider.ErrContextLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := p.Complete(context.Background(), provider.CompletionRequest{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompleteStructured(t *testing.T) {
	t.Parallel()

	var gotReq chatRequest
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{
				Message: chatMessage{
					Role: "assistant",
					ToolCalls: []chatToolCall{{
						ID:   "call_1",
						Type: "function",
						Function: chatFunctionCall{
							Name:      "extract_requirements",
							Arguments: `{"budget":1000}`,
						},
					}},
				},
				FinishReason: strPtr("tool_calls"),
			}},
		})
	})

	args, err := p.CompleteStructured(context.Background(), provider.StructuredRequest{
		Messages: []provider.LLMMessage{{Role: provider.MessageRoleUser, Content: "extract"}},
		Function: provider.FunctionSchema{
			Name:       "extract_requirements",
			Parameters: json.RawMessage(`{"type":"object"}`),
		},
	})
	if err != nil {
		t.Fatalf("CompleteStructured: %v", err)
	}

	if gotReq.ToolChoice == nil || gotReq.ToolChoice.Function.Name != "extract_requirements" {
		t.Errorf("tool_choice not forced: %+v", gotReq.ToolChoice)
	}
	if string(args) != `{"budget":1000}` {
		t.Errorf("arguments = %s", args)
	}
}

func TestCompleteStructured_NoFunctionCall(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{
				Message:      chatMessage{Role: "assistant", Content: "I'd rather chat"},
				FinishReason: strPtr("stop"),
			}},
		})
	})

	_, err := p.CompleteStructured(context.Background(), provider.StructuredRequest{
		Function: provider.FunctionSchema{Name: "extract_requirements"},
	})
	if !errors.Is(err, provider.ErrNoFunctionCall) {
		t.Errorf("error = %v, want ErrNoFunctionCall", err)
	}
}

func strPtr(s string) *string { return &s }
