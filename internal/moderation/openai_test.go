package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *OpenAIClassifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClassifier(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flagged bool
		want    Result
	}{
		{"clean text", false, ResultClean},
		{"flagged text", true, ResultFlagged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotReq moderationRequest
			c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/moderations" {
					t.Errorf("path = %q, want /moderations", r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
					t.Errorf("decode request: %v", err)
				}
				_, _ = w.Write([]byte(`{"results":[{"flagged":` + boolJSON(tt.flagged) + `}]}`))
			})

			got, err := c.Classify(context.Background(), "some text")
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify = %q, want %q", got, tt.want)
			}
			if gotReq.Input != "some text" {
				t.Errorf("request input = %q", gotReq.Input)
			}
		})
	}
}

func TestClassify_ServerError(t *testing.T) {
	t.Parallel()

	c := newTestClassifier(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.Classify(context.Background(), "text"); err == nil {
		t.Fatal("expected error on HTTP 500, got nil")
	}
}

func TestResultFlagged(t *testing.T) {
	t.Parallel()

	if ResultClean.Flagged() {
		t.Error("clean result reported flagged")
	}
	if !ResultFlagged.Flagged() {
		t.Error("flagged result reported clean")
	}
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
