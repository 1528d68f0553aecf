package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/lverne/lapwise/internal/provider"
)

// confirmIntent asks the model whether the assistant reply carries a
// complete requirement summary. The raw verdict text is returned so the
// caller can moderate it before acting on it.
func confirmIntent(ctx context.Context, p provider.Provider, reply string) (string, error) {
	resp, err := p.Complete(ctx, provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleUser, Content: fmt.Sprintf(intentPrompt, reply)},
		},
		MaxTokens: 8,
	})
	if err != nil {
		return "", fmt.Errorf("assistant: intent confirmation: %w", err)
	}
	return resp.Content, nil
}

// intentConfirmed maps the free-text verdict onto a binary decision.
// The classifier's output space is Yes/No; anything without a negative
// marker counts as confirmation. Keeping the marker matching in one place
// makes the fragility testable and replaceable.
func intentConfirmed(verdict string) bool {
	return !strings.Contains(verdict, "No")
}
