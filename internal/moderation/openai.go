package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseSize caps moderation response bodies (1 MB is generous;
// the endpoint returns a small JSON document).
const maxResponseSize = 1 * 1024 * 1024

// errModeration is returned for non-2xx moderation API responses.
var errModeration = errors.New("moderation: request failed")

// OpenAIConfig holds the configuration for the OpenAI moderation classifier.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// Defaults fills zero-valued fields with sensible defaults.
func (c *OpenAIConfig) Defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "omni-moderation-latest"
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
}

// Validate checks that required fields are present and well-formed.
func (c *OpenAIConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("moderation: api_key is required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("moderation: invalid timeout %q: %w", c.Timeout, err)
	}
	return nil
}

// OpenAIClassifier implements Classifier against the OpenAI /moderations
// endpoint.
type OpenAIClassifier struct {
	config OpenAIConfig
	client *http.Client
}

// Compile-time interface guard.
var _ Classifier = (*OpenAIClassifier)(nil)

// NewOpenAIClassifier creates a classifier from a validated config.
func NewOpenAIClassifier(cfg OpenAIConfig) *OpenAIClassifier {
	cfg.Defaults()
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		timeout = 15 * time.Second
	}
	return &OpenAIClassifier{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type moderationRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged bool `json:"flagged"`
	} `json:"results"`
}

// Classify sends the text to the moderation endpoint and maps the verdict.
// An unreachable or failing endpoint is an error, never a silent Clean.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Result, error) {
	payload, err := json.Marshal(moderationRequest{Model: c.config.Model, Input: text})
	if err != nil {
		return "", fmt.Errorf("moderation: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/moderations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("moderation: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("moderation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("moderation: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d: %s", errModeration, resp.StatusCode, body)
	}

	var mr moderationResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return "", fmt.Errorf("moderation: unmarshal response: %w", err)
	}

	for _, r := range mr.Results {
		if r.Flagged {
			return ResultFlagged, nil
		}
	}
	return ResultClean, nil
}
