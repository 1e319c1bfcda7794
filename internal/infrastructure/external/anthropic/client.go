package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/meetingintel-team/meeting-intel/pkg/config"
)

// Client is a minimal client for the Anthropic messages API used for
// transcript summarization
type Client struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// NewClient creates an Anthropic client using values from the provided config
func NewClient(cfg *config.AnthropicConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.anthropic.com"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   base,
		model:     cfg.Model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 120 * time.Second},
	}
}

// APIError carries the HTTP status of a failed provider call
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic returned status %d: %s", e.StatusCode, e.Body)
}

// IsRetryable reports whether err is a transient provider failure
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	// network errors are retryable
	return err != nil
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Model      string `json:"model"`
}

// Complete sends a system and user prompt pair and returns the text output.
// The truncated flag is set when the model stopped at the token ceiling.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, bool, error) {
	reqBody := messagesRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: userPrompt}},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, err
	}

	endpoint := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return "", false, &APIError{StatusCode: resp.StatusCode, Body: buf.String()}
	}

	var mr messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return "", false, err
	}
	if len(mr.Content) == 0 {
		return "", false, fmt.Errorf("empty response from anthropic")
	}

	var text string
	for _, block := range mr.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	truncated := mr.StopReason == "max_tokens"
	return text, truncated, nil
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}
