package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LLMClient issues a single text-completion call and returns the model's raw
// answer text. Implementations must be safe for concurrent use.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AnthropicClient talks to the Anthropic messages endpoint.
type AnthropicClient struct {
	apiKey     string
	apiURL     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type anthropicRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropicClient creates a client for the messages endpoint. Empty url or
// model fall back to the package defaults; timeout <= 0 falls back to the
// default request timeout.
func NewAnthropicClient(apiKey, apiURL, model string, maxTokens int, timeout time.Duration) *AnthropicClient {
	if apiURL == "" {
		apiURL = DefaultAnthropicURL
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &AnthropicClient{
		apiKey:    apiKey,
		apiURL:    apiURL,
		model:     model,
		maxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Complete sends one user-role message and returns the first content block's
// text. Transport failures, non-2xx statuses and malformed envelopes all
// surface as upstream-kind errors; there is no retry.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model: c.model,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		MaxTokens: c.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", newUpstreamError("encoding request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", newUpstreamError("building request", "", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", newUpstreamError("calling model endpoint", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", newUpstreamError(
			fmt.Sprintf("model endpoint returned status %d", resp.StatusCode),
			string(body), nil)
	}

	var envelope anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", newUpstreamError("decoding model response envelope", "", err)
	}

	if len(envelope.Content) == 0 {
		return "", newUpstreamError("model response has no content blocks", "", nil)
	}

	return envelope.Content[0].Text, nil
}
