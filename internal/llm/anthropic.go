package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// AnthropicProvider serves the claude-* model family over the Messages API.
// Hand-rolled: no official Go SDK for it is part of this module's stack, so
// this speaks the request/response shape directly.
type AnthropicProvider struct {
	apiKey string
	client *http.Client
}

// NewAnthropicProvider returns an unconfigured AnthropicProvider; Configure
// must be called before Complete.
func NewAnthropicProvider() *AnthropicProvider {
	return &AnthropicProvider{client: &http.Client{}}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) SupportsModel(modelName string) bool {
	return hasPrefixFold(modelName, "claude-")
}

func (p *AnthropicProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("anthropic: API key is required")
	}
	p.apiKey = apiKey
	return nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *AnthropicProvider) Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg ModelConfig) (string, float64, error) {
	if p.apiKey == "" {
		return "", 0, fmt.Errorf("anthropic: provider not configured")
	}

	reqBody := anthropicRequest{
		Model:       modelName,
		System:      prompt.System,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt.User}},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.anthropic.com/v1/messages", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("anthropic: read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", 0, fmt.Errorf("anthropic: request failed with status 429: %s", string(body))
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("anthropic: request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, fmt.Errorf("anthropic: unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		if strings.Contains(strings.ToLower(parsed.Error.Message), "rate limit") ||
			strings.Contains(strings.ToLower(parsed.Error.Message), "quota") {
			return "", 0, fmt.Errorf("anthropic: rate limit error: %s", parsed.Error.Message)
		}
		return "", 0, fmt.Errorf("anthropic: api error: %s", parsed.Error.Message)
	}
	if len(parsed.Content) == 0 {
		return "", 0, fmt.Errorf("anthropic: no content returned for model %s", modelName)
	}

	text := parsed.Content[0].Text
	cost := estimateCost(modelName, len(prompt.System)+len(prompt.User), len(text))
	return text, cost, nil
}
