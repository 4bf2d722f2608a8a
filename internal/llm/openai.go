package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// OpenAIProvider serves the gpt-* and o1-/o3-* model families via the
// github.com/sashabaranov/go-openai client.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider returns an unconfigured OpenAIProvider; Configure must
// be called before Complete.
func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) SupportsModel(modelName string) bool {
	return hasPrefixFold(modelName, "gpt-") || hasPrefixFold(modelName, "o1") || hasPrefixFold(modelName, "o3")
}

func (p *OpenAIProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("openai: API key is required")
	}
	p.client = openai.NewClient(apiKey)
	return nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg ModelConfig) (string, float64, error) {
	if p.client == nil {
		return "", 0, fmt.Errorf("openai: provider not configured")
	}

	messages := []openai.ChatCompletionMessage{}
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelName,
		Messages:    messages,
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return "", 0, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("openai: no choices returned for model %s", modelName)
	}

	text := resp.Choices[0].Message.Content
	cost := estimateCost(modelName, len(prompt.System)+len(prompt.User), len(text))
	return text, cost, nil
}
