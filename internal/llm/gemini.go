package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// GeminiProvider serves the gemini-* model family via Google's generative AI
// client.
type GeminiProvider struct {
	apiKey string
}

// NewGeminiProvider returns an unconfigured GeminiProvider; Configure must
// be called before Complete.
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) SupportsModel(modelName string) bool {
	return hasPrefixFold(modelName, "gemini-")
}

func (p *GeminiProvider) Configure(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("gemini: API key is required")
	}
	p.apiKey = apiKey
	return nil
}

func (p *GeminiProvider) Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg ModelConfig) (string, float64, error) {
	if p.apiKey == "" {
		return "", 0, fmt.Errorf("gemini: provider not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", 0, fmt.Errorf("gemini: create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetMaxOutputTokens(int32(cfg.MaxTokens))
	if prompt.System != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(prompt.System))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", 0, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", 0, fmt.Errorf("gemini: no candidates returned for model %s", modelName)
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}

	cost := estimateCost(modelName, len(prompt.System)+len(prompt.User), len(text))
	return text, cost, nil
}
