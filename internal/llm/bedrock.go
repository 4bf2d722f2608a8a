package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// BedrockProvider serves Anthropic models hosted on Amazon Bedrock, selected
// by the "anthropic." or "bedrock/" model-name prefix so a pipeline can ask
// for the same Claude family either directly or through Bedrock. Credentials
// come from the standard AWS credential chain (env vars, shared config,
// instance role), matching how the rest of the pack's AWS-backed code
// authenticates.
type BedrockProvider struct {
	client *bedrockruntime.Client
	region string
}

// NewBedrockProvider loads the default AWS config for region and returns a
// ready-to-use BedrockProvider. Configure ignores its API key argument since
// Bedrock authenticates via the AWS credential chain rather than a bearer
// API key; it only checks that the provider was built by NewBedrockProvider.
func NewBedrockProvider(ctx context.Context, region string) (*BedrockProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("bedrock: load AWS config: %w", err)
	}
	return &BedrockProvider{client: bedrockruntime.NewFromConfig(cfg), region: region}, nil
}

func (p *BedrockProvider) Name() string { return "bedrock" }

func (p *BedrockProvider) SupportsModel(modelName string) bool {
	return hasPrefixFold(modelName, "anthropic.") || hasPrefixFold(modelName, "bedrock/")
}

func (p *BedrockProvider) Configure(apiKey string) error {
	if p.client == nil {
		return fmt.Errorf("bedrock: provider must be constructed with NewBedrockProvider")
	}
	return nil
}

type bedrockAnthropicRequest struct {
	AnthropicVersion string                    `json:"anthropic_version"`
	MaxTokens        int                       `json:"max_tokens"`
	Temperature      float64                   `json:"temperature,omitempty"`
	System           string                    `json:"system,omitempty"`
	Messages         []bedrockAnthropicMessage `json:"messages"`
}

type bedrockAnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockAnthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (p *BedrockProvider) Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg ModelConfig) (string, float64, error) {
	modelID := modelName
	if hasPrefixFold(modelName, "bedrock/") {
		modelID = modelName[len("bedrock/"):]
	}

	reqBody := bedrockAnthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        cfg.MaxTokens,
		Temperature:      cfg.Temperature,
		System:           prompt.System,
		Messages:         []bedrockAnthropicMessage{{Role: "user", Content: prompt.User}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("bedrock: marshal request: %w", err)
	}

	out, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", 0, fmt.Errorf("bedrock: invoke model %s: %w", modelID, err)
	}

	var parsed bedrockAnthropicResponse
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return "", 0, fmt.Errorf("bedrock: unmarshal response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", 0, fmt.Errorf("bedrock: no content returned for model %s", modelID)
	}

	text := parsed.Content[0].Text
	cost := estimateCost(modelID, len(prompt.System)+len(prompt.User), len(text))
	return text, cost, nil
}
