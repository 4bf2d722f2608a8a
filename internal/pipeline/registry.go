package pipeline

import (
	"context"
	"os"

	"github.com/lucas-reyes/ragtime-go/internal/llm"
	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// providerEnvVars maps a provider name to the environment variable
// EnvConfig.APIKey checks before falling back to the config file.
var providerEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// BuildRegistry configures every provider this repo ships for which a
// credential is available, skipping (not an error; only a Bedrock failure is
// debug-logged) any provider that can't be configured — a pipeline only touches the models it
// actually asks for, so an unconfigured provider is harmless until resolved.
func BuildRegistry(ctx context.Context, env *ragconfig.EnvConfig) *llm.Registry {
	reg := llm.NewRegistry()

	if key := env.APIKey("openai", providerEnvVars["openai"]); key != "" {
		p := llm.NewOpenAIProvider()
		if err := p.Configure(key); err == nil {
			reg.Register(p)
		}
	}
	if key := env.APIKey("anthropic", providerEnvVars["anthropic"]); key != "" {
		p := llm.NewAnthropicProvider()
		if err := p.Configure(key); err == nil {
			reg.Register(p)
		}
	}
	if key := env.APIKey("gemini", providerEnvVars["gemini"]); key != "" {
		p := llm.NewGeminiProvider()
		if err := p.Configure(key); err == nil {
			reg.Register(p)
		}
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		if p, err := llm.NewBedrockProvider(ctx, region); err == nil {
			reg.Register(p)
		} else {
			ragconfig.DebugLog("pipeline: bedrock unavailable: %v", err)
		}
	}

	return reg
}
