package llm

import (
	"context"
	"log"
	"time"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
	"github.com/lucas-reyes/ragtime-go/internal/ragretry"
)

// Generate runs the prompt/llm half of a stage generator's per-item state
// machine: decide whether to reuse prev's prompt and completion or recompute
// them, call the provider with retry/backoff when recomputing, and stamp the
// result with timing and an estimated cost.
//
// buildPrompt is only invoked when the prompt step is not reused. cur must
// be a freshly zeroed holder; Generate calls cur.SetLLMAnswer on success.
// hadPriorAnswer is also returned so the caller's post-process step can
// apply the same reuse decision without re-deriving it.
//
// A terminal completion error is logged and reported by leaving cur's
// LLMAnswer nil, not by returning an error — callers treat a nil LLMAnswer as
// "skip this item" and keep processing the rest of the QA. Only a
// configuration error — an unresolvable model name — is returned as an
// error, since that is synchronous and would otherwise fail silently for
// every QA in the run.
func Generate(ctx context.Context, registry *Registry, modelName string, cur, prev expe.LLMAnswerHolder, startFrom expe.Step, missingOnly bool, cfg ModelConfig, buildPrompt func() expe.Prompt) (hadPriorAnswer bool, err error) {
	var priorPrompt expe.Prompt
	hadPriorPrompt := prev != nil && prev.GetLLMAnswer() != nil && prev.GetLLMAnswer().Prompt != nil
	if hadPriorPrompt {
		priorPrompt = *prev.GetLLMAnswer().Prompt
	}
	prompt := expe.ReuseOrRecompute(hadPriorPrompt, expe.StepPrompt, startFrom, missingOnly, priorPrompt, buildPrompt)

	hadPriorAnswer = prev != nil && prev.GetLLMAnswer() != nil
	if expe.Reuse(hadPriorAnswer, expe.StepLLM, startFrom, missingOnly) {
		cur.SetLLMAnswer(prev.GetLLMAnswer())
		return hadPriorAnswer, nil
	}

	provider, err := registry.Resolve(modelName)
	if err != nil {
		return hadPriorAnswer, err
	}

	release := registry.acquire(modelName)
	defer release()

	start := time.Now()
	result, err := ragretry.Do(func() (interface{}, error) {
		text, cost, callErr := provider.Complete(ctx, modelName, prompt, cfg)
		if callErr != nil {
			return nil, callErr
		}
		return completion{text: text, cost: cost}, nil
	}, ragretry.IsRateLimit, ragretry.Default)
	if err != nil {
		log.Printf("[llm] %s: %v", FullName(provider, modelName), err)
		return hadPriorAnswer, nil
	}
	c := result.(completion)
	duration := time.Since(start).Seconds()

	promptCopy := prompt
	cur.SetLLMAnswer(&expe.LLMAnswer{
		Text:      c.text,
		Prompt:    &promptCopy,
		Name:      modelName,
		FullName:  FullName(provider, modelName),
		Timestamp: &start,
		Duration:  &duration,
		Cost:      &c.cost,
	})
	return hadPriorAnswer, nil
}

type completion struct {
	text string
	cost float64
}
