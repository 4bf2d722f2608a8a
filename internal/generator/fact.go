package generator

import (
	"context"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
	"github.com/lucas-reyes/ragtime-go/internal/llm"
	"github.com/lucas-reyes/ragtime-go/internal/prompter"
	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// FactGenerator extracts atomic Facts from a human-validated reference
// Answer. There is exactly one Facts generation per QA — facts are a
// property of the question, not of any one model.
type FactGenerator struct {
	Model    string
	Registry *llm.Registry
	Prompter prompter.FactPrompter
	Config   llm.ModelConfig
}

// ProcessOne implements StageGenerator for the fact stage. A
// QA with no human-validated Answer is skipped with a diagnostic, not an
// error: the run continues over the rest of the Expe.
func (g *FactGenerator) ProcessOne(ctx context.Context, qa *expe.QA, startFrom expe.Step, missingOnly bool, onlyLLMs []string) error {
	chosen := qa.FirstHumanValidated()
	if chosen == nil {
		qa.Meta.Set("diag", "facts: no human-validated answer, skipped")
		ragconfig.DebugLog("[facts] %q: no human-validated answer, skipping", qa.Question.Text)
		return nil
	}

	prev := &qa.Facts
	cur := expe.Facts{}

	hadPrior, err := llm.Generate(ctx, g.Registry, g.Model, &cur, prev, startFrom, missingOnly, g.Config, func() expe.Prompt {
		return g.Prompter.BuildPrompt(qa.Question, *chosen)
	})
	if err != nil {
		return err
	}
	if cur.LLMAnswer == nil {
		qa.Facts.Meta.Set("diag", "facts: no completion from "+g.Model)
		return nil
	}

	if expe.Reuse(hadPrior, expe.StepPostProcess, startFrom, missingOnly) {
		cur.Items = prev.Items
		cur.Meta = prev.Meta
	} else {
		g.Prompter.PostProcess(qa, &cur)
	}

	qa.Facts = cur
	return nil
}
