package generator

import (
	"context"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
	"github.com/lucas-reyes/ragtime-go/internal/llm"
	"github.com/lucas-reyes/ragtime-go/internal/prompter"
	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// EvalGenerator scores each candidate Answer against a QA's Facts.
type EvalGenerator struct {
	Model    string
	Registry *llm.Registry
	Prompter prompter.EvalPrompter
	Config   llm.ModelConfig
}

// ProcessOne implements StageGenerator for the eval stage.
// Answers produced anonymously (no llm_answer) are always scored regardless
// of onlyLLMs.
func (g *EvalGenerator) ProcessOne(ctx context.Context, qa *expe.QA, startFrom expe.Step, missingOnly bool, onlyLLMs []string) error {
	if len(qa.Answers.Items) == 0 || len(qa.Facts.Items) == 0 {
		qa.Meta.Set("diag", "evals: answers or facts empty, skipped")
		ragconfig.DebugLog("[eval] %q: answers or facts empty, skipping", qa.Question.Text)
		return nil
	}

	allow := map[string]bool(nil)
	if len(onlyLLMs) > 0 {
		allow = make(map[string]bool, len(onlyLLMs))
		for _, m := range onlyLLMs {
			allow[m] = true
		}
	}

	for i := range qa.Answers.Items {
		answer := &qa.Answers.Items[i]
		if answer.Text == "" {
			continue
		}
		if allow != nil && answer.LLMAnswer != nil && !allow[answer.LLMAnswer.Name] && !allow[answer.LLMAnswer.FullName] {
			continue
		}

		prev := answer.Eval
		cur := expe.Eval{}

		var prevHolder expe.LLMAnswerHolder
		if prev != nil {
			prevHolder = prev
		}

		hadPrior, err := llm.Generate(ctx, g.Registry, g.Model, &cur, prevHolder, startFrom, missingOnly, g.Config, func() expe.Prompt {
			return g.Prompter.BuildPrompt(*answer, qa.Facts)
		})
		if err != nil {
			return err
		}
		if cur.LLMAnswer == nil {
			answer.Meta.Set("diag", "eval: no completion from "+g.Model)
			continue
		}

		if expe.Reuse(hadPrior, expe.StepPostProcess, startFrom, missingOnly) && prev != nil {
			cur.Text = prev.Text
			cur.Meta = prev.Meta
			cur.Auto = prev.Auto
		} else {
			g.Prompter.PostProcess(qa, &cur)
		}

		if prev != nil && prev.Human != nil {
			cur.Human = prev.Human
		}

		answer.Eval = &cur
	}

	return nil
}
