package generator

import (
	"context"
	"strings"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
	"github.com/lucas-reyes/ragtime-go/internal/llm"
	"github.com/lucas-reyes/ragtime-go/internal/prompter"
)

// Retriever supplies Chunks for a Question. It is the external collaborator
// spec'd as "any component returning Chunks for a Question" — the answer
// stage is the only stage that holds one.
type Retriever interface {
	Retrieve(ctx context.Context, q expe.Question) (expe.Chunks, error)
}

// AnswerGenerator produces candidate Answers from one or more LLMs,
// optionally grounded by a Retriever.
type AnswerGenerator struct {
	Models    []string
	Registry  *llm.Registry
	Prompter  prompter.AnswerPrompter
	Retriever Retriever // optional
	Config    llm.ModelConfig
}

// ProcessOne implements StageGenerator for the answer stage.
func (g *AnswerGenerator) ProcessOne(ctx context.Context, qa *expe.QA, startFrom expe.Step, missingOnly bool, onlyLLMs []string) error {
	if g.Retriever != nil {
		hasChunks := len(qa.Chunks.Items) > 0
		if expe.Reuse(hasChunks, expe.StepChunks, startFrom, missingOnly) {
			// keep existing chunks
		} else {
			chunks, err := g.Retriever.Retrieve(ctx, qa.Question)
			if err != nil {
				return err
			}
			qa.Chunks = chunks
			if len(qa.Chunks.Items) == 0 {
				qa.Chunks.Meta.Set("diag", "answers: retriever returned no chunks")
			}
		}
	}

	wanted := filterModels(g.Models, onlyLLMs)
	fresh := make([]expe.Answer, 0, len(wanted))
	var missed []string
	for _, modelName := range wanted {
		prev := qa.FindAnswerByLLM(modelName)
		cur := expe.Answer{}

		var prevHolder expe.LLMAnswerHolder
		if prev != nil {
			prevHolder = prev
		}

		hadPrior, err := llm.Generate(ctx, g.Registry, modelName, &cur, prevHolder, startFrom, missingOnly, g.Config, func() expe.Prompt {
			return g.Prompter.BuildPrompt(qa.Question, &qa.Chunks)
		})
		if err != nil {
			return err
		}
		if cur.LLMAnswer == nil {
			// complete() returned nothing usable; abort this item.
			missed = append(missed, modelName)
			continue
		}

		if expe.Reuse(hadPrior, expe.StepPostProcess, startFrom, missingOnly) && prev != nil {
			cur.Text = prev.Text
			cur.Meta = prev.Meta
		} else {
			g.Prompter.PostProcess(qa, &cur)
		}

		if prev != nil && prev.Eval != nil && prev.Eval.Human != nil {
			cur.EnsureEval().Human = prev.Eval.Human
		}

		fresh = append(fresh, cur)
	}

	qa.Answers = expe.Answers{Items: fresh, Meta: qa.Answers.Meta}
	if len(missed) > 0 {
		qa.Answers.Meta.Set("diag", "answers: no completion from "+strings.Join(missed, ", "))
	}
	return nil
}

// filterModels returns models restricted to onlyLLMs, preserving models'
// order, when onlyLLMs is non-empty; otherwise it returns models unchanged.
func filterModels(models, onlyLLMs []string) []string {
	if len(onlyLLMs) == 0 {
		return models
	}
	allow := make(map[string]bool, len(onlyLLMs))
	for _, m := range onlyLLMs {
		allow[m] = true
	}
	out := make([]string, 0, len(models))
	for _, m := range models {
		if allow[m] {
			out = append(out, m)
		}
	}
	return out
}
