// Package prompter implements the strategy objects that turn a QA's inputs
// into an LLM Prompt and turn the LLM's raw text back into an entity's
// canonical fields. Each stage (Answer, Fact, Eval) has its own narrow
// interface since the inputs a prompter needs differ per stage; a registry
// at the bottom resolves a pipeline config's prompter name to an instance.
package prompter

import "github.com/lucas-reyes/ragtime-go/internal/expe"

// AnswerPrompter builds the prompt asking a model to answer a Question,
// optionally grounded by retrieved Chunks, and turns the raw completion
// into an Answer's canonical text and meta.
type AnswerPrompter interface {
	Name() string
	BuildPrompt(q expe.Question, chunks *expe.Chunks) expe.Prompt
	PostProcess(qa *expe.QA, cur *expe.Answer)
}

// FactPrompter builds the prompt asking a model to extract atomic facts from
// a validated Answer, and turns the raw completion into Facts.Items.
type FactPrompter interface {
	Name() string
	BuildPrompt(q expe.Question, answer expe.Answer) expe.Prompt
	PostProcess(qa *expe.QA, cur *expe.Facts)
}

// EvalPrompter builds the prompt asking a model to annotate a candidate
// Answer against a set of Facts, and turns the raw completion into an Eval's
// score and diagnostics.
type EvalPrompter interface {
	Name() string
	BuildPrompt(answer expe.Answer, facts expe.Facts) expe.Prompt
	PostProcess(qa *expe.QA, cur *expe.Eval)
}

// div0 divides a by b, returning 0 instead of NaN/Inf when b is 0. Every
// Eval prompter's score arithmetic goes through this, the way the original
// ragtime package's base.div0 helper does.
func div0(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
