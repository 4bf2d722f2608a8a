package expe

// LLMAnswerHolder is implemented by every entity that carries a single
// LLMAnswer: Answer, Facts, Eval. The LLM driver's step machine is written
// once against this interface instead of being copy-pasted per stage.
type LLMAnswerHolder interface {
	GetLLMAnswer() *LLMAnswer
	SetLLMAnswer(*LLMAnswer)
}

func (a *Answer) GetLLMAnswer() *LLMAnswer  { return a.LLMAnswer }
func (a *Answer) SetLLMAnswer(l *LLMAnswer) { a.LLMAnswer = l }

func (f *Facts) GetLLMAnswer() *LLMAnswer  { return f.LLMAnswer }
func (f *Facts) SetLLMAnswer(l *LLMAnswer) { f.LLMAnswer = l }

func (v *Eval) GetLLMAnswer() *LLMAnswer  { return v.LLMAnswer }
func (v *Eval) SetLLMAnswer(l *LLMAnswer) { v.LLMAnswer = l }

// ReuseOrRecompute applies Reuse's decision generically: when the prior
// step's output should be carried forward, prior is returned unchanged;
// otherwise recompute is called to produce a fresh value. The LLM driver's
// Generate uses it for the prompt step; the other steps call Reuse directly.
func ReuseOrRecompute[T any](hasPrior bool, step, startFrom Step, missingOnly bool, prior T, recompute func() T) T {
	if Reuse(hasPrior, step, startFrom, missingOnly) {
		return prior
	}
	return recompute()
}
