package prompter

import "fmt"

// AnswerPrompters maps a pipeline config's prompter name to an AnswerPrompter
// instance. Names are the ones a "generate.answers.prompter" key in a
// pipeline config selects.
var AnswerPrompters = map[string]func() AnswerPrompter{
	"base":      func() AnswerPrompter { return AnswerBase{} },
	"retrieval": func() AnswerPrompter { return AnswerRetrieval{} },
}

// FactPrompters maps a pipeline config's prompter name to a FactPrompter.
var FactPrompters = map[string]func() FactPrompter{
	"fact":    func() FactPrompter { return Fact{} },
	"fact-fr": func() FactPrompter { return FactFR{} },
}

// EvalPrompters maps a pipeline config's prompter name to an EvalPrompter.
var EvalPrompters = map[string]func() EvalPrompter{
	"eval":    func() EvalPrompter { return Eval{} },
	"eval-fr": func() EvalPrompter { return EvalFR{} },
}

// ResolveAnswerPrompter looks up name in AnswerPrompters.
func ResolveAnswerPrompter(name string) (AnswerPrompter, error) {
	ctor, ok := AnswerPrompters[name]
	if !ok {
		return nil, fmt.Errorf("prompter: unknown answer prompter %q", name)
	}
	return ctor(), nil
}

// ResolveFactPrompter looks up name in FactPrompters.
func ResolveFactPrompter(name string) (FactPrompter, error) {
	ctor, ok := FactPrompters[name]
	if !ok {
		return nil, fmt.Errorf("prompter: unknown fact prompter %q", name)
	}
	return ctor(), nil
}

// ResolveEvalPrompter looks up name in EvalPrompters.
func ResolveEvalPrompter(name string) (EvalPrompter, error) {
	ctor, ok := EvalPrompters[name]
	if !ok {
		return nil, fmt.Errorf("prompter: unknown eval prompter %q", name)
	}
	return ctor(), nil
}
