package expe

// FindAnswerByLLM returns the Answer in qa.Answers whose producing model's
// short or full name matches name, or nil if none exists yet. Identity
// within a QA is by producing-model name.
func (qa *QA) FindAnswerByLLM(name string) *Answer {
	for i := range qa.Answers.Items {
		a := &qa.Answers.Items[i]
		if a.LLMAnswer != nil && (a.LLMAnswer.Name == name || a.LLMAnswer.FullName == name) {
			return a
		}
	}
	return nil
}

// FirstHumanValidated returns the first Answer with eval.human == 1, or nil.
func (qa *QA) FirstHumanValidated() *Answer {
	for i := range qa.Answers.Items {
		a := &qa.Answers.Items[i]
		if a.Eval != nil && a.Eval.Human != nil && *a.Eval.Human == 1 {
			return a
		}
	}
	return nil
}

// HumanScore returns the eval's human score, or nil if unset.
func (e *Eval) HumanScore() *float64 {
	if e == nil {
		return nil
	}
	return e.Human
}

// Set stores a diagnostic key/value, creating the map if needed.
func (m *Meta) Set(key string, value interface{}) {
	if *m == nil {
		*m = Meta{}
	}
	(*m)[key] = value
}

// EnsureEval returns a's Eval, allocating an empty one if absent.
func (a *Answer) EnsureEval() *Eval {
	if a.Eval == nil {
		a.Eval = &Eval{}
	}
	return a.Eval
}

// ModelName returns the short name the Answer was produced with, or "" if
// the Answer has no LLMAnswer (an anonymous/manually-entered Answer).
func (a *Answer) ModelName() string {
	if a.LLMAnswer == nil {
		return ""
	}
	return a.LLMAnswer.Name
}
