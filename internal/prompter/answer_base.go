package prompter

import "github.com/lucas-reyes/ragtime-go/internal/expe"

// AnswerBase is the simplest Answer prompter: it sends the question as is
// and copies the model's raw text through unchanged. Grounded on the
// original ragtime package's AnsPrompterBase.
type AnswerBase struct{}

func (AnswerBase) Name() string { return "answer-base" }

func (AnswerBase) BuildPrompt(q expe.Question, chunks *expe.Chunks) expe.Prompt {
	return expe.Prompt{User: q.Text}
}

func (AnswerBase) PostProcess(qa *expe.QA, cur *expe.Answer) {
	if cur.LLMAnswer == nil {
		cur.Meta.Set("post_process_error", "no llm_answer to post-process")
		return
	}
	cur.Text = cur.LLMAnswer.Text
}
