package prompter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// Fact asks a model for a minimal numbered list of atomic, self-contained
// facts extracted from a validated Answer, then splits the raw text back
// into Fact items, enforcing the "N. " numbering the Eval prompter later
// parses. Grounded on the original ragtime package's FactPrompterJazz.
type Fact struct{}

func (Fact) Name() string { return "fact" }

const factSystemPrompt = `Generate short, simple numbered sentences that describe this PARAGRAPH.
Generate as few sentences as possible.
Only generate sentences that help answer the QUESTION.
Each sentence must contain only one piece of information.
Sentences must not reference a document, a paragraph, a source, or a page.
Do not generate any redundant sentence.`

func (Fact) BuildPrompt(q expe.Question, answer expe.Answer) expe.Prompt {
	return expe.Prompt{
		System: factSystemPrompt,
		User:   "PARAGRAPH: " + answer.Text + "\nQUESTION: " + q.Text,
	}
}

// leadingNumber matches a 1- or 2-digit number followed by a period at the
// start of a line, e.g. "3." or "12.".
var leadingNumber = regexp.MustCompile(`^\d{1,2}\.`)

func (Fact) PostProcess(qa *expe.QA, cur *expe.Facts) {
	if cur.LLMAnswer == nil {
		cur.Meta.Set("post_process_error", "no llm_answer to post-process")
		return
	}
	cur.Items = splitIntoFacts(cur.LLMAnswer.Text)
}

func splitIntoFacts(raw string) []expe.Fact {
	lines := strings.Split(raw, "\n")
	var facts []expe.Fact
	i := 1
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if len(t) <= 2 {
			continue
		}
		if !leadingNumber.MatchString(t) {
			t = strconv.Itoa(i) + ". " + t
		}
		facts = append(facts, expe.Fact{Text: t})
		i++
	}
	return facts
}

// FactFR is the French-language variant of Fact, matching the original
// ragtime package's default prompt wording.
type FactFR struct{}

func (FactFR) Name() string { return "fact-fr" }

const factSystemPromptFR = `Génère des phrases numérotées courtes et simples qui décrivent ce PARAGRAPHE.
Génère le moins de phrases possibles.
Ne génère que des phrases qui permettent de répondre à la QUESTION.
Chaque phrase ne doit contenir qu'une seule information.
Les phrases ne doivent pas contenir de référence à un document, un paragraphe, une source ou une page.
Ne génère aucune phrase redondante.`

func (FactFR) BuildPrompt(q expe.Question, answer expe.Answer) expe.Prompt {
	return expe.Prompt{
		System: factSystemPromptFR,
		User:   "PARAGRAPHE: " + answer.Text + "\nQUESTION: " + q.Text,
	}
}

func (FactFR) PostProcess(qa *expe.QA, cur *expe.Facts) {
	Fact{}.PostProcess(qa, cur)
}
