package prompter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// Eval asks a model to reproduce a candidate Answer with every supported
// passage annotated by the fact number it matches, using "(?)" for
// unsupported passages, then scores the annotated answer against the true
// facts. Grounded on the original ragtime package's EvalPrompterFR, with the
// precision/recall/auto formulas spelled out in this project's spec.
type Eval struct{}

func (Eval) Name() string { return "eval" }

const evalSystemPrompt = `You must compare a numbered list of FACTS with an ANSWER.
Reproduce the ANSWER exactly, inserting in the text the number of the FACT that exactly matches the passage or sentence.
If a sentence matches several FACTS, list them in parentheses separated by commas.
Do not insert a FACT number if it contradicts the passage or sentence.
If a passage or sentence in the ANSWER matches no FACT, mark it with a question mark in parentheses (?),
unless that passage merely refers to a location in the document, in which case mark nothing.`

func (Eval) BuildPrompt(answer expe.Answer, facts expe.Facts) expe.Prompt {
	return expe.Prompt{
		System: evalSystemPrompt,
		User:   fmt.Sprintf("-- FACTS --\n%s\n\n-- ANSWER --\n%s", factsAsNumberedList(facts), answer.Text),
	}
}

func factsAsNumberedList(facts expe.Facts) string {
	lines := make([]string, 0, len(facts.Items))
	for i, f := range facts.Items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, f.Text))
	}
	return strings.Join(lines, "\n")
}

var (
	citedGroup  = regexp.MustCompile(`\([\d,\s]+\)`)
	extraMarker = regexp.MustCompile(`\(\?\)`)
	digitsOnly  = regexp.MustCompile(`\d+`)
)

func (Eval) PostProcess(qa *expe.QA, cur *expe.Eval) {
	if cur.LLMAnswer == nil {
		cur.Meta.Set("post_process_error", "no llm_answer to post-process")
		return
	}

	answer := cur.LLMAnswer.Text
	if answer == "[]" {
		answer = ""
	}
	answer = strings.ReplaceAll(answer, "(FACT ", "(")

	cited := citedFactIndices(answer)
	trueFacts := trueFactIndices(qa.Facts.Items)
	tp := intersect(cited, trueFacts)
	missing := difference(trueFacts, tp)
	extra := len(extraMarker.FindAllString(answer, -1))

	precision := div0(float64(len(tp)), float64(len(cited)+extra))
	recall := div0(float64(len(tp)), float64(len(trueFacts)))
	auto := div0(2*precision*recall, precision+recall)

	missingSorted := sortedInts(missing)

	cur.Meta.Set("precision", precision)
	cur.Meta.Set("recall", recall)
	cur.Meta.Set("extra", extra)
	cur.Meta.Set("missing", missingSorted)
	cur.Meta.Set("facts_in_ans", sortedInts(cited))
	cur.Auto = &auto
	cur.Text = answer
}

// citedFactIndices extracts every integer found inside a parenthesized
// group like "(1, 2)" or "(3)" in the annotated answer.
func citedFactIndices(answer string) map[int]bool {
	result := map[int]bool{}
	for _, group := range citedGroup.FindAllString(answer, -1) {
		for _, n := range digitsOnly.FindAllString(group, -1) {
			v, err := strconv.Atoi(n)
			if err == nil {
				result[v] = true
			}
		}
	}
	return result
}

// trueFactIndices reads the leading "N. " number off each Fact's text.
func trueFactIndices(facts []expe.Fact) map[int]bool {
	result := map[int]bool{}
	for _, f := range facts {
		m := leadingNumber.FindString(strings.TrimSpace(f.Text))
		if m == "" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSuffix(m, "."))
		if err == nil {
			result[v] = true
		}
	}
	return result
}

func intersect(a, b map[int]bool) map[int]bool {
	result := map[int]bool{}
	for k := range a {
		if b[k] {
			result[k] = true
		}
	}
	return result
}

func difference(a, b map[int]bool) map[int]bool {
	result := map[int]bool{}
	for k := range a {
		if !b[k] {
			result[k] = true
		}
	}
	return result
}

func sortedInts(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// EvalFR is the French-language variant of Eval, matching the original
// ragtime package's default prompt wording. Scoring logic is identical.
type EvalFR struct{}

func (EvalFR) Name() string { return "eval-fr" }

const evalSystemPromptFR = `Tu dois comparer une liste numérotée de FAITS avec une REPONSE.
Tu dois reprendre exactement la REPONSE en insérant dans le texte le numéro du FAIT auquel correspond exactement le passage ou la phrase.
Si la phrase correspond à plusieurs FAITS, indique-les entre parenthèses.
Il ne faut pas insérer le FAIT s'il est en contradiction avec le passage ou la phrase.
Si un passage ou une phrase dans la REPONSE ne correspond à aucun FAIT il faut mettre un point d'interrogation entre parenthèses (?)
sauf si ce passage fait référence à un emplacement dans le document, auquel cas il ne faut rien indiquer.`

func (EvalFR) BuildPrompt(answer expe.Answer, facts expe.Facts) expe.Prompt {
	return expe.Prompt{
		System: evalSystemPromptFR,
		User:   fmt.Sprintf("-- FAITS --\n%s\n\n-- REPONSE --\n%s", factsAsNumberedList(facts), answer.Text),
	}
}

func (EvalFR) PostProcess(qa *expe.QA, cur *expe.Eval) {
	Eval{}.PostProcess(qa, cur)
}
