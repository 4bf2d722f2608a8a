package prompter

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// AnswerRetrieval embeds retrieved Chunks in its prompt and asks the model
// for a JSON-structured answer, then recovers the answer text (with a
// single repair pass if the JSON is malformed) and annotates which source
// documents it actually cites. Grounded on the original ragtime package's
// AnsPrompterWithRetrieverFR.
type AnswerRetrieval struct{}

const (
	fldQuestOK  = "q_ok"
	fldChunksOK = "chunks_ok"
	fldAnswer   = "answer"
)

func (AnswerRetrieval) Name() string { return "answer-retrieval" }

func (AnswerRetrieval) BuildPrompt(q expe.Question, chunks *expe.Chunks) expe.Prompt {
	system := fmt.Sprintf(`You are an expert who must answer questions using the paragraphs provided.
Your answer must be in the following JSON format:
- "%s": 1 if the question makes sense, 0 otherwise
- "%s": 1 if the provided paragraphs are sufficient to answer, 0 otherwise
- "%s": the answer, citing the documents' titles and pages

Paragraphs are presented as:
- Title (Page X)
Content`, fldQuestOK, fldChunksOK, fldAnswer)

	var parts []string
	if chunks != nil {
		for _, c := range chunks.Items {
			parts = append(parts, fmt.Sprintf("- %s (p. %d)\n%s", c.DisplayName(), c.PageNumber(), c.Text))
		}
	}
	chunksStr := strings.Join(parts, "\n\n")

	return expe.Prompt{
		System: system,
		User:   fmt.Sprintf("%s\n\nQuestion: %s", chunksStr, q.Text),
	}
}

type jsonAnswer struct {
	QuestOK  *float64 `json:"q_ok"`
	ChunksOK *float64 `json:"chunks_ok"`
	Answer   string   `json:"answer"`
}

func (AnswerRetrieval) PostProcess(qa *expe.QA, cur *expe.Answer) {
	if cur.LLMAnswer == nil {
		cur.Meta.Set("post_process_error", "no llm_answer to post-process")
		return
	}
	raw := cur.LLMAnswer.Text

	parsed, jsonOK := strictParseJSON(raw)
	if !jsonOK {
		parsed, jsonOK = repairAndParseJSON(raw)
	}

	cur.Meta.Set("json_ok", jsonOK)
	if jsonOK {
		cur.Meta.Set("question_ok", boolFromScore(parsed.QuestOK))
		cur.Meta.Set("chunks_ok", boolFromScore(parsed.ChunksOK))
		cur.Text = parsed.Answer
	} else {
		cur.Meta.Set("question_ok", nil)
		cur.Meta.Set("chunks_ok", nil)
		cur.Text = raw
	}

	cur.Meta.Set("lang", detectLanguage(cur.Text))

	docsInAns, docsAndPageInAns := matchCitedDocs(raw, qa.Chunks.Items)
	cur.Meta.Set("docs_in_ans", docsInAns)
	cur.Meta.Set("docs_and_page_in_ans", docsAndPageInAns)
}

func boolFromScore(v *float64) bool {
	return v != nil && *v != 0
}

func strictParseJSON(raw string) (jsonAnswer, bool) {
	var j jsonAnswer
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		return jsonAnswer{}, false
	}
	return j, true
}

// repairAndParseJSON extracts the {...} substring, strips newlines and
// backslashes, and rewrites stray inner quotes around the answer field's
// value before trying again. Mirrors the original prompter's single repair
// pass rather than attempting full JSON recovery.
func repairAndParseJSON(raw string) (jsonAnswer, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return jsonAnswer{}, false
	}
	text := raw[start : end+1]
	text = strings.ReplaceAll(text, "\n", "")
	text = strings.ReplaceAll(text, "\\", "")
	text = strings.ReplaceAll(text, "   ", " ")
	text = strings.ReplaceAll(text, "'}", "\"}")

	key := fmt.Sprintf("\"%s\"", fldAnswer)
	p1 := strings.Index(text, key)
	if p1 < 0 {
		return jsonAnswer{}, false
	}
	p1 += len(key) + len(`: "`)
	p2 := strings.LastIndex(text, "\"")
	if p2 <= p1 || p1 > len(text) {
		return jsonAnswer{}, false
	}
	repaired := text[:p1] + strings.ReplaceAll(text[p1:p2], "\"", "'") + text[p2:]

	var j jsonAnswer
	if err := json.Unmarshal([]byte(repaired), &j); err != nil {
		return jsonAnswer{}, false
	}
	return j, true
}

// normalizeTitle lowercases, strips accents and punctuation, and unifies
// common page references so chunk titles and in-answer citations can be
// compared by simple substring containment.
func normalizeTitle(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	replacements := []struct{ old, new string }{
		{"on page", "p"}, {"on pages", "p"}, {"page", "p"},
		{" ", ""}, {".pdf", ""}, {".pptx", ""}, {".", ""},
		{"'", ""}, {"\"", ""}, {"(", ""}, {")", ""}, {",", ""}, {"-", ""},
	}
	for _, r := range replacements {
		folded = strings.ReplaceAll(folded, r.old, r.new)
	}
	return folded
}

func matchCitedDocs(answerRaw string, chunks []expe.Chunk) (docsInAns, docsAndPageInAns []string) {
	ansFormatted := normalizeTitle(answerRaw)

	seenTitle := map[string]bool{}
	seenTitlePage := map[string]bool{}
	for _, c := range chunks {
		title := c.DisplayName()
		if title == "" {
			continue
		}
		if !seenTitle[title] && strings.Contains(ansFormatted, normalizeTitle(title)) {
			seenTitle[title] = true
			docsInAns = append(docsInAns, title)
		}
		titlePage := fmt.Sprintf("%s p.%d", title, c.PageNumber())
		if !seenTitlePage[titlePage] && strings.Contains(ansFormatted, normalizeTitle(titlePage)) {
			seenTitlePage[titlePage] = true
			docsAndPageInAns = append(docsAndPageInAns, titlePage)
		}
	}
	return docsInAns, docsAndPageInAns
}
