package prompter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

func TestAnswerBasePassthrough(t *testing.T) {
	p := AnswerBase{}
	prompt := p.BuildPrompt(expe.Question{Text: "what is 2+2?"}, nil)
	assert.Equal(t, "what is 2+2?", prompt.User)

	cur := &expe.Answer{}
	cur.SetLLMAnswer(&expe.LLMAnswer{Text: "4"})
	p.PostProcess(&expe.QA{}, cur)
	assert.Equal(t, "4", cur.Text)
}

func TestAnswerRetrievalStrictJSON(t *testing.T) {
	p := AnswerRetrieval{}
	qa := &expe.QA{
		Chunks: expe.Chunks{Items: []expe.Chunk{
			{Text: "some text", Meta: expe.Meta{"display_name": "Manual.pdf", "page_number": 3}},
		}},
	}
	cur := &expe.Answer{}
	cur.SetLLMAnswer(&expe.LLMAnswer{Text: `{"q_ok": 1, "chunks_ok": 1, "answer": "See Manual.pdf page 3 for details."}`})
	p.PostProcess(qa, cur)

	assert.Equal(t, true, cur.Meta["json_ok"])
	assert.Equal(t, "See Manual.pdf page 3 for details.", cur.Text)
	assert.Contains(t, cur.Meta["docs_in_ans"], "Manual.pdf")
}

func TestAnswerRetrievalRepairsWrappedJSON(t *testing.T) {
	p := AnswerRetrieval{}
	qa := &expe.QA{
		Chunks: expe.Chunks{Items: []expe.Chunk{
			{Text: "chunk", Meta: expe.Meta{"display_name": "Doc A", "page_number": 2}},
		}},
	}
	cur := &expe.Answer{}
	cur.SetLLMAnswer(&expe.LLMAnswer{
		Text: `prefix {"q_ok":1,"chunks_ok":1,"answer":"Yes, per Doc A p.2"} trailing`,
	})
	p.PostProcess(qa, cur)

	assert.Equal(t, true, cur.Meta["json_ok"])
	assert.Equal(t, "Yes, per Doc A p.2", cur.Text)
	assert.Contains(t, cur.Meta["docs_and_page_in_ans"], "Doc A p.2")
}

func TestAnswerRetrievalMalformedJSONFallsBackToRaw(t *testing.T) {
	p := AnswerRetrieval{}
	cur := &expe.Answer{}
	cur.SetLLMAnswer(&expe.LLMAnswer{Text: "not json at all"})
	p.PostProcess(&expe.QA{}, cur)

	assert.Equal(t, false, cur.Meta["json_ok"])
	assert.Equal(t, "not json at all", cur.Text)
}

func TestFactPostProcessNumbersLines(t *testing.T) {
	p := Fact{}
	cur := &expe.Facts{}
	cur.SetLLMAnswer(&expe.LLMAnswer{Text: "The sky is blue.\n\n2. Water boils at 100C.\n"})
	p.PostProcess(&expe.QA{}, cur)

	require.Len(t, cur.Items, 2)
	assert.Equal(t, "1. The sky is blue.", cur.Items[0].Text)
	assert.Equal(t, "2. Water boils at 100C.", cur.Items[1].Text)
}

// TestEvalScoringWorkedExample reproduces a worked precision/recall example:
// facts ["1. a","2. b","3. c"]; annotated answer "a (1) b (2) d (?)";
// expected precision=2/3, recall=2/3, auto=2/3, missing=[3], extra=1.
func TestEvalScoringWorkedExample(t *testing.T) {
	p := Eval{}
	qa := &expe.QA{
		Facts: expe.Facts{Items: []expe.Fact{
			{Text: "1. a"}, {Text: "2. b"}, {Text: "3. c"},
		}},
	}
	cur := &expe.Eval{}
	cur.SetLLMAnswer(&expe.LLMAnswer{Text: "a (1) b (2) d (?)"})
	p.PostProcess(qa, cur)

	assert.InDelta(t, 2.0/3.0, cur.Meta["precision"], 1e-9)
	assert.InDelta(t, 2.0/3.0, cur.Meta["recall"], 1e-9)
	require.NotNil(t, cur.Auto)
	assert.InDelta(t, 2.0/3.0, *cur.Auto, 1e-9)
	assert.Equal(t, 1, cur.Meta["extra"])
	assert.Equal(t, []int{3}, cur.Meta["missing"])
}

func TestEvalScoringZeroOverZeroIsZero(t *testing.T) {
	p := Eval{}
	qa := &expe.QA{}
	cur := &expe.Eval{}
	cur.SetLLMAnswer(&expe.LLMAnswer{Text: "[]"})
	p.PostProcess(qa, cur)

	assert.Equal(t, float64(0), cur.Meta["precision"])
	assert.Equal(t, float64(0), cur.Meta["recall"])
	require.NotNil(t, cur.Auto)
	assert.Equal(t, float64(0), *cur.Auto)
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "fr", detectLanguage("Le chat est sur la table et il est noir dans la maison"))
	assert.Equal(t, "en", detectLanguage("The cat is on the table and it is black in the house"))
}

func TestRegistryResolvesPrompters(t *testing.T) {
	_, err := ResolveAnswerPrompter("retrieval")
	require.NoError(t, err)
	_, err = ResolveFactPrompter("fact-fr")
	require.NoError(t, err)
	_, err = ResolveEvalPrompter("unknown")
	assert.Error(t, err)
}
