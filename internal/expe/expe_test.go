package expe

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func humanScore(v float64) *float64 { return &v }

func sampleExpe() *Expe {
	e := New()
	e.Append(QA{
		Question: Question{Text: "2+2=?"},
		Answers: Answers{Items: []Answer{
			{Text: "4", withLLMAnswer: withLLMAnswer{LLMAnswer: &LLMAnswer{Text: "4", Name: "gpt-4o"}}},
		}},
	})
	return e
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	e := sampleExpe()

	out, err := Save(e, filepath.Join(dir, "questions.json"), false)
	require.NoError(t, err)

	loaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, e.Len(), loaded.Len())
	assert.Equal(t, "2+2=?", loaded.QAs[0].Question.Text)
	assert.Equal(t, "4", loaded.QAs[0].Answers.Items[0].Text)
}

func TestLoadToleratesBareArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bare.json")
	data, err := json.Marshal([]QA{{Question: Question{Text: "hi"}}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	e, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, e.Len())
	assert.Equal(t, "hi", e.QAs[0].Question.Text)
}

func TestEmptyExpeRejectsSave(t *testing.T) {
	dir := t.TempDir()
	_, err := Save(New(), filepath.Join(dir, "empty.json"), false)
	assert.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "no file should be written for an empty Expe")
}

func TestSaveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	e := sampleExpe()
	out, err := Save(e, filepath.Join(dir, "q.json"), false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))
	_, err = Save(e, filepath.Join(dir, "q.json"), false)
	assert.Error(t, err)
}

func TestStatsSuffixIdempotent(t *testing.T) {
	s := Stats{Questions: 1, Answers: 1, Models: 1}
	at := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

	once := WithStatsSuffix("questions.json", s, at)
	twice := WithStatsSuffix(once, s, at)

	assert.Equal(t, once, twice, "re-suffixing an already-suffixed name is a no-op")
	assert.Contains(t, once, "1Q_0C_0F_1M_1A_0HE_0AE")
}

func TestStatsCounts(t *testing.T) {
	human := humanScore(1)
	e := New()
	e.Append(QA{
		Question: Question{Text: "q1"},
		Chunks:   Chunks{Items: []Chunk{{Text: "c1"}}},
		Facts:    Facts{Items: []Fact{{Text: "1. fact"}}},
		Answers: Answers{Items: []Answer{
			{Text: "a1", Eval: &Eval{Human: human, Auto: humanScore(0.5)}},
		}},
	})
	s := e.Stats()
	assert.Equal(t, Stats{Questions: 1, Chunks: 1, Facts: 1, Models: 1, Answers: 1, HumanEval: 1, AutoEval: 1}, s)
}

func TestFindAnswerByLLM(t *testing.T) {
	qa := QA{Answers: Answers{Items: []Answer{
		{withLLMAnswer: withLLMAnswer{LLMAnswer: &LLMAnswer{Name: "gpt-4o", FullName: "openai/gpt-4o"}}},
	}}}
	assert.NotNil(t, qa.FindAnswerByLLM("gpt-4o"))
	assert.NotNil(t, qa.FindAnswerByLLM("openai/gpt-4o"))
	assert.Nil(t, qa.FindAnswerByLLM("claude-3"))
}

func TestStepReuse(t *testing.T) {
	// no prior output: always recompute
	assert.False(t, Reuse(false, StepPrompt, StepBeginning, false))
	assert.False(t, Reuse(false, StepPrompt, StepBeginning, true))

	// missing_only forces reuse whenever a prior value exists
	assert.True(t, Reuse(true, StepPrompt, StepBeginning, true))

	// start_from <= step and not missing_only => recompute
	assert.False(t, Reuse(true, StepPrompt, StepBeginning, false))
	assert.False(t, Reuse(true, StepPrompt, StepPrompt, false))

	// start_from after this step => reuse
	assert.True(t, Reuse(true, StepPrompt, StepLLM, false))
}
