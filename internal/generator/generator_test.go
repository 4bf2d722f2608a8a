package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
	"github.com/lucas-reyes/ragtime-go/internal/llm"
	"github.com/lucas-reyes/ragtime-go/internal/prompter"
)

type fakeProvider struct {
	name   string
	prefix string
	text   string
}

func (f *fakeProvider) Name() string                        { return f.name }
func (f *fakeProvider) SupportsModel(modelName string) bool { return true }
func (f *fakeProvider) Configure(apiKey string) error       { return nil }
func (f *fakeProvider) Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg llm.ModelConfig) (string, float64, error) {
	return f.text, 0, nil
}

func newTestRegistry(text string) *llm.Registry {
	r := llm.NewRegistry()
	r.Register(&fakeProvider{name: "test", prefix: "", text: text})
	return r
}

func TestAnswerGeneratorHappyPath(t *testing.T) {
	reg := newTestRegistry("4")
	g := &AnswerGenerator{
		Models:   []string{"test-model"},
		Registry: reg,
		Prompter: prompter.AnswerBase{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{Question: expe.Question{Text: "what is 2+2?"}}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, nil)
	require.NoError(t, err)
	require.Len(t, qa.Answers.Items, 1)
	assert.Equal(t, "4", qa.Answers.Items[0].Text)
	assert.Equal(t, "test-model", qa.Answers.Items[0].LLMAnswer.Name)
}

func TestAnswerGeneratorOnlyLLMsFiltersModels(t *testing.T) {
	reg := newTestRegistry("answer")
	g := &AnswerGenerator{
		Models:   []string{"model-a", "model-b"},
		Registry: reg,
		Prompter: prompter.AnswerBase{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{Question: expe.Question{Text: "q"}}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, []string{"model-b"})
	require.NoError(t, err)
	require.Len(t, qa.Answers.Items, 1)
	assert.Equal(t, "model-b", qa.Answers.Items[0].LLMAnswer.Name)
}

func TestAnswerGeneratorPreservesHumanEval(t *testing.T) {
	reg := newTestRegistry("new text")
	g := &AnswerGenerator{
		Models:   []string{"model-a"},
		Registry: reg,
		Prompter: prompter.AnswerBase{},
		Config:   llm.DefaultModelConfig,
	}

	human := 1.0
	qa := &expe.QA{
		Question: expe.Question{Text: "q"},
		Answers: expe.Answers{Items: []expe.Answer{{
			Text: "old text",
			Eval: &expe.Eval{Human: &human},
		}}},
	}
	qa.Answers.Items[0].LLMAnswer = &expe.LLMAnswer{Name: "model-a"}

	err := g.ProcessOne(context.Background(), qa, expe.StepLLM, false, nil)
	require.NoError(t, err)
	require.Len(t, qa.Answers.Items, 1)
	require.NotNil(t, qa.Answers.Items[0].Eval)
	require.NotNil(t, qa.Answers.Items[0].Eval.Human)
	assert.Equal(t, 1.0, *qa.Answers.Items[0].Eval.Human)
}

type brokenProvider struct{}

func (brokenProvider) Name() string                        { return "broken" }
func (brokenProvider) SupportsModel(modelName string) bool { return true }
func (brokenProvider) Configure(apiKey string) error       { return nil }
func (brokenProvider) Complete(ctx context.Context, modelName string, prompt expe.Prompt, cfg llm.ModelConfig) (string, float64, error) {
	return "", 0, errors.New("model offline")
}

func TestAnswerGeneratorRecordsMissedModels(t *testing.T) {
	reg := llm.NewRegistry()
	reg.Register(brokenProvider{})
	g := &AnswerGenerator{
		Models:   []string{"dead-model"},
		Registry: reg,
		Prompter: prompter.AnswerBase{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{Question: expe.Question{Text: "q"}}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, nil)
	require.NoError(t, err)
	assert.Empty(t, qa.Answers.Items)
	assert.Contains(t, qa.Answers.Meta["diag"], "dead-model")
}

func TestFactGeneratorSkipsWithoutHumanEval(t *testing.T) {
	reg := newTestRegistry("1. a fact")
	g := &FactGenerator{
		Model:    "test-model",
		Registry: reg,
		Prompter: prompter.Fact{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{
		Question: expe.Question{Text: "q"},
		Answers:  expe.Answers{Items: []expe.Answer{{Text: "unvalidated"}}},
	}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, nil)
	require.NoError(t, err)
	assert.Empty(t, qa.Facts.Items)
	assert.Contains(t, qa.Meta["diag"], "no human-validated answer")
}

func TestFactGeneratorRunsWithHumanValidatedAnswer(t *testing.T) {
	reg := newTestRegistry("1. Paris is the capital of France")
	g := &FactGenerator{
		Model:    "test-model",
		Registry: reg,
		Prompter: prompter.Fact{},
		Config:   llm.DefaultModelConfig,
	}

	human := 1.0
	qa := &expe.QA{
		Question: expe.Question{Text: "what is the capital of France?"},
		Answers: expe.Answers{Items: []expe.Answer{{
			Text: "Paris",
			Eval: &expe.Eval{Human: &human},
		}}},
	}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, nil)
	require.NoError(t, err)
	require.Len(t, qa.Facts.Items, 1)
}

func TestEvalGeneratorSkipsOnEmptyAnswersOrFacts(t *testing.T) {
	reg := newTestRegistry("a (1)")
	g := &EvalGenerator{
		Model:    "test-model",
		Registry: reg,
		Prompter: prompter.Eval{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{Question: expe.Question{Text: "q"}}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, nil)
	require.NoError(t, err)
	assert.Contains(t, qa.Meta["diag"], "answers or facts empty")
}

func TestEvalGeneratorScoresAnswersAgainstFacts(t *testing.T) {
	reg := newTestRegistry("a (1) b (2) d (?)")
	g := &EvalGenerator{
		Model:    "test-model",
		Registry: reg,
		Prompter: prompter.Eval{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{
		Question: expe.Question{Text: "q"},
		Facts: expe.Facts{Items: []expe.Fact{
			{Text: "1. a"}, {Text: "2. b"}, {Text: "3. c"},
		}},
		Answers: expe.Answers{Items: []expe.Answer{{Text: "a b d"}}},
	}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, nil)
	require.NoError(t, err)
	require.NotNil(t, qa.Answers.Items[0].Eval)
	require.NotNil(t, qa.Answers.Items[0].Eval.Auto)
	assert.InDelta(t, 2.0/3.0, *qa.Answers.Items[0].Eval.Auto, 1e-9)
}

func TestEvalGeneratorUnknownLLMAlwaysEligible(t *testing.T) {
	reg := newTestRegistry("a (1)")
	g := &EvalGenerator{
		Model:    "test-model",
		Registry: reg,
		Prompter: prompter.Eval{},
		Config:   llm.DefaultModelConfig,
	}

	qa := &expe.QA{
		Question: expe.Question{Text: "q"},
		Facts:    expe.Facts{Items: []expe.Fact{{Text: "1. a"}}},
		Answers:  expe.Answers{Items: []expe.Answer{{Text: "a"}}}, // no LLMAnswer: anonymous
	}
	err := g.ProcessOne(context.Background(), qa, expe.StepBeginning, false, []string{"some-other-model"})
	require.NoError(t, err)
	assert.NotNil(t, qa.Answers.Items[0].Eval)
}

type failingGenerator struct {
	failOn int
}

func (f *failingGenerator) ProcessOne(ctx context.Context, qa *expe.QA, startFrom expe.Step, missingOnly bool, onlyLLMs []string) error {
	if qa.Question.Text == fmt.Sprintf("q%d", f.failOn) {
		return errors.New("boom")
	}
	qa.Answers = expe.Answers{Items: []expe.Answer{{Text: "ok"}}}
	return nil
}

func TestDriverSnapshotsOnFailure(t *testing.T) {
	dir := t.TempDir()

	e := expe.New()
	for i := 1; i <= 5; i++ {
		e.Append(expe.QA{Question: expe.Question{Text: fmt.Sprintf("q%d", i)}})
	}

	savePath := filepath.Join(dir, "run.json")
	err := Run(context.Background(), e, &failingGenerator{failOn: 3}, RunOptions{
		SavePath: savePath,
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	found := false
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			found = true
		}
	}
	assert.True(t, found, "expected a failure snapshot to be written to %s", dir)
}

func TestDriverConcurrentFanOut(t *testing.T) {
	e := expe.New()
	for i := 0; i < 20; i++ {
		e.Append(expe.QA{Question: expe.Question{Text: fmt.Sprintf("q%d", i)}})
	}

	g := &passthroughGenerator{}
	err := Run(context.Background(), e, g, RunOptions{})
	require.NoError(t, err)

	for _, qa := range e.QAs {
		require.Len(t, qa.Answers.Items, 1)
		assert.Equal(t, "processed", qa.Answers.Items[0].Text)
	}
}

type passthroughGenerator struct{}

func (passthroughGenerator) ProcessOne(ctx context.Context, qa *expe.QA, startFrom expe.Step, missingOnly bool, onlyLLMs []string) error {
	qa.Answers = expe.Answers{Items: []expe.Answer{{Text: "processed"}}}
	return nil
}
