package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

func sampleExpe() *expe.Expe {
	human := 1.0
	auto := 0.667
	e := expe.New()
	e.Append(expe.QA{
		Question: expe.Question{Text: "what is the capital of France?"},
		Answers: expe.Answers{Items: []expe.Answer{{
			Text: "Paris",
			Eval: &expe.Eval{Human: &human, Auto: &auto},
		}}},
	})
	e.QAs[0].Answers.Items[0].LLMAnswer = &expe.LLMAnswer{Name: "gpt-4o"}
	return e
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(sampleExpe(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "what is the capital of France?")
	assert.Contains(t, string(data), "gpt-4o")
	assert.Contains(t, string(data), "1")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteHTML(sampleExpe(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table")
	assert.Contains(t, string(data), "Paris")
}

func TestTrimTrailingZeros(t *testing.T) {
	assert.Equal(t, "1", trimTrailingZeros(1.0))
	assert.Equal(t, "0.667", trimTrailingZeros(0.666667))
	assert.Equal(t, "0.5", trimTrailingZeros(0.5))
}
