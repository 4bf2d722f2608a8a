package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanQuestionFilesFindsJSONSortedAndHonorsIgnore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip-me.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ignoreFileName), []byte("skip-me.json\n"), 0o644))

	matches, err := ScanQuestionFiles(dir)
	require.NoError(t, err)

	var names []string
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	assert.Equal(t, []string{"a.json", "b.json"}, names)
}

func TestResolveInputFilePrefersExplicitInputFile(t *testing.T) {
	cfg := &Config{InputFile: "explicit.json", StartingFolder: "somewhere"}
	got, err := cfg.resolveInputFile()
	require.NoError(t, err)
	assert.Equal(t, "explicit.json", got)
}

func TestResolveInputFileScansStartingFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "questions.json"), []byte("[]"), 0o644))

	cfg := &Config{StartingFolder: dir}
	got, err := cfg.resolveInputFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "questions.json"), got)
}

func TestResolveInputFileErrorsWithNeither(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.resolveInputFile()
	assert.Error(t, err)
}
