package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gitignore "github.com/sabhiram/go-gitignore"
)

// ignoreFileName is the gitignore-style file a starting_folder scan honors.
const ignoreFileName = ".ragtimeignore"

// ScanQuestionFiles walks dir for *.json question files, skipping anything
// matched by a ".ragtimeignore" file at dir's root (gitignore syntax via
// github.com/sabhiram/go-gitignore), and returns the matches in sorted
// order for deterministic pipeline input selection.
func ScanQuestionFiles(dir string) ([]string, error) {
	var matcher *gitignore.GitIgnore
	if ignorePath := filepath.Join(dir, ignoreFileName); fileExists(ignorePath) {
		m, err := gitignore.CompileIgnoreFile(ignorePath)
		if err != nil {
			return nil, fmt.Errorf("pipeline: parsing %s: %w", ignorePath, err)
		}
		matcher = m
	}

	var matches []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		matches = append(matches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: scanning %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// resolveInputFile returns cfg.InputFile if set, otherwise the first
// question file found by scanning cfg.StartingFolder.
func (c *Config) resolveInputFile() (string, error) {
	if c.InputFile != "" {
		return c.InputFile, nil
	}
	if c.StartingFolder == "" {
		return "", fmt.Errorf("pipeline: neither input_file nor starting_folder is configured")
	}
	matches, err := ScanQuestionFiles(c.StartingFolder)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("pipeline: no question files found under %s", c.StartingFolder)
	}
	return matches[0], nil
}
