// Package pipeline assembles and runs the declarative answers→facts→evals
// workflow described by a YAML configuration file.
package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
)

// StageConfig is one `generate.<stage>` block.
type StageConfig struct {
	LLMs         []string `yaml:"llms"`
	Prompter     string   `yaml:"prompter"`
	OnlyLLMs     []string `yaml:"only_llms,omitempty"`
	SaveEvery    int      `yaml:"save_every,omitempty"`
	Concurrency  int      `yaml:"concurrency,omitempty"`
	StartFrom    string   `yaml:"start_from,omitempty"`
	MissingOnly  bool     `yaml:"missing_only,omitempty"`
	OutputFolder string   `yaml:"output_folder,omitempty"`
	Export       []string `yaml:"export,omitempty"`
}

// RetrieverConfig selects and configures a Retriever backend by name.
type RetrieverConfig struct {
	Kind string `yaml:"kind"` // "web" or "postgres"

	URLs     []string `yaml:"urls,omitempty"`
	Selector string   `yaml:"selector,omitempty"`

	DSN         string `yaml:"dsn,omitempty"`
	Table       string `yaml:"table,omitempty"`
	TextColumn  string `yaml:"text_column,omitempty"`
	TitleColumn string `yaml:"title_column,omitempty"`
}

// GenerateConfig holds the three possible stage blocks, keyed by name.
type GenerateConfig struct {
	Answers *StageConfig `yaml:"answers,omitempty"`
	Facts   *StageConfig `yaml:"facts,omitempty"`
	Evals   *StageConfig `yaml:"evals,omitempty"`
}

// Config is the top-level shape of a pipeline YAML file.
type Config struct {
	InputFile      string           `yaml:"input_file"`
	StartingFolder string           `yaml:"starting_folder"`
	Retriever      *RetrieverConfig `yaml:"retriever,omitempty"`
	Generate       GenerateConfig   `yaml:"generate"`
	StartFrom      string           `yaml:"start_from,omitempty"`
	StopAfter      string           `yaml:"stop_after,omitempty"`
}

// stageOrder is the fixed sequence the assembler selects a sub-range from.
var stageOrder = []string{"answers", "facts", "evals"}

// LoadConfig reads and parses a pipeline YAML file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("pipeline: parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// selectedStages returns the stageOrder sub-range between StartFrom and
// StopAfter (inclusive on both ends), defaulting to the whole range when
// either is empty.
func (c *Config) selectedStages() ([]string, error) {
	start, end := 0, len(stageOrder)-1
	if c.StartFrom != "" {
		i, err := stageIndex(c.StartFrom)
		if err != nil {
			return nil, err
		}
		start = i
	}
	if c.StopAfter != "" {
		i, err := stageIndex(c.StopAfter)
		if err != nil {
			return nil, err
		}
		end = i
	}
	if start > end {
		return nil, fmt.Errorf("pipeline: start_from %q comes after stop_after %q", c.StartFrom, c.StopAfter)
	}
	return stageOrder[start : end+1], nil
}

func stageIndex(name string) (int, error) {
	for i, s := range stageOrder {
		if s == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("pipeline: unknown stage %q", name)
}

// parseStep maps a pipeline config's start_from string to an expe.Step,
// defaulting to expe.StepBeginning when unset.
func parseStep(s string) (expe.Step, error) {
	switch s {
	case "", "beginning":
		return expe.StepBeginning, nil
	case "chunks":
		return expe.StepChunks, nil
	case "prompt":
		return expe.StepPrompt, nil
	case "llm":
		return expe.StepLLM, nil
	case "post_process":
		return expe.StepPostProcess, nil
	default:
		return expe.StepBeginning, fmt.Errorf("pipeline: unknown step %q", s)
	}
}
