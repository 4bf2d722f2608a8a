package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lucas-reyes/ragtime-go/internal/expe"
	"github.com/lucas-reyes/ragtime-go/internal/export"
	"github.com/lucas-reyes/ragtime-go/internal/generator"
	"github.com/lucas-reyes/ragtime-go/internal/llm"
	"github.com/lucas-reyes/ragtime-go/internal/prompter"
	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// RunResult is what one Assemble+Run call produces: the final Expe and the
// canonical JSON path each selected stage wrote, keyed by stage name, so a
// caller (the cmd package's "run" command) can report what happened without re-deriving
// it from disk.
type RunResult struct {
	Expe        *expe.Expe
	StagePaths  map[string]string // stage name -> canonical JSON path written
	ExportPaths map[string][]string
}

// Assemble runs the pipeline configured by cfg: load the input
// Expe, run every selected stage in order, feeding each stage's canonical
// JSON output path forward as the next stage's input, and render any
// requested report exports from the in-memory Expe after each stage.
func Assemble(ctx context.Context, cfg *Config, reg *llm.Registry) (*RunResult, error) {
	stages, err := cfg.selectedStages()
	if err != nil {
		return nil, err
	}

	inputPath, err := cfg.resolveInputFile()
	if err != nil {
		return nil, err
	}

	e, err := expe.Load(inputPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: loading %s: %w", inputPath, err)
	}

	result := &RunResult{
		Expe:        e,
		StagePaths:  map[string]string{},
		ExportPaths: map[string][]string{},
	}

	for _, stage := range stages {
		sc := cfg.stageConfig(stage)
		if sc == nil {
			continue
		}

		gen, err := buildGenerator(stage, sc, reg, cfg.Retriever)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %s: %w", stage, err)
		}

		if sc.Concurrency > 0 {
			for _, m := range sc.LLMs {
				reg.SetModelConcurrency(m, sc.Concurrency)
			}
		}

		startFrom, err := parseStep(sc.StartFrom)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %s: %w", stage, err)
		}

		outFolder := sc.OutputFolder
		if outFolder == "" {
			outFolder = cfg.StartingFolder
		}
		if outFolder == "" {
			outFolder = filepath.Dir(inputPath)
		}
		savePath := filepath.Join(outFolder, filepath.Base(inputPath))

		ragconfig.VerboseLog("pipeline: running stage %s (%d QAs)", stage, e.Len())
		if err := generator.Run(ctx, e, gen, generator.RunOptions{
			StartFrom:      startFrom,
			MissingOnly:    sc.MissingOnly,
			OnlyLLMs:       sc.OnlyLLMs,
			SaveEvery:      sc.SaveEvery,
			SavePath:       savePath,
			AllowOverwrite: true,
			ShowProgress:   true,
		}); err != nil {
			return nil, fmt.Errorf("pipeline: stage %s: %w", stage, err)
		}

		written, err := expe.Save(e, savePath, true)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %s: saving canonical output: %w", stage, err)
		}
		result.StagePaths[stage] = written
		inputPath = written
		ragconfig.VerboseLog("pipeline: stage %s wrote %s", stage, written)

		for _, paths := range renderExports(e, sc.Export, written) {
			result.ExportPaths[stage] = append(result.ExportPaths[stage], paths)
		}
	}

	return result, nil
}

// stageConfig returns the StageConfig for stage, or nil if the pipeline
// config does not configure it.
func (c *Config) stageConfig(stage string) *StageConfig {
	switch stage {
	case "answers":
		return c.Generate.Answers
	case "facts":
		return c.Generate.Facts
	case "evals":
		return c.Generate.Evals
	default:
		return nil
	}
}

// buildGenerator constructs the StageGenerator for one configured stage,
// resolving its prompter and (for the answer stage) its Retriever.
func buildGenerator(stage string, sc *StageConfig, reg *llm.Registry, retCfg *RetrieverConfig) (generator.StageGenerator, error) {
	switch stage {
	case "answers":
		p, err := prompter.ResolveAnswerPrompter(sc.Prompter)
		if err != nil {
			return nil, err
		}
		var ret generator.Retriever
		if retCfg != nil {
			r, err := buildRetriever(retCfg)
			if err != nil {
				return nil, err
			}
			ret = r
		}
		if len(sc.LLMs) == 0 {
			return nil, fmt.Errorf("answers stage: no llms configured")
		}
		return &generator.AnswerGenerator{
			Models:    sc.LLMs,
			Registry:  reg,
			Prompter:  p,
			Retriever: ret,
			Config:    llm.DefaultModelConfig,
		}, nil

	case "facts":
		p, err := prompter.ResolveFactPrompter(sc.Prompter)
		if err != nil {
			return nil, err
		}
		if len(sc.LLMs) == 0 {
			return nil, fmt.Errorf("facts stage: no llms configured")
		}
		return &generator.FactGenerator{
			Model:    sc.LLMs[0],
			Registry: reg,
			Prompter: p,
			Config:   llm.DefaultModelConfig,
		}, nil

	case "evals":
		p, err := prompter.ResolveEvalPrompter(sc.Prompter)
		if err != nil {
			return nil, err
		}
		if len(sc.LLMs) == 0 {
			return nil, fmt.Errorf("evals stage: no llms configured")
		}
		return &generator.EvalGenerator{
			Model:    sc.LLMs[0],
			Registry: reg,
			Prompter: p,
			Config:   llm.DefaultModelConfig,
		}, nil

	default:
		return nil, fmt.Errorf("unknown stage %q", stage)
	}
}

// renderExports writes every requested report format for e, deriving each
// report's path from the canonical JSON path jsonPath just written, and
// returns the paths written.
func renderExports(e *expe.Expe, formats []string, jsonPath string) []string {
	var written []string
	ext := filepath.Ext(jsonPath)
	stem := jsonPath[:len(jsonPath)-len(ext)]
	for _, format := range formats {
		switch format {
		case "html":
			path := stem + ".html"
			if err := export.WriteHTML(e, path); err != nil {
				ragconfig.DebugLog("pipeline: html export failed: %v", err)
				continue
			}
			written = append(written, path)
		case "spreadsheet":
			path := stem + ".csv"
			if err := export.WriteCSV(e, path); err != nil {
				ragconfig.DebugLog("pipeline: spreadsheet export failed: %v", err)
				continue
			}
			written = append(written, path)
		case "json":
			written = append(written, jsonPath)
		default:
			ragconfig.DebugLog("pipeline: unknown export format %q", format)
		}
	}
	return written
}
