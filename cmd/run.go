package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucas-reyes/ragtime-go/internal/pipeline"
	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

var runCmd = &cobra.Command{
	Use:   "run <pipeline.yaml>",
	Short: "Run a pipeline configuration",
	Long: `Run loads a declarative pipeline configuration (input_file,
retriever, and a generate block per stage) and executes every selected
stage — answers, facts, evals, in that order — checkpointing the Expe to
disk as it goes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipeline.LoadConfig(args[0])
		if err != nil {
			return err
		}

		envPath := ragconfig.GetEnvPath()
		env, err := ragconfig.LoadEnvConfig(envPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", envPath, err)
		}

		reg := pipeline.BuildRegistry(cmd.Context(), env)

		result, err := pipeline.Assemble(cmd.Context(), cfg, reg)
		if err != nil {
			return err
		}

		for _, stage := range []string{"answers", "facts", "evals"} {
			path, ok := result.StagePaths[stage]
			if !ok {
				continue
			}
			fmt.Printf("%s: %s\n", stage, path)
			for _, p := range result.ExportPaths[stage] {
				fmt.Printf("  export: %s\n", p)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
