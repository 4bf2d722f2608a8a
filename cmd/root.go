// Package cmd implements the ragtime CLI: a root command carrying
// persistent --verbose/--debug flags, plus the "run" and "configure"
// subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ragtime",
	Short: "Evaluate retrieval-augmented question-answering pipelines",
	Long: `ragtime runs a three-stage generation pipeline — Answer, Fact, Eval —
over a corpus of questions, recording the result in an Expe experiment file
that can be resumed, re-exported, and scored.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ragconfig.Verbose, _ = cmd.Flags().GetBool("verbose")
		ragconfig.Debug, _ = cmd.Flags().GetBool("debug")
	},
}

// Execute runs the root command; main.go's sole job is calling this.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}
