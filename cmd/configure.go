package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucas-reyes/ragtime-go/internal/ragconfig"
)

var (
	configureSetProvider    string
	configureSetKey         string
	configureDefaultModel   string
	configureRemoveProvider string
	configureListFlag       bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Manage provider API keys and the default model",
	Long: `configure edits ~/.ragtime/config.yaml (or $RAGTIME_ENV), the
provider-credential store every LLM driver reads from when an environment
variable isn't set (internal/ragconfig.EnvConfig.APIKey).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ragconfig.GetEnvPath()
		cfg, err := ragconfig.LoadEnvConfig(path)
		if err != nil {
			return err
		}

		changed := false

		if configureSetProvider != "" {
			if configureSetKey == "" {
				return fmt.Errorf("configure: --set-provider requires --key")
			}
			cfg.Providers[configureSetProvider] = ragconfig.ProviderConfig{APIKey: configureSetKey}
			changed = true
		}
		if configureRemoveProvider != "" {
			delete(cfg.Providers, configureRemoveProvider)
			changed = true
		}
		if configureDefaultModel != "" {
			cfg.DefaultModel = configureDefaultModel
			changed = true
		}

		if changed {
			if err := ragconfig.SaveEnvConfig(path, cfg); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", path)
		}

		if configureListFlag || !changed {
			fmt.Printf("config file: %s\n", path)
			fmt.Printf("default model: %s\n", cfg.DefaultModel)
			for name := range cfg.Providers {
				fmt.Printf("provider configured: %s\n", name)
			}
		}
		return nil
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureSetProvider, "set-provider", "", "provider name to configure (openai, anthropic, gemini)")
	configureCmd.Flags().StringVar(&configureSetKey, "key", "", "API key for --set-provider")
	configureCmd.Flags().StringVar(&configureRemoveProvider, "remove-provider", "", "provider name to remove")
	configureCmd.Flags().StringVar(&configureDefaultModel, "default-model", "", "set the default model name")
	configureCmd.Flags().BoolVar(&configureListFlag, "list", false, "list the current configuration")
	rootCmd.AddCommand(configureCmd)
}
