package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitmate/gitmate/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gitmate configuration",
		Long:  `Manage gitmate configuration, including the model, API endpoint, and context-aware mode.`,
	}

	configGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}

			cfg := config.GetConfig()
			fmt.Println("Current configuration:")
			fmt.Printf("model: %s\n", cfg.Model)
			fmt.Printf("api_base: %s\n", cfg.APIBase)
			if cfg.APIKey != "" {
				fmt.Println("api_key: ********")
			} else {
				fmt.Println("api_key: (not set)")
			}
			fmt.Printf("git_context: %t\n", cfg.GitContext)
			fmt.Printf("prompt_template: %s\n", cfg.PromptTemplate)
			fmt.Printf("intents_file: %s\n", cfg.IntentsFile)
			return nil
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}

			key, value := args[0], args[1]
			if !config.IsSettableKey(key) {
				return fmt.Errorf("unknown configuration key %q, valid keys: %s",
					key, strings.Join(config.SettableKeys(), ", "))
			}

			if key == "git_context" {
				config.SetConfigValue(key, value == "true")
			} else {
				config.SetConfigValue(key, value)
			}

			if err := config.SaveConfig(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Set %s\n", key)
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
