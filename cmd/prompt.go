package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitmate/gitmate/internal/config"
	"github.com/gitmate/gitmate/internal/intent"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the generated intent detection prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("configuration error: %w", configErr)
		}

		vocab, err := intent.Load(config.GetConfig().IntentsFile)
		if err != nil {
			return fmt.Errorf("failed to load intent definitions: %w", err)
		}

		fmt.Println(vocab.SystemPrompt())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
