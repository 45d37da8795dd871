package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitmate/gitmate/internal/logging"
	"github.com/gitmate/gitmate/internal/repostate"
)

// contextCmd prints the same repository snapshot the model sees, which makes
// the planner's decisions reproducible by hand.
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the probed repository state as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(verbose)

		state, err := repostate.NewProber(logger).Probe(repoPath)
		if err != nil {
			return fmt.Errorf("failed to inspect repository: %w", err)
		}

		out, err := state.YAML()
		if err != nil {
			return err
		}

		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
