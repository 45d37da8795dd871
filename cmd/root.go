package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitmate/gitmate/internal/config"
	"github.com/gitmate/gitmate/internal/history"
	"github.com/gitmate/gitmate/internal/intent"
	"github.com/gitmate/gitmate/internal/llm"
	"github.com/gitmate/gitmate/internal/logging"
	"github.com/gitmate/gitmate/internal/planner"
	"github.com/gitmate/gitmate/internal/repostate"
	"github.com/gitmate/gitmate/internal/ui"
)

var (
	cfgFile   string
	repoPath  string
	noContext bool
	verbose   bool
	configErr error
	rootCtx   = context.Background()

	rootCmd = &cobra.Command{
		Use:   "gitmate [message]",
		Short: "gitmate - Natural language Git assistant",
		Long: `gitmate turns a plain-language request into a safe Git command sequence.
It detects the intent with a locally hosted language model and derives the
actual commands from the repository state, never from the model's output.`,
		Version: fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			if len(args) == 0 {
				return errors.New("please provide a message")
			}
			return handleErrors(runPipeline(strings.Join(args, " ")))
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// SetContext stores the signal-aware context used for model calls.
func SetContext(ctx context.Context) {
	rootCtx = ctx
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is $XDG_CONFIG_HOME/gitmate/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&repoPath, "path", "C", ".", "Repository path to inspect")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Show pipeline diagnostics")
	rootCmd.Flags().BoolVar(&noContext, "no-context", false, "Ignore repository state and suggest the default command per intent")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func handleErrors(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, llm.ErrEmptyResponse) {
		fmt.Fprintln(os.Stderr, "The model returned an empty reply. Check the local model server and try again.")
		return nil
	}

	return err
}

func runPipeline(message string) error {
	cfg := config.GetConfig()
	logger := logging.New(verbose)
	contextAware := cfg.GitContext && !noContext

	vocab, err := intent.Load(cfg.IntentsFile)
	if err != nil {
		return fmt.Errorf("failed to load intent definitions: %w", err)
	}

	var state repostate.RepoState
	var contextYAML string
	if contextAware {
		state, err = repostate.NewProber(logger).Probe(repoPath)
		if err != nil {
			return fmt.Errorf("failed to inspect repository: %w", err)
		}
		contextYAML, err = state.YAML()
		if err != nil {
			return err
		}
	}

	// Persisting the conversation must never lose the answer.
	store, err := history.NewStore("")
	var recordPath string
	if err != nil {
		logger.Warn("conversation history unavailable", "error", err.Error())
	} else if recordPath, err = store.Save(message); err != nil {
		logger.Warn("failed to save conversation", "error", err.Error())
		recordPath = ""
	}

	raw, err := classify(cfg, logger, message, contextYAML, vocab)
	if err != nil {
		return err
	}

	label, known := vocab.Resolve(raw)
	if !known {
		logger.Debug("classifier reply outside vocabulary", "reply", raw)
	}

	answer := planner.New(vocab.Names(), contextAware).Process(label, state)
	answer = planner.Normalize(answer)
	fmt.Println(answer)

	if recordPath != "" {
		if err := store.Update(recordPath, answer); err != nil {
			logger.Warn("failed to update conversation", "error", err.Error())
		}
	}
	return nil
}

func classify(cfg *config.Config, logger logging.Logger, message, contextYAML string, vocab *intent.Registry) (string, error) {
	systemPrompt, err := loadSystemPrompt(cfg, vocab)
	if err != nil {
		return "", err
	}

	classifier := llm.NewClassifier(cfg, logger)

	sp := ui.NewSpinner("Detecting intent...")
	sp.Start()
	defer sp.Stop()

	raw, err := classifier.Classify(rootCtx, message, contextYAML, systemPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to classify intent: %w", err)
	}
	return raw, nil
}

// loadSystemPrompt prefers a user-supplied prompt file and falls back to the
// prompt generated from the intent definitions.
func loadSystemPrompt(cfg *config.Config, vocab *intent.Registry) (string, error) {
	if cfg.PromptTemplate == "" {
		return vocab.SystemPrompt(), nil
	}

	content, err := os.ReadFile(cfg.PromptTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt template %s: %w", cfg.PromptTemplate, err)
	}
	return string(content), nil
}
