// Package llm talks to a locally hosted, OpenAI-compatible model server to
// classify a free-text request into an intent label. The model's reply is
// only ever treated as a label candidate, never as command text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/gitmate/gitmate/internal/config"
	"github.com/gitmate/gitmate/internal/logging"
)

// ErrEmptyResponse is returned when the model produces no choices.
var ErrEmptyResponse = errors.New("model returned an empty response")

const defaultTimeout = 30 * time.Second

// ChatCompleter abstracts the OpenAI chat API for testability.
type ChatCompleter interface {
	CreateChatCompletion(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

// Classifier sends the user's message plus the serialized repository context
// to the model and returns its raw reply.
type Classifier struct {
	client  ChatCompleter
	model   string
	timeout time.Duration
	logger  logging.Logger
}

// NewClassifier builds a classifier for the configured endpoint. The api_base
// defaults to LM Studio's local server; api_key may be empty for local use.
func NewClassifier(cfg *config.Config, logger logging.Logger) *Classifier {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientConfig.BaseURL = cfg.APIBase
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Classifier{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.Model,
		timeout: defaultTimeout,
		logger:  logger.With("component", "classifier"),
	}
}

// NewClassifierWithClient injects a ChatCompleter, used by tests.
func NewClassifierWithClient(client ChatCompleter, model string) *Classifier {
	return &Classifier{
		client:  client,
		model:   model,
		timeout: defaultTimeout,
		logger:  logging.NewNop(),
	}
}

// Classify asks the model for an intent label. contextYAML may be empty when
// context-aware planning is disabled.
func (c *Classifier) Classify(ctx context.Context, message, contextYAML, systemPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(message, contextYAML)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call model: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("classified message", "reply", reply, "elapsed", time.Since(start).String())
	return reply, nil
}

// BuildUserPrompt lays out the user message and the fenced YAML git context
// the way the classifier prompt expects them.
func BuildUserPrompt(message, contextYAML string) string {
	if contextYAML == "" {
		return "User message: " + message
	}
	return "User message: " + message +
		"\n\n---\n\nGit Context (YAML):\n```yaml\n" +
		strings.TrimSpace(contextYAML) +
		"\n```\n\nEnd of context."
}
