package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitmate/gitmate/internal/config"
)

// MockChatCompleter is a mock implementation of the OpenAI client
type MockChatCompleter struct {
	lastRequest              openai.ChatCompletionRequest
	createChatCompletionFunc func(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (
		openai.ChatCompletionResponse,
		error,
	)
}

func (m *MockChatCompleter) CreateChatCompletion(
	ctx context.Context,
	request openai.ChatCompletionRequest,
) (
	openai.ChatCompletionResponse,
	error,
) {
	m.lastRequest = request
	if m.createChatCompletionFunc != nil {
		return m.createChatCompletionFunc(ctx, request)
	}

	// Default successful response
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: "  commit\n"}},
		},
	}, nil
}

func TestClassify_Success(t *testing.T) {
	mock := &MockChatCompleter{}
	classifier := NewClassifierWithClient(mock, "qwen/qwen3-4b-2507")

	reply, err := classifier.Classify(context.Background(), "save my changes", "is_repo: true", "system prompt")
	require.NoError(t, err)

	assert.Equal(t, "commit", reply, "reply must be trimmed")
	assert.Equal(t, "qwen/qwen3-4b-2507", mock.lastRequest.Model)
	assert.Zero(t, mock.lastRequest.Temperature)

	require.Len(t, mock.lastRequest.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, mock.lastRequest.Messages[0].Role)
	assert.Equal(t, "system prompt", mock.lastRequest.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, mock.lastRequest.Messages[1].Role)
	assert.Contains(t, mock.lastRequest.Messages[1].Content, "User message: save my changes")
	assert.Contains(t, mock.lastRequest.Messages[1].Content, "is_repo: true")
}

func TestClassify_EmptyResponse(t *testing.T) {
	mock := &MockChatCompleter{
		createChatCompletionFunc: func(
			ctx context.Context,
			request openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, nil
		},
	}
	classifier := NewClassifierWithClient(mock, "test-model")

	_, err := classifier.Classify(context.Background(), "push it", "", "prompt")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestClassify_TransportError(t *testing.T) {
	expectedErr := errors.New("connection refused")
	mock := &MockChatCompleter{
		createChatCompletionFunc: func(
			ctx context.Context,
			request openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, expectedErr
		},
	}
	classifier := NewClassifierWithClient(mock, "test-model")

	_, err := classifier.Classify(context.Background(), "push it", "", "prompt")
	assert.ErrorIs(t, err, expectedErr)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Run("with git context", func(t *testing.T) {
		prompt := BuildUserPrompt("push my work", "is_repo: true\nbranch: main\n")

		assert.Contains(t, prompt, "User message: push my work")
		assert.Contains(t, prompt, "Git Context (YAML):\n```yaml\nis_repo: true\nbranch: main\n```")
		assert.Contains(t, prompt, "End of context.")
	})

	t.Run("without git context", func(t *testing.T) {
		assert.Equal(t, "User message: push my work", BuildUserPrompt("push my work", ""))
	})
}

func TestNewClassifier(t *testing.T) {
	cfg := &config.Config{
		Model:   "test-model",
		APIBase: "http://localhost:1234/v1",
	}

	classifier := NewClassifier(cfg, nil)
	require.NotNil(t, classifier)
	assert.Equal(t, "test-model", classifier.model)
	assert.Equal(t, defaultTimeout, classifier.timeout)
}
