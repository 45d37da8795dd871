package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitmate/gitmate/internal/llm"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "unknown", BuildTime)

	assert.NotNil(t, versionCmd)
	assert.Equal(t, "version", versionCmd.Use)
	assert.Equal(t, "Show gitmate version information", versionCmd.Short)
}

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "gitmate [message]", rootCmd.Use)
	assert.Equal(t, "gitmate - Natural language Git assistant", rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "never from the model's output")
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, expected := range []string{"config", "context", "prompt", "version", "completion"} {
		assert.True(t, names[expected], "missing subcommand %s", expected)
	}
}

func TestHandleErrors(t *testing.T) {
	t.Run("returns nil for nil error", func(t *testing.T) {
		assert.NoError(t, handleErrors(nil))
	})

	t.Run("swallows empty model replies with a hint", func(t *testing.T) {
		assert.NoError(t, handleErrors(llm.ErrEmptyResponse))
	})

	t.Run("propagates generic error", func(t *testing.T) {
		expectedErr := errors.New("boom")
		err := handleErrors(expectedErr)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestGlobalVariables(t *testing.T) {
	assert.IsType(t, "", cfgFile)
	assert.IsType(t, "", repoPath)
	assert.IsType(t, false, noContext)
	assert.IsType(t, false, verbose)
}
