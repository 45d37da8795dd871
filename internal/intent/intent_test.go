package intent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Builtin(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	expected := []string{
		"commit", "push", "pull", "status", "branch",
		"add", "log", "switch", "remote", "init", NotApplicable,
	}
	assert.Equal(t, expected, reg.Names())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intents.yaml")
	content := `intents:
  commit:
    description: Record changes
    examples:
      - save my work
  N/A:
    description: Not git
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"commit", "N/A"}, reg.Names())
	assert.Equal(t, []string{"save my work"}, reg.Examples("commit"))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("intents: [not, a, mapping]"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("empty definitions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("intents: {}\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestGitNames_ExcludesSentinel(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	names := reg.GitNames()
	assert.NotContains(t, names, NotApplicable)
	assert.Contains(t, names, "commit")
	assert.Len(t, names, len(reg.Names())-1)
}

func TestValid(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	assert.True(t, reg.Valid("commit"))
	assert.True(t, reg.Valid(NotApplicable))
	assert.False(t, reg.Valid("rebase"))
	assert.False(t, reg.Valid(""))
}

func TestResolve(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{"exact match", "commit", "commit", true},
		{"surrounding whitespace", "  push \n", "push", true},
		{"different case", "Status", "status", true},
		{"backticks", "`pull`", "pull", true},
		{"quoted", `"init"`, "init", true},
		{"first line only", "commit\nBecause you have staged changes.", "commit", true},
		{"sentinel case insensitive", "n/a", NotApplicable, true},
		{"outside vocabulary", "rebase", "rebase", false},
		{"empty reply", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := reg.Resolve(tt.raw)
			assert.Equal(t, tt.expected, label)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestMapping(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	mapping := reg.Mapping()
	assert.Equal(t, "commit", mapping["save my changes"])
	assert.Equal(t, "push", mapping["push my work to github"])
	assert.Equal(t, NotApplicable, mapping["what's the weather today"])
}

func TestSystemPrompt(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	prompt := reg.SystemPrompt()
	assert.Contains(t, prompt, "# GitMate Intent Detection")
	assert.Contains(t, prompt, "- **commit** -")
	assert.Contains(t, prompt, "- **N/A** -")
	assert.Contains(t, prompt, "Output only the command name")

	// Prompt generation must be deterministic.
	assert.Equal(t, prompt, reg.SystemPrompt())
}
