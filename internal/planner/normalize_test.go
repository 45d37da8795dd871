package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "double quoted commit message",
			input:    `git commit -m "fix bug"`,
			expected: `git commit -m "<message>"`,
		},
		{
			name:     "single quoted commit message",
			input:    `git commit -m 'initial commit'`,
			expected: `git commit -m "<message>"`,
		},
		{
			name:     "bare word commit message",
			input:    "git commit -m wip",
			expected: `git commit -m "<message>"`,
		},
		{
			name:     "remote url",
			input:    "git remote add origin https://x.git",
			expected: "git remote add origin <url>",
		},
		{
			name:     "case insensitive keywords",
			input:    `GIT COMMIT -m "Fix"`,
			expected: `GIT COMMIT -m "<message>"`,
		},
		{
			name:     "mid line command",
			input:    `git add . && git commit -m "several words here"`,
			expected: `git add . && git commit -m "<message>"`,
		},
		{
			name:     "multiple lines",
			input:    "git remote add origin git@host:repo.git\ngit commit -m 'x'",
			expected: "git remote add origin <url>\ngit commit -m \"<message>\"",
		},
		{
			name:     "unrelated text untouched",
			input:    "git status\ngit push -u origin main",
			expected: "git status\ngit push -u origin main",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		`git commit -m "fix bug"`,
		"git remote add origin https://example.com/repo.git",
		`git commit -m "<message>"`,
		"git remote add origin <url>",
		"```\ngit add .\ngit commit -m 'update'\n```",
		"no git commands at all",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input: %s", input)
	}
}
