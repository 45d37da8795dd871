// Package repostate inspects a Git repository and reduces it to the small
// set of facts the planner reasons over. Inspection is read-only and never
// shells out to git.
package repostate

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// WorktreeState classifies the working tree by its staged/unstaged counts.
type WorktreeState string

const (
	WorktreeClean    WorktreeState = "clean"
	WorktreeStaged   WorktreeState = "staged"
	WorktreeUnstaged WorktreeState = "unstaged"
	WorktreePartial  WorktreeState = "partial"
)

// RepoState is an immutable snapshot of a repository, computed fresh per
// request. Branch is empty when HEAD is detached or the state is not a repo.
// Untracked files count into UnstagedCount.
type RepoState struct {
	IsRepo         bool   `yaml:"is_repo"`
	Branch         string `yaml:"branch,omitempty"`
	IsDetached     bool   `yaml:"is_detached"`
	StagedCount    int    `yaml:"staged_count"`
	UnstagedCount  int    `yaml:"unstaged_count"`
	HasUncommitted bool   `yaml:"has_uncommitted"`
	RemoteExists   bool   `yaml:"remote_exists"`
	UpstreamSet    bool   `yaml:"upstream_set"`
}

// Worktree derives the four-way working tree classification. Every planner
// decision about staging goes through this single derivation.
func (s RepoState) Worktree() WorktreeState {
	switch {
	case s.StagedCount == 0 && s.UnstagedCount == 0:
		return WorktreeClean
	case s.StagedCount > 0 && s.UnstagedCount == 0:
		return WorktreeStaged
	case s.StagedCount == 0 && s.UnstagedCount > 0:
		return WorktreeUnstaged
	default:
		return WorktreePartial
	}
}

// Fingerprint returns a canonical context name such as
// "normal_noremote_partial", used in diagnostics and debug logging.
func (s RepoState) Fingerprint() string {
	if !s.IsRepo {
		return "norepo"
	}

	head := "normal"
	if s.IsDetached {
		head = "detached"
	}

	remote := "noremote"
	switch {
	case s.RemoteExists && s.UpstreamSet:
		remote = "upstream"
	case s.RemoteExists:
		remote = "remote"
	}

	return fmt.Sprintf("%s_%s_%s", head, remote, s.Worktree())
}

// YAML serializes the state for the model context and the context command.
func (s RepoState) YAML() (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize repository state: %w", err)
	}
	return string(out), nil
}
