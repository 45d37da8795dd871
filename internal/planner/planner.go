// Package planner maps a detected intent plus the probed repository state to
// an ordered, minimal git command sequence. It is a pure rule engine: the
// command text never comes from the model, and identical inputs always yield
// identical output.
package planner

import (
	"fmt"
	"strings"

	"github.com/gitmate/gitmate/internal/repostate"
)

const (
	// NoOp is the sentinel plan entry meaning there is nothing to do.
	NoOp = "N/A"

	// NotARepoMsg is the fixed placeholder for intents that cannot proceed
	// outside a repository and where initializing mid-plan makes no sense.
	NotARepoMsg = "Not a Git repository. Use 'git init' first."

	// AlreadyRepoMsg is returned for init when a repository already exists.
	AlreadyRepoMsg = "Repository already initialized"

	// RefusalMsg is shown when the classifier flags a non-Git request.
	RefusalMsg = "I can only help with Git operations. Please ask me about Git commands."
)

// Plan is an ordered sequence of literal command strings (or placeholder
// lines). Prerequisite commands come before the commands that depend on them.
type Plan []string

// Render serializes the plan as a single fenced command block. Empty entries
// are filtered first; an entirely empty plan renders the N/A sentinel, which
// makes rendering idempotent under re-normalization.
func (p Plan) Render() string {
	lines := make([]string, 0, len(p))
	for _, entry := range p {
		if strings.TrimSpace(entry) != "" {
			lines = append(lines, entry)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, NoOp)
	}
	return "```\n" + strings.Join(lines, "\n") + "\n```"
}

type planFunc func(repostate.RepoState) Plan

// Planner converts (intent, RepoState) into a rendered plan. It holds no
// state between calls and is safe for concurrent use.
type Planner struct {
	contextAware bool
	vocabulary   map[string]bool
	plans        map[string]planFunc
	defaults     map[string]string
}

// New creates a planner for the given intent vocabulary. With contextAware
// false every intent maps to its static default command, ignoring the
// repository state.
func New(vocabulary []string, contextAware bool) *Planner {
	vocab := make(map[string]bool, len(vocabulary))
	for _, name := range vocabulary {
		vocab[name] = true
	}

	return &Planner{
		contextAware: contextAware,
		vocabulary:   vocab,
		plans: map[string]planFunc{
			"commit": planCommit,
			"push":   planPush,
			"pull":   planPull,
			"status": planStatus,
			"branch": planBranch,
			"add":    planAdd,
			"log":    planLog,
			"switch": planSwitch,
			"remote": planRemote,
			"init":   planInit,
		},
		defaults: map[string]string{
			"commit": commitCmd,
			"push":   "git push",
			"pull":   "git pull",
			"status": "git status",
			"branch": branchCmd,
			"add":    addAllCmd,
			"log":    "git log --oneline",
			"switch": switchMainCmd,
			"remote": "git remote -v",
			"init":   "git init",
		},
	}
}

// Process maps an intent label and repository state to the rendered answer.
// It is total over the declared vocabulary: invalid labels and rule-table
// gaps surface as diagnostic strings, never as errors or panics.
func (p *Planner) Process(label string, state repostate.RepoState) string {
	if label == NoOp {
		return RefusalMsg
	}
	if !p.vocabulary[label] {
		return fmt.Sprintf("Unknown intent: %s", label)
	}

	if !p.contextAware {
		if cmd, ok := p.defaults[label]; ok {
			return Plan{cmd}.Render()
		}
		return fmt.Sprintf("No handler for context: %s/%s", label, state.Fingerprint())
	}

	fn, ok := p.plans[label]
	if !ok {
		// A vocabulary entry without a planner is a rule-table gap; name the
		// missing combination instead of swallowing it.
		return fmt.Sprintf("No handler for context: %s/%s", label, state.Fingerprint())
	}

	return fn(state).Render()
}
