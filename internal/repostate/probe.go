package repostate

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gitmate/gitmate/internal/logging"
)

// Prober reads repository metadata and emits a RepoState. It never mutates
// the repository and never raises for the "not a repository" case.
type Prober struct {
	logger logging.Logger
}

// NewProber creates a prober. A nil logger disables diagnostics.
func NewProber(logger logging.Logger) *Prober {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Prober{logger: logger.With("component", "prober")}
}

// Probe inspects the repository containing path. Outside a working tree it
// returns the zero RepoState and no error; only unrecoverable I/O errors
// (e.g. permission denied) propagate.
func (p *Prober) Probe(path string) (RepoState, error) {
	if path == "" {
		path = "."
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			p.logger.Debug("not a repository", "path", path)
			return RepoState{}, nil
		}
		return RepoState{}, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	state := p.Describe(repo)
	p.logger.Debug("probed repository", "path", path, "context", state.Fingerprint())
	return state, nil
}

// Describe computes the RepoState for an already-open repository. Exported
// so callers holding in-memory repositories can reuse the classification.
func (p *Prober) Describe(repo *gogit.Repository) RepoState {
	state := RepoState{IsRepo: true}

	state.Branch, state.IsDetached = currentBranch(repo)
	state.StagedCount, state.UnstagedCount = countChanges(repo)
	state.HasUncommitted = state.StagedCount+state.UnstagedCount > 0
	state.RemoteExists = hasRemoteRefs(repo)

	if !state.IsDetached && state.Branch != "" {
		state.UpstreamSet = upstreamSet(repo, state.Branch)
	}

	return state
}

// currentBranch follows the symbolic HEAD reference. It returns the branch
// short name when HEAD points at a local branch ref, otherwise detached=true.
func currentBranch(repo *gogit.Repository) (string, bool) {
	head, err := repo.Head()
	if err == nil {
		if head.Name().IsBranch() {
			return head.Name().Short(), false
		}
		return "", true
	}

	// Unborn branch: HEAD names a branch ref that has no commits yet. That
	// still counts as being on a branch, not detached.
	sym, symErr := repo.Reference(plumbing.HEAD, false)
	if symErr == nil && sym.Type() == plumbing.SymbolicReference && sym.Target().IsBranch() {
		return sym.Target().Short(), false
	}

	return "", true
}

// countChanges returns (staged, unstaged) counts. Untracked files are folded
// into the unstaged count.
func countChanges(repo *gogit.Repository) (int, int) {
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository: nothing to stage.
		return 0, 0
	}

	status, err := wt.Status()
	if err != nil {
		return 0, 0
	}

	var staged, unstaged int
	for _, fs := range status {
		if fs.Staging != gogit.Unmodified && fs.Staging != gogit.Untracked {
			staged++
		}
		if fs.Worktree != gogit.Unmodified {
			unstaged++
		}
	}
	return staged, unstaged
}

// hasRemoteRefs reports whether any remote-tracking ref exists, regardless
// of which remote it belongs to.
func hasRemoteRefs(repo *gogit.Repository) bool {
	refs, err := repo.References()
	if err != nil {
		return false
	}
	defer refs.Close()

	found := false
	_ = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsRemote() {
			found = true
		}
		return nil
	})
	return found
}

// upstreamSet checks that the branch has a configured remote and merge
// target and that the corresponding remote-tracking ref actually exists.
// Any config read problem degrades to "upstream not set".
func upstreamSet(repo *gogit.Repository, branch string) bool {
	cfg, err := repo.Config()
	if err != nil {
		return false
	}

	bc, ok := cfg.Branches[branch]
	if !ok || bc.Remote == "" || bc.Merge == "" {
		return false
	}

	tracking := plumbing.NewRemoteReferenceName(bc.Remote, bc.Merge.Short())
	_, err = repo.Reference(tracking, true)
	return err == nil
}
