package planner

import (
	"github.com/gitmate/gitmate/internal/repostate"
)

// Command literals. The commit message and remote URL are emitted as the
// canonical placeholders; the planner never has a real message or URL.
const (
	commitCmd     = `git commit -m "<message>"`
	addAllCmd     = "git add ."
	switchMainCmd = "git switch main"
	addRemoteCmd  = "git remote add origin <url>"
	branchCmd     = "git branch feature-branch"
)

// pushBranch picks the upstream branch name for the first push. Detached
// HEAD plans switch to main first, so main is the right target there too.
func pushBranch(s repostate.RepoState) string {
	if !s.IsRepo || s.IsDetached || s.Branch == "" {
		return "main"
	}
	return s.Branch
}

// stagingSteps returns the minimal steps that leave the worktree committed:
// nothing when clean, commit when fully staged, stage-all then commit
// otherwise. Re-adding already staged files is idempotent, so partial needs
// no separate handling.
func stagingSteps(s repostate.RepoState) Plan {
	switch s.Worktree() {
	case repostate.WorktreeClean:
		return nil
	case repostate.WorktreeStaged:
		return Plan{commitCmd}
	default:
		return Plan{addAllCmd, commitCmd}
	}
}

func planCommit(s repostate.RepoState) Plan {
	var cmds Plan
	if !s.IsRepo {
		cmds = append(cmds, "git init")
	}
	if s.IsDetached {
		cmds = append(cmds, switchMainCmd)
	}

	steps := stagingSteps(s)
	if steps == nil {
		return append(cmds, NoOp)
	}
	return append(cmds, steps...)
}

func planPush(s repostate.RepoState) Plan {
	var cmds Plan
	if !s.IsRepo {
		cmds = append(cmds, "git init")
	}
	if s.IsDetached {
		cmds = append(cmds, switchMainCmd)
	}

	// Local changes must be committed before pushing.
	cmds = append(cmds, stagingSteps(s)...)

	if !s.RemoteExists {
		cmds = append(cmds, addRemoteCmd)
	}
	if !s.IsRepo || !s.RemoteExists || !s.UpstreamSet {
		// First push on this branch: set the upstream explicitly.
		return append(cmds, "git push -u origin "+pushBranch(s))
	}
	return append(cmds, "git push")
}

func planPull(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{NotARepoMsg}
	}

	var cmds Plan
	if s.IsDetached {
		// A user pulling from a detached HEAD almost certainly wants to be
		// back on a tracked branch first.
		cmds = append(cmds, switchMainCmd)
	}
	if s.RemoteExists && s.UpstreamSet {
		return append(cmds, "git pull")
	}
	return append(cmds, NoOp)
}

func planStatus(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{NotARepoMsg}
	}
	return Plan{"git status"}
}

func planLog(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{NotARepoMsg}
	}
	return Plan{"git log --oneline"}
}

func planRemote(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{NotARepoMsg}
	}
	return Plan{"git remote -v"}
}

func planAdd(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{"git init", addAllCmd}
	}
	return Plan{addAllCmd}
}

func planSwitch(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{NotARepoMsg}
	}
	// Idempotent even when already on main.
	return Plan{switchMainCmd}
}

func planBranch(s repostate.RepoState) Plan {
	if !s.IsRepo {
		return Plan{"git init", branchCmd}
	}
	if s.IsDetached {
		// git refuses branch-relative operations while detached.
		return Plan{switchMainCmd, branchCmd}
	}
	return Plan{branchCmd}
}

func planInit(s repostate.RepoState) Plan {
	if s.IsRepo {
		return Plan{AlreadyRepoMsg}
	}
	return Plan{"git init"}
}
