// SPDX-License-Identifier: MIT

// Package gitx provides helpers for executing git commands and parsing
// their output. It shells out to the installed git binary.
package gitx

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBranch is used when the checked-out branch cannot be determined.
const DefaultBranch = "main"

// RepoMarker is the directory whose presence means dir is already a repository.
const RepoMarker = ".git"

// PushMode selects how a push may overwrite remote history.
type PushMode int

const (
	// PushNormal is a plain push with upstream tracking.
	PushNormal PushMode = iota
	// PushForceWithLease overwrites only if the remote ref is where we last saw it.
	PushForceWithLease
	// PushForce overwrites unconditionally.
	PushForce
)

// String returns the flag-like name of the mode.
func (m PushMode) String() string {
	switch m {
	case PushNormal:
		return "push"
	case PushForceWithLease:
		return "force-with-lease"
	case PushForce:
		return "force"
	}
	return "push"
}

// HasRepoMarker checks whether dir contains a .git entry.
func HasRepoMarker(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, RepoMarker))
	return err == nil
}

// Init runs `git init`.
func Init(ctx context.Context, r Runner, dir string) Outcome {
	return r.Run(ctx, dir, "init")
}

// Status runs `git status --porcelain`.
func Status(ctx context.Context, r Runner, dir string) Outcome {
	return r.Run(ctx, dir, "status", "--porcelain")
}

// StatusWithBranch runs `git status --porcelain -b`.
func StatusWithBranch(ctx context.Context, r Runner, dir string) Outcome {
	return r.Run(ctx, dir, "status", "--porcelain", "-b")
}

// Add stages a single path.
func Add(ctx context.Context, r Runner, dir, path string) Outcome {
	return r.Run(ctx, dir, "add", "--", path)
}

// Commit records staged changes with message.
func Commit(ctx context.Context, r Runner, dir, message string) Outcome {
	return r.Run(ctx, dir, "commit", "-m", message)
}

// RemoteURL returns the URL of remote and whether it is configured.
func RemoteURL(ctx context.Context, r Runner, dir, remote string) (string, bool) {
	out := r.Run(ctx, dir, "remote", "get-url", remote)
	if !out.OK {
		return "", false
	}
	return out.Text(), true
}

// AddRemote runs `git remote add`.
func AddRemote(ctx context.Context, r Runner, dir, remote, url string) Outcome {
	return r.Run(ctx, dir, "remote", "add", remote, url)
}

// SetRemoteURL runs `git remote set-url`.
func SetRemoteURL(ctx context.Context, r Runner, dir, remote, url string) Outcome {
	return r.Run(ctx, dir, "remote", "set-url", remote, url)
}

// ShowCurrentBranch returns the checked-out branch, or "" when it cannot be read.
func ShowCurrentBranch(ctx context.Context, r Runner, dir string) string {
	out := r.Run(ctx, dir, "branch", "--show-current")
	if !out.OK {
		return ""
	}
	return out.Text()
}

// CurrentBranch detects the branch to push: `branch --show-current`, then the
// header of `status --porcelain -b`, then fallback.
func CurrentBranch(ctx context.Context, r Runner, dir, fallback string) string {
	if branch := ShowCurrentBranch(ctx, r, dir); branch != "" {
		return branch
	}
	if out := StatusWithBranch(ctx, r, dir); out.OK {
		if branch := ParseBranchHeader(out.Output); branch != "" {
			return branch
		}
	}
	if strings.TrimSpace(fallback) == "" {
		return DefaultBranch
	}
	return strings.TrimSpace(fallback)
}

// CheckoutBranch creates branch or resets it to HEAD, then switches to it.
func CheckoutBranch(ctx context.Context, r Runner, dir, branch string) Outcome {
	return r.Run(ctx, dir, "checkout", "-B", branch)
}

// PullMerge fetches remote/branch and merges it, allowing unrelated histories.
func PullMerge(ctx context.Context, r Runner, dir, remote, branch string) Outcome {
	return r.Run(ctx, dir, "pull", "--no-rebase", "--no-edit", "--allow-unrelated-histories", remote, branch)
}

// MergeAbort abandons an in-progress merge.
func MergeAbort(ctx context.Context, r Runner, dir string) Outcome {
	return r.Run(ctx, dir, "merge", "--abort")
}

// Push pushes branch to remote with upstream tracking in the given mode.
func Push(ctx context.Context, r Runner, dir, remote, branch string, mode PushMode) Outcome {
	return r.Run(ctx, dir, PushArgs(remote, branch, mode)...)
}

// PushArgs builds the argument list used by Push.
func PushArgs(remote, branch string, mode PushMode) []string {
	args := []string{"push"}
	switch mode {
	case PushForceWithLease:
		args = append(args, "--force-with-lease")
	case PushForce:
		args = append(args, "--force")
	}
	return append(args, "-u", remote, branch)
}
