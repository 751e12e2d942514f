// SPDX-License-Identifier: MIT
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/gitx"
)

// Strategy names a recovery step.
type Strategy string

const (
	StrategyNone           Strategy = ""
	StrategyCheckout       Strategy = "checkout"
	StrategyPullMerge      Strategy = "pull_merge"
	StrategyMergeAbort     Strategy = "merge_abort"
	StrategyRetryPush      Strategy = "retry_push"
	StrategyUpstreamPush   Strategy = "upstream_push"
	StrategyForceWithLease Strategy = "force_with_lease"
	StrategyForce          Strategy = "force"
)

// Attempt records one git call made while resolving.
type Attempt struct {
	Strategy Strategy
	OK       bool
	Output   string
}

// Resolution is the result of Resolve.
type Resolution struct {
	OK bool
	// Strategy is the step that finally pushed, StrategyNone on failure.
	Strategy Strategy
	// Branch is the branch the resolver pushed or tried to push.
	Branch string
	// Output is the last observed git output.
	Output   string
	Attempts []Attempt
	// Err is ErrPushRejected, ErrDeclined, ErrInterrupted or a prompt
	// failure.
	Err error
}

// Attempted reports whether strategy was tried.
func (r Resolution) Attempted(strategy Strategy) bool {
	for _, a := range r.Attempts {
		if a.Strategy == strategy {
			return true
		}
	}
	return false
}

func (r *Resolution) record(strategy Strategy, out gitx.Outcome) {
	r.Attempts = append(r.Attempts, Attempt{Strategy: strategy, OK: out.OK, Output: out.Output})
	if !out.OK {
		r.Output = out.Output
	}
}

// Resolver recovers from rejected pushes. Steps run in a fixed order:
// branch reconciliation, pull and merge with one retried push, upstream
// push when the remote branch is missing, force-with-lease and finally a
// plain force push. Each force step needs its own confirmation and the plain
// force push is only offered after force-with-lease failed.
type Resolver struct {
	runner gitx.Runner
	logger zerolog.Logger
}

// NewResolver returns a Resolver issuing git calls through runner.
func NewResolver(runner gitx.Runner, logger zerolog.Logger) *Resolver {
	return &Resolver{runner: runner, logger: logger}
}

// Resolve tries to push target after a push failed with lastOutput.
func (r *Resolver) Resolve(ctx context.Context, s *Session, target, lastOutput string) Resolution {
	report := s.reporter()
	remote := s.remote()
	res := Resolution{Branch: target, Output: lastOutput}
	done := func(strategy Strategy) Resolution {
		res.OK = true
		res.Strategy = strategy
		res.Err = nil
		r.logger.Debug().Str("strategy", string(strategy)).Str("branch", res.Branch).Msg("push resolved")
		return res
	}
	stop := func(err error) Resolution {
		res.Err = err
		r.logger.Debug().Err(err).Int("attempts", len(res.Attempts)).Msg("push resolution stopped")
		return res
	}

	branch := r.reconcileBranch(ctx, s, target, &res)
	res.Branch = branch
	if ctx.Err() != nil {
		return stop(ErrInterrupted)
	}

	report.Info(fmt.Sprintf("Pulling remote changes from %s/%s...", remote, branch))
	pull := gitx.PullMerge(ctx, r.runner, s.Dir, remote, branch)
	res.record(StrategyPullMerge, pull)
	if ctx.Err() != nil {
		return stop(ErrInterrupted)
	}
	if pull.OK {
		report.Success("Merged remote changes")
		retry := gitx.Push(ctx, r.runner, s.Dir, remote, branch, gitx.PushNormal)
		res.record(StrategyRetryPush, retry)
		if retry.OK {
			report.Success(fmt.Sprintf("Pushed %s after merging", branch))
			return done(StrategyRetryPush)
		}
		report.Warn("Push still rejected after merging")
	} else {
		if gitx.HasMergeConflict(pull.Output) {
			report.Warn("Merge produced conflicts, aborting the merge")
			res.record(StrategyMergeAbort, gitx.MergeAbort(ctx, r.runner, s.Dir))
			res.Output = pull.Output
		}
		if gitx.IsMissingRemoteBranch(pull.Output) {
			report.Info(fmt.Sprintf("Remote branch %s does not exist, pushing with upstream", branch))
			up := gitx.Push(ctx, r.runner, s.Dir, remote, branch, gitx.PushNormal)
			res.record(StrategyUpstreamPush, up)
			if up.OK {
				report.Success(fmt.Sprintf("Pushed %s and set upstream", branch))
				return done(StrategyUpstreamPush)
			}
		} else {
			report.Warn("Could not merge remote changes")
		}
	}
	if ctx.Err() != nil {
		return stop(ErrInterrupted)
	}

	ok, err := s.confirm(ctx,
		fmt.Sprintf("Force push %s to %s? This overwrites the remote branch unless someone pushed since your last fetch.", branch, remote),
		cliio.Destructive)
	if err != nil {
		return stop(confirmErr(err))
	}
	if !ok {
		report.Info("Force push declined")
		return stop(ErrDeclined)
	}
	lease := gitx.Push(ctx, r.runner, s.Dir, remote, branch, gitx.PushForceWithLease)
	res.record(StrategyForceWithLease, lease)
	if lease.OK {
		report.Success(fmt.Sprintf("Force pushed %s with lease", branch))
		return done(StrategyForceWithLease)
	}
	report.Error("Force push with lease failed: " + strings.TrimSpace(lease.Output))
	if ctx.Err() != nil {
		return stop(ErrInterrupted)
	}

	ok, err = s.confirm(ctx,
		fmt.Sprintf("Overwrite %s on %s unconditionally? Remote commits missing from your branch will be lost.", branch, remote),
		cliio.Dangerous)
	if err != nil {
		return stop(confirmErr(err))
	}
	if !ok {
		report.Info("Force push declined")
		return stop(ErrDeclined)
	}
	force := gitx.Push(ctx, r.runner, s.Dir, remote, branch, gitx.PushForce)
	res.record(StrategyForce, force)
	if force.OK {
		report.Success(fmt.Sprintf("Force pushed %s", branch))
		return done(StrategyForce)
	}
	report.Error("Force push failed: " + strings.TrimSpace(force.Output))
	return stop(ErrPushRejected)
}

// reconcileBranch switches to target when another branch is checked out. If
// the switch fails it returns the branch that is actually checked out.
func (r *Resolver) reconcileBranch(ctx context.Context, s *Session, target string, res *Resolution) string {
	report := s.reporter()
	current := gitx.ShowCurrentBranch(ctx, r.runner, s.Dir)
	if current == "" || current == target {
		return target
	}
	report.Warn(fmt.Sprintf("On branch %s, switching to %s", current, target))
	out := gitx.CheckoutBranch(ctx, r.runner, s.Dir, target)
	res.record(StrategyCheckout, out)
	if out.OK {
		return target
	}
	report.Warn(fmt.Sprintf("Could not switch to %s, continuing on %s", target, current))
	s.Target = s.Target.WithBranch(current)
	return current
}
