// SPDX-License-Identifier: MIT
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/gitx"
)

// State is a step of the push sequence.
type State int

const (
	Idle State = iota
	RepoEnsured
	Staged
	Committed
	RemoteConfigured
	Pushed
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RepoEnsured:
		return "repo_ensured"
	case Staged:
		return "staged"
	case Committed:
		return "committed"
	case RemoteConfigured:
		return "remote_configured"
	case Pushed:
		return "pushed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// RemoteAction is what ConfigureRemote did.
type RemoteAction int

const (
	RemoteUnchanged RemoteAction = iota
	RemoteAdded
	RemoteUpdated
)

// Report summarizes one Run.
type Report struct {
	// State is Pushed on success and Failed otherwise.
	State State
	// Reached is the last state completed before a failure.
	Reached State
	// Created is true when Run initialized the repository.
	Created bool
	// CommitSkipped is true when there was nothing to commit.
	CommitSkipped bool
	Remote        RemoteAction
	// Branch is the branch that was pushed, or attempted.
	Branch string
	// Cause classifies the first push failure, CauseNone if the first push worked.
	Cause gitx.PushCause
	// Resolution is set when the conflict resolver ran.
	Resolution *Resolution
	Err        error
}

// OK reports whether the push succeeded.
func (r Report) OK() bool { return r.State == Pushed }

// Orchestrator runs the push sequence through a gitx.Runner.
type Orchestrator struct {
	runner         gitx.Runner
	logger         zerolog.Logger
	defaultBranch  string
	stageUntracked bool
	resolver       *Resolver
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithDefaultBranch sets the branch pushed when none can be detected.
func WithDefaultBranch(branch string) Option {
	return func(o *Orchestrator) {
		if b := strings.TrimSpace(branch); b != "" {
			o.defaultBranch = b
		}
	}
}

// WithStageUntracked controls whether Commit stages untracked files that
// were not selected.
func WithStageUntracked(enabled bool) Option {
	return func(o *Orchestrator) {
		o.stageUntracked = enabled
	}
}

// New returns an Orchestrator using runner for every git call.
func New(runner gitx.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner:         runner,
		logger:         zerolog.Nop(),
		defaultBranch:  gitx.DefaultBranch,
		stageUntracked: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.resolver = NewResolver(runner, o.logger)
	return o
}

// Run executes every step in order and stops at the first failure.
func (o *Orchestrator) Run(ctx context.Context, s *Session) Report {
	rep := Report{State: Idle, Reached: Idle}
	fail := func(err error) Report {
		rep.Reached = rep.State
		rep.State = Failed
		rep.Err = err
		o.logger.Debug().Err(err).Str("reached", rep.Reached.String()).Msg("push sequence failed")
		return rep
	}
	interrupted := func() bool { return ctx.Err() != nil }

	created, err := o.EnsureRepo(ctx, s)
	if err != nil {
		return fail(err)
	}
	rep.Created = created
	rep.State = RepoEnsured
	if interrupted() {
		return fail(ErrInterrupted)
	}

	if err := o.StageFiles(ctx, s); err != nil {
		return fail(err)
	}
	rep.State = Staged
	if interrupted() {
		return fail(ErrInterrupted)
	}

	skipped, err := o.Commit(ctx, s)
	if err != nil {
		return fail(err)
	}
	rep.CommitSkipped = skipped
	rep.State = Committed
	if interrupted() {
		return fail(ErrInterrupted)
	}

	action, err := o.ConfigureRemote(ctx, s)
	if err != nil {
		return fail(err)
	}
	rep.Remote = action
	rep.State = RemoteConfigured
	if interrupted() {
		return fail(ErrInterrupted)
	}

	pushed := o.Push(ctx, s)
	rep.Branch = pushed.Branch
	rep.Cause = pushed.Cause
	rep.Resolution = pushed.Resolution
	if pushed.Err != nil {
		return fail(pushed.Err)
	}
	rep.State = Pushed
	rep.Reached = Pushed
	return rep
}

// EnsureRepo initializes Dir unless it already holds a repository. It
// reports whether a repository was created.
func (o *Orchestrator) EnsureRepo(ctx context.Context, s *Session) (bool, error) {
	report := s.reporter()
	if gitx.HasRepoMarker(s.Dir) {
		report.Info("Git repository already initialized")
		return false, nil
	}
	report.Info("Initializing git repository...")
	out := gitx.Init(ctx, o.runner, s.Dir)
	if !out.OK {
		report.Error("Failed to initialize repository: " + out.Text())
		return false, stepError("init", ErrInitFailed, out.Output)
	}
	report.Success("Git repository initialized")
	return true, nil
}

// StageFiles stages each selected path and halts at the first failure.
func (o *Orchestrator) StageFiles(ctx context.Context, s *Session) error {
	report := s.reporter()
	for _, path := range s.Files {
		out := gitx.Add(ctx, o.runner, s.Dir, path)
		if !out.OK {
			report.Error(fmt.Sprintf("Failed to add %s: %s", path, out.Text()))
			e := stepError("add", ErrStageFailed, out.Output)
			e.Path = path
			return e
		}
		o.logger.Debug().Str("path", path).Msg("staged")
	}
	if len(s.Files) > 0 {
		report.Success(fmt.Sprintf("Staged %d file(s)", len(s.Files)))
	}
	return nil
}

// Commit records staged changes. It reports true when there was nothing to
// commit.
func (o *Orchestrator) Commit(ctx context.Context, s *Session) (bool, error) {
	report := s.reporter()
	status := gitx.Status(ctx, o.runner, s.Dir)
	if status.OK && strings.TrimSpace(status.Output) == "" {
		report.Info("No changes to commit")
		return true, nil
	}

	if status.OK && o.stageUntracked {
		for _, path := range gitx.UntrackedPaths(status.Output) {
			out := gitx.Add(ctx, o.runner, s.Dir, path)
			if !out.OK {
				report.Warn(fmt.Sprintf("Could not stage untracked %s: %s", path, out.Text()))
				continue
			}
			o.logger.Debug().Str("path", path).Msg("staged untracked")
		}
	}

	out := gitx.Commit(ctx, o.runner, s.Dir, s.Message)
	switch {
	case out.OK:
		report.Success(fmt.Sprintf("Committed: %s", s.Message))
		return false, nil
	case gitx.IsIdentityMissing(out.Output):
		remediation := []string{
			`git config --global user.name "Your Name"`,
			`git config --global user.email "you@example.com"`,
		}
		report.Error("Git user identity is not configured")
		report.Hint("Set it with:", remediation...)
		return false, stepError("commit", ErrIdentityNotConfigured, out.Output, remediation...)
	case gitx.IsNothingToCommit(out.Output):
		report.Info("Nothing to commit")
		return true, nil
	default:
		report.Error("Commit failed: " + out.Text())
		return false, stepError("commit", ErrCommitFailed, out.Output)
	}
}

// ConfigureRemote points the session remote at Target.URL.
func (o *Orchestrator) ConfigureRemote(ctx context.Context, s *Session) (RemoteAction, error) {
	report := s.reporter()
	remote := s.remote()
	current, exists := gitx.RemoteURL(ctx, o.runner, s.Dir, remote)
	switch {
	case !exists:
		out := gitx.AddRemote(ctx, o.runner, s.Dir, remote, s.Target.URL)
		if !out.OK {
			report.Error(fmt.Sprintf("Failed to add remote %s: %s", remote, out.Text()))
			return RemoteUnchanged, stepError("remote", ErrRemoteFailed, out.Output)
		}
		report.Success(fmt.Sprintf("Added remote %s: %s", remote, s.Target.URL))
		return RemoteAdded, nil
	case current != s.Target.URL:
		out := gitx.SetRemoteURL(ctx, o.runner, s.Dir, remote, s.Target.URL)
		if !out.OK {
			report.Error(fmt.Sprintf("Failed to update remote %s: %s", remote, out.Text()))
			return RemoteUnchanged, stepError("remote", ErrRemoteFailed, out.Output)
		}
		report.Success(fmt.Sprintf("Updated remote %s: %s", remote, s.Target.URL))
		return RemoteUpdated, nil
	default:
		report.Info(fmt.Sprintf("Remote %s already set to %s", remote, s.Target.URL))
		return RemoteUnchanged, nil
	}
}

// PushOutcome is the result of Push.
type PushOutcome struct {
	Branch     string
	Cause      gitx.PushCause
	Output     string
	Resolution *Resolution
	Err        error
}

// Push pushes the target branch and routes failures by cause.
func (o *Orchestrator) Push(ctx context.Context, s *Session) PushOutcome {
	report := s.reporter()
	remote := s.remote()
	branch := s.Target.Branch
	if branch == "" {
		branch = gitx.CurrentBranch(ctx, o.runner, s.Dir, o.defaultBranch)
		s.Target = s.Target.WithBranch(branch)
	}

	report.Info(fmt.Sprintf("Pushing %s to %s...", branch, remote))
	res := gitx.ClassifyPush(gitx.Push(ctx, o.runner, s.Dir, remote, branch, gitx.PushNormal))
	o.logger.Debug().Str("branch", branch).Str("cause", res.Cause.String()).Msg("push attempted")
	result := PushOutcome{Branch: branch, Cause: res.Cause, Output: res.Output}
	if res.OK {
		report.Success(fmt.Sprintf("Pushed %s to %s", branch, s.Target.URL))
		return result
	}

	switch {
	case res.Cause.Recoverable():
		report.Warn("Push was rejected, attempting to resolve")
	case res.Cause != gitx.CauseUnknown:
		heading, remediation := pushRemediation(res.Cause, s.Target.Host)
		report.Error("Push failed: " + strings.TrimSpace(res.Output))
		report.Hint(heading, remediation...)
		result.Err = stepError("push", ErrPushFailed, res.Output, remediation...)
		return result
	default:
		report.Error("Push failed: " + strings.TrimSpace(res.Output))
		ok, err := s.confirm(ctx, "Try to resolve the failure anyway?", cliio.Routine)
		if err != nil {
			result.Err = confirmErr(err)
			return result
		}
		if !ok {
			result.Err = stepError("push", ErrPushFailed, res.Output)
			return result
		}
	}

	resolution := o.resolver.Resolve(ctx, s, branch, res.Output)
	result.Resolution = &resolution
	result.Branch = resolution.Branch
	if resolution.OK {
		return result
	}
	result.Output = resolution.Output
	result.Err = stepError("push", resolution.Err, resolution.Output)
	return result
}

func pushRemediation(cause gitx.PushCause, host string) (string, []string) {
	if host == "" {
		host = gitx.DefaultHost
	}
	tokens := fmt.Sprintf("https://%s/settings/tokens", host)
	switch cause {
	case gitx.CauseNotFound:
		return "Please check:", []string{
			fmt.Sprintf("The repository exists on %s", host),
			"You have access to the repository",
			"Your git credentials are configured",
		}
	case gitx.CausePasswordAuthRemoved:
		return "Password authentication is no longer supported:", []string{
			"Generate a personal access token at " + tokens,
			"Enter the token instead of your password when git asks",
		}
	default:
		return "Authentication failed:", []string{
			"Generate a personal access token at " + tokens,
			"Use your username and the token as password when prompted",
			"Or configure SSH keys for passwordless access",
		}
	}
}

// confirmErr maps an aborted prompt onto ErrInterrupted. Other prompt
// failures are returned as they are.
func confirmErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, cliio.ErrAborted) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return fmt.Errorf("confirm: %w", err)
}
