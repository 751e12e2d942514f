// SPDX-License-Identifier: MIT
package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// pipeGrace bounds how long Run waits for inherited output pipes to close
// after the command was killed or exited.
const pipeGrace = 2 * time.Second

// DefaultTimeout is the wall-clock budget for a single git invocation.
const DefaultTimeout = 30 * time.Second

// Termination says how an invocation ended. Exactly one holds per Outcome.
type Termination int

const (
	// Completed means the process ran and exited; ExitCode is meaningful.
	Completed Termination = iota
	// TimedOut means the process was killed after the timeout elapsed.
	TimedOut
	// SpawnFailed means the process could not be started at all.
	SpawnFailed
)

// String returns a short name for the termination kind.
func (t Termination) String() string {
	switch t {
	case Completed:
		return "completed"
	case TimedOut:
		return "timeout"
	case SpawnFailed:
		return "spawn_failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one git invocation.
type Outcome struct {
	// OK is true only when the process completed with exit code 0.
	OK bool
	// Output is stdout followed by stderr, or a description of why the
	// process did not complete.
	Output string
	// Termination says which of completed/timeout/spawn failure happened.
	Termination Termination
	// ExitCode is the process exit code when Termination is Completed.
	ExitCode int
}

// Text returns the output with surrounding whitespace removed.
func (o Outcome) Text() string {
	return strings.TrimSpace(o.Output)
}

// Err converts a failed outcome into an error carrying the output text.
// It returns nil for successful outcomes.
func (o Outcome) Err() error {
	if o.OK {
		return nil
	}
	text := o.Text()
	if text == "" {
		text = o.Termination.String()
	}
	return errors.New(text)
}

// Runner executes git commands in a given repo directory.
// This interface allows mocking in tests.
type Runner interface {
	// Run executes git with args in dir and reports how it went. It never
	// returns a Go error; failures are described by the Outcome.
	Run(ctx context.Context, dir string, args ...string) Outcome
}

// GitRunner is the default Runner implementation that shells out to git.
type GitRunner struct {
	// GitBin is the path to the git binary. Defaults to "git".
	GitBin string
	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
	// Logger receives one debug event per invocation.
	Logger zerolog.Logger
}

// NewGitRunner returns a GitRunner with the given timeout and logger.
func NewGitRunner(timeout time.Duration, logger zerolog.Logger) *GitRunner {
	return &GitRunner{Timeout: timeout, Logger: logger}
}

// Run executes a git command. The caller's cancellation is deliberately not
// propagated to the child: a running command is bounded only by Timeout.
func (g *GitRunner) Run(ctx context.Context, dir string, args ...string) Outcome {
	if len(args) == 0 {
		return Outcome{Termination: SpawnFailed, Output: "no git arguments given"}
	}
	bin := g.GitBin
	if bin == "" {
		bin = "git"
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin, args...) //#nosec G204 -- args are constructed internally
	if dir != "" {
		cmd.Dir = dir
	}
	// git push spawns helpers (git-remote-https, ssh) that hold the pipes.
	setProcessGroup(cmd)
	cmd.WaitDelay = pipeGrace
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	out := outcomeFor(runCtx, err, stdout.String()+stderr.String(), timeout)

	g.Logger.Debug().
		Str("dir", dir).
		Strs("args", args).
		Dur("took", time.Since(start)).
		Str("termination", out.Termination.String()).
		Int("exit_code", out.ExitCode).
		Msg("git")
	return out
}

func outcomeFor(runCtx context.Context, err error, combined string, timeout time.Duration) Outcome {
	if err == nil {
		return Outcome{OK: true, Output: combined, Termination: Completed}
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Outcome{Termination: TimedOut, Output: TimeoutMessage(timeout), ExitCode: -1}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Outcome{Output: combined, Termination: Completed, ExitCode: exitErr.ExitCode()}
	}
	return Outcome{Output: err.Error(), Termination: SpawnFailed, ExitCode: -1}
}

// TimeoutMessage is the output reported for a timed-out invocation.
func TimeoutMessage(timeout time.Duration) string {
	return fmt.Sprintf("Command timed out after %d seconds", int(timeout.Round(time.Second)/time.Second))
}
