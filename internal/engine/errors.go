// SPDX-License-Identifier: MIT
package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInitFailed marks a failed `git init`.
	ErrInitFailed = errors.New("repository init failed")
	// ErrStageFailed marks a path that could not be staged.
	ErrStageFailed = errors.New("staging failed")
	// ErrCommitFailed marks a generic commit failure.
	ErrCommitFailed = errors.New("commit failed")
	// ErrIdentityNotConfigured marks a commit refused for missing user.name/user.email.
	ErrIdentityNotConfigured = errors.New("git identity not configured")
	// ErrRemoteFailed marks a failure to add or update the remote.
	ErrRemoteFailed = errors.New("remote configuration failed")
	// ErrPushFailed marks a push failure that is not eligible for conflict resolution.
	ErrPushFailed = errors.New("push failed")
	// ErrPushRejected marks a push whose recovery strategies were exhausted.
	ErrPushRejected = errors.New("push rejected")
	// ErrDeclined marks a confirmation the user answered with no.
	ErrDeclined = errors.New("declined by user")
	// ErrInterrupted marks a session ended by an interrupt signal.
	ErrInterrupted = errors.New("interrupted")
)

// StepError describes why one orchestration step failed.
type StepError struct {
	// Step names the failed step, for example "commit".
	Step string
	// Path is set when a single file caused the failure.
	Path string
	// Output is the verbatim git output, if any.
	Output string
	// Remediation lists commands or actions the user can take.
	Remediation []string
	// Err is the sentinel classifying the failure.
	Err error
}

func (e *StepError) Error() string {
	var b strings.Builder
	b.WriteString(e.Step)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&b, ": %s", out)
	}
	return b.String()
}

func (e *StepError) Unwrap() error { return e.Err }

func stepError(step string, sentinel error, output string, remediation ...string) *StepError {
	return &StepError{Step: step, Err: sentinel, Output: output, Remediation: remediation}
}
