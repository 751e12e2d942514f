// SPDX-License-Identifier: MIT

// Package engine drives the init, stage, commit, remote and push sequence
// against one repository and recovers from rejected pushes.
package engine

import (
	"context"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/model"
)

// DefaultRemote is the remote name used when a session does not set one.
const DefaultRemote = "origin"

// Confirmer asks the user to approve an action.
type Confirmer interface {
	Confirm(ctx context.Context, title string, level cliio.Level) (bool, error)
}

// Reporter receives user-facing progress messages.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)
	Hint(heading string, lines ...string)
}

// Session is the state of one pass over one repository.
type Session struct {
	// Dir is the working directory git runs in.
	Dir string
	// Target is the validated remote. Target.Branch may be empty, in which
	// case the checked-out branch is detected before pushing, and is updated
	// when the pushed branch differs from the requested one.
	Target model.RemoteTarget
	// Remote is the remote name, DefaultRemote when empty.
	Remote string
	// Files are the selected paths, relative to Dir.
	Files []string
	// Message is the commit message.
	Message string

	Confirm Confirmer
	Report  Reporter
}

func (s *Session) remote() string {
	if s.Remote == "" {
		return DefaultRemote
	}
	return s.Remote
}

func (s *Session) reporter() Reporter {
	if s.Report == nil {
		return nopReporter{}
	}
	return s.Report
}

func (s *Session) confirm(ctx context.Context, title string, level cliio.Level) (bool, error) {
	if s.Confirm == nil {
		return false, nil
	}
	return s.Confirm.Confirm(ctx, title, level)
}

type nopReporter struct{}

func (nopReporter) Info(string)            {}
func (nopReporter) Success(string)         {}
func (nopReporter) Warn(string)            {}
func (nopReporter) Error(string)           {}
func (nopReporter) Hint(string, ...string) {}

// AutoConfirm approves every confirmation up to Max.
type AutoConfirm struct {
	Max cliio.Level
}

// Confirm approves levels at or below Max.
func (a AutoConfirm) Confirm(_ context.Context, _ string, level cliio.Level) (bool, error) {
	return level <= a.Max, nil
}
