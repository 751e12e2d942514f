// SPDX-License-Identifier: MIT
package engine_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/gitx"
)

// scriptedRunner answers git calls from per-command queues. The last
// outcome of a queue repeats once the queue is drained.
type scriptedRunner struct {
	script map[string][]gitx.Outcome
	calls  []string
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{script: make(map[string][]gitx.Outcome)}
}

func (r *scriptedRunner) on(args string, outcomes ...gitx.Outcome) *scriptedRunner {
	r.script[args] = append(r.script[args], outcomes...)
	return r
}

func (r *scriptedRunner) Run(_ context.Context, _ string, args ...string) gitx.Outcome {
	joined := strings.Join(args, " ")
	r.calls = append(r.calls, joined)
	queue := r.script[joined]
	switch len(queue) {
	case 0:
		return gitx.Outcome{Output: fmt.Sprintf("unexpected call: %s", joined), ExitCode: 1}
	case 1:
		return queue[0]
	}
	r.script[joined] = queue[1:]
	return queue[0]
}

// count returns how many calls start with prefix.
func (r *scriptedRunner) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func ok(output string) gitx.Outcome {
	return gitx.Outcome{OK: true, Output: output}
}

func fail(output string) gitx.Outcome {
	return gitx.Outcome{Output: output, ExitCode: 1}
}

// scriptedConfirm answers confirmations in order and records each level.
type scriptedConfirm struct {
	answers []bool
	err     error
	asked   []cliio.Level
}

func (c *scriptedConfirm) Confirm(_ context.Context, _ string, level cliio.Level) (bool, error) {
	c.asked = append(c.asked, level)
	if c.err != nil {
		return false, c.err
	}
	if len(c.asked) > len(c.answers) {
		return false, nil
	}
	return c.answers[len(c.asked)-1], nil
}

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Info(msg string)    { r.lines = append(r.lines, "info: "+msg) }
func (r *recordingReporter) Success(msg string) { r.lines = append(r.lines, "success: "+msg) }
func (r *recordingReporter) Warn(msg string)    { r.lines = append(r.lines, "warn: "+msg) }
func (r *recordingReporter) Error(msg string)   { r.lines = append(r.lines, "error: "+msg) }
func (r *recordingReporter) Hint(heading string, lines ...string) {
	r.lines = append(r.lines, "hint: "+heading+" "+strings.Join(lines, "; "))
}

func (r *recordingReporter) text() string {
	return strings.Join(r.lines, "\n")
}
