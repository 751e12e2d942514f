// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/skaphos/gitbuddy/internal/config"
	"github.com/skaphos/gitbuddy/internal/gitx"
)

// scriptedRunner answers git calls from per-command queues; the last
// outcome of a queue repeats.
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

func ok(output string) gitx.Outcome {
	return gitx.Outcome{OK: true, Output: output}
}

func fail(output string) gitx.Outcome {
	return gitx.Outcome{Output: output, ExitCode: 1}
}

type cliResult struct {
	out  string
	err  string
	code int
}

// useRunner routes every git call of the next commands to r.
func useRunner(r gitx.Runner) func() {
	prev := newRunner
	newRunner = func(*config.Config, zerolog.Logger) gitx.Runner { return r }
	return func() { newRunner = prev }
}

func resetFlags() {
	flagVerbose = 0
	flagQuiet = false
	flagConfig = ""
	flagNoColor = false
	flagDir = ""
	flagPlain = false
	for _, c := range []*cobra.Command{rootCmd, pushCmd, statusCmd, urlCmd, initCmd, versionCmd} {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func runCLI(stdin string, args ...string) cliResult {
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	code := ExecuteWithExitCode()
	return cliResult{out: out.String(), err: errOut.String(), code: code}
}
