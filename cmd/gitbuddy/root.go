// SPDX-License-Identifier: MIT

// Package gitbuddy contains the Cobra command tree for the gitbuddy CLI.
package gitbuddy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/engine"
)

// Exit codes. The highest severity observed during a run wins.
const (
	exitOK          = 0
	exitWarn        = 1
	exitError       = 2
	exitFatal       = 3
	exitInterrupted = 130
)

var (
	// Global flags
	flagVerbose int
	flagQuiet   bool
	flagConfig  string
	flagNoColor bool
	flagDir     string
	flagPlain   bool
	// exitCode tracks the highest severity observed during a command run.
	exitCode int
	// isTerminalFD is overridable in tests.
	isTerminalFD = term.IsTerminal
	// exitFunc is overridable in tests.
	exitFunc = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   "gitbuddy",
	Short: "Push a directory to a git remote without memorizing git",
	Long: "Git Buddy walks you through pushing the files in a directory to a remote repository: " +
		"it initializes the repository if needed, lets you pick which files to commit, configures the remote " +
		"and recovers from rejected pushes, asking before anything that could overwrite remote history.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// `NO_COLOR` is a standard opt-out and should behave like --no-color.
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			flagNoColor = true
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase output verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "override config file path")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "use line prompts instead of interactive forms")
}

// Execute runs the root command and exits with its code. SIGINT and SIGTERM
// cancel the session.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := ExecuteContext(ctx)
	stop()
	exitFunc(code)
}

// ExecuteWithExitCode runs the root command and returns a shell-friendly exit code.
func ExecuteWithExitCode() int {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command under ctx.
func ExecuteContext(ctx context.Context) int {
	exitCode = exitOK
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if isInterrupt(err) {
			_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "interrupted")
			return exitInterrupted
		}
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return exitFatal
	}
	return exitCode
}

func raiseExitCode(code int) {
	// Keep the highest severity: 0 success, 1 warning, 2 error, 3 fatal.
	if code > exitCode {
		exitCode = code
	}
}

func isInterrupt(err error) bool {
	return errors.Is(err, cliio.ErrAborted) || errors.Is(err, engine.ErrInterrupted) || errors.Is(err, context.Canceled)
}

func infof(cmd *cobra.Command, format string, args ...any) {
	if flagQuiet {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func debugf(cmd *cobra.Command, format string, args ...any) {
	if flagQuiet || flagVerbose <= 0 {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}

func shouldUseColorOutput(cmd *cobra.Command, format string) bool {
	if flagNoColor || !isTabularFormat(format) {
		return false
	}
	file, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isTerminalFD(int(file.Fd()))
}

func isTabularFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "table", "wide", "":
		return true
	default:
		return false
	}
}
