// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/discovery"
	"github.com/skaphos/gitbuddy/internal/engine"
	"github.com/skaphos/gitbuddy/internal/gitx"
	"github.com/skaphos/gitbuddy/internal/model"
	"github.com/skaphos/gitbuddy/internal/selection"
)

// errManualMode is returned when push is asked for index selection.
var errManualMode = errors.New("picking files by number needs the interactive session (run gitbuddy without arguments)")

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Commit and push the working directory in one pass",
	Long: "Runs a single init, add, commit, remote and push pass without the interactive loop. " +
		"New repositories push every file; existing ones push changed files unless --mode all is given. " +
		"Force pushes always ask for confirmation.",
	Args: cobra.NoArgs,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().String("url", "", "remote repository (https URL, scp-style URL or owner/repo)")
	pushCmd.Flags().StringP("message", "m", "", "commit message (default from config)")
	pushCmd.Flags().String("mode", "", "files to push: all or changed (default: all for new repositories, changed otherwise)")
	pushCmd.Flags().StringP("branch", "b", "", "branch to push (default: checked-out branch)")
	pushCmd.Flags().BoolP("yes", "y", false, "skip routine confirmations; force pushes still ask")
	_ = pushCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, _ []string) error {
	rawURL, _ := cmd.Flags().GetString("url")
	message, _ := cmd.Flags().GetString("message")
	rawMode, _ := cmd.Flags().GetString("mode")
	branch, _ := cmd.Flags().GetString("branch")
	yes, _ := cmd.Flags().GetBool("yes")

	a, err := newApp(cmd, "table")
	if err != nil {
		return err
	}
	defer a.Close()
	ctx := cmd.Context()

	target, err := gitx.ParseRemoteTarget(rawURL, a.cfg.Defaults.Host)
	if err != nil {
		return err
	}
	if branch != "" {
		target = target.WithBranch(branch)
	}

	plan, err := a.planPush(ctx, target, rawMode)
	if err != nil {
		return err
	}
	if message != "" {
		plan.Message = message
	}
	debugf(cmd, "pushing %d file(s) to %s", len(plan.Files), plan.Target.URL)

	var confirm engine.Confirmer = a.prompter
	if yes {
		confirm = yesConfirmer{next: a.prompter}
	} else {
		a.writeSummary(plan)
		ok, err := a.prompter.Confirm(ctx, "Proceed with git operations?", cliio.Routine)
		if err != nil {
			return err
		}
		if !ok {
			infof(cmd, "nothing done")
			return nil
		}
	}

	rep := a.execute(ctx, plan, confirm)
	if isInterrupt(rep.Err) {
		return rep.Err
	}
	if !rep.OK() {
		raiseExitCode(exitWarn)
	}
	return nil
}

func (a *app) planPush(ctx context.Context, target model.RemoteTarget, rawMode string) (pushPlan, error) {
	plan := pushPlan{
		Target:  target,
		Message: a.cfg.Defaults.CommitMessage,
		NewRepo: !gitx.HasRepoMarker(a.dir),
		Mode:    selection.ChangedOnly,
	}
	if plan.NewRepo {
		plan.Mode = selection.All
	}
	mode, err := selection.ParseMode(rawMode, plan.Mode)
	if err != nil {
		return plan, err
	}
	if mode == selection.Manual {
		return plan, errManualMode
	}
	plan.Mode = mode

	files, err := listFiles(ctx, discovery.Options{Root: a.dir, Exclude: a.cfg.Exclude})
	if err != nil {
		return plan, err
	}
	var changes model.ChangeSet
	if !plan.NewRepo {
		out := gitx.Status(ctx, a.runner, a.dir)
		if !out.OK {
			return plan, fmt.Errorf("git status: %w", out.Err())
		}
		changes = gitx.ClassifyStatus(out)
	}
	plan.Files = selection.Select(a.dir, files, changes, plan.Mode)
	return plan, nil
}

// yesConfirmer approves routine confirmations and defers the rest.
type yesConfirmer struct {
	next engine.Confirmer
}

func (y yesConfirmer) Confirm(ctx context.Context, title string, level cliio.Level) (bool, error) {
	if level == cliio.Routine {
		return true, nil
	}
	return y.next.Confirm(ctx, title, level)
}
