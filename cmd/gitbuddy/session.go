// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/discovery"
	"github.com/skaphos/gitbuddy/internal/engine"
	"github.com/skaphos/gitbuddy/internal/gitx"
	"github.com/skaphos/gitbuddy/internal/model"
	"github.com/skaphos/gitbuddy/internal/selection"
)

const quitChoice = "quit"

// pushPlan is everything decided before git runs.
type pushPlan struct {
	Target  model.RemoteTarget
	Mode    selection.Mode
	Files   []string
	Message string
	NewRepo bool
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, "table")
	if err != nil {
		return err
	}
	defer a.Close()

	a.console.Banner("Git Buddy")
	err = a.interactiveLoop(cmd.Context(), cmd)
	if isInterrupt(err) {
		a.console.Println("")
		a.goodbye()
		return nil
	}
	return err
}

func (a *app) interactiveLoop(ctx context.Context, cmd *cobra.Command) error {
	for {
		target, quit, err := a.promptTarget(ctx)
		if err != nil {
			return err
		}
		if quit {
			a.goodbye()
			return nil
		}

		plan, proceed, err := a.planInteractive(ctx, cmd, target)
		if isInterrupt(err) {
			return err
		}
		if err != nil {
			a.console.Error(err.Error())
			continue
		}
		if !proceed {
			continue
		}

		rep := a.execute(ctx, plan, a.prompter)
		if isInterrupt(rep.Err) {
			return rep.Err
		}

		again, err := a.prompter.Confirm(ctx, "Push to another repository?", cliio.Routine)
		if err != nil {
			return err
		}
		if !again {
			a.goodbye()
			return nil
		}
	}
}

func (a *app) promptTarget(ctx context.Context) (model.RemoteTarget, bool, error) {
	for {
		raw, err := a.prompter.Input(ctx, "Repository URL (owner/repo, or 'quit' to exit)", "")
		if err != nil {
			return model.RemoteTarget{}, false, err
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case quitChoice, "q", "exit":
			return model.RemoteTarget{}, true, nil
		}
		target, err := gitx.ParseRemoteTarget(raw, a.cfg.Defaults.Host)
		if err != nil {
			a.console.Error(err.Error())
			continue
		}
		a.console.Success("Repository: " + target.URL)
		return target, false, nil
	}
}

// planInteractive decides files, mode and message. It returns false when the
// user backed out or there is nothing to push.
func (a *app) planInteractive(ctx context.Context, cmd *cobra.Command, target model.RemoteTarget) (pushPlan, bool, error) {
	plan := pushPlan{Target: target, Mode: selection.All, NewRepo: !gitx.HasRepoMarker(a.dir)}
	files, err := listFiles(ctx, discovery.Options{Root: a.dir, Exclude: a.cfg.Exclude})
	if err != nil {
		return plan, false, fmt.Errorf("list files: %w", err)
	}

	var changes model.ChangeSet
	if plan.NewRepo {
		if len(files) == 0 {
			a.console.Warn("No files to push in " + a.dir)
			return plan, false, nil
		}
		a.console.Info("New repository, all files will be pushed")
		if err := writeListing(cmd, a.color, files); err != nil {
			return plan, false, err
		}
	} else {
		out := gitx.Status(ctx, a.runner, a.dir)
		if !out.OK {
			a.console.Error("Could not read repository status: " + out.Text())
			return plan, false, nil
		}
		changes = gitx.ClassifyStatus(out)
		if changes.Empty() {
			a.console.Info("No changes to push")
			return plan, false, nil
		}
		writeChangeSummary(a.console, changes)
		choice, err := a.prompter.Choose(ctx, "Which files should be pushed?", []cliio.Option{
			{Label: "Changed files only", Value: string(selection.ChangedOnly)},
			{Label: "All files", Value: string(selection.All)},
			{Label: "Pick files by number", Value: string(selection.Manual)},
			{Label: "Back to the repository prompt", Value: quitChoice},
		})
		if err != nil {
			return plan, false, err
		}
		if choice == quitChoice {
			return plan, false, nil
		}
		plan.Mode = selection.Mode(choice)
	}

	if plan.Mode == selection.Manual {
		plan.Files, err = a.pickFiles(ctx, cmd, files)
		if err != nil {
			return plan, false, err
		}
	} else {
		plan.Files = selection.Select(a.dir, files, changes, plan.Mode)
	}
	if len(plan.Files) == 0 {
		a.console.Warn("No files selected")
		return plan, false, nil
	}

	plan.Message, err = a.prompter.Input(ctx, "Commit message", a.cfg.Defaults.CommitMessage)
	if err != nil {
		return plan, false, err
	}

	a.writeSummary(plan)
	ok, err := a.prompter.Confirm(ctx, "Proceed with git operations?", cliio.Routine)
	if err != nil {
		return plan, false, err
	}
	return plan, ok, nil
}

func (a *app) pickFiles(ctx context.Context, cmd *cobra.Command, files []model.FileEntry) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if err := writeListing(cmd, a.color, files); err != nil {
		return nil, err
	}
	picker := selection.NewPicker(files)
	prompt := fmt.Sprintf("File numbers, comma separated ('%s' to finish)", selection.DoneWord)
	for {
		raw, err := a.prompter.Input(ctx, prompt, "")
		if err != nil {
			return nil, err
		}
		if selection.IsDone(raw) {
			return picker.Paths(), nil
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		reportItems(a.console, picker.Add(raw))
	}
}

func (a *app) writeSummary(plan pushPlan) {
	a.console.Title("Summary")
	a.console.Println("Repository:     " + plan.Target.URL)
	a.console.Println(fmt.Sprintf("Files:          %d (%s)", len(plan.Files), modeLabel(plan.Mode)))
	a.console.Println("Commit message: " + plan.Message)
}

func (a *app) execute(ctx context.Context, plan pushPlan, confirm engine.Confirmer) engine.Report {
	s := a.session(plan.Target, plan.Files, plan.Message, confirm)
	rep := a.orchestrator().Run(ctx, s)
	a.logger.Debug().
		Str("state", rep.State.String()).
		Str("branch", rep.Branch).
		Str("cause", rep.Cause.String()).
		Err(rep.Err).
		Msg("push sequence finished")

	switch {
	case rep.OK():
		a.console.Success(fmt.Sprintf("Success! Your files have been pushed to %s (%s)", s.Target.URL, rep.Branch))
	case isInterrupt(rep.Err):
		a.console.Warn("Interrupted")
	case errors.Is(rep.Err, engine.ErrDeclined):
		a.console.Warn("Stopped, the remote was left unchanged")
	default:
		a.console.Warn(fmt.Sprintf("Stopped after step %q", rep.Reached.String()))
	}
	return rep
}

func (a *app) goodbye() {
	a.console.Println("Goodbye!")
}
