// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/config"
	"github.com/skaphos/gitbuddy/internal/discovery"
	"github.com/skaphos/gitbuddy/internal/engine"
	"github.com/skaphos/gitbuddy/internal/gitx"
	"github.com/skaphos/gitbuddy/internal/logging"
	"github.com/skaphos/gitbuddy/internal/model"
	"github.com/skaphos/gitbuddy/internal/termstyle"
)

var (
	// newRunner is overridable in tests.
	newRunner = func(cfg *config.Config, logger zerolog.Logger) gitx.Runner {
		return gitx.NewGitRunner(cfg.Timeout(), logger)
	}
	// newPrompter is overridable in tests.
	newPrompter = defaultPrompter
	// listFiles is overridable in tests.
	listFiles = discovery.ListFiles
)

// app bundles what every command needs for one invocation.
type app struct {
	cfg      *config.Config
	cfgPath  string
	dir      string
	logger   zerolog.Logger
	closer   io.Closer
	runner   gitx.Runner
	console  *cliio.Console
	prompter cliio.Prompter
	color    bool
}

func newApp(cmd *cobra.Command, format string) (*app, error) {
	dir := flagDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	cfgPath, err := config.ResolveConfigPath(flagConfig, dir)
	if err != nil {
		return nil, err
	}
	cfg, found, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	color := shouldUseColorOutput(cmd, format) && termstyle.HasColorSupport()
	if !color {
		termstyle.DisableColor()
	}

	logger, closer, err := logging.New(logging.Options{
		Verbose: flagVerbose > 0,
		Quiet:   flagQuiet,
		NoColor: !color,
		File:    cfg.LogFile,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		infof(cmd, "warning: log file disabled: %v", err)
	}
	if found {
		debugf(cmd, "using config %s", cfgPath)
	}
	logger.Debug().Str("dir", dir).Str("config", cfgPath).Bool("config_found", found).Msg("starting")

	return &app{
		cfg:      cfg,
		cfgPath:  cfgPath,
		dir:      dir,
		logger:   logger,
		closer:   closer,
		runner:   newRunner(cfg, logger),
		console:  cliio.NewConsole(cmd.OutOrStdout(), color, flagQuiet),
		prompter: newPrompter(cmd),
		color:    color,
	}, nil
}

func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

func (a *app) orchestrator() *engine.Orchestrator {
	return engine.New(a.runner,
		engine.WithLogger(a.logger),
		engine.WithDefaultBranch(a.cfg.Defaults.DefaultBranch),
		engine.WithStageUntracked(a.cfg.StageUntracked()),
	)
}

func (a *app) session(target model.RemoteTarget, files []string, message string, confirm engine.Confirmer) *engine.Session {
	return &engine.Session{
		Dir:     a.dir,
		Target:  target,
		Remote:  a.cfg.Defaults.RemoteName,
		Files:   files,
		Message: message,
		Confirm: confirm,
		Report:  a.console,
	}
}

// defaultPrompter uses huh forms when stdin and stdout are terminals, and
// line prompts otherwise or with --plain.
func defaultPrompter(cmd *cobra.Command) cliio.Prompter {
	in, inFile := cmd.InOrStdin().(*os.File)
	out, outFile := cmd.OutOrStdout().(*os.File)
	if !flagPlain && inFile && outFile && isTerminalFD(int(in.Fd())) && isTerminalFD(int(out.Fd())) {
		return cliio.NewFormPrompter()
	}
	return cliio.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}
