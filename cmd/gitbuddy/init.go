// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a gitbuddy configuration file",
	Long:  "Creates a gitbuddy config file in the current directory by default.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cwd := flagDir
		if cwd == "" {
			var err error
			if cwd, err = os.Getwd(); err != nil {
				return err
			}
		}

		cfgPath, err := config.InitConfigPath(flagConfig, cwd)
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfgPath); err == nil && !force {
			in, ok := cmd.InOrStdin().(*os.File)
			if !ok || !isTerminalFD(int(in.Fd())) {
				return fmt.Errorf("config already exists at %q (use --force to overwrite)", cfgPath)
			}
			overwrite, err := cliio.PromptYesNo(cmd.OutOrStdout(), in, fmt.Sprintf("Overwrite %s? [y/N]: ", cfgPath))
			if err != nil {
				return err
			}
			if !overwrite {
				infof(cmd, "kept existing config %s", cfgPath)
				return nil
			}
		}

		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", cfgPath); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite existing config without prompting")

	rootCmd.AddCommand(initCmd)
}
