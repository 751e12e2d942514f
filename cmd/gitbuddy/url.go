// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/gitx"
)

var urlCmd = &cobra.Command{
	Use:   "url <repository>",
	Short: "Validate a repository URL and print its canonical https form",
	Example: "  gitbuddy url alice/project\n" +
		"  gitbuddy url git@github.com:alice/project.git",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		a, err := newApp(cmd, format)
		if err != nil {
			return err
		}
		defer a.Close()

		target, err := gitx.ParseRemoteTarget(args[0], a.cfg.Defaults.Host)
		if err != nil {
			infof(cmd, "%v", err)
			raiseExitCode(exitError)
			return nil
		}
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(target)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), target.URL)
		return err
	},
}

func init() {
	addFormatFlag(urlCmd, "output format: table or json")

	rootCmd.AddCommand(urlCmd)
}
