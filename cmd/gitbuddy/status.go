// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/gitx"
)

type statusReport struct {
	Dir      string   `json:"dir"`
	Branch   string   `json:"branch,omitempty"`
	New      []string `json:"new"`
	Modified []string `json:"modified"`
	Deleted  []string `json:"deleted"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show new, modified and deleted files in the working directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		noHeaders, _ := cmd.Flags().GetBool("no-headers")
		format = strings.ToLower(strings.TrimSpace(format))
		if format != "table" && format != "json" {
			return fmt.Errorf("unsupported format %q (use table or json)", format)
		}

		a, err := newApp(cmd, format)
		if err != nil {
			return err
		}
		defer a.Close()

		if !gitx.HasRepoMarker(a.dir) {
			return fmt.Errorf("%s is not a git repository (run gitbuddy to initialize it)", a.dir)
		}
		out := gitx.StatusWithBranch(cmd.Context(), a.runner, a.dir)
		if !out.OK {
			return fmt.Errorf("git status: %w", out.Err())
		}
		changes := gitx.ParsePorcelainStatus(out.Output)
		branch := gitx.ParseBranchHeader(out.Output)

		if format == "json" {
			report := statusReport{
				Dir:      a.dir,
				Branch:   branch,
				New:      nonNil(changes.New),
				Modified: nonNil(changes.Modified),
				Deleted:  nonNil(changes.Deleted),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		if branch != "" {
			infof(cmd, "On branch %s", branch)
		}
		if changes.Empty() {
			infof(cmd, "Nothing to push, working tree clean")
			return nil
		}
		return writeChangeTable(cmd, a.color, noHeaders, changes)
	},
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func init() {
	addFormatFlag(statusCmd, "output format: table or json")
	addNoHeadersFlag(statusCmd)

	rootCmd.AddCommand(statusCmd)
}
