// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/skaphos/gitbuddy/internal/cliio"
	"github.com/skaphos/gitbuddy/internal/model"
	"github.com/skaphos/gitbuddy/internal/selection"
	"github.com/skaphos/gitbuddy/internal/termstyle"
)

func writeListing(cmd *cobra.Command, color bool, files []model.FileEntry) error {
	limit := pathLimit(cmd)
	rows := make([][]string, 0, len(files))
	for i, f := range files {
		size := uint64(0)
		if f.Size > 0 {
			size = uint64(f.Size)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			truncatePath(f.Path, limit),
			humanize.Bytes(size),
		})
	}
	return cliio.WriteTable(cmd.OutOrStdout(), color, false, []string{"#", "PATH", "SIZE"}, rows)
}

type changeGroup struct {
	label string
	color string
	style lipgloss.Style
	paths []string
}

func changeGroups(cs model.ChangeSet) []changeGroup {
	return []changeGroup{
		{label: "new", color: termstyle.New, style: termstyle.StyleSuccess, paths: cs.New},
		{label: "modified", color: termstyle.Modified, style: termstyle.StyleWarn, paths: cs.Modified},
		{label: "deleted", color: termstyle.Deleted, style: termstyle.StyleError, paths: cs.Deleted},
	}
}

// writeChangeTable prints one row per changed path, grouped by kind.
func writeChangeTable(cmd *cobra.Command, color, noHeaders bool, cs model.ChangeSet) error {
	limit := pathLimit(cmd)
	rows := make([][]string, 0, cs.Len())
	for _, g := range changeGroups(cs) {
		for _, p := range g.paths {
			rows = append(rows, []string{termstyle.Colorize(color, g.label, g.color), truncatePath(p, limit)})
		}
	}
	return cliio.WriteTable(cmd.OutOrStdout(), color, noHeaders, []string{"STATUS", "PATH"}, rows)
}

// writeChangeSummary prints the grouped status shown before choosing files.
func writeChangeSummary(console *cliio.Console, cs model.ChangeSet) {
	console.Title("Repository status")
	for _, g := range changeGroups(cs) {
		if len(g.paths) == 0 {
			continue
		}
		console.Println(fmt.Sprintf("%s (%d):", g.label, len(g.paths)))
		for _, p := range g.paths {
			if console.Color() {
				p = g.style.Render(p)
			}
			console.Println("  " + p)
		}
	}
}

func modeLabel(mode selection.Mode) string {
	switch mode {
	case selection.ChangedOnly:
		return "changed files only"
	case selection.Manual:
		return "selected files"
	default:
		return "all files"
	}
}

func reportItems(console *cliio.Console, reports []selection.ItemReport) {
	for _, r := range reports {
		switch r.Status {
		case selection.ItemAdded:
			console.Success("Selected " + r.Path)
		case selection.ItemDuplicate:
			console.Info("Already selected " + r.Path)
		case selection.ItemOutOfRange:
			console.Warn(fmt.Sprintf("No file with number %d", r.Index))
		case selection.ItemNotNumber:
			console.Warn(fmt.Sprintf("%q is not a number", r.Raw))
		}
	}
}
