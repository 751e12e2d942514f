// SPDX-License-Identifier: MIT
package gitbuddy

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	narrowTableWidth = 100
	tinyTableWidth   = 80

	pathCellLimit       = 72
	narrowPathCellLimit = 48
	tinyPathCellLimit   = 32
)

var getTerminalSize = term.GetSize

func tableWidth(cmd *cobra.Command) (int, bool) {
	if cmd == nil {
		return 0, false
	}
	file, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(file.Fd())
	if !isTerminalFD(fd) {
		return 0, false
	}
	width, _, err := getTerminalSize(fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// pathLimit picks the widest path cell that fits the terminal. Output
// that is not a terminal is never truncated.
func pathLimit(cmd *cobra.Command) int {
	width, ok := tableWidth(cmd)
	if !ok {
		return 0
	}
	return pathLimitForWidth(width)
}

func pathLimitForWidth(width int) int {
	switch {
	case width > 0 && width < tinyTableWidth:
		return tinyPathCellLimit
	case width > 0 && width < narrowTableWidth:
		return narrowPathCellLimit
	default:
		return pathCellLimit
	}
}

// truncatePath keeps the end of long paths, where the file name is.
func truncatePath(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[len(value)-limit:]
	}
	return "..." + value[len(value)-(limit-3):]
}
