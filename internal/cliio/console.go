// SPDX-License-Identifier: MIT
package cliio

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skaphos/gitbuddy/internal/termstyle"
)

// Console writes user-facing progress lines, each prefixed with an icon.
type Console struct {
	out   io.Writer
	color bool
	quiet bool
}

// NewConsole returns a Console writing to out. With color false the lines are
// plain text; with quiet true only warnings and errors are written.
func NewConsole(out io.Writer, color, quiet bool) *Console {
	return &Console{out: out, color: color, quiet: quiet}
}

// Out is the underlying writer.
func (c *Console) Out() io.Writer { return c.out }

// Color reports whether styled output is enabled.
func (c *Console) Color() bool { return c.color }

func (c *Console) line(style lipgloss.Style, icon, msg string) {
	prefix := icon
	if c.color {
		prefix = style.Render(icon)
	}
	_, _ = fmt.Fprintf(c.out, "%s %s\n", prefix, msg)
}

// Success reports a completed step.
func (c *Console) Success(msg string) {
	if c.quiet {
		return
	}
	c.line(termstyle.StyleSuccess, termstyle.IconSuccess, msg)
}

// Info reports progress.
func (c *Console) Info(msg string) {
	if c.quiet {
		return
	}
	c.line(termstyle.StyleInfo, termstyle.IconInfo, msg)
}

// Warn reports a recoverable problem.
func (c *Console) Warn(msg string) {
	c.line(termstyle.StyleWarn, termstyle.IconWarn, msg)
}

// Error reports a failure. Multi-line output is indented under the first line.
func (c *Console) Error(msg string) {
	first, rest, _ := strings.Cut(strings.TrimRight(msg, "\n"), "\n")
	c.line(termstyle.StyleError, termstyle.IconError, first)
	for _, l := range strings.Split(rest, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		_, _ = fmt.Fprintf(c.out, "    %s\n", l)
	}
}

// Hint lists remediation steps under a heading.
func (c *Console) Hint(heading string, lines ...string) {
	if len(lines) == 0 {
		return
	}
	title := heading
	if c.color {
		title = termstyle.StyleMuted.Render(heading)
	}
	_, _ = fmt.Fprintln(c.out, title)
	for _, l := range lines {
		_, _ = fmt.Fprintf(c.out, "  %s %s\n", termstyle.IconDetail, l)
	}
}

// Title writes a bold heading.
func (c *Console) Title(msg string) {
	if c.quiet {
		return
	}
	if c.color {
		msg = termstyle.StyleTitle.Render(msg)
	}
	_, _ = fmt.Fprintln(c.out, msg)
}

// Banner writes the framed application banner.
func (c *Console) Banner(title string) {
	if c.quiet {
		return
	}
	if !c.color {
		_, _ = fmt.Fprintf(c.out, "== %s ==\n", title)
		return
	}
	_, _ = fmt.Fprintln(c.out, termstyle.Banner(title))
}

// Println writes msg verbatim.
func (c *Console) Println(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}
