// SPDX-License-Identifier: MIT
package termstyle

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for console messages. AdaptiveColor picks a variant for
// light and dark backgrounds.
var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}
)

// Message styles.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleWarn    = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleError   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBanner  = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2)
)

// Message prefixes. Each message kind carries an icon as well as a color so
// output stays readable without color.
const (
	IconSuccess = "✓"
	IconInfo    = "→"
	IconWarn    = "!"
	IconError   = "✗"
	IconDetail  = "•"
)

// HasColorSupport reports false when NO_COLOR is present (any value) or
// TERM is "dumb".
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return !strings.EqualFold(os.Getenv("TERM"), "dumb")
}

// CheckNoColor switches lipgloss to plain ASCII when color is unsupported.
func CheckNoColor() {
	if !HasColorSupport() {
		DisableColor()
	}
}

// DisableColor strips color from every lipgloss style.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Banner renders title framed in a rounded box.
func Banner(title string) string {
	return StyleBanner.Render(title)
}
