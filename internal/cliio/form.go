// SPDX-License-Identifier: MIT
package cliio

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/skaphos/gitbuddy/internal/termstyle"
)

// FormPrompter renders prompts as huh forms. It needs an interactive stdin.
type FormPrompter struct {
	// Accessible switches huh to its screen-reader friendly mode.
	Accessible bool
}

var _ Prompter = (*FormPrompter)(nil)

// NewFormPrompter returns a FormPrompter. ACCESSIBLE in the environment turns
// on accessible mode.
func NewFormPrompter() *FormPrompter {
	_, accessible := os.LookupEnv("ACCESSIBLE")
	return &FormPrompter{Accessible: accessible}
}

// Interactive reports whether f is a terminal.
func Interactive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Theme maps the console colors onto huh's base theme.
func Theme() *huh.Theme {
	termstyle.CheckNoColor()
	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(termstyle.ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(termstyle.ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(termstyle.ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(termstyle.ColorPrimary)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(termstyle.ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(termstyle.ColorError)
	t.Focused.Description = t.Focused.Description.Foreground(termstyle.ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(termstyle.ColorMuted)
	return t
}

func (p *FormPrompter) run(ctx context.Context, field huh.Field, what string) error {
	if err := ctx.Err(); err != nil {
		return ErrAborted
	}
	if !Interactive(os.Stdin) {
		return fmt.Errorf("%s: stdin is not a terminal", what)
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(Theme()).
		WithAccessible(p.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ErrAborted
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// Input asks for free text, prefilled with defaultValue.
func (p *FormPrompter) Input(ctx context.Context, title, defaultValue string) (string, error) {
	value := defaultValue
	field := huh.NewInput().Title(title).Value(&value)
	if err := p.run(ctx, field, "input prompt failed"); err != nil {
		return "", err
	}
	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}

// Choose presents options as a select list.
func (p *FormPrompter) Choose(ctx context.Context, title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to choose from")
	}
	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Label, opt.Value)
	}
	selected := options[0].Value
	field := huh.NewSelect[string]().Title(title).Options(huhOptions...).Value(&selected)
	if err := p.run(ctx, field, "select prompt failed"); err != nil {
		return "", err
	}
	return selected, nil
}

// Confirm asks a yes/no question. Dangerous confirmations are typed out in
// full rather than toggled.
func (p *FormPrompter) Confirm(ctx context.Context, title string, level Level) (bool, error) {
	if level == Dangerous {
		var typed string
		field := huh.NewInput().
			Title(title).
			Description("Type 'yes' to confirm, anything else cancels.").
			Value(&typed)
		if err := p.run(ctx, field, "confirm prompt failed"); err != nil {
			return false, err
		}
		confirmed, _ := parseConfirm(typed, Dangerous)
		return confirmed, nil
	}
	confirmed := level == Routine
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)
	if level == Destructive {
		field = field.Description("This can overwrite commits on the remote.")
	}
	if err := p.run(ctx, field, "confirm prompt failed"); err != nil {
		return false, err
	}
	return confirmed, nil
}
