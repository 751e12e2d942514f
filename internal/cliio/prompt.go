// SPDX-License-Identifier: MIT
package cliio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ErrAborted is returned by prompts when the user interrupts input or the
// input stream ends.
var ErrAborted = errors.New("input aborted")

// Level grades how much damage a confirmed action can do.
type Level int

const (
	// Routine actions default to yes.
	Routine Level = iota
	// Destructive actions may overwrite remote history and default to no.
	Destructive
	// Dangerous actions can discard other people's commits. They default to
	// no and only a typed "yes" confirms them.
	Dangerous
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Routine:
		return "routine"
	case Destructive:
		return "destructive"
	case Dangerous:
		return "dangerous"
	}
	return "routine"
}

// Option is one choice offered by Prompter.Choose.
type Option struct {
	Label string
	Value string
}

// Prompter asks the user for input. Every method returns ErrAborted when
// ctx is cancelled while waiting.
type Prompter interface {
	Input(ctx context.Context, title, defaultValue string) (string, error)
	Choose(ctx context.Context, title string, options []Option) (string, error)
	Confirm(ctx context.Context, title string, level Level) (bool, error)
}

// LinePrompter reads answers line by line. It is used when stdin is not a
// terminal or plain prompts were requested.
type LinePrompter struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

var _ Prompter = (*LinePrompter)(nil)

// NewLinePrompter returns a prompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out, lines: make(chan lineResult, 1)}
}

// start launches the single reader goroutine so a blocked read never holds
// up cancellation.
func (p *LinePrompter) start() {
	p.once.Do(func() {
		go func() {
			defer close(p.lines)
			scanner := bufio.NewScanner(p.in)
			for scanner.Scan() {
				p.lines <- lineResult{text: scanner.Text()}
			}
			err := scanner.Err()
			if err == nil {
				err = io.EOF
			}
			p.lines <- lineResult{err: err}
		}()
	})
}

// ReadLine writes prompt and returns the trimmed answer.
func (p *LinePrompter) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrAborted
	}
	if _, err := fmt.Fprint(p.out, prompt); err != nil {
		return "", err
	}
	p.start()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", ErrAborted
	case res, ok := <-p.lines:
		if !ok || res.err != nil {
			_, _ = fmt.Fprintln(p.out)
			return "", ErrAborted
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Input asks for free text. An empty answer yields defaultValue.
func (p *LinePrompter) Input(ctx context.Context, title, defaultValue string) (string, error) {
	prompt := title + ": "
	if defaultValue != "" {
		prompt = fmt.Sprintf("%s (%s): ", title, defaultValue)
	}
	answer, err := p.ReadLine(ctx, prompt)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Choose lists options by number. The answer may be the number, the value or
// the first letter of the value; an empty answer picks the first option.
func (p *LinePrompter) Choose(ctx context.Context, title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to choose from")
	}
	if _, err := fmt.Fprintln(p.out, title); err != nil {
		return "", err
	}
	for i, opt := range options {
		if _, err := fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt.Label); err != nil {
			return "", err
		}
	}
	for {
		answer, err := p.ReadLine(ctx, fmt.Sprintf("Choice (%s): ", options[0].Value))
		if err != nil {
			return "", err
		}
		if value, ok := matchOption(options, answer); ok {
			return value, nil
		}
		if _, err := fmt.Fprintf(p.out, "Please enter a number between 1 and %d\n", len(options)); err != nil {
			return "", err
		}
	}
}

func matchOption(options []Option, answer string) (string, bool) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return options[0].Value, true
	}
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1].Value, true
		}
		return "", false
	}
	for _, opt := range options {
		if strings.EqualFold(opt.Value, answer) {
			return opt.Value, true
		}
	}
	for _, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt.Value), answer) {
			return opt.Value, true
		}
	}
	return "", false
}

// Confirm asks a yes/no question, repeating until the answer is understood.
func (p *LinePrompter) Confirm(ctx context.Context, title string, level Level) (bool, error) {
	suffix := " (y/n) [y]: "
	switch level {
	case Destructive:
		suffix = " (y/n) [n]: "
	case Dangerous:
		suffix = " (type 'yes' to confirm) [no]: "
	}
	for {
		answer, err := p.ReadLine(ctx, title+suffix)
		if err != nil {
			return false, err
		}
		if ok, understood := parseConfirm(answer, level); understood {
			return ok, nil
		}
		if _, err := fmt.Fprintln(p.out, "Please enter 'y' or 'n'"); err != nil {
			return false, err
		}
	}
}

func parseConfirm(answer string, level Level) (bool, bool) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if level == Dangerous {
		return answer == "yes", true
	}
	switch answer {
	case "":
		return level == Routine, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
