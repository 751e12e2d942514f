// SPDX-License-Identifier: MIT

// Package logging builds the diagnostic logger shared by the CLI, the engine
// and the git runner.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation settings for the optional log file.
const (
	LogMaxSizeMB   = 10
	LogMaxBackups  = 3
	LogMaxAgeDays  = 28
	logDirPerm     = 0o750
	consoleTimeFmt = time.Kitchen
)

// Options selects level and destinations.
type Options struct {
	Verbose bool
	Quiet   bool
	// NoColor disables ANSI color in console output.
	NoColor bool
	// File is an optional log file path. Empty disables file logging.
	File string
	// Console receives human readable log lines; os.Stderr when nil.
	Console io.Writer
}

// Level maps the verbosity flags onto a zerolog level.
func Level(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a logger writing to the console and, when opts.File is set, to
// a rotating file. The returned closer releases the file and is never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: NewRedactingWriter(console), TimeFormat: consoleTimeFmt, NoColor: opts.NoColor}
	level := Level(opts.Verbose, opts.Quiet)

	if opts.File == "" {
		return zerolog.New(cw).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), logDirPerm); err != nil {
		logger := zerolog.New(cw).Level(level).With().Timestamp().Logger()
		return logger, nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays,
	}
	// The file always records debug detail; the console honours the flags.
	writer := zerolog.MultiLevelWriter(
		levelWriter{Writer: cw, min: level},
		NewRedactingWriter(lj),
	)
	logger := zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return logger, lj, nil
}

// levelWriter drops events below min.
type levelWriter struct {
	io.Writer
	min zerolog.Level
}

func (w levelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < w.min {
		return len(p), nil
	}
	return w.Write(p)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// credentialPatterns match secrets that git output can echo back, such as
// credentials embedded in remote URLs and host access tokens.
var credentialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(https?://)[^/\s:@]+:[^/\s@]+@`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{20,}`),
}

// Redact masks credentials in s.
func Redact(s string) string {
	s = credentialPatterns[0].ReplaceAllString(s, "${1}[REDACTED]@")
	for _, re := range credentialPatterns[1:] {
		s = re.ReplaceAllString(s, "[REDACTED]")
	}
	return s
}

// RedactingWriter masks credentials before writing.
type RedactingWriter struct {
	w io.Writer
}

// NewRedactingWriter wraps w.
func NewRedactingWriter(w io.Writer) *RedactingWriter {
	return &RedactingWriter{w: w}
}

// Write writes the redacted form of p and reports len(p) on success.
func (rw *RedactingWriter) Write(p []byte) (int, error) {
	if _, err := rw.w.Write([]byte(Redact(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
