// Package cli implements the bricklayer command-line interface.
//
// This package provides commands for generating bond patterns, planning the
// laying order, checking and rendering the results, and serving the same
// pipeline over HTTP. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - pattern: Generate or load the bond pattern of a wall
//   - steps: Plan the laying instructions for a pattern
//   - check: Verify a pattern and its instructions against a wall config
//   - render: Draw the wall elevation or the support graph
//   - visualize: Step through the laying order in the terminal
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Data goes to
// stdout so it can be redirected; logs and status lines go to stderr.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created,
// rounded to the millisecond, e.g. "Planned 12 strides (1.234s)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}
