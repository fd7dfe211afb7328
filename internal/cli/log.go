// Package cli implements the tagcloud command-line interface.
//
// The commands read tag records from JSON, YAML or HTML lists, lay them out
// and write the result in one or more output formats. Layouts and rendered
// artifacts are cached on disk so repeated runs are instant. The CLI is
// built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: Lay out records and write HTML, SVG, JSON, DOT, PNG, PDF or text
//   - layout: Compute a layout and save it as JSON
//   - visualize: Render a saved layout
//   - preview: Print the cloud in the terminal
//   - import: Convert YAML or HTML lists to JSON records
//   - serve: Run the HTTP API
//   - cache: Manage the local cache
//   - config: Write or check TOML settings
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
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

// done logs msg along with the elapsed time, e.g. "Rendered 3 formats (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
