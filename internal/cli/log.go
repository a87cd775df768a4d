// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// logOpts are the persistent logging flags.
type logOpts struct {
	verbose bool
	quiet   bool
	format  string
}

func addLogFlags(cmd *cobra.Command, o *logOpts) {
	f := cmd.PersistentFlags()
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log generation and query details")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "log warnings and errors only")
	f.StringVar(&o.format, "log-format", "text", "log format: text, logfmt, json")
}

// level maps the flags to a log level. --quiet wins over --verbose.
func (o logOpts) level() log.Level {
	switch {
	case o.quiet:
		return log.WarnLevel
	case o.verbose:
		return log.DebugLevel
	}
	return log.InfoLevel
}

var logFormatters = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"logfmt": log.LogfmtFormatter,
	"json":   log.JSONFormatter,
}

// newLogger returns a logger writing to w. Text logs carry a short clock
// time for terminals, structured logs a full RFC 3339 timestamp.
func newLogger(w io.Writer, o logOpts) (*log.Logger, error) {
	name := strings.ToLower(o.format)
	if name == "" {
		name = "text"
	}
	formatter, ok := logFormatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", o.format)
	}
	timeFormat := "15:04:05.00"
	if formatter != log.TextFormatter {
		timeFormat = time.RFC3339
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           o.level(),
		Formatter:       formatter,
	}), nil
}

// progress logs the elapsed time of one grid operation.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default() outside of it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
