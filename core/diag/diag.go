// Package diag carries the recoverable diagnostics raised while building a tree.
//
// A diagnostic never stops a parse. Contract violations inside the core are a
// different class of failure and are raised through package invariant.
package diag

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Severity represents the class of a diagnostic.
type Severity int

const (
	SeverityError   Severity = iota // compile error, counted by the parse state
	SeverityWarn                    // always shown unless diagnostics are quiet
	SeverityWarning                 // shown only in verbose mode
	SeverityBug                     // internal error reported just before aborting
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warn"
	case SeverityWarning:
		return "warning"
	case SeverityBug:
		return "bug"
	default:
		return "unknown"
	}
}

// Prefix returns the text placed between the location and the message.
func (s Severity) Prefix() string {
	switch s {
	case SeverityWarn:
		return "[WARN] "
	case SeverityWarning:
		return "[WARNING] "
	case SeverityBug:
		return "[BUG] "
	default:
		return ""
	}
}

// Diagnostic is one message attributed to a source line.
type Diagnostic struct {
	File     string
	Line     int
	Severity Severity
	Message  string
}

// String renders "<file>:<line> <prefix><message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d %s%s", d.File, d.Line, d.Severity.Prefix(), d.Message)
}

// Sink receives diagnostics as they are raised.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector records diagnostics in arrival order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns how many diagnostics of the given severity were recorded.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Messages returns the bare message texts, useful in tests.
func (c *Collector) Messages() []string {
	msgs := make([]string, 0, len(c.Diagnostics))
	for _, d := range c.Diagnostics {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// Reset forgets everything recorded so far.
func (c *Collector) Reset() {
	c.Diagnostics = c.Diagnostics[:0]
}

// WriterSink prints one diagnostic per line.
type WriterSink struct {
	W     io.Writer
	Color bool
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
)

func (s *WriterSink) Report(d Diagnostic) {
	line := d.String()
	if s.Color {
		line = colorize(d.Severity, line)
	}
	fmt.Fprintln(s.W, line)
}

func colorize(sev Severity, line string) string {
	var color string
	switch sev {
	case SeverityError:
		color = colorRed
	case SeverityWarn, SeverityWarning:
		color = colorYellow
	case SeverityBug:
		color = colorPurple
	default:
		return line
	}
	var b strings.Builder
	b.WriteString(color)
	b.WriteString(line)
	b.WriteString(colorReset)
	return b.String()
}

// SlogSink forwards diagnostics to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

func (s *SlogSink) Report(d Diagnostic) {
	level := slog.LevelWarn
	switch d.Severity {
	case SeverityError, SeverityBug:
		level = slog.LevelError
	case SeverityWarning:
		level = slog.LevelInfo
	}
	s.Logger.Log(context.Background(), level, d.Message,
		slog.String("file", d.File),
		slog.Int("line", d.Line),
		slog.String("severity", d.Severity.String()))
}

// Tee reports every diagnostic to all sinks in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}
