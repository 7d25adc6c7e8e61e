package parser

import (
	"fmt"

	"github.com/opal-lang/semact/core/diag"
	"github.com/opal-lang/semact/core/invariant"
)

// report sends one diagnostic at the current position.
func (a *Actions) report(sev diag.Severity, message string) {
	if a.telemetry != nil {
		a.telemetry.count(sev)
	}
	a.sink.Report(diag.Diagnostic{
		File:     a.state.Pos.File,
		Line:     a.state.Pos.Line,
		Severity: sev,
		Message:  message,
	})
}

// errorf reports a compile error. Errors are never suppressed and they fail the parse
// without stopping it.
func (a *Actions) errorf(format string, args ...interface{}) {
	a.state.Errors++
	a.report(diag.SeverityError, fmt.Sprintf(format, args...))
}

// warn reports unless diagnostics are quiet.
func (a *Actions) warn(message string) {
	if a.config.verbosity == VerbosityQuiet {
		return
	}
	a.report(diag.SeverityWarn, message)
}

// warning reports only in verbose mode.
func (a *Actions) warning(message string) {
	if !a.verbose() {
		return
	}
	a.report(diag.SeverityWarning, message)
}

// warningUnlessInline reports constructs that inline scripts use on purpose.
func (a *Actions) warningUnlessInline(message string) {
	if a.config.inline {
		return
	}
	a.warning(message)
}

// atLine runs fn with the current line temporarily moved to line, so diagnostics
// point at the flagged node rather than at the reduction that found it.
func (a *Actions) atLine(line int, fn func()) {
	if line <= 0 {
		fn()
		return
	}
	saved := a.state.Pos.Line
	a.state.Pos.Line = line
	defer func() { a.state.Pos.Line = saved }()
	fn()
}

// Guard runs one or more actions and turns a contract violation into a [BUG]
// diagnostic plus an error. The parse must be abandoned when Guard returns an
// error. Panics that are not contract violations propagate unchanged.
func (a *Actions) Guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		v, ok := invariant.AsViolation(r)
		if !ok {
			panic(r)
		}
		a.depth = 0
		a.report(diag.SeverityBug, v.Message)
		err = fmt.Errorf("parse aborted at %s: %w", a.state.Pos, v)
	}()
	fn()
	return nil
}
