package trace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/diag"
	"github.com/opal-lang/semact/runtime/parser"
	"github.com/opal-lang/semact/runtime/scope"
)

// Runner replays traces. The zero value is ready to use.
type Runner struct {
	// Sink receives every diagnostic as it is reported, in addition to the
	// collected Result.Diagnostics.
	Sink diag.Sink
	// Logger receives action tracing when Debug is set.
	Logger *slog.Logger
	Debug  bool

	// Verbosity and Inline override the trace's own settings when non-nil.
	Verbosity *parser.Verbosity
	Inline    *bool
}

// Result is the outcome of a replay.
type Result struct {
	Tree        *ast.Node
	Diagnostics []diag.Diagnostic
	// Locals is the activation's local table after the compilation unit closed.
	Locals    []string
	Errors    int
	Telemetry parser.Telemetry
}

// Failed reports whether the replayed parse reported errors.
func (r *Result) Failed() bool {
	return r.Errors > 0
}

// Run replays tr from a fresh parse state. A contract violation inside an action
// stops the replay; its [BUG] diagnostic is still delivered to the Sink.
func (r *Runner) Run(tr *Trace) (*Result, error) {
	collector := &diag.Collector{}
	sink := diag.Sink(collector)
	if r.Sink != nil {
		sink = diag.Tee(collector, r.Sink)
	}

	verbosity := tr.VerbosityLevel()
	if r.Verbosity != nil {
		verbosity = *r.Verbosity
	}
	inline := tr.Inline
	if r.Inline != nil {
		inline = *r.Inline
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	activation := scope.NewActivation(tr.Locals...)
	opts := []parser.ParserOpt{
		parser.WithFile(tr.File),
		parser.WithVerbosity(verbosity),
		parser.WithSink(sink),
		parser.WithLogger(logger),
		parser.WithActivation(activation),
		parser.WithTelemetryBasic(),
	}
	if inline {
		opts = append(opts, parser.WithInlineScript())
	}
	if r.Debug {
		opts = append(opts, parser.WithDebugPaths(), parser.WithDebugDetailed())
	}

	x := &replay{
		actions: parser.New(opts...),
		regs:    make(map[string]*ast.Node),
	}
	x.actions.TopLocalInit()

	for i, step := range tr.Steps {
		var opErr error
		if err := x.actions.Guard(func() { opErr = x.exec(step) }); err != nil {
			return nil, &StepError{Index: i, Op: step.Op, SourceLine: step.SourceLine, Err: err}
		}
		if opErr != nil {
			return nil, &StepError{Index: i, Op: step.Op, SourceLine: step.SourceLine, Err: opErr}
		}
	}

	if !x.finished {
		if depth := x.actions.State().Scopes.Depth(); depth != 1 {
			return nil, fmt.Errorf("trace leaves %d scopes open", depth-1)
		}
		if err := x.actions.Guard(x.actions.TopLocalSetup); err != nil {
			return nil, err
		}
	}
	if len(x.marks) > 0 {
		return nil, fmt.Errorf("trace leaves %d blocks open", len(x.marks))
	}

	res := &Result{
		Tree:        x.actions.EvalTree(),
		Diagnostics: collector.Diagnostics,
		Locals:      activation.LocalNames(),
		Errors:      x.actions.State().Errors,
	}
	if tel := x.actions.Telemetry(); tel != nil {
		res.Telemetry = *tel
	}
	return res, nil
}

// replay is the state of one Run.
type replay struct {
	actions  *parser.Actions
	regs     map[string]*ast.Node
	marks    []parser.DynaMark
	finished bool
}

func (x *replay) exec(s Step) error {
	op, ok := operations[s.Op]
	if !ok {
		return unknown("operation", s.Op, Ops())
	}
	if s.Line > 0 {
		x.actions.SetLine(s.Line)
	}

	node, err := op.run(x, s)
	if err != nil {
		return err
	}
	if s.As != "" {
		x.regs[s.As] = node
	}
	return nil
}

// arg resolves operand i of s. Missing and empty operands are the empty tree.
func (x *replay) arg(s Step, i int) (*ast.Node, error) {
	if i >= len(s.Args) || s.Args[i] == "" {
		return nil, nil
	}
	name := s.Args[i]
	node, ok := x.regs[name]
	if !ok {
		return nil, unknown("register", name, x.registerNames())
	}
	return node, nil
}

func (x *replay) args(s Step, n int) ([]*ast.Node, error) {
	out := make([]*ast.Node, n)
	for i := range out {
		node, err := x.arg(s, i)
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}

func (x *replay) registerNames() []string {
	names := make([]string, 0, len(x.regs))
	for name := range x.regs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var errNeedsOperand = errors.New("missing operand")

func needOperand(s Step, field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s needs %q", errNeedsOperand, s.Op, field)
	}
	return nil
}
