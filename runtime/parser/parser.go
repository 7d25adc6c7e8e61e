// Package parser implements the semantic actions a grammar driver calls on each
// reduction: identifier access, tree assembly, condition rewriting and the static
// checks that raise diagnostics along the way.
//
// One Actions value serves exactly one parse. It is not safe for concurrent use and
// must not be re-entered by a nested parse.
package parser

import (
	"io"
	"log/slog"
	"time"

	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/diag"
	"github.com/opal-lang/semact/runtime/scope"
)

// Actions is the semantic-action layer bound to one parse state.
type Actions struct {
	state     *State
	config    *ParserConfig
	sink      diag.Sink
	logger    *slog.Logger
	telemetry *Telemetry

	depth   int      // nesting of action calls, for telemetry and tracing
	methods []string // names of the methods being defined, innermost last
}

// New creates the actions for a fresh parse.
func New(opts ...ParserOpt) *Actions {
	config := &ParserConfig{
		file:      "-",
		verbosity: VerbosityNormal,
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.sink == nil {
		config.sink = diag.Discard
	}
	if config.logger == nil {
		config.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.chain == nil {
		config.chain = scope.NewDynaVars()
	}
	if config.storage == nil {
		config.storage = scope.NewActivation()
	}

	a := &Actions{
		state: &State{
			Pos:        ast.Pos{File: config.file, Line: 1},
			Scopes:     scope.NewStack(),
			Dyna:       config.chain,
			Activation: config.storage,
		},
		config: config,
		sink:   config.sink,
		logger: config.logger,
	}
	if config.telemetry >= TelemetryBasic {
		a.telemetry = &Telemetry{}
	}
	return a
}

// State exposes the parse state to the grammar driver.
func (a *Actions) State() *State {
	return a.state
}

// Telemetry returns the collected metrics, or nil when telemetry is off.
func (a *Actions) Telemetry() *Telemetry {
	return a.telemetry
}

// SetLine moves the current position; nodes built afterwards carry this line.
func (a *Actions) SetLine(line int) {
	a.state.Pos.Line = line
}

// Pos returns the current position.
func (a *Actions) Pos() ast.Pos {
	return a.state.Pos
}

// EvalTree returns the accumulated top-level tree.
func (a *Actions) EvalTree() *ast.Node {
	return a.state.EvalTree
}

// SetEvalTree records the tree produced by the top-level reduction.
func (a *Actions) SetEvalTree(tree *ast.Node) {
	a.state.EvalTree = tree
}

func (a *Actions) verbose() bool {
	return a.config.verbosity == VerbosityVerbose
}

func (a *Actions) debugChecks() bool {
	return a.config.debug >= DebugDetailed
}

// enter records one action call. Only the outermost call of a nested chain counts
// towards telemetry.
func (a *Actions) enter(action string) func() {
	if a.telemetry == nil && a.config.debug == DebugOff {
		return func() {}
	}

	outer := a.depth == 0
	a.depth++

	var start time.Time
	if outer && a.telemetry != nil {
		a.telemetry.Actions++
		if a.config.telemetry >= TelemetryTiming {
			start = time.Now()
		}
	}
	if a.config.debug >= DebugPaths {
		a.logger.Debug("action",
			slog.String("name", action),
			slog.String("pos", a.state.Pos.String()),
			slog.Int("depth", a.depth))
	}

	return func() {
		a.depth--
		if !start.IsZero() {
			a.telemetry.ActionTime += time.Since(start)
		}
	}
}
