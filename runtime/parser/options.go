package parser

import (
	"log/slog"
	"time"

	"github.com/opal-lang/semact/core/diag"
	"github.com/opal-lang/semact/runtime/scope"
)

// ParserOpt represents a configuration option for the semantic actions
type ParserOpt func(*ParserConfig)

// Verbosity mirrors the host interpreter's three-state verbose flag
type Verbosity int

const (
	VerbosityQuiet   Verbosity = iota // no warnings at all
	VerbosityNormal                   // [WARN] only (default)
	VerbosityVerbose                  // [WARN], [WARNING] and void-context checks
)

// TelemetryMode controls telemetry collection (production-safe)
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota // Zero overhead (default)
	TelemetryBasic                       // Action and diagnostic counts only
	TelemetryTiming                      // Counts + time spent inside actions
)

// DebugLevel controls debug tracing (development only)
type DebugLevel int

const (
	DebugOff      DebugLevel = iota // No debug info (default)
	DebugPaths                      // Log every action
	DebugDetailed                   // Also verify chain invariants the assembler trusts
)

// ParserConfig holds the configuration of one Actions instance
type ParserConfig struct {
	file      string
	verbosity Verbosity
	inline    bool
	sink      diag.Sink
	logger    *slog.Logger
	telemetry TelemetryMode
	debug     DebugLevel
	chain     scope.DynamicChain
	storage   scope.Storage
}

// WithFile sets the file name used in positions and diagnostics
func WithFile(name string) ParserOpt {
	return func(c *ParserConfig) {
		c.file = name
	}
}

// WithVerbosity selects which warnings are reported
func WithVerbosity(v Verbosity) ParserOpt {
	return func(c *ParserConfig) {
		c.verbosity = v
	}
}

// WithInlineScript marks the source as given on the command line (-e). Regexp and
// range literals in conditions are then expected and not warned about, and bare
// integer range endpoints compare against the current input line number.
func WithInlineScript() ParserOpt {
	return func(c *ParserConfig) {
		c.inline = true
	}
}

// WithSink routes diagnostics to sink
func WithSink(sink diag.Sink) ParserOpt {
	return func(c *ParserConfig) {
		c.sink = sink
	}
}

// WithLogger sets the logger used for debug tracing
func WithLogger(logger *slog.Logger) ParserOpt {
	return func(c *ParserConfig) {
		c.logger = logger
	}
}

// WithTelemetryBasic enables basic telemetry (counts only)
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming enables timing telemetry (counts + time inside actions)
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths enables action tracing through the logger (development only)
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed enables action tracing and chain verification (development only)
func WithDebugDetailed() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugDetailed
	}
}

// WithDynamicChain supplies the block-local binding chain, e.g. the one of the block
// an eval'd string is compiled inside
func WithDynamicChain(chain scope.DynamicChain) ParserOpt {
	return func(c *ParserConfig) {
		c.chain = chain
	}
}

// WithActivation supplies the runtime storage whose locals seed the top-level frame
func WithActivation(storage scope.Storage) ParserOpt {
	return func(c *ParserConfig) {
		c.storage = storage
	}
}

// Telemetry holds action metrics (production-safe)
type Telemetry struct {
	Actions         int           // Outermost actions invoked by the driver
	Errors          int           // Error diagnostics
	Warns           int           // [WARN] diagnostics
	Warnings        int           // [WARNING] diagnostics
	Bugs            int           // [BUG] diagnostics
	FlipFlops       int           // Ranges rewritten into flip-flops
	DynamicBindings int           // Block-local variables introduced by assignment
	ActionTime      time.Duration // Time spent inside actions (timing mode only)
}

func (t *Telemetry) count(sev diag.Severity) {
	switch sev {
	case diag.SeverityError:
		t.Errors++
	case diag.SeverityWarn:
		t.Warns++
	case diag.SeverityWarning:
		t.Warnings++
	case diag.SeverityBug:
		t.Bugs++
	}
}
