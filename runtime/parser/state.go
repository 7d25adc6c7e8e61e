package parser

import (
	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/runtime/scope"
)

// LexState mirrors the lexer state the grammar driver keeps alongside the actions.
type LexState int

const (
	ExprBeg   LexState = iota // ignore newline, +/- is a sign
	ExprEnd                   // newline significant, +/- is an operator
	ExprArg                   // newline significant, +/- may be a sign
	ExprMid                   // newline significant, +/- is a sign
	ExprFname                 // ignore newline, no reserved words
	ExprDot                   // right after '.' or '::', no reserved words
	ExprClass                 // immediately after 'class', no here document
)

// State is everything one parse mutates. It is created per parse and never shared;
// a nested parse builds its own Actions and therefore its own State.
type State struct {
	Pos ast.Pos

	InSingle       int // nesting of singleton method bodies
	InDef          int // nesting of method bodies
	ClassNest      int // nesting of class and module bodies
	LexState       LexState
	CmdStart       bool
	EOFSeen        bool
	CompileForEval bool

	// Errors counts error diagnostics; a parse with Errors > 0 failed.
	Errors int

	Scopes     *scope.Stack
	Dyna       scope.DynamicChain
	Activation scope.Storage

	// EvalTree accumulates the top-level tree; only the script-wrapping helpers
	// rewrite it.
	EvalTree *ast.Node
}
