package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/semact/core/ast"
)

func TestCondStringLiteral(t *testing.T) {
	a, sink := newTestActions(t)
	s := ast.NewStr(a.Pos(), "yes")

	assert.Same(t, s, a.Cond(s))
	assert.Equal(t, []string{"test.rb:1 [WARN] string literal in condition"}, diagStrings(sink))

	sink.Reset()
	a.LogOp(ast.KindAnd, ast.NewStr(a.Pos(), "a"), ast.NewDStr(a.Pos(), "b", nil))
	assert.Empty(t, sink.Diagnostics, "operands of && are already boolean")
}

func TestCondUnwrapsOneNewline(t *testing.T) {
	a, _ := newTestActions(t)
	wrapped := ast.NewNewline(a.Pos(), ast.NewRegexp(a.Pos(), "^#"))

	got := a.Cond(wrapped)
	assert.Same(t, wrapped, got)
	assertTree(t, "(newline (match (lit /^#/)))", got)
}

func TestCondRegexpLiteral(t *testing.T) {
	tests := []struct {
		name     string
		opts     []ParserOpt
		warnings int
	}{
		{"verbose", []ParserOpt{WithVerbosity(VerbosityVerbose)}, 1},
		{"verbose inline", []ParserOpt{WithVerbosity(VerbosityVerbose), WithInlineScript()}, 0},
		{"normal", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, sink := newTestActions(t, tt.opts...)

			assertTree(t, "(match (lit /x/))", a.Cond(ast.NewRegexp(a.Pos(), "x")))
			assertTree(t, `(match2 (dregx "a") (gvar $_))`, a.Cond(ast.NewDRegx(a.Pos(), "a", nil)))

			assert.Len(t, sink.Diagnostics, 2*tt.warnings)
			for _, msg := range sink.Messages() {
				assert.Equal(t, "regex literal in condition", msg)
			}
			assert.Equal(t, []string{"_", "~"}, a.State().Scopes.Top().Names())
		})
	}
}

func TestCondRangeBecomesFlipFlop(t *testing.T) {
	a, sink := newTestActions(t, WithVerbosity(VerbosityVerbose), WithTelemetryBasic())

	got := a.Cond(ast.NewDot2(a.Pos(), lit(a, 1), lit(a, 5)))
	assertTree(t, "(flip2 2 (lit 1) (lit 5))", got)

	got = a.Cond(ast.NewDot3(a.Pos(), a.Read("@a"), a.Read("@b")))
	assertTree(t, "(flip3 3 (ivar @a) (ivar @b))", got)

	assert.Equal(t, []string{"range literal in condition", "range literal in condition"}, sink.Messages())
	assert.Equal(t, 2, a.Telemetry().FlipFlops)
	assert.Equal(t, []string{"_", "~", "", ""}, a.State().Scopes.Top().Names())
}

func TestCondRangeInlineComparesLineNumber(t *testing.T) {
	a, sink := newTestActions(t, WithVerbosity(VerbosityVerbose), WithInlineScript())

	got := a.Cond(ast.NewDot2(a.Pos(), lit(a, 2), a.Read("@stop")))
	assertTree(t, "(flip2 2 (call == (lit 2) (list (gvar $.))) (ivar @stop))", got)
	assert.Empty(t, sink.Diagnostics)
}

func TestCondRangeInlineUnwrapsEndpoint(t *testing.T) {
	a, _ := newTestActions(t, WithInlineScript())

	beg := ast.NewNewline(a.Pos(), lit(a, 2))
	got := a.Cond(ast.NewDot2(a.Pos(), beg, lit(a, 5)))
	assertTree(t, "(flip2 2 (call == (lit 2) (list (gvar $.))) (call == (lit 5) (list (gvar $.))))", got)
}

func TestCondRangeInLogicalOperandKeepsEndpoints(t *testing.T) {
	a, _ := newTestActions(t, WithInlineScript())

	got := a.LogOp(ast.KindOr, a.Read("@done"), ast.NewDot2(a.Pos(), lit(a, 1), lit(a, 3)))
	assertTree(t, "(or (ivar @done) (flip2 2 (lit 1) (lit 3)))", got)
}

func TestCondAssignment(t *testing.T) {
	t.Run("constant value", func(t *testing.T) {
		a, sink := newTestActions(t)
		asgn := a.Write("x", ast.NewNil(a.Pos()))
		assert.Same(t, asgn, a.Cond(asgn))
		assert.Equal(t, []string{"found = in conditional, should be =="}, sink.Messages())
	})

	t.Run("computed value", func(t *testing.T) {
		a, sink := newTestActions(t)
		a.Cond(a.Write("line", a.FCall("gets", nil)))
		assert.Empty(t, sink.Diagnostics)
	})

	t.Run("quiet", func(t *testing.T) {
		a, sink := newTestActions(t, WithVerbosity(VerbosityQuiet))
		a.Cond(a.Write("@x", lit(a, 1)))
		assert.Empty(t, sink.Diagnostics)
	})

	t.Run("multiple assignment", func(t *testing.T) {
		a, sink := newTestActions(t)
		targets := a.AddArg(a.AddArg(nil, a.Write("a", nil)), a.Write("b", nil))
		a.Cond(ast.NewMAsgn(a.Pos(), targets, nil))
		assert.Equal(t, []string{"multiple assignment in conditional"}, sink.Messages())
		assert.Equal(t, 1, a.State().Errors)
	})
}

func TestLogOp(t *testing.T) {
	a, sink := newTestActions(t)
	assertTree(t, "(and (vcall a) (vcall b))", a.LogOp(ast.KindAnd, a.Read("a"), a.Read("b")))
	assertTree(t, "(or (vcall a) (nil))", a.LogOp(ast.KindOr, a.Read("a"), ast.NewNil(a.Pos())))
	assert.Empty(t, sink.Diagnostics)

	a.LogOp(ast.KindAnd, ast.NewReturn(a.Pos(), nil), a.Read("b"))
	assert.Equal(t, []string{"void value expression"}, sink.Messages())
}

func TestLogOpUnwrapsNewlineOperands(t *testing.T) {
	a, _ := newTestActions(t, WithInlineScript())

	left := ast.NewNewline(a.Pos(), ast.NewRegexp(a.Pos(), "^#"))
	got := a.LogOp(ast.KindAnd, left, a.Read("b"))
	assertTree(t, "(and (newline (match (lit /^#/))) (vcall b))", got)

	right := ast.NewNewline(a.Pos(), ast.NewDot2(a.Pos(), lit(a, 1), lit(a, 3)))
	got = a.LogOp(ast.KindOr, a.Read("c"), right)
	assertTree(t, "(or (vcall c) (newline (flip2 2 (lit 1) (lit 3))))", got)
}

func TestLogOpRejectsOtherKinds(t *testing.T) {
	a, _ := newTestActions(t)
	err := a.Guard(func() {
		a.LogOp(ast.KindNot, a.Read("a"), a.Read("b"))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logical operator kind not")
}

func TestCondNil(t *testing.T) {
	a, _ := newTestActions(t)
	assert.Nil(t, a.Cond(nil))
}
