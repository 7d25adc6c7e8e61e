package parser

import (
	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/invariant"
	"github.com/opal-lang/semact/runtime/scope"
)

const (
	lastLineGlobal = "$_"
	lineNoGlobal   = "$."
)

// Cond rewrites node for use as the condition of if, unless, while or until.
func (a *Actions) Cond(node *ast.Node) *ast.Node {
	defer a.enter("cond")()
	return a.cond1(node, false)
}

// LogOp builds an && or || node. Both operands are conditions in their own right.
func (a *Actions) LogOp(kind ast.Kind, left, right *ast.Node) *ast.Node {
	defer a.enter("logop")()
	a.IsValueExpr(left)

	pos := a.state.Pos
	switch kind {
	case ast.KindAnd:
		return ast.NewAnd(pos, a.cond1(left, true), a.cond1(right, true))
	case ast.KindOr:
		return ast.NewOr(pos, a.cond1(left, true), a.cond1(right, true))
	}

	invariant.Unreachable("logical operator kind %s", kind)
	return nil
}

// cond1 applies cond0 beneath at most one newline wrapper.
func (a *Actions) cond1(node *ast.Node, logical bool) *ast.Node {
	if node != nil && node.Kind == ast.KindNewline {
		node.Body = a.cond0(node.Body, logical)
		return node
	}
	return a.cond0(node, logical)
}

// cond0 rewrites literals that have a special meaning in boolean position. logical
// is set for the operands of && and ||.
func (a *Actions) cond0(node *ast.Node, logical bool) *ast.Node {
	if node == nil {
		return nil
	}
	a.assignInCond(node)

	switch node.Kind {
	case ast.KindStr, ast.KindDStr:
		if !logical {
			a.warn("string literal in condition")
		}
		return node

	case ast.KindDRegx, ast.KindDRegxOnce:
		a.warningUnlessInline("regex literal in condition")
		a.registerMatchSlots()
		return ast.NewMatch2(node.Pos, node, ast.NewGVar(node.Pos, lastLineGlobal))

	case ast.KindDot2, ast.KindDot3:
		node.Beg = a.rangeOp(node.Beg, logical)
		node.End = a.rangeOp(node.End, logical)
		if node.Kind == ast.KindDot2 {
			node.Kind = ast.KindFlip2
		} else {
			node.Kind = ast.KindFlip3
		}
		node.Index = a.state.Scopes.Register("")
		if a.telemetry != nil {
			a.telemetry.FlipFlops++
		}
		a.warningUnlessInline("range literal in condition")
		return node

	case ast.KindLit:
		if node.Lit.Kind == ast.LitRegexp {
			a.warningUnlessInline("regex literal in condition")
			a.registerMatchSlots()
			return ast.NewMatch(node.Pos, node)
		}
	}
	return node
}

// rangeOp turns a bare integer range endpoint into a comparison with the current
// input line number. Only inline scripts get the rewrite.
func (a *Actions) rangeOp(node *ast.Node, logical bool) *ast.Node {
	if node == nil || logical || !a.config.inline {
		return node
	}
	inner := node
	if inner.Kind == ast.KindNewline {
		inner = inner.Body
	}
	if inner != nil && inner.Kind == ast.KindLit && inner.Lit.Kind == ast.LitInt {
		return a.CallOp(inner, TokEq, ast.NewGVar(inner.Pos, lineNoGlobal))
	}
	return node
}

func (a *Actions) registerMatchSlots() {
	a.state.Scopes.LookupOrRegister(scope.LastLine)
	a.state.Scopes.LookupOrRegister(scope.MatchData)
}

// assignInCond flags an assignment of a constant value where a comparison was
// probably meant. The node is left as it is.
func (a *Actions) assignInCond(node *ast.Node) {
	switch node.Kind {
	case ast.KindMAsgn:
		a.errorf("multiple assignment in conditional")
		return
	case ast.KindLAsgn, ast.KindDAsgn, ast.KindDAsgnCurr, ast.KindGAsgn, ast.KindIAsgn:
	default:
		return
	}

	if node.Value == nil {
		return
	}
	switch node.Value.Kind {
	case ast.KindLit, ast.KindStr, ast.KindNil, ast.KindTrue, ast.KindFalse:
		a.atLine(node.Value.Line(), func() {
			a.warn("found = in conditional, should be ==")
		})
	}
}
