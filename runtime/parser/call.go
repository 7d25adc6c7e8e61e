package parser

import (
	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/runtime/scope"
)

// Call builds a method call on recv. When args is a &block marker, the call is
// built over the marker's leading arguments and nested inside the marker, which is
// returned in its place.
func (a *Actions) Call(recv *ast.Node, name string, args *ast.Node) *ast.Node {
	defer a.enter("call")()
	pos := a.state.Pos
	if args != nil && args.Kind == ast.KindBlockPass {
		args.Iter = ast.NewCall(pos, recv, name, args.Head)
		return args
	}
	return ast.NewCall(pos, recv, name, args)
}

// FCall builds a receiverless call, with the same &block handling as Call.
func (a *Actions) FCall(name string, args *ast.Node) *ast.Node {
	defer a.enter("fcall")()
	pos := a.state.Pos
	if args != nil && args.Kind == ast.KindBlockPass {
		args.Iter = ast.NewFCall(pos, name, args.Head)
		return args
	}
	return ast.NewFCall(pos, name, args)
}

// Super builds an explicit super call, with the same &block handling as Call.
func (a *Actions) Super(args *ast.Node) *ast.Node {
	defer a.enter("super")()
	pos := a.state.Pos
	if args != nil && args.Kind == ast.KindBlockPass {
		args.Iter = ast.NewSuper(pos, args.Head)
		return args
	}
	return ast.NewSuper(pos, args)
}

// CallOp desugars a binary or unary operator into a method call. arg is nil for
// unary operators.
func (a *Actions) CallOp(recv *ast.Node, tok Token, arg *ast.Node) *ast.Node {
	defer a.enter("call_op")()
	a.IsValueExpr(recv)

	var args *ast.Node
	if arg != nil {
		a.IsValueExpr(arg)
		args = ast.NewList(a.state.Pos, arg)
	}
	return ast.NewCall(a.state.Pos, recv, OpName(tok), args)
}

// Match desugars left =~ right. A regexp literal on either side selects a dedicated
// match node; anything else is an ordinary =~ call.
func (a *Actions) Match(left, right *ast.Node) *ast.Node {
	defer a.enter("match")()
	a.IsValueExpr(left)
	a.IsValueExpr(right)
	a.state.Scopes.LookupOrRegister(scope.MatchData)

	pos := a.state.Pos
	switch {
	case left != nil && left.IsRegexp():
		return ast.NewMatch2(pos, left, right)
	case right != nil && right.IsRegexp():
		return ast.NewMatch3(pos, right, left)
	}
	return ast.NewCall(pos, left, OpName(TokMatch), ast.NewList(pos, right))
}

// Aryset builds the target of recv[idx] = value; Assign adds the value.
func (a *Actions) Aryset(recv, idx *ast.Node) *ast.Node {
	defer a.enter("aryset")()
	a.IsValueExpr(recv)
	return ast.NewCall(a.state.Pos, recv, OpName(TokAset), idx)
}

// Attrset builds the target of recv.name = value; Assign adds the value.
func (a *Actions) Attrset(recv *ast.Node, name string) *ast.Node {
	defer a.enter("attrset")()
	a.IsValueExpr(recv)
	return ast.NewCall(a.state.Pos, recv, name+"=", nil)
}

// Iter builds a block literal attached to call.
func (a *Actions) Iter(vars, call, body *ast.Node) *ast.Node {
	defer a.enter("iter")()
	return ast.NewIter(a.state.Pos, vars, call, body)
}
