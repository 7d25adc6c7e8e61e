package parser

import (
	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/invariant"
	"github.com/opal-lang/semact/runtime/scope"
)

// Read builds the node that reads identifier id.
//
// A local spelling resolves, in order, to a block-local binding (inside a block),
// to a registered local, and otherwise to a call of a method with no arguments:
// an identifier that was never assigned is a method call.
func (a *Actions) Read(id string) *ast.Node {
	defer a.enter("read")()
	pos := a.state.Pos

	switch ClassifyIdent(id) {
	case IdentPseudo:
		switch id {
		case KeywordSelf:
			return ast.NewSelf(pos)
		case KeywordNil:
			return ast.NewNil(pos)
		case KeywordTrue:
			return ast.NewTrue(pos)
		case KeywordFalse:
			return ast.NewFalse(pos)
		case KeywordFile:
			return ast.NewStr(pos, pos.File)
		case KeywordLine:
			return ast.NewInt(pos, int64(pos.Line))
		}
	case IdentLocal:
		scopes := a.state.Scopes
		if scopes.InBlock() && a.state.Dyna.Defined(id) {
			return ast.NewDVar(pos, id)
		}
		if scopes.IsRegistered(id) {
			return ast.NewLVar(pos, id, scopes.LookupOrRegister(id))
		}
		return ast.NewVCall(pos, id)
	case IdentGlobal:
		return ast.NewGVar(pos, id)
	case IdentInstance:
		return ast.NewIVar(pos, id)
	case IdentConst:
		return ast.NewConst(pos, id)
	case IdentClassVar:
		if a.state.InSingle > 0 {
			return ast.NewCVar2(pos, id)
		}
		return ast.NewCVar(pos, id)
	}

	invariant.Unreachable("invalid identifier for access: %q", id)
	return nil
}

// Write builds the node that assigns value to identifier id.
//
// Assigning to a pseudo-variable reports an error and returns nil; every action
// treats a nil node as empty, so the parse carries on without a placeholder.
func (a *Actions) Write(id string, value *ast.Node) *ast.Node {
	defer a.enter("write")()
	a.IsValueExpr(value)
	pos := a.state.Pos

	switch ClassifyIdent(id) {
	case IdentPseudo:
		if id == KeywordSelf {
			a.errorf("Can't change the value of self")
		} else {
			a.errorf("Can't assign to %s", keywordName(id))
		}
		return nil
	case IdentLocal:
		return a.writeLocal(pos, id, value)
	case IdentGlobal:
		return ast.NewGAsgn(pos, id, value)
	case IdentInstance:
		return ast.NewIAsgn(pos, id, value)
	case IdentConst:
		if a.state.InDef > 0 || a.state.InSingle > 0 {
			a.errorf("dynamic constant assignment")
		}
		return ast.NewCDecl(pos, id, value)
	case IdentClassVar:
		if a.state.InSingle > 0 {
			return ast.NewCVAsgn(pos, id, value)
		}
		return ast.NewCVDecl(pos, id, value)
	}

	invariant.Unreachable("invalid identifier for assignment: %q", id)
	return nil
}

func (a *Actions) writeLocal(pos ast.Pos, id string, value *ast.Node) *ast.Node {
	scopes := a.state.Scopes
	dyna := a.state.Dyna

	switch {
	case dyna.Current(id):
		return ast.NewDAsgnCurr(pos, id, value)
	case dyna.Defined(id):
		return ast.NewDAsgn(pos, id, value)
	case scopes.IsRegistered(id) || !scopes.InBlock():
		return ast.NewLAsgn(pos, id, scopes.LookupOrRegister(id), value)
	default:
		// first assignment inside a block makes a block-local binding
		dyna.Bind(id, scope.Nil)
		if a.telemetry != nil {
			a.telemetry.DynamicBindings++
		}
		return ast.NewDAsgnCurr(pos, id, value)
	}
}

// BackrefAssignError reports an assignment to a regexp back-reference ($1, $&).
func (a *Actions) BackrefAssignError(node *ast.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.KindNthRef:
		a.errorf("Can't set variable $%d", node.Index)
	case ast.KindBackRef:
		a.errorf("Can't set variable $%s", node.Name)
	}
}
