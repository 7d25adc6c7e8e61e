package parser

import (
	"github.com/opal-lang/semact/core/ast"
)

// IsValueExpr reports whether node yields a value. Control transfers and
// definitions do not; for them a "void value expression" error is reported.
func (a *Actions) IsValueExpr(node *ast.Node) bool {
	for node != nil {
		switch node.Kind {
		case ast.KindReturn, ast.KindBreak, ast.KindNext, ast.KindRedo, ast.KindRetry,
			ast.KindWhile, ast.KindUntil, ast.KindClass, ast.KindModule,
			ast.KindDefn, ast.KindDefs:
			a.errorf("void value expression")
			return false

		case ast.KindBlock:
			node = node.Last().Head
		case ast.KindBegin, ast.KindNewline:
			node = node.Body
		case ast.KindIf:
			// both branches are checked so each reports its own error
			body := a.IsValueExpr(node.Body)
			els := a.IsValueExpr(node.Else)
			return body && els
		default:
			return true
		}
	}
	return true
}

var voidOperators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"+@": true, "-@": true, "|": true, "^": true, "&": true, "<=>": true,
	">": true, ">=": true, "<": true, "<=": true, "==": true, "!=": true,
}

// uselessName names the construct node represents when its value is discarded,
// or returns "" if evaluating it for effect is reasonable.
func uselessName(node *ast.Node) string {
	switch node.Kind {
	case ast.KindCall:
		if voidOperators[node.Name] {
			return node.Name
		}
	case ast.KindLVar, ast.KindDVar, ast.KindGVar, ast.KindIVar,
		ast.KindCVar, ast.KindCVar2, ast.KindNthRef, ast.KindBackRef:
		return "a variable"
	case ast.KindConst, ast.KindCRef:
		return "a constant"
	case ast.KindLit, ast.KindStr, ast.KindDStr, ast.KindDRegx, ast.KindDRegxOnce:
		return "a literal"
	case ast.KindColon2, ast.KindColon3:
		return "::"
	case ast.KindDot2:
		return ".."
	case ast.KindDot3:
		return "..."
	case ast.KindSelf:
		return "self"
	case ast.KindNil:
		return "nil"
	case ast.KindTrue:
		return "true"
	case ast.KindFalse:
		return "false"
	case ast.KindDefined:
		return "defined?"
	}
	return ""
}

// CheckVoid warns when node is evaluated only for a value nobody uses. The
// warning points at the line of node itself.
func (a *Actions) CheckVoid(node *ast.Node) {
	defer a.enter("void_expr")()
	if !a.verbose() {
		return
	}
	node = node.Unwrap()
	if node == nil {
		return
	}
	if name := uselessName(node); name != "" {
		a.atLine(node.Line(), func() {
			a.warning("useless use of " + name + " in void context")
		})
	}
}

// CheckVoidStatements runs CheckVoid on every statement of a chain except the
// last, whose value may be the value of the chain.
func (a *Actions) CheckVoidStatements(node *ast.Node) {
	defer a.enter("void_stmts")()
	if !a.verbose() || node == nil || node.Kind != ast.KindBlock {
		return
	}
	for link := node; link.Next != nil; link = link.Next {
		a.CheckVoid(link.Head)
	}
}
