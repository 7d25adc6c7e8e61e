package parser

import (
	"github.com/opal-lang/semact/core/ast"
)

// TopLocalInit opens the frame of a compilation unit. Names the activation already
// holds keep their slots, and code compiled from inside a block starts in a block.
func (a *Actions) TopLocalInit() {
	defer a.enter("top_local_init")()
	a.state.Scopes.InitTop(a.state.Activation, a.state.Dyna)
}

// TopLocalSetup closes the unit's frame and grows the activation to cover every
// local the unit registered.
func (a *Actions) TopLocalSetup() {
	defer a.enter("top_local_setup")()
	a.state.Scopes.SetupTop(a.state.Activation)
}

// Program finishes a compilation unit: it checks the statements for values
// computed and thrown away, appends body to the evaluation tree and closes the
// unit's frame.
func (a *Actions) Program(body *ast.Node) *ast.Node {
	defer a.enter("program")()
	if body != nil && !a.state.CompileForEval {
		if body.Kind == ast.KindBlock {
			a.CheckVoid(body.Last().Head)
		} else {
			a.CheckVoid(body)
		}
	}
	a.state.EvalTree = a.AppendStatement(a.state.EvalTree, body)
	a.TopLocalSetup()
	return a.state.EvalTree
}

// WrapLineLoop wraps the evaluation tree in a loop over input lines. chop strips
// each line before the body runs; split stores its fields in $F.
func (a *Actions) WrapLineLoop(chop, split bool) {
	defer a.enter("while_loop")()
	pos := a.state.Pos
	tree := a.state.EvalTree

	if split {
		fields := ast.NewCall(pos, ast.NewGVar(pos, lastLineGlobal), "split", nil)
		tree = a.AppendStatement(ast.NewGAsgn(pos, "$F", fields), tree)
	}
	if chop {
		tree = a.AppendStatement(ast.NewCall(pos, ast.NewGVar(pos, lastLineGlobal), "chop!", nil), tree)
	}
	a.state.EvalTree = ast.NewOptN(pos, tree)
}

// AppendPrint appends print($_) to the evaluation tree.
func (a *Actions) AppendPrint() {
	defer a.enter("append_print")()
	pos := a.state.Pos
	call := ast.NewFCall(pos, "print", ast.NewList(pos, ast.NewGVar(pos, lastLineGlobal)))
	a.state.EvalTree = a.AppendStatement(a.state.EvalTree, call)
}
