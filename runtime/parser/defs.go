package parser

import (
	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/invariant"
)

// LocalPush opens a fresh local table for a method, class or module body.
func (a *Actions) LocalPush() {
	defer a.enter("local_push")()
	a.state.Scopes.Push()
}

// LocalPop closes the innermost local table and returns its names in slot order.
func (a *Actions) LocalPop() []string {
	defer a.enter("local_pop")()
	names := a.state.Scopes.Top().Names()
	a.state.Scopes.Pop()
	return names
}

// DynaMark remembers the dynamic chain as it was before a block was entered.
type DynaMark struct {
	chain int
}

// DynaPush enters a block body. The returned mark must be handed to DynaPop when
// the block ends.
func (a *Actions) DynaPush() DynaMark {
	defer a.enter("dyna_push")()
	mark := DynaMark{chain: a.state.Dyna.Save()}
	a.state.Dyna.PushMarker()
	a.state.Scopes.EnterBlock()
	return mark
}

// DynaPop leaves a block body, dropping every binding it introduced.
func (a *Actions) DynaPop(mark DynaMark) {
	defer a.enter("dyna_pop")()
	a.state.Dyna.Restore(mark.chain)
	a.state.Scopes.LeaveBlock()
}

// InBlock reports whether the current body is inside a block.
func (a *Actions) InBlock() bool {
	return a.state.Scopes.InBlock()
}

// BeginDef enters the body of method name.
func (a *Actions) BeginDef(name string) {
	defer a.enter("begin_def")()
	if a.state.InDef > 0 || a.state.InSingle > 0 {
		a.errorf("nested method definition")
	}
	a.methods = append(a.methods, name)
	a.state.InDef++
	a.state.Scopes.Push()
}

// EndDef closes the method opened by the matching BeginDef.
func (a *Actions) EndDef(args, body *ast.Node) *ast.Node {
	defer a.enter("end_def")()
	invariant.Precondition(a.state.InDef > 0 && len(a.methods) > 0, "end of method body without a beginning")

	name := a.methods[len(a.methods)-1]
	a.methods = a.methods[:len(a.methods)-1]
	pos := a.state.Pos
	node := ast.NewDefn(pos, name, args, ast.NewScope(pos, a.LocalPop(), body))
	a.state.InDef--
	return node
}

// CurrentMethod returns the name of the innermost method being defined.
func (a *Actions) CurrentMethod() (string, bool) {
	if len(a.methods) == 0 {
		return "", false
	}
	return a.methods[len(a.methods)-1], true
}

// BeginSingletonDef enters the body of a method defined on recv itself.
func (a *Actions) BeginSingletonDef(recv *ast.Node) {
	defer a.enter("begin_sdef")()
	a.IsValueExpr(recv)
	switch recv.Unwrap().Kind {
	case ast.KindLit, ast.KindStr, ast.KindDStr, ast.KindXStr, ast.KindDXStr,
		ast.KindDRegx, ast.KindDRegxOnce, ast.KindList, ast.KindZList:
		a.errorf("can't define singleton method for literals")
	}
	a.state.InSingle++
	a.state.Scopes.Push()
}

// EndSingletonDef closes the body opened by BeginSingletonDef.
func (a *Actions) EndSingletonDef(recv *ast.Node, name string, args, body *ast.Node) *ast.Node {
	defer a.enter("end_sdef")()
	invariant.Precondition(a.state.InSingle > 0, "end of singleton method body without a beginning")

	pos := a.state.Pos
	node := ast.NewDefs(pos, recv, name, args, ast.NewScope(pos, a.LocalPop(), body))
	node.SetPos(recv)
	a.state.InSingle--
	return node
}

// BeginClass enters a class body.
func (a *Actions) BeginClass() {
	defer a.enter("begin_class")()
	if a.state.InDef > 0 || a.state.InSingle > 0 {
		a.errorf("class definition in method body")
	}
	a.state.ClassNest++
	a.state.Scopes.Push()
}

// EndClass closes a class body. super may be nil.
func (a *Actions) EndClass(name string, super, body *ast.Node) *ast.Node {
	defer a.enter("end_class")()
	invariant.Precondition(a.state.ClassNest > 0, "end of class body without a beginning")

	pos := a.state.Pos
	node := ast.NewClass(pos, name, super, ast.NewScope(pos, a.LocalPop(), body))
	node.SetPos(super)
	a.state.ClassNest--
	return node
}

// BeginModule enters a module body.
func (a *Actions) BeginModule() {
	defer a.enter("begin_module")()
	if a.state.InDef > 0 || a.state.InSingle > 0 {
		a.errorf("module definition in method body")
	}
	a.state.ClassNest++
	a.state.Scopes.Push()
}

// EndModule closes a module body.
func (a *Actions) EndModule(name string, body *ast.Node) *ast.Node {
	defer a.enter("end_module")()
	invariant.Precondition(a.state.ClassNest > 0, "end of module body without a beginning")

	pos := a.state.Pos
	node := ast.NewModule(pos, name, ast.NewScope(pos, a.LocalPop(), body))
	a.state.ClassNest--
	return node
}
