package parser

import (
	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/core/invariant"
)

// AppendStatement appends tail to the statement chain head and returns the chain.
// Either side may be nil. A bare statement on either side is wrapped into a
// one-link chain first.
//
// In verbose mode, appending after a return, break, next, redo or retry reports
// "statement not reached" at the first appended statement.
func (a *Actions) AppendStatement(head, tail *ast.Node) *ast.Node {
	defer a.enter("append_statement")()
	if tail == nil {
		return head
	}
	if head == nil {
		return tail
	}

	var end *ast.Node
	if head.Kind != ast.KindBlock {
		end = ast.NewBlock(head.Pos, head)
		head = end
	} else {
		end = head.Tail
		invariant.Invariant(end != nil && end.Next == nil, "statement chain has a stale tail")
	}

	if a.verbose() {
		if last := end.Head.Unwrap(); last != nil && last.Kind.IsJump() {
			a.atLine(tail.Line(), func() {
				a.warning("statement not reached")
			})
		}
	}

	if tail.Kind != ast.KindBlock {
		tail = ast.NewBlock(tail.Pos, tail)
	}
	end.Next = tail
	head.Tail = tail.Tail
	return head
}

// AppendList appends item as a new link at the end of list and returns the list.
func (a *Actions) AppendList(list, item *ast.Node) *ast.Node {
	defer a.enter("append_list")()
	if list == nil {
		return ast.NewList(a.state.Pos, item)
	}
	list.Last().Next = ast.NewList(a.state.Pos, item)
	list.Len++
	return list
}

// ConcatList splices the whole of tail onto the end of head. The cached length of
// tail is trusted; with detailed debugging it is verified by walking the chain.
func (a *Actions) ConcatList(head, tail *ast.Node) *ast.Node {
	defer a.enter("concat_list")()
	invariant.Precondition(head != nil && head.Kind == ast.KindList, "concat target must be a list")
	invariant.Precondition(tail != nil && tail.Kind == ast.KindList, "concat source must be a list")
	if a.debugChecks() {
		walked := tail.Count()
		invariant.Invariant(tail.Len == walked, "list length cached as %d but chain has %d links", tail.Len, walked)
	}

	head.Last().Next = tail
	head.Len += tail.Len
	return head
}

// AddArg appends one positional argument. Argument forms that end in a splat
// cannot grow positionally and are wrapped in an args-push node instead.
func (a *Actions) AddArg(args, arg *ast.Node) *ast.Node {
	defer a.enter("add_arg")()
	if args == nil {
		return ast.NewList(a.state.Pos, arg)
	}
	if args.Kind == ast.KindList {
		return a.AppendList(args, arg)
	}
	return ast.NewArgsPush(a.state.Pos, args, arg)
}

// ConcatArgs joins an argument list with a splatted rest argument.
func (a *Actions) ConcatArgs(args, rest *ast.Node) *ast.Node {
	defer a.enter("concat_args")()
	if rest == nil {
		return args
	}
	return ast.NewArgsCat(a.state.Pos, args, rest)
}

// Assign attaches value to an assignment target built earlier by Write, Aryset or
// Attrset. A setter call receives the value as its last argument.
func (a *Actions) Assign(target, value *ast.Node) *ast.Node {
	defer a.enter("assign")()
	if target == nil {
		return nil
	}
	a.IsValueExpr(value)

	switch {
	case target.Kind.IsAssignment():
		target.Value = value
	case target.Kind == ast.KindCall:
		target.Args = a.AddArg(target.Args, value)
	}

	if value != nil {
		target.SetPos(value)
	}
	return target
}

// BlockPassArg attaches the leading arguments to a trailing &block marker.
func (a *Actions) BlockPassArg(args, blockPass *ast.Node) *ast.Node {
	if blockPass != nil {
		blockPass.Head = args
		return blockPass
	}
	return args
}

// ReturnArgs validates the arguments of return and yield.
func (a *Actions) ReturnArgs(args *ast.Node) *ast.Node {
	if args != nil && args.Kind == ast.KindBlockPass {
		a.errorf("block argument should not be given")
	}
	return args
}
