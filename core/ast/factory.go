package ast

// New allocates a node of the given kind. Chain heads are normalized: a Block link
// is its own tail and a List link counts one element.
func New(kind Kind, pos Pos) *Node {
	n := &Node{Kind: kind, Pos: pos}
	switch kind {
	case KindBlock:
		n.Tail = n
	case KindList:
		n.Len = 1
	}
	return n
}

func NewBlock(pos Pos, stmt *Node) *Node {
	n := New(KindBlock, pos)
	n.Head = stmt
	return n
}

func NewNewline(pos Pos, stmt *Node) *Node {
	n := New(KindNewline, pos)
	n.Body = stmt
	return n
}

func NewList(pos Pos, elem *Node) *Node {
	n := New(KindList, pos)
	n.Head = elem
	return n
}

func NewZList(pos Pos) *Node { return New(KindZList, pos) }

func newAsgn(kind Kind, pos Pos, name string, value *Node) *Node {
	n := New(kind, pos)
	n.Name = name
	n.Value = value
	return n
}

func NewLAsgn(pos Pos, name string, index int, value *Node) *Node {
	n := newAsgn(KindLAsgn, pos, name, value)
	n.Index = index
	return n
}

func NewDAsgn(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindDAsgn, pos, name, value)
}

func NewDAsgnCurr(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindDAsgnCurr, pos, name, value)
}

func NewGAsgn(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindGAsgn, pos, name, value)
}

func NewIAsgn(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindIAsgn, pos, name, value)
}

func NewCDecl(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindCDecl, pos, name, value)
}

func NewCVDecl(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindCVDecl, pos, name, value)
}

func NewCVAsgn(pos Pos, name string, value *Node) *Node {
	return newAsgn(KindCVAsgn, pos, name, value)
}

// NewMAsgn builds a multiple assignment; value is attached later by the assembler.
func NewMAsgn(pos Pos, targets, splat *Node) *Node {
	n := New(KindMAsgn, pos)
	n.Head = targets
	n.Args = splat
	return n
}

func newVar(kind Kind, pos Pos, name string) *Node {
	n := New(kind, pos)
	n.Name = name
	return n
}

func NewLVar(pos Pos, name string, index int) *Node {
	n := newVar(KindLVar, pos, name)
	n.Index = index
	return n
}

func NewDVar(pos Pos, name string) *Node  { return newVar(KindDVar, pos, name) }
func NewGVar(pos Pos, name string) *Node  { return newVar(KindGVar, pos, name) }
func NewIVar(pos Pos, name string) *Node  { return newVar(KindIVar, pos, name) }
func NewConst(pos Pos, name string) *Node { return newVar(KindConst, pos, name) }
func NewCVar(pos Pos, name string) *Node  { return newVar(KindCVar, pos, name) }
func NewCVar2(pos Pos, name string) *Node { return newVar(KindCVar2, pos, name) }
func NewVCall(pos Pos, name string) *Node { return newVar(KindVCall, pos, name) }

// NewNthRef builds a $1..$9 reference.
func NewNthRef(pos Pos, nth int) *Node {
	n := New(KindNthRef, pos)
	n.Index = nth
	return n
}

// NewBackRef builds a $&, $`, $' or $+ reference; name is the punctuation character.
func NewBackRef(pos Pos, name string) *Node {
	return newVar(KindBackRef, pos, name)
}

func NewLit(pos Pos, lit Literal) *Node {
	n := New(KindLit, pos)
	n.Lit = lit
	return n
}

func NewInt(pos Pos, v int64) *Node {
	return NewLit(pos, Literal{Kind: LitInt, Int: v})
}

func NewFloat(pos Pos, v float64) *Node {
	return NewLit(pos, Literal{Kind: LitFloat, Float: v})
}

func NewSymbol(pos Pos, name string) *Node {
	return NewLit(pos, Literal{Kind: LitSymbol, Str: name})
}

func NewRegexp(pos Pos, source string) *Node {
	return NewLit(pos, Literal{Kind: LitRegexp, Str: source})
}

func newString(kind Kind, pos Pos, s string) *Node {
	n := New(kind, pos)
	n.Lit = Literal{Kind: LitString, Str: s}
	return n
}

func NewStr(pos Pos, s string) *Node  { return newString(KindStr, pos, s) }
func NewXStr(pos Pos, s string) *Node { return newString(KindXStr, pos, s) }

// NewDStr builds an interpolated string; parts is a List of the interpolated pieces.
func NewDStr(pos Pos, prefix string, parts *Node) *Node {
	n := newString(KindDStr, pos, prefix)
	n.Head = parts
	return n
}

func NewDXStr(pos Pos, prefix string, parts *Node) *Node {
	n := newString(KindDXStr, pos, prefix)
	n.Head = parts
	return n
}

func NewEvStr(pos Pos, src string) *Node { return newString(KindEvStr, pos, src) }

func NewDRegx(pos Pos, prefix string, parts *Node) *Node {
	n := newString(KindDRegx, pos, prefix)
	n.Head = parts
	return n
}

func NewDRegxOnce(pos Pos, prefix string, parts *Node) *Node {
	n := newString(KindDRegxOnce, pos, prefix)
	n.Head = parts
	return n
}

func NewSelf(pos Pos) *Node  { return New(KindSelf, pos) }
func NewNil(pos Pos) *Node   { return New(KindNil, pos) }
func NewTrue(pos Pos) *Node  { return New(KindTrue, pos) }
func NewFalse(pos Pos) *Node { return New(KindFalse, pos) }

func NewIf(pos Pos, cond, body, els *Node) *Node {
	n := New(KindIf, pos)
	n.Cond = cond
	n.Body = body
	n.Else = els
	return n
}

func NewWhile(pos Pos, cond, body *Node) *Node {
	n := New(KindWhile, pos)
	n.Cond = cond
	n.Body = body
	return n
}

func NewUntil(pos Pos, cond, body *Node) *Node {
	n := New(KindUntil, pos)
	n.Cond = cond
	n.Body = body
	return n
}

func NewBegin(pos Pos, body *Node) *Node {
	n := New(KindBegin, pos)
	n.Body = body
	return n
}

// NewRescue builds body/rescue-clauses/else; clauses go in Head.
func NewRescue(pos Pos, body, clauses, els *Node) *Node {
	n := New(KindRescue, pos)
	n.Body = body
	n.Head = clauses
	n.Else = els
	return n
}

// NewEnsure builds body/ensure; the ensure clause goes in Else.
func NewEnsure(pos Pos, body, ensure *Node) *Node {
	n := New(KindEnsure, pos)
	n.Body = body
	n.Else = ensure
	return n
}

func NewReturn(pos Pos, value *Node) *Node {
	n := New(KindReturn, pos)
	n.Value = value
	return n
}

func NewBreak(pos Pos) *Node { return New(KindBreak, pos) }
func NewNext(pos Pos) *Node  { return New(KindNext, pos) }
func NewRedo(pos Pos) *Node  { return New(KindRedo, pos) }
func NewRetry(pos Pos) *Node { return New(KindRetry, pos) }

func NewYield(pos Pos, args *Node) *Node {
	n := New(KindYield, pos)
	n.Args = args
	return n
}

func NewDefn(pos Pos, name string, args, body *Node) *Node {
	n := New(KindDefn, pos)
	n.Name = name
	n.Args = args
	n.Body = body
	return n
}

func NewDefs(pos Pos, recv *Node, name string, args, body *Node) *Node {
	n := NewDefn(pos, name, args, body)
	n.Kind = KindDefs
	n.Recv = recv
	return n
}

func NewClass(pos Pos, name string, super, body *Node) *Node {
	n := New(KindClass, pos)
	n.Name = name
	n.Recv = super
	n.Body = body
	return n
}

func NewModule(pos Pos, name string, body *Node) *Node {
	n := New(KindModule, pos)
	n.Name = name
	n.Body = body
	return n
}

// NewScope wraps a definition body together with the local table it was compiled with.
func NewScope(pos Pos, locals []string, body *Node) *Node {
	n := New(KindScope, pos)
	n.Locals = locals
	n.Body = body
	return n
}

func NewOptN(pos Pos, body *Node) *Node {
	n := New(KindOptN, pos)
	n.Body = body
	return n
}

func NewCall(pos Pos, recv *Node, name string, args *Node) *Node {
	n := New(KindCall, pos)
	n.Recv = recv
	n.Name = name
	n.Args = args
	return n
}

func NewFCall(pos Pos, name string, args *Node) *Node {
	n := New(KindFCall, pos)
	n.Name = name
	n.Args = args
	return n
}

func NewSuper(pos Pos, args *Node) *Node {
	n := New(KindSuper, pos)
	n.Args = args
	return n
}

func NewZSuper(pos Pos) *Node { return New(KindZSuper, pos) }

func NewIter(pos Pos, vars, call, body *Node) *Node {
	n := New(KindIter, pos)
	n.Args = vars
	n.Iter = call
	n.Body = body
	return n
}

// NewBlockPass builds the marker for a trailing &block argument.
func NewBlockPass(pos Pos, block *Node) *Node {
	n := New(KindBlockPass, pos)
	n.Body = block
	return n
}

func NewMatch(pos Pos, regexp *Node) *Node {
	n := New(KindMatch, pos)
	n.Head = regexp
	return n
}

func NewMatch2(pos Pos, regexp, subject *Node) *Node {
	n := New(KindMatch2, pos)
	n.Recv = regexp
	n.Value = subject
	return n
}

func NewMatch3(pos Pos, regexp, subject *Node) *Node {
	n := New(KindMatch3, pos)
	n.Recv = regexp
	n.Value = subject
	return n
}

func NewDefined(pos Pos, expr *Node) *Node {
	n := New(KindDefined, pos)
	n.Head = expr
	return n
}

func NewArgsCat(pos Pos, head, body *Node) *Node {
	n := New(KindArgsCat, pos)
	n.Head = head
	n.Body = body
	return n
}

func NewArgsPush(pos Pos, head, body *Node) *Node {
	n := New(KindArgsPush, pos)
	n.Head = head
	n.Body = body
	return n
}

func NewSplat(pos Pos, value *Node) *Node {
	n := New(KindSplat, pos)
	n.Head = value
	return n
}

func newRange(kind Kind, pos Pos, beg, end *Node) *Node {
	n := New(kind, pos)
	n.Beg = beg
	n.End = end
	return n
}

func NewDot2(pos Pos, beg, end *Node) *Node { return newRange(KindDot2, pos, beg, end) }
func NewDot3(pos Pos, beg, end *Node) *Node { return newRange(KindDot3, pos, beg, end) }

func NewAnd(pos Pos, left, right *Node) *Node {
	n := New(KindAnd, pos)
	n.Left = left
	n.Right = right
	return n
}

func NewOr(pos Pos, left, right *Node) *Node {
	n := New(KindOr, pos)
	n.Left = left
	n.Right = right
	return n
}

func NewNot(pos Pos, expr *Node) *Node {
	n := New(KindNot, pos)
	n.Head = expr
	return n
}

func NewColon2(pos Pos, head *Node, name string) *Node {
	n := New(KindColon2, pos)
	n.Head = head
	n.Name = name
	return n
}

func NewColon3(pos Pos, name string) *Node {
	return newVar(KindColon3, pos, name)
}
