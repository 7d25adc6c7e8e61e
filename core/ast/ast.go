// Package ast defines the tree built by the semantic actions.
//
// A Node is one struct for every kind. Which fields are meaningful depends on Kind;
// see the comments on the Kind constants. Compound nodes are singly linked: a
// statement chain is a run of KindBlock links and an argument list is a run of
// KindList links, both joined through Next. The first link caches the chain tail
// (Block) or the element count (List) so appends never rescan more than they must.
package ast

import "fmt"

// Pos is a source location. The core tracks lines only.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d", p.File, p.Line)
	}
	return fmt.Sprintf("%d", p.Line)
}

// IsValid reports whether the position carries a line.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// LitKind distinguishes the payloads of KindLit and the string kinds.
type LitKind uint8

const (
	LitNone LitKind = iota
	LitInt
	LitFloat
	LitSymbol
	LitRegexp
	LitString
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitSymbol:
		return "symbol"
	case LitRegexp:
		return "regexp"
	case LitString:
		return "string"
	default:
		return "none"
	}
}

// Literal is the value carried by literal nodes.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Str   string // string body, symbol name or regexp source
}

func (l Literal) String() string {
	switch l.Kind {
	case LitInt:
		return fmt.Sprintf("%d", l.Int)
	case LitFloat:
		return fmt.Sprintf("%g", l.Float)
	case LitSymbol:
		return ":" + l.Str
	case LitRegexp:
		return "/" + l.Str + "/"
	case LitString:
		return fmt.Sprintf("%q", l.Str)
	default:
		return ""
	}
}

// Node is one tree node.
type Node struct {
	Kind Kind
	Pos  Pos

	Head *Node // first element, wrapped argument list, negated expression
	Next *Node // sibling link inside Block and List chains
	Tail *Node // last link of a Block chain, valid on the first link only
	Len  int   // element count of a List chain, valid on the first link only

	Cond  *Node
	Body  *Node
	Else  *Node
	Recv  *Node
	Args  *Node
	Value *Node
	Iter  *Node
	Beg   *Node
	End   *Node
	Left  *Node
	Right *Node

	Name   string
	Index  int
	Lit    Literal
	Locals []string // KindScope only
}

// SetPos copies the location of orig onto n.
func (n *Node) SetPos(orig *Node) {
	if n == nil || orig == nil {
		return
	}
	n.Pos = orig.Pos
}

// Line returns the node's source line, or 0 for a nil node.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return n.Pos.Line
}

// Elements returns the Head of every link of a Block or List chain, walking Next.
func (n *Node) Elements() []*Node {
	var elems []*Node
	for link := n; link != nil; link = link.Next {
		elems = append(elems, link.Head)
	}
	return elems
}

// Count walks the chain and returns the number of links.
func (n *Node) Count() int {
	count := 0
	for link := n; link != nil; link = link.Next {
		count++
	}
	return count
}

// Last returns the final link of a chain.
func (n *Node) Last() *Node {
	if n == nil {
		return nil
	}
	link := n
	for link.Next != nil {
		link = link.Next
	}
	return link
}

// Unwrap strips leading newline markers.
func (n *Node) Unwrap() *Node {
	for n != nil && n.Kind == KindNewline {
		n = n.Body
	}
	return n
}

// IsRegexp reports whether n is a regexp literal, static or dynamic.
func (n *Node) IsRegexp() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindDRegx, KindDRegxOnce:
		return true
	case KindLit:
		return n.Lit.Kind == LitRegexp
	}
	return false
}
