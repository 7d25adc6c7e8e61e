package ast

import (
	"strconv"
	"strings"
)

// String renders the subtree as an S-expression, e.g.
//
//	(block (lasgn x 2 (lit 5)) (vcall puts))
//
// Block and List chains print their elements flat under a single head.
func (n *Node) String() string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("()")
		return
	}

	b.WriteByte('(')
	b.WriteString(n.Kind.String())

	if n.Kind == KindBlock || n.Kind == KindList {
		for link := n; link != nil; link = link.Next {
			b.WriteByte(' ')
			writeNode(b, link.Head)
		}
		b.WriteByte(')')
		return
	}

	if n.Name != "" {
		b.WriteByte(' ')
		b.WriteString(n.Name)
	}
	switch n.Kind {
	case KindLAsgn, KindLVar, KindFlip2, KindFlip3, KindNthRef:
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(n.Index))
	case KindScope:
		b.WriteString(" [")
		b.WriteString(strings.Join(n.Locals, " "))
		b.WriteByte(']')
	}
	if n.Lit.Kind != LitNone {
		b.WriteByte(' ')
		b.WriteString(n.Lit.String())
	}

	for _, child := range n.children() {
		b.WriteByte(' ')
		writeNode(b, child)
	}
	b.WriteByte(')')
}

// children lists the non-nil child slots in a fixed order. Next and Tail are chain
// bookkeeping, not children.
func (n *Node) children() []*Node {
	slots := [...]*Node{n.Head, n.Cond, n.Recv, n.Beg, n.End, n.Left, n.Right, n.Args, n.Iter, n.Body, n.Else, n.Value}
	out := make([]*Node, 0, 4)
	for _, c := range slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
