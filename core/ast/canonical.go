package ast

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// CanonicalNode is the serialization form of a Node: chains are flattened into
// Elems and every child slot is named, so the encoding does not depend on how the
// chain bookkeeping (Tail, Len) happens to be cached.
type CanonicalNode struct {
	Kind   string                    `cbor:"1,keyasint"`
	File   string                    `cbor:"2,keyasint,omitempty"`
	Line   int                       `cbor:"3,keyasint,omitempty"`
	Name   string                    `cbor:"4,keyasint,omitempty"`
	Index  int                       `cbor:"5,keyasint,omitempty"`
	Lit    *CanonicalLit             `cbor:"6,keyasint,omitempty"`
	Locals []string                  `cbor:"7,keyasint,omitempty"`
	Elems  []*CanonicalNode          `cbor:"8,keyasint,omitempty"`
	Slots  map[string]*CanonicalNode `cbor:"9,keyasint,omitempty"`
}

// CanonicalLit is the serialization form of a Literal.
type CanonicalLit struct {
	Kind  string  `cbor:"1,keyasint"`
	Int   int64   `cbor:"2,keyasint,omitempty"`
	Float float64 `cbor:"3,keyasint,omitempty"`
	Str   string  `cbor:"4,keyasint,omitempty"`
}

// Canonicalize converts the subtree rooted at n. A nil node yields nil.
func Canonicalize(n *Node) *CanonicalNode {
	if n == nil {
		return nil
	}

	cn := &CanonicalNode{
		Kind:   n.Kind.String(),
		File:   n.Pos.File,
		Line:   n.Pos.Line,
		Name:   n.Name,
		Index:  n.Index,
		Locals: n.Locals,
	}
	if n.Lit.Kind != LitNone {
		cn.Lit = &CanonicalLit{Kind: n.Lit.Kind.String(), Int: n.Lit.Int, Float: n.Lit.Float, Str: n.Lit.Str}
	}

	if n.Kind == KindBlock || n.Kind == KindList {
		for link := n; link != nil; link = link.Next {
			cn.Elems = append(cn.Elems, Canonicalize(link.Head))
		}
		return cn
	}

	slots := map[string]*Node{
		"head": n.Head, "cond": n.Cond, "recv": n.Recv, "beg": n.Beg, "end": n.End,
		"left": n.Left, "right": n.Right, "args": n.Args, "iter": n.Iter,
		"body": n.Body, "else": n.Else, "value": n.Value,
	}
	for name, child := range slots {
		if child == nil {
			continue
		}
		if cn.Slots == nil {
			cn.Slots = make(map[string]*CanonicalNode)
		}
		cn.Slots[name] = Canonicalize(child)
	}
	return cn
}

var canonicalEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encoder options: %v", err))
	}
	return em
}()

// EncodeCanonical serializes the subtree as deterministic CBOR: map keys are sorted,
// so equal trees always produce identical bytes.
func EncodeCanonical(n *Node) ([]byte, error) {
	data, err := canonicalEncMode.Marshal(Canonicalize(n))
	if err != nil {
		return nil, fmt.Errorf("encode canonical tree: %w", err)
	}
	return data, nil
}

// DecodeCanonical parses bytes produced by EncodeCanonical.
func DecodeCanonical(data []byte) (*CanonicalNode, error) {
	var cn CanonicalNode
	if err := cbor.Unmarshal(data, &cn); err != nil {
		return nil, fmt.Errorf("decode canonical tree: %w", err)
	}
	return &cn, nil
}

// Digest returns the BLAKE2b-256 hash of the canonical encoding as "blake2b:<hex>".
func Digest(n *Node) (string, error) {
	data, err := EncodeCanonical(n)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("blake2b:%x", sum), nil
}
