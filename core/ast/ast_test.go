package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEveryKindHasAName(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds() {
		name := k.String()
		if name == "unknown" || name == "" {
			t.Errorf("kind %d has no name", k)
			continue
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("kinds %d and %d share the name %q", prev, k, name)
		}
		seen[name] = k

		back, ok := KindByName(name)
		if !ok || back != k {
			t.Errorf("KindByName(%q) = %v, %v; want %v", name, back, ok, k)
		}
	}
	if _, ok := KindByName("invalid"); ok {
		t.Error("invalid must not be addressable by name")
	}
	if got := Kind(250).String(); got != "unknown" {
		t.Errorf("out of range kind String() = %q", got)
	}
}

func TestKindPredicates(t *testing.T) {
	jumps := map[Kind]bool{KindReturn: true, KindBreak: true, KindNext: true, KindRedo: true, KindRetry: true}
	for _, k := range Kinds() {
		if k.IsJump() != jumps[k] {
			t.Errorf("%s.IsJump() = %v", k, k.IsJump())
		}
	}
	for _, k := range []Kind{KindLAsgn, KindDAsgnCurr, KindCDecl, KindMAsgn} {
		if !k.IsAssignment() {
			t.Errorf("%s should be an assignment kind", k)
		}
	}
	if KindCall.IsAssignment() {
		t.Error("call is not an assignment kind")
	}
}

func TestNewNormalizesChainHeads(t *testing.T) {
	pos := Pos{File: "t.rb", Line: 1}

	block := NewBlock(pos, NewNil(pos))
	if block.Tail != block {
		t.Error("a fresh block link must be its own tail")
	}

	list := NewList(pos, NewInt(pos, 1))
	if list.Len != 1 {
		t.Errorf("a fresh list must count one element, got %d", list.Len)
	}
}

func TestChainHelpers(t *testing.T) {
	pos := Pos{Line: 1}
	a, b, c := NewInt(pos, 1), NewInt(pos, 2), NewInt(pos, 3)
	list := NewList(pos, a)
	list.Next = NewList(pos, b)
	list.Next.Next = NewList(pos, c)

	if diff := cmp.Diff([]*Node{a, b, c}, list.Elements()); diff != "" {
		t.Errorf("Elements mismatch (-want +got):\n%s", diff)
	}
	if got := list.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if list.Last().Head != c {
		t.Error("Last() must return the final link")
	}

	var empty *Node
	if empty.Last() != nil || empty.Count() != 0 || empty.Line() != 0 {
		t.Error("nil chain helpers must be safe")
	}
}

func TestUnwrapAndRegexp(t *testing.T) {
	pos := Pos{Line: 2}
	re := NewRegexp(pos, "foo")
	wrapped := NewNewline(pos, NewNewline(pos, re))

	if wrapped.Unwrap() != re {
		t.Error("Unwrap must strip every newline marker")
	}
	if !re.IsRegexp() || !NewDRegx(pos, "a", nil).IsRegexp() {
		t.Error("static and dynamic regexps must be recognized")
	}
	if NewStr(pos, "foo").IsRegexp() || NewInt(pos, 1).IsRegexp() {
		t.Error("non-regexp literals must not be recognized")
	}
}

func TestString(t *testing.T) {
	pos := Pos{Line: 1}
	body := NewBlock(pos, NewLAsgn(pos, "x", 2, NewInt(pos, 5)))
	body.Next = NewBlock(pos, NewCall(pos, NewLVar(pos, "x", 2), "+", NewList(pos, NewStr(pos, "s"))))

	want := `(block (lasgn x 2 (lit 5)) (call + (lvar x 2) (list (str "s"))))`
	if got := body.String(); got != want {
		t.Errorf("String() =\n  %s\nwant\n  %s", got, want)
	}

	scope := NewScope(pos, []string{"_", "~", "x"}, nil)
	if got := scope.String(); got != "(scope [_ ~ x])" {
		t.Errorf("scope String() = %q", got)
	}

	var nilNode *Node
	if nilNode.String() != "()" {
		t.Errorf("nil node String() = %q", nilNode.String())
	}
}
