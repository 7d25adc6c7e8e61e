package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree(line int) *Node {
	pos := Pos{File: "t.rb", Line: line}
	cond := flipFlopTree(pos)
	return NewIf(pos, cond, NewFCall(pos, "print", NewList(pos, NewGVar(pos, "$_"))), nil)
}

// flipFlopTree builds a flip-flop by hand the way the conditional rewriter does.
func flipFlopTree(pos Pos) *Node {
	n := NewDot2(pos, NewInt(pos, 1), NewInt(pos, 3))
	n.Kind = KindFlip2
	n.Index = 2
	return n
}

func TestDigestIsDeterministic(t *testing.T) {
	d1, err := Digest(sampleTree(3))
	require.NoError(t, err)
	d2, err := Digest(sampleTree(3))
	require.NoError(t, err)

	assert.Equal(t, d1, d2, "equal trees must hash equally")
	assert.True(t, strings.HasPrefix(d1, "blake2b:"), "digest must be tagged: %s", d1)
	assert.Len(t, d1, len("blake2b:")+64)

	d3, err := Digest(sampleTree(4))
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3, "positions are part of the digest")
}

func TestDigestIgnoresChainBookkeeping(t *testing.T) {
	pos := Pos{Line: 1}
	a := NewBlock(pos, NewInt(pos, 1))
	a.Next = NewBlock(pos, NewInt(pos, 2))
	a.Tail = a.Next

	b := NewBlock(pos, NewInt(pos, 1))
	b.Next = NewBlock(pos, NewInt(pos, 2))
	// stale tail cache on b

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}

func TestEncodeCanonicalDecodes(t *testing.T) {
	data, err := EncodeCanonical(sampleTree(7))
	require.NoError(t, err)

	cn, err := DecodeCanonical(data)
	require.NoError(t, err)

	assert.Equal(t, "if", cn.Kind)
	assert.Equal(t, 7, cn.Line)
	require.Contains(t, cn.Slots, "cond")
	assert.Equal(t, "flip2", cn.Slots["cond"].Kind)
	assert.Equal(t, 2, cn.Slots["cond"].Index)
	require.Contains(t, cn.Slots, "body")
	assert.Equal(t, "fcall", cn.Slots["body"].Kind)
	require.Len(t, cn.Slots["body"].Slots["args"].Elems, 1)
	assert.Equal(t, "$_", cn.Slots["body"].Slots["args"].Elems[0].Name)

	_, err = DecodeCanonical([]byte{0xff, 0x00})
	assert.Error(t, err)
}

func TestCanonicalizeNil(t *testing.T) {
	assert.Nil(t, Canonicalize(nil))
}
