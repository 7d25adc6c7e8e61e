package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/semact/core/invariant"
)

func TestRegisterOrder(t *testing.T) {
	s := NewStack()
	s.Push()

	assert.Equal(t, 2, s.LookupOrRegister("x"))
	assert.Equal(t, 3, s.LookupOrRegister("y"))
	assert.Equal(t, 2, s.LookupOrRegister("x"), "re-registration is a lookup")

	assert.Equal(t, []string{"_", "~", "x", "y"}, s.Top().Names())
	assert.Equal(t, 0, s.LookupOrRegister("_"))
	assert.Equal(t, 1, s.LookupOrRegister("~"))
}

func TestRegisterKeepsNamesUnique(t *testing.T) {
	s := NewStack()
	s.Push()

	got := []int{s.Register("x"), s.Register("y"), s.Register("x"), s.Register(LastLine)}
	assert.Equal(t, []int{2, 3, 2, 0}, got)
	assert.Equal(t, []string{"_", "~", "x", "y"}, s.Top().Names())

	assert.Equal(t, 4, s.Register(""))
	assert.Equal(t, 5, s.Register(""), "anonymous slots always append")
	assert.Equal(t, 2, s.LookupOrRegister("x"))
}

func TestRegisterReservedIntoEmptyFrame(t *testing.T) {
	for _, tc := range []struct {
		name string
		want int
	}{
		{LastLine, 0},
		{MatchData, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewStack()
			s.Push()
			assert.Equal(t, tc.want, s.Register(tc.name))
			assert.Equal(t, 2, s.Top().Size(), "reserved registration must not append")
		})
	}
}

func TestIndicesAreStable(t *testing.T) {
	s := NewStack()
	s.Push()

	names := []string{"a", "b", "c", "d", "e"}
	first := make(map[string]int)
	prev := -1
	for _, n := range names {
		idx := s.LookupOrRegister(n)
		assert.Greater(t, idx, prev, "indices must strictly increase")
		prev = idx
		first[n] = idx
	}
	for _, n := range names {
		assert.Equal(t, first[n], s.LookupOrRegister(n))
	}
}

func TestHiddenSlots(t *testing.T) {
	s := NewStack()
	s.Push()
	s.Register("x")

	hidden := s.Register("")
	assert.Equal(t, 3, hidden)
	assert.Equal(t, 4, s.LookupOrRegister(""), "empty name reports the size")
	assert.False(t, s.IsRegistered(""))
	assert.Equal(t, []string{"_", "~", "x", ""}, s.Top().Names())
}

func TestFramesAreIndependent(t *testing.T) {
	s := NewStack()
	s.Push()
	s.Register("outer")

	s.Push()
	assert.False(t, s.IsRegistered("outer"), "lookups never fall through to the enclosing frame")
	assert.Equal(t, 0, s.Top().Size())
	s.Register("inner")
	s.Pop()

	assert.True(t, s.IsRegistered("outer"))
	assert.False(t, s.IsRegistered("inner"))
	assert.Equal(t, 1, s.Depth())
}

func TestPopEmptyStackIsViolation(t *testing.T) {
	s := NewStack()
	defer func() {
		_, ok := invariant.AsViolation(recover())
		assert.True(t, ok, "expected a contract violation")
	}()
	s.Pop()
}

func TestBlockLevel(t *testing.T) {
	s := NewStack()
	s.Push()
	assert.False(t, s.InBlock())

	s.EnterBlock()
	s.EnterBlock()
	assert.True(t, s.InBlock())
	assert.Equal(t, 2, s.Top().DynaLevel())

	s.LeaveBlock()
	s.LeaveBlock()
	assert.False(t, s.InBlock())
}

func TestDynaVars(t *testing.T) {
	d := NewDynaVars()
	assert.False(t, d.Active())

	outer := d.Save()
	d.PushMarker()
	d.Bind("a", 1)
	assert.True(t, d.Current("a"))
	assert.True(t, d.Defined("a"))

	inner := d.Save()
	d.PushMarker()
	d.Bind("b", Nil)
	assert.False(t, d.Current("a"), "a belongs to the enclosing block")
	assert.True(t, d.Defined("a"))
	assert.True(t, d.Current("b"))
	assert.Equal(t, []string{"b", "a"}, d.Names())

	v, ok := d.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	d.Restore(inner)
	assert.False(t, d.Defined("b"))
	assert.True(t, d.Current("a"))

	d.Restore(outer)
	assert.False(t, d.Active())
}

func TestTopLocalInitAndSetup(t *testing.T) {
	act := NewActivation("_", "~", "x")
	act.Set("x", 42)

	s := NewStack()
	s.InitTop(act, NewDynaVars())
	assert.True(t, s.IsRegistered("x"))
	assert.False(t, s.InBlock())
	assert.Equal(t, 3, s.LookupOrRegister("y"))

	s.SetupTop(act)
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, []string{"_", "~", "x", "y"}, act.Names)
	require.Len(t, act.Values, 4)
	assert.Equal(t, 42, act.Values[2], "existing values survive reconciliation")
	assert.Equal(t, Nil, act.Values[3], "new slots are padded with nil")
}

func TestTopLocalInitInsideBlock(t *testing.T) {
	chain := NewDynaVars()
	chain.PushMarker()

	s := NewStack()
	s.InitTop(nil, chain)
	assert.True(t, s.InBlock(), "an active chain means the unit is compiled inside a block")
	s.SetupTop(nil)
}

func TestSetupTopWithoutGrowthLeavesActivation(t *testing.T) {
	act := NewActivation("_", "~", "x")
	s := NewStack()
	s.InitTop(act, nil)
	s.SetupTop(act)
	assert.Equal(t, []string{"_", "~", "x"}, act.Names)
}

func TestActivationGetSet(t *testing.T) {
	act := NewActivation("_", "~", "x")
	assert.True(t, act.Set("x", "v"))
	assert.False(t, act.Set("nope", 1))
	v, ok := act.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok = act.Get("")
	assert.False(t, ok)
}
