package ast

// Kind identifies the variant of a Node. The set is closed: switches over Kind
// end in an invariant.Unreachable default arm.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Statement chains and lists
	KindBlock   // statement chain link: Head=statement, Next=next link, Tail cached on the first link
	KindNewline // line marker: Body=statement
	KindList    // argument/array link: Head=element, Next=next link, Len cached on the first link
	KindZList   // empty array literal

	// Assignments (Value holds the right-hand side)
	KindLAsgn     // local, Index=slot
	KindDAsgn     // dynamic binding of an enclosing block
	KindDAsgnCurr // dynamic binding of the current block
	KindGAsgn
	KindIAsgn
	KindCDecl
	KindCVDecl
	KindCVAsgn
	KindMAsgn // Head=target list, Args=splat target

	// Variable reads
	KindLVar // Index=slot
	KindDVar
	KindGVar
	KindIVar
	KindConst
	KindCVar
	KindCVar2 // class variable read inside a singleton method
	KindNthRef
	KindBackRef

	// Literals
	KindLit // numbers, symbols, static regexps
	KindStr
	KindDStr
	KindXStr
	KindDXStr
	KindEvStr
	KindDRegx
	KindDRegxOnce

	// Pseudo variables
	KindSelf
	KindNil
	KindTrue
	KindFalse

	// Control
	KindIf    // Cond, Body, Else
	KindWhile // Cond, Body
	KindUntil // Cond, Body
	KindBegin // Body
	KindRescue
	KindEnsure
	KindReturn // Value
	KindBreak
	KindNext
	KindRedo
	KindRetry
	KindYield // Args

	// Definitions
	KindDefn   // Name, Args, Body
	KindDefs   // Recv, Name, Args, Body
	KindClass  // Name, Recv=superclass, Body
	KindModule // Name, Body
	KindScope  // Locals, Body
	KindOptN   // Body wrapped in a line-reading loop

	// Calls
	KindCall      // Recv, Name, Args
	KindFCall     // Name, Args
	KindVCall     // Name
	KindSuper     // Args
	KindZSuper    //
	KindIter      // Args=block variables, Iter=call, Body
	KindBlockPass // Head=arguments, Body=block expression, Iter=call
	KindMatch     // Head=regexp matched against $_
	KindMatch2    // Recv=regexp, Value=subject
	KindMatch3    // Recv=regexp, Value=subject
	KindDefined   // Head

	// Argument forms
	KindArgsCat  // Head, Body
	KindArgsPush // Head, Body
	KindSplat    // Head

	// Ranges
	KindDot2  // Beg, End
	KindDot3  // Beg, End
	KindFlip2 // Beg, End, Index=hidden slot
	KindFlip3 // Beg, End, Index=hidden slot

	// Logical
	KindAnd // Left, Right
	KindOr  // Left, Right
	KindNot // Head

	// Scoped constants
	KindColon2 // Head, Name
	KindColon3 // Name
	KindCRef

	kindCount
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBlock:     "block",
	KindNewline:   "newline",
	KindList:      "list",
	KindZList:     "zlist",
	KindLAsgn:     "lasgn",
	KindDAsgn:     "dasgn",
	KindDAsgnCurr: "dasgn_curr",
	KindGAsgn:     "gasgn",
	KindIAsgn:     "iasgn",
	KindCDecl:     "cdecl",
	KindCVDecl:    "cvdecl",
	KindCVAsgn:    "cvasgn",
	KindMAsgn:     "masgn",
	KindLVar:      "lvar",
	KindDVar:      "dvar",
	KindGVar:      "gvar",
	KindIVar:      "ivar",
	KindConst:     "const",
	KindCVar:      "cvar",
	KindCVar2:     "cvar2",
	KindNthRef:    "nth_ref",
	KindBackRef:   "back_ref",
	KindLit:       "lit",
	KindStr:       "str",
	KindDStr:      "dstr",
	KindXStr:      "xstr",
	KindDXStr:     "dxstr",
	KindEvStr:     "evstr",
	KindDRegx:     "dregx",
	KindDRegxOnce: "dregx_once",
	KindSelf:      "self",
	KindNil:       "nil",
	KindTrue:      "true",
	KindFalse:     "false",
	KindIf:        "if",
	KindWhile:     "while",
	KindUntil:     "until",
	KindBegin:     "begin",
	KindRescue:    "rescue",
	KindEnsure:    "ensure",
	KindReturn:    "return",
	KindBreak:     "break",
	KindNext:      "next",
	KindRedo:      "redo",
	KindRetry:     "retry",
	KindYield:     "yield",
	KindDefn:      "defn",
	KindDefs:      "defs",
	KindClass:     "class",
	KindModule:    "module",
	KindScope:     "scope",
	KindOptN:      "opt_n",
	KindCall:      "call",
	KindFCall:     "fcall",
	KindVCall:     "vcall",
	KindSuper:     "super",
	KindZSuper:    "zsuper",
	KindIter:      "iter",
	KindBlockPass: "block_pass",
	KindMatch:     "match",
	KindMatch2:    "match2",
	KindMatch3:    "match3",
	KindDefined:   "defined",
	KindArgsCat:   "argscat",
	KindArgsPush:  "argspush",
	KindSplat:     "splat",
	KindDot2:      "dot2",
	KindDot3:      "dot3",
	KindFlip2:     "flip2",
	KindFlip3:     "flip3",
	KindAnd:       "and",
	KindOr:        "or",
	KindNot:       "not",
	KindColon2:    "colon2",
	KindColon3:    "colon3",
	KindCRef:      "cref",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if Kind(k) != KindInvalid {
			m[name] = Kind(k)
		}
	}
	return m
}()

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// KindByName looks up a kind by its lower-case name.
func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindNames returns the names of every valid kind in declaration order.
func KindNames() []string {
	names := make([]string, 0, kindCount-1)
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return names
}

// IsAssignment reports whether the kind carries its right-hand side in Value.
func (k Kind) IsAssignment() bool {
	switch k {
	case KindLAsgn, KindDAsgn, KindDAsgnCurr, KindGAsgn, KindIAsgn,
		KindCDecl, KindCVDecl, KindCVAsgn, KindMAsgn:
		return true
	}
	return false
}

// IsJump reports whether the kind transfers control away from the statement chain.
func (k Kind) IsJump() bool {
	switch k {
	case KindReturn, KindBreak, KindNext, KindRedo, KindRetry:
		return true
	}
	return false
}
