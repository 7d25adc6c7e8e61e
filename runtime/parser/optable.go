package parser

import "sort"

// Token identifies an operator token of the grammar. Single-character operators use
// the character itself.
type Token rune

const (
	TokDot2   Token = 0x101 + iota // ..
	TokDot3                        // ...
	TokPow                         // **
	TokUPlus                       // +@
	TokUMinus                      // -@
	TokCmp                         // <=>
	TokGeq                         // >=
	TokLeq                         // <=
	TokEq                          // ==
	TokEqq                         // ===
	TokNeq                         // !=
	TokMatch                       // =~
	TokNMatch                      // !~
	TokAref                        // []
	TokAset                        // []=
	TokLShift                      // <<
	TokRShift                      // >>
	TokColon2                      // ::
	TokColon3                      // :: at expression start
)

var opNames = map[Token]string{
	TokDot2:   "..",
	TokDot3:   "...",
	TokPow:    "**",
	TokUPlus:  "+@",
	TokUMinus: "-@",
	TokCmp:    "<=>",
	TokGeq:    ">=",
	TokLeq:    "<=",
	TokEq:     "==",
	TokEqq:    "===",
	TokNeq:    "!=",
	TokMatch:  "=~",
	TokNMatch: "!~",
	TokAref:   "[]",
	TokAset:   "[]=",
	TokLShift: "<<",
	TokRShift: ">>",
	TokColon2: "::",
	TokColon3: "::",
}

// OpName returns the method name an operator token dispatches to.
func OpName(tok Token) string {
	if name, ok := opNames[tok]; ok {
		return name
	}
	return string(rune(tok))
}

// OpToken is the inverse of OpName for operator spellings.
func OpToken(name string) (Token, bool) {
	for tok, n := range opNames {
		if n == name && tok != TokColon3 {
			return tok, true
		}
	}
	if len(name) == 1 {
		return Token(name[0]), true
	}
	return 0, false
}

// OpNames lists every operator spelling in the table, sorted.
func OpNames() []string {
	seen := make(map[string]bool, len(opNames))
	names := make([]string, 0, len(opNames))
	for _, n := range opNames {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
