package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IdentClass is the lexical category of an identifier spelling.
type IdentClass int

const (
	IdentInvalid  IdentClass = iota
	IdentPseudo              // self, nil, true, false, __FILE__, __LINE__
	IdentLocal               // foo, _bar
	IdentGlobal              // $foo
	IdentInstance            // @foo
	IdentClassVar            // @@foo
	IdentConst               // Foo
)

func (c IdentClass) String() string {
	switch c {
	case IdentPseudo:
		return "pseudo"
	case IdentLocal:
		return "local"
	case IdentGlobal:
		return "global"
	case IdentInstance:
		return "instance"
	case IdentClassVar:
		return "class variable"
	case IdentConst:
		return "constant"
	default:
		return "invalid"
	}
}

// KeywordMarker prefixes the pseudo-variable identifiers the lexer produces for
// keywords, so they can never collide with a real identifier.
const KeywordMarker = "%"

const (
	KeywordSelf  = KeywordMarker + "self"
	KeywordNil   = KeywordMarker + "nil"
	KeywordTrue  = KeywordMarker + "true"
	KeywordFalse = KeywordMarker + "false"
	KeywordFile  = KeywordMarker + "__FILE__"
	KeywordLine  = KeywordMarker + "__LINE__"
)

// Keyword returns the marked identifier for a pseudo-variable keyword, or "" if
// word is not one.
func Keyword(word string) string {
	id := KeywordMarker + word
	if ClassifyIdent(id) == IdentPseudo {
		return id
	}
	return ""
}

// ClassifyIdent decides the category of an identifier from its spelling alone.
func ClassifyIdent(id string) IdentClass {
	switch {
	case id == "":
		return IdentInvalid
	case strings.HasPrefix(id, KeywordMarker):
		switch id {
		case KeywordSelf, KeywordNil, KeywordTrue, KeywordFalse, KeywordFile, KeywordLine:
			return IdentPseudo
		}
		return IdentInvalid
	case strings.HasPrefix(id, "$"):
		if len(id) > 1 {
			return IdentGlobal
		}
		return IdentInvalid
	case strings.HasPrefix(id, "@@"):
		if isNameStart(id[2:]) {
			return IdentClassVar
		}
		return IdentInvalid
	case strings.HasPrefix(id, "@"):
		if isNameStart(id[1:]) {
			return IdentInstance
		}
		return IdentInvalid
	case strings.HasSuffix(id, "="):
		// attribute writer names are never variables
		return IdentInvalid
	}

	r, _ := utf8.DecodeRuneInString(id)
	switch {
	case unicode.IsUpper(r):
		return IdentConst
	case r == '_' || unicode.IsLower(r) || (r >= utf8.RuneSelf && unicode.IsLetter(r)):
		return IdentLocal
	}
	return IdentInvalid
}

func isNameStart(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

// keywordName strips the marker for use in messages.
func keywordName(id string) string {
	return strings.TrimPrefix(id, KeywordMarker)
}
