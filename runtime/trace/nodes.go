package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opal-lang/semact/core/ast"
)

// buildNode creates a node the actions never build themselves: literals, control
// structures and reads of non-local variables, which the grammar driver makes
// with the node factory directly.
func buildNode(x *replay, s Step) (*ast.Node, error) {
	kind, ok := ast.KindByName(s.Kind)
	if !ok {
		return nil, unknown("node kind", s.Kind, ast.KindNames())
	}
	ops, err := x.args(s, 3)
	if err != nil {
		return nil, err
	}
	a0, a1, a2 := ops[0], ops[1], ops[2]
	pos := x.actions.Pos()

	switch kind {
	case ast.KindLit:
		lit, err := parseLiteral(s.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewLit(pos, lit), nil
	case ast.KindStr:
		return ast.NewStr(pos, s.Value), nil
	case ast.KindXStr:
		return ast.NewXStr(pos, s.Value), nil
	case ast.KindEvStr:
		return ast.NewEvStr(pos, s.Value), nil
	case ast.KindDStr:
		return ast.NewDStr(pos, s.Value, a0), nil
	case ast.KindDXStr:
		return ast.NewDXStr(pos, s.Value, a0), nil
	case ast.KindDRegx:
		return ast.NewDRegx(pos, s.Value, a0), nil
	case ast.KindDRegxOnce:
		return ast.NewDRegxOnce(pos, s.Value, a0), nil

	case ast.KindGVar, ast.KindIVar, ast.KindConst, ast.KindCVar, ast.KindCVar2,
		ast.KindDVar, ast.KindVCall, ast.KindBackRef, ast.KindColon3:
		if err := needOperand(s, "name", s.Name); err != nil {
			return nil, err
		}
		n := ast.New(kind, pos)
		n.Name = s.Name
		return n, nil
	case ast.KindNthRef:
		nth, err := strconv.Atoi(s.Value)
		if err != nil || nth < 1 {
			return nil, fmt.Errorf("nth_ref needs a positive value, got %q", s.Value)
		}
		return ast.NewNthRef(pos, nth), nil
	case ast.KindColon2:
		if err := needOperand(s, "name", s.Name); err != nil {
			return nil, err
		}
		return ast.NewColon2(pos, a0, s.Name), nil

	case ast.KindSelf, ast.KindNil, ast.KindTrue, ast.KindFalse, ast.KindZList,
		ast.KindBreak, ast.KindNext, ast.KindRedo, ast.KindRetry, ast.KindZSuper, ast.KindCRef:
		return ast.New(kind, pos), nil

	case ast.KindReturn:
		return ast.NewReturn(pos, a0), nil
	case ast.KindYield:
		return ast.NewYield(pos, a0), nil
	case ast.KindIf:
		return ast.NewIf(pos, a0, a1, a2), nil
	case ast.KindWhile:
		return ast.NewWhile(pos, a0, a1), nil
	case ast.KindUntil:
		return ast.NewUntil(pos, a0, a1), nil
	case ast.KindBegin:
		return ast.NewBegin(pos, a0), nil
	case ast.KindRescue:
		return ast.NewRescue(pos, a0, a1, a2), nil
	case ast.KindEnsure:
		return ast.NewEnsure(pos, a0, a1), nil
	case ast.KindNewline:
		return ast.NewNewline(pos, a0), nil
	case ast.KindBlock:
		return ast.NewBlock(pos, a0), nil
	case ast.KindList:
		return ast.NewList(pos, a0), nil
	case ast.KindNot:
		return ast.NewNot(pos, a0), nil
	case ast.KindSplat:
		return ast.NewSplat(pos, a0), nil
	case ast.KindBlockPass:
		return ast.NewBlockPass(pos, a0), nil
	case ast.KindDefined:
		return ast.NewDefined(pos, a0), nil
	case ast.KindDot2:
		return ast.NewDot2(pos, a0, a1), nil
	case ast.KindDot3:
		return ast.NewDot3(pos, a0, a1), nil
	case ast.KindMAsgn:
		return ast.NewMAsgn(pos, a0, a1), nil
	}

	return nil, fmt.Errorf("%s nodes are built by their own operation", kind)
}

// parseLiteral reads the text form of a literal: 42, 1.5, :sym or /re/.
func parseLiteral(text string) (ast.Literal, error) {
	switch {
	case strings.HasPrefix(text, ":") && len(text) > 1:
		return ast.Literal{Kind: ast.LitSymbol, Str: text[1:]}, nil
	case strings.HasPrefix(text, "/") && strings.HasSuffix(text, "/") && len(text) >= 2:
		return ast.Literal{Kind: ast.LitRegexp, Str: text[1 : len(text)-1]}, nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.Literal{Kind: ast.LitInt, Int: i}, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return ast.Literal{Kind: ast.LitFloat, Float: f}, nil
	}
	return ast.Literal{}, fmt.Errorf("cannot read literal %q", text)
}
