package trace

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opal-lang/semact/core/ast"
	"github.com/opal-lang/semact/runtime/parser"
)

type operation struct {
	usage string
	run   func(x *replay, s Step) (*ast.Node, error)
}

var operations map[string]operation

// Ops lists the operation names a trace may use.
func Ops() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Usage describes the operands of an operation.
func Usage(op string) (string, bool) {
	o, ok := operations[op]
	return o.usage, ok
}

func init() {
	operations = map[string]operation{
		"line": {"line: set the current source line", func(x *replay, s Step) (*ast.Node, error) {
			if s.Line == 0 {
				return nil, fmt.Errorf("%w: line needs \"line\"", errNeedsOperand)
			}
			return nil, nil
		}},
		"push": {"open a method, class or module local table", func(x *replay, s Step) (*ast.Node, error) {
			x.actions.LocalPush()
			return nil, nil
		}},
		"pop": {"close the innermost local table", func(x *replay, s Step) (*ast.Node, error) {
			x.actions.LocalPop()
			return nil, nil
		}},
		"dyna_push": {"enter a block body", func(x *replay, s Step) (*ast.Node, error) {
			x.marks = append(x.marks, x.actions.DynaPush())
			return nil, nil
		}},
		"dyna_pop": {"leave the innermost block body", func(x *replay, s Step) (*ast.Node, error) {
			if len(x.marks) == 0 {
				return nil, errors.New("dyna_pop without a matching dyna_push")
			}
			mark := x.marks[len(x.marks)-1]
			x.marks = x.marks[:len(x.marks)-1]
			x.actions.DynaPop(mark)
			return nil, nil
		}},
		"node":     {"kind, name, value, args: build a node directly", buildNode},
		"read":     {"id: identifier access", opRead},
		"write":    {"id, args[value]: identifier assignment", opWrite},
		"append":   {"args[head, tail]: append statements", binary((*parser.Actions).AppendStatement)},
		"list":     {"args[list, item]: append to a list", binary((*parser.Actions).AppendList)},
		"concat":   {"args[head, tail]: splice two lists", binary((*parser.Actions).ConcatList)},
		"arg":      {"args[args, arg]: add a positional argument", binary((*parser.Actions).AddArg)},
		"argcat":   {"args[args, rest]: add a splat argument", binary((*parser.Actions).ConcatArgs)},
		"assign":   {"args[target, value]: complete an assignment", binary((*parser.Actions).Assign)},
		"blockarg": {"args[args, block_pass]: attach arguments to &block", binary((*parser.Actions).BlockPassArg)},
		"aryset":   {"args[recv, index]: recv[index]= target", binary((*parser.Actions).Aryset)},
		"match":    {"args[left, right]: =~", binary((*parser.Actions).Match)},
		"retargs":  {"args[args]: check return/yield arguments", unary((*parser.Actions).ReturnArgs)},
		"super":    {"args[args]: super call", unary((*parser.Actions).Super)},
		"cond":     {"args[expr]: rewrite a condition", unary((*parser.Actions).Cond)},
		"call":     {"name, args[recv, args]: method call", opCall},
		"fcall":    {"name, args[args]: receiverless call", opFCall},
		"attrset":  {"name, args[recv]: recv.name= target", opAttrset},
		"iter":     {"args[vars, call, body]: block literal", opIter},
		"logop":    {"kind (and|or), args[left, right]: logical operator", opLogOp},
		"callop":   {"tok, args[recv, arg]: operator call", opCallOp},
		"value":    {"args[expr]: check for a value expression", opValue},
		"void":     {"args[expr]: check statements for unused values", opVoid},
		"backref":  {"args[ref]: report assignment to a back-reference", opBackref},
		"def":      {"name: enter a method body", opDef},
		"enddef":   {"args[params, body]: close a method body", opEndDef},
		"sdef":     {"args[recv]: enter a singleton method body", opSingletonDef},
		"endsdef":  {"name, args[recv, params, body]: close a singleton method body", opEndSingletonDef},
		"class":    {"enter a class body", opClass},
		"endclass": {"name, args[super, body]: close a class body", opEndClass},
		"module":   {"enter a module body", opModule},
		"endmodule": {"name, args[body]: close a module body", func(x *replay, s Step) (*ast.Node, error) {
			if err := needOperand(s, "name", s.Name); err != nil {
				return nil, err
			}
			body, err := x.arg(s, 0)
			if err != nil {
				return nil, err
			}
			return x.actions.EndModule(s.Name, body), nil
		}},
		"result": {"args[body]: finish the compilation unit", func(x *replay, s Step) (*ast.Node, error) {
			body, err := x.arg(s, 0)
			if err != nil {
				return nil, err
			}
			if x.finished {
				return nil, errors.New("compilation unit already finished")
			}
			x.finished = true
			return x.actions.Program(body), nil
		}},
		"loop": {"chop, split: wrap the program in a line loop", func(x *replay, s Step) (*ast.Node, error) {
			x.actions.WrapLineLoop(s.Chop, s.Split)
			return x.actions.EvalTree(), nil
		}},
		"print": {"append print($_) to the program", func(x *replay, s Step) (*ast.Node, error) {
			x.actions.AppendPrint()
			return x.actions.EvalTree(), nil
		}},
	}
}

func unary(fn func(*parser.Actions, *ast.Node) *ast.Node) func(*replay, Step) (*ast.Node, error) {
	return func(x *replay, s Step) (*ast.Node, error) {
		n, err := x.arg(s, 0)
		if err != nil {
			return nil, err
		}
		return fn(x.actions, n), nil
	}
}

func binary(fn func(*parser.Actions, *ast.Node, *ast.Node) *ast.Node) func(*replay, Step) (*ast.Node, error) {
	return func(x *replay, s Step) (*ast.Node, error) {
		ops, err := x.args(s, 2)
		if err != nil {
			return nil, err
		}
		return fn(x.actions, ops[0], ops[1]), nil
	}
}

func opRead(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "id", s.ID); err != nil {
		return nil, err
	}
	return x.actions.Read(s.ID), nil
}

func opWrite(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "id", s.ID); err != nil {
		return nil, err
	}
	value, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	return x.actions.Write(s.ID, value), nil
}

func opCall(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "name", s.Name); err != nil {
		return nil, err
	}
	ops, err := x.args(s, 2)
	if err != nil {
		return nil, err
	}
	return x.actions.Call(ops[0], s.Name, ops[1]), nil
}

func opFCall(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "name", s.Name); err != nil {
		return nil, err
	}
	args, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	return x.actions.FCall(s.Name, args), nil
}

func opAttrset(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "name", s.Name); err != nil {
		return nil, err
	}
	recv, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	return x.actions.Attrset(recv, s.Name), nil
}

func opIter(x *replay, s Step) (*ast.Node, error) {
	ops, err := x.args(s, 3)
	if err != nil {
		return nil, err
	}
	return x.actions.Iter(ops[0], ops[1], ops[2]), nil
}

func opLogOp(x *replay, s Step) (*ast.Node, error) {
	kind, ok := ast.KindByName(s.Kind)
	if !ok {
		return nil, unknown("node kind", s.Kind, []string{ast.KindAnd.String(), ast.KindOr.String()})
	}
	ops, err := x.args(s, 2)
	if err != nil {
		return nil, err
	}
	return x.actions.LogOp(kind, ops[0], ops[1]), nil
}

func opCallOp(x *replay, s Step) (*ast.Node, error) {
	tok, ok := parser.OpToken(s.Tok)
	if !ok {
		return nil, unknown("operator", s.Tok, parser.OpNames())
	}
	ops, err := x.args(s, 2)
	if err != nil {
		return nil, err
	}
	return x.actions.CallOp(ops[0], tok, ops[1]), nil
}

func opValue(x *replay, s Step) (*ast.Node, error) {
	n, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	x.actions.IsValueExpr(n)
	return n, nil
}

func opVoid(x *replay, s Step) (*ast.Node, error) {
	n, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	if n != nil && n.Kind == ast.KindBlock {
		x.actions.CheckVoidStatements(n)
	} else {
		x.actions.CheckVoid(n)
	}
	return n, nil
}

func opBackref(x *replay, s Step) (*ast.Node, error) {
	n, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	x.actions.BackrefAssignError(n)
	return nil, nil
}

func opDef(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "name", s.Name); err != nil {
		return nil, err
	}
	x.actions.BeginDef(s.Name)
	return nil, nil
}

func opEndDef(x *replay, s Step) (*ast.Node, error) {
	ops, err := x.args(s, 2)
	if err != nil {
		return nil, err
	}
	return x.actions.EndDef(ops[0], ops[1]), nil
}

func opSingletonDef(x *replay, s Step) (*ast.Node, error) {
	recv, err := x.arg(s, 0)
	if err != nil {
		return nil, err
	}
	if recv == nil {
		return nil, fmt.Errorf("%w: sdef needs a receiver", errNeedsOperand)
	}
	x.actions.BeginSingletonDef(recv)
	return nil, nil
}

func opEndSingletonDef(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "name", s.Name); err != nil {
		return nil, err
	}
	ops, err := x.args(s, 3)
	if err != nil {
		return nil, err
	}
	return x.actions.EndSingletonDef(ops[0], s.Name, ops[1], ops[2]), nil
}

func opClass(x *replay, s Step) (*ast.Node, error) {
	x.actions.BeginClass()
	return nil, nil
}

func opEndClass(x *replay, s Step) (*ast.Node, error) {
	if err := needOperand(s, "name", s.Name); err != nil {
		return nil, err
	}
	ops, err := x.args(s, 2)
	if err != nil {
		return nil, err
	}
	return x.actions.EndClass(s.Name, ops[0], ops[1]), nil
}

func opModule(x *replay, s Step) (*ast.Node, error) {
	x.actions.BeginModule()
	return nil, nil
}
