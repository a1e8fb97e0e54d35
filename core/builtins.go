// ==============================================================================================
// FILE: core/builtins.go
// ==============================================================================================
// PACKAGE: core
// PURPOSE: Builds the initial environment: arithmetic, comparisons, sequence ops, print ops,
//          reader/I-O glue, and mutable atoms (spec.md §4.5). Grounded on the teacher's
//          {Name, Builtin} table (object/builtins.go), generalized to MAL's primitive set.
// ==============================================================================================

package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amoghasbhardwaj/mal-go/env"
	"github.com/amoghasbhardwaj/mal-go/eval"
	"github.com/amoghasbhardwaj/mal-go/reader"
	"github.com/amoghasbhardwaj/mal-go/types"
)

// builtin pairs a primitive's bound name with its implementation, mirroring
// the teacher's object.Builtins table shape.
type builtin struct {
	Name string
	Fn   func(args []types.Expression) (types.Expression, error)
}

// NewEnv builds a top-level *env.Environment with every entry of the
// primitive table bound, writing print-op output to out. "eval", "not" and
// "load-file" are added by Bootstrap; "*ARGV*" is bound by the caller.
func NewEnv(out io.Writer) *env.Environment {
	e := env.New(nil)
	for _, b := range builtins(out) {
		e.Set(b.Name, &types.Builtin{Name: b.Name, Fn: b.Fn})
	}
	return e
}

// Bootstrap evaluates the pre-injected definitions listed in spec.md §4.5
// and §6 ("not", "load-file") plus binds the top-level "eval" primitive,
// which can only exist once the environment it closes over is known.
func Bootstrap(e *env.Environment) error {
	e.Set("eval", &types.Builtin{Name: "eval", Fn: func(args []types.Expression) (types.Expression, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("eval: expected 1 argument, got %d", len(args))
		}
		return eval.Eval(args[0], e)
	}})

	forms := []string{
		`(def! not (fn* (a) (if a false true)))`,
		`(def! load-file (fn* (f) (eval (read-string (str "(do " (slurp f) "\nnil)")))))`,
	}
	for _, src := range forms {
		expr, err := reader.Read(src)
		if err != nil {
			return fmt.Errorf("bootstrap form failed to read: %w", err)
		}
		if _, err := eval.Eval(expr, e); err != nil {
			return fmt.Errorf("bootstrap form failed to evaluate: %w", err)
		}
	}
	return nil
}

func builtins(out io.Writer) []builtin {
	return []builtin{
		{"+", arithmetic("+", func(a, b int64) (int64, error) { return a + b, nil })},
		{"-", arithmetic("-", func(a, b int64) (int64, error) { return a - b, nil })},
		{"*", arithmetic("*", func(a, b int64) (int64, error) { return a * b, nil })},
		{"/", arithmetic("/", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return floorDiv(a, b), nil
		})},
		{"%", arithmetic("%", func(a, b int64) (int64, error) {
			if b == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return floorMod(a, b), nil
		})},

		{"<", comparison("<", func(a, b int64) bool { return a < b })},
		{"<=", comparison("<=", func(a, b int64) bool { return a <= b })},
		{">", comparison(">", func(a, b int64) bool { return a > b })},
		{">=", comparison(">=", func(a, b int64) bool { return a >= b })},

		{"=", builtinFn("=", 2, func(args []types.Expression) (types.Expression, error) {
			return types.Bool(types.Equal(args[0], args[1])), nil
		})},

		{"list", func(args []types.Expression) (types.Expression, error) {
			return types.List{Items: append([]types.Expression{}, args...)}, nil
		}},
		{"list?", builtinFn("list?", 1, func(args []types.Expression) (types.Expression, error) {
			_, ok := args[0].(types.List)
			return types.Bool(ok), nil
		})},
		{"empty?", builtinFn("empty?", 1, func(args []types.Expression) (types.Expression, error) {
			items, err := seqItems("empty?", args[0])
			if err != nil {
				return nil, err
			}
			return types.Bool(len(items) == 0), nil
		})},
		{"count", builtinFn("count", 1, func(args []types.Expression) (types.Expression, error) {
			if _, ok := args[0].(types.NilV); ok {
				return types.Number{Value: 0}, nil
			}
			items, err := seqItems("count", args[0])
			if err != nil {
				return nil, err
			}
			return types.Number{Value: int64(len(items))}, nil
		})},
		{"car", builtinFn("car", 1, func(args []types.Expression) (types.Expression, error) {
			list, ok := args[0].(types.List)
			if !ok {
				return nil, fmt.Errorf("car: expected a list, got %s", types.PrStr(args[0], true))
			}
			if len(list.Items) == 0 {
				return nil, fmt.Errorf("car: expected a non-empty list")
			}
			return list.Items[0], nil
		})},
		{"cdr", builtinFn("cdr", 1, func(args []types.Expression) (types.Expression, error) {
			list, ok := args[0].(types.List)
			if !ok {
				return nil, fmt.Errorf("cdr: expected a list, got %s", types.PrStr(args[0], true))
			}
			if len(list.Items) == 0 {
				return nil, fmt.Errorf("cdr: expected a non-empty list")
			}
			return types.List{Items: append([]types.Expression{}, list.Items[1:]...)}, nil
		})},

		{"pr-str", func(args []types.Expression) (types.Expression, error) {
			return types.Str{Value: joinPrinted(args, " ", true)}, nil
		}},
		{"str", func(args []types.Expression) (types.Expression, error) {
			return types.Str{Value: joinPrinted(args, "", false)}, nil
		}},
		{"prn", func(args []types.Expression) (types.Expression, error) {
			fmt.Fprintln(out, joinPrinted(args, " ", true))
			return types.Nil, nil
		}},
		{"println", func(args []types.Expression) (types.Expression, error) {
			fmt.Fprintln(out, joinPrinted(args, " ", false))
			return types.Nil, nil
		}},

		{"read-string", builtinFn("read-string", 1, func(args []types.Expression) (types.Expression, error) {
			s, ok := args[0].(types.Str)
			if !ok {
				return nil, fmt.Errorf("read-string: expected a string, got %s", types.PrStr(args[0], true))
			}
			expr, err := reader.Read(s.Value)
			if err != nil {
				return nil, err
			}
			return expr, nil
		})},
		{"slurp", builtinFn("slurp", 1, func(args []types.Expression) (types.Expression, error) {
			s, ok := args[0].(types.Str)
			if !ok {
				return nil, fmt.Errorf("slurp: expected a string, got %s", types.PrStr(args[0], true))
			}
			content, err := os.ReadFile(s.Value)
			if err != nil {
				return nil, fmt.Errorf("slurp: %w", err)
			}
			return types.Str{Value: string(content)}, nil
		})},

		{"atom", builtinFn("atom", 1, func(args []types.Expression) (types.Expression, error) {
			return &types.Atom{Value: args[0]}, nil
		})},
		{"atom?", builtinFn("atom?", 1, func(args []types.Expression) (types.Expression, error) {
			_, ok := args[0].(*types.Atom)
			return types.Bool(ok), nil
		})},
		{"deref", builtinFn("deref", 1, func(args []types.Expression) (types.Expression, error) {
			a, ok := args[0].(*types.Atom)
			if !ok {
				return nil, fmt.Errorf("deref: expected an atom, got %s", types.PrStr(args[0], true))
			}
			return a.Value, nil
		})},
		{"reset!", builtinFn("reset!", 2, func(args []types.Expression) (types.Expression, error) {
			a, ok := args[0].(*types.Atom)
			if !ok {
				return nil, fmt.Errorf("reset!: expected an atom, got %s", types.PrStr(args[0], true))
			}
			a.Value = args[1]
			return a.Value, nil
		})},
		{"swap!", func(args []types.Expression) (types.Expression, error) {
			if len(args) < 2 {
				return nil, fmt.Errorf("swap!: expected at least 2 arguments, got %d", len(args))
			}
			a, ok := args[0].(*types.Atom)
			if !ok {
				return nil, fmt.Errorf("swap!: expected an atom, got %s", types.PrStr(args[0], true))
			}
			callArgs := append([]types.Expression{a.Value}, args[2:]...)
			result, err := eval.ApplyNonTail(args[1], callArgs)
			if err != nil {
				return nil, err
			}
			a.Value = result
			return result, nil
		}},
	}
}

func joinPrinted(args []types.Expression, sep string, readable bool) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = types.PrStr(a, readable)
	}
	return strings.Join(parts, sep)
}

func seqItems(name string, e types.Expression) ([]types.Expression, error) {
	switch v := e.(type) {
	case types.List:
		return v.Items, nil
	case types.Vector:
		return v.Items, nil
	}
	return nil, fmt.Errorf("%s: expected a sequence, got %s", name, types.PrStr(e, true))
}

func builtinFn(name string, arity int, fn func([]types.Expression) (types.Expression, error)) func([]types.Expression) (types.Expression, error) {
	return func(args []types.Expression) (types.Expression, error) {
		if len(args) != arity {
			return nil, fmt.Errorf("%s: expected %d argument(s), got %d", name, arity, len(args))
		}
		return fn(args)
	}
}

func arithmetic(name string, op func(a, b int64) (int64, error)) func([]types.Expression) (types.Expression, error) {
	return builtinFn(name, 2, func(args []types.Expression) (types.Expression, error) {
		a, b, err := numberPair(name, args)
		if err != nil {
			return nil, err
		}
		v, err := op(a, b)
		if err != nil {
			return nil, err
		}
		return types.Number{Value: v}, nil
	})
}

func comparison(name string, op func(a, b int64) bool) func([]types.Expression) (types.Expression, error) {
	return builtinFn(name, 2, func(args []types.Expression) (types.Expression, error) {
		a, b, err := numberPair(name, args)
		if err != nil {
			return nil, err
		}
		return types.Bool(op(a, b)), nil
	})
}

func numberPair(name string, args []types.Expression) (int64, int64, error) {
	a, ok := args[0].(types.Number)
	if !ok {
		return 0, 0, fmt.Errorf("%s: unexpected argument %s, expected a number", name, types.PrStr(args[0], true))
	}
	b, ok := args[1].(types.Number)
	if !ok {
		return 0, 0, fmt.Errorf("%s: unexpected argument %s, expected a number", name, types.PrStr(args[1], true))
	}
	return a.Value, b.Value, nil
}

// floorDiv/floorMod implement division rounding toward negative infinity,
// matching the source per spec.md §9's open-question resolution.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}
