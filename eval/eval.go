// ==============================================================================================
// FILE: eval/eval.go
// ==============================================================================================
// PACKAGE: eval
// PURPOSE: Implements the runtime execution engine: a trampolined Eval(expr, env) that
//          recognizes special forms, applies callables, and rewrites tail positions in place
//          instead of growing the host stack (spec.md §4.4, §5, §8).
// ==============================================================================================

package eval

import (
	"fmt"

	"github.com/amoghasbhardwaj/mal-go/env"
	"github.com/amoghasbhardwaj/mal-go/types"
)

// Eval evaluates expr in env, looping in place for every tail position
// listed in spec.md §4.4 (let* body, do's final form, if's chosen branch,
// and closure application) so that MAL-level tail recursion never grows the
// Go call stack.
func Eval(expr types.Expression, environment *env.Environment) (types.Expression, error) {
	for {
		switch v := expr.(type) {
		case types.Symbol:
			return environment.Get(v.Value)

		case types.Vector:
			items, err := evalItems(v.Items, environment)
			if err != nil {
				return nil, err
			}
			return types.Vector{Items: items}, nil

		case types.HashMap:
			return evalHashMap(v, environment)

		case types.List:
			if len(v.Items) == 0 {
				return v, nil
			}

			if sym, ok := v.Items[0].(types.Symbol); ok {
				switch sym.Value {
				case "def!":
					return evalDef(v, environment)
				case "let*":
					nextExpr, nextEnv, err := prepLetStar(v, environment)
					if err != nil {
						return nil, err
					}
					expr, environment = nextExpr, nextEnv
					continue
				case "do":
					nextExpr, err := evalDoAllButLast(v, environment)
					if err != nil {
						return nil, err
					}
					expr = nextExpr
					continue
				case "if":
					nextExpr, err := prepIf(v, environment)
					if err != nil {
						return nil, err
					}
					expr = nextExpr
					continue
				case "fn*":
					return evalFnStar(v, environment)
				}
			}

			fn, err := Eval(v.Items[0], environment)
			if err != nil {
				return nil, err
			}
			args, err := evalItems(v.Items[1:], environment)
			if err != nil {
				return nil, err
			}

			if closure, ok := fn.(*types.Closure); ok {
				nextExpr, nextEnv, err := enterClosure(closure, args)
				if err != nil {
					return nil, err
				}
				expr, environment = nextExpr, nextEnv
				continue
			}
			return ApplyNonTail(fn, args)

		default:
			// Nil, True, False, Number, Str, Keyword, *Atom, *Builtin, *Closure
			// are all self-evaluating (spec.md §3 invariant).
			return expr, nil
		}
	}
}

func evalItems(items []types.Expression, environment *env.Environment) ([]types.Expression, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]types.Expression, len(items))
	for i, item := range items {
		v, err := Eval(item, environment)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalHashMap(m types.HashMap, environment *env.Environment) (types.Expression, error) {
	if len(m.Pairs) == 0 {
		return types.HashMap{Pairs: map[types.HashKey]types.Expression{}}, nil
	}
	out := make(map[types.HashKey]types.Expression, len(m.Pairs))
	for k, v := range m.Pairs {
		ev, err := Eval(v, environment)
		if err != nil {
			return nil, err
		}
		out[k] = ev
	}
	return types.HashMap{Pairs: out}, nil
}

func evalDef(list types.List, environment *env.Environment) (types.Expression, error) {
	if len(list.Items) != 3 {
		return nil, fmt.Errorf("def!: expected (def! symbol value)")
	}
	name := coerceSymbolName(list.Items[1])
	val, err := Eval(list.Items[2], environment)
	if err != nil {
		return nil, err
	}
	environment.Set(name, val)
	return val, nil
}

// coerceSymbolName implements def!'s lenient first argument (spec.md §4):
// a Symbol contributes its own name; anything else contributes its
// unreadable printed form, matching observed behavior rather than erroring.
func coerceSymbolName(e types.Expression) string {
	if s, ok := e.(types.Symbol); ok {
		return s.Value
	}
	return types.PrStr(e, false)
}

// prepLetStar evaluates the bindings in a fresh child environment and
// returns the body expression and that environment for the caller's
// trampoline to continue on (tail position, spec.md §4.4).
func prepLetStar(list types.List, environment *env.Environment) (types.Expression, *env.Environment, error) {
	if len(list.Items) != 3 {
		return nil, nil, fmt.Errorf("let*: expected (let* bindings body)")
	}
	bindings, err := bindingItems(list.Items[1])
	if err != nil {
		return nil, nil, err
	}
	if len(bindings)%2 != 0 {
		return nil, nil, fmt.Errorf("let*: odd number of binding forms")
	}

	child := env.New(environment)
	for i := 0; i+1 < len(bindings); i += 2 {
		name, err := symbolName(bindings[i])
		if err != nil {
			return nil, nil, err
		}
		val, err := Eval(bindings[i+1], child)
		if err != nil {
			return nil, nil, err
		}
		child.Set(name, val)
	}
	return list.Items[2], child, nil
}

func bindingItems(e types.Expression) ([]types.Expression, error) {
	switch v := e.(type) {
	case types.List:
		return v.Items, nil
	case types.Vector:
		return v.Items, nil
	}
	return nil, fmt.Errorf("let*: bindings must be a list or vector")
}

func evalDoAllButLast(list types.List, environment *env.Environment) (types.Expression, error) {
	body := list.Items[1:]
	if len(body) == 0 {
		return nil, fmt.Errorf("do: expected at least one form")
	}
	for _, form := range body[:len(body)-1] {
		if _, err := Eval(form, environment); err != nil {
			return nil, err
		}
	}
	return body[len(body)-1], nil
}

func prepIf(list types.List, environment *env.Environment) (types.Expression, error) {
	if len(list.Items) != 3 && len(list.Items) != 4 {
		return nil, fmt.Errorf("if: expected (if cond then) or (if cond then else)")
	}
	cond, err := Eval(list.Items[1], environment)
	if err != nil {
		return nil, err
	}
	if types.IsTruthy(cond) {
		return list.Items[2], nil
	}
	if len(list.Items) == 4 {
		return list.Items[3], nil
	}
	return types.Nil, nil
}

func evalFnStar(list types.List, environment *env.Environment) (types.Expression, error) {
	if len(list.Items) != 3 {
		return nil, fmt.Errorf("fn*: expected (fn* params body)")
	}
	paramItems, err := bindingItems(list.Items[1])
	if err != nil {
		return nil, fmt.Errorf("fn*: parameter list must be a list or vector")
	}

	params := make([]string, 0, len(paramItems))
	for i, p := range paramItems {
		name, err := symbolName(p)
		if err != nil {
			return nil, fmt.Errorf("fn*: non-symbol in parameter list")
		}
		params = append(params, name)
		if name == "&" && i+1 < len(paramItems) {
			restName, err := symbolName(paramItems[i+1])
			if err != nil {
				return nil, fmt.Errorf("fn*: non-symbol in parameter list")
			}
			params = append(params, restName)
			break
		}
	}

	return &types.Closure{
		Params: params,
		Body:   list.Items[2],
		Env:    environment,
	}, nil
}

// ApplyNonTail invokes fn (a Builtin or Closure) with already-evaluated args
// and runs it to completion. Used where a primitive needs to call back into
// a MAL function (e.g. swap!, spec.md §4.5) without re-evaluating the args
// as code the way a tail application inside Eval would.
func ApplyNonTail(fn types.Expression, args []types.Expression) (types.Expression, error) {
	switch callable := fn.(type) {
	case *types.Builtin:
		return callable.Fn(args)
	case *types.Closure:
		body, bound, err := enterClosure(callable, args)
		if err != nil {
			return nil, err
		}
		return Eval(body, bound)
	default:
		return nil, fmt.Errorf("not a function: %s", types.PrStr(fn, true))
	}
}

// enterClosure builds the closure's call environment and returns its body
// for the trampoline to continue on in place of recursing (spec.md §4.4).
func enterClosure(c *types.Closure, args []types.Expression) (types.Expression, *env.Environment, error) {
	captured, ok := c.Env.(*env.Environment)
	if !ok {
		return nil, nil, fmt.Errorf("closure has no valid captured environment")
	}
	bound, err := env.NewBound(captured, c.Params, args)
	if err != nil {
		return nil, nil, err
	}
	return c.Body, bound, nil
}

func symbolName(e types.Expression) (string, error) {
	if s, ok := e.(types.Symbol); ok {
		return s.Value, nil
	}
	return "", fmt.Errorf("expected a symbol, got %s", types.PrStr(e, true))
}
