// ==============================================================================================
// FILE: env/environment.go
// ==============================================================================================
// PACKAGE: env
// PURPOSE: Implements the lexical environment (symbol table) chain for the interpreter:
//          creation, optional parameter binding with "&"-variadic support, lookup that walks
//          the outer chain, and in-place definition (spec.md §4.3).
// ==============================================================================================

package env

import (
	"fmt"

	"github.com/amoghasbhardwaj/mal-go/types"
)

// Environment is a pair (table, outer?). Only Set mutates; Find/Get never do.
type Environment struct {
	store map[string]types.Expression
	outer *Environment
}

// New creates an empty environment chained to outer (nil for the top level).
func New(outer *Environment) *Environment {
	return &Environment{store: make(map[string]types.Expression), outer: outer}
}

// NewBound creates a child of outer with params zipped against args. A
// parameter literally named "&" binds the *next* parameter to a List of all
// remaining args from that position onward (spec.md §4.3's variadic rule).
func NewBound(outer *Environment, params []string, args []types.Expression) (*Environment, error) {
	e := New(outer)
	for i := 0; i < len(params); i++ {
		if params[i] == "&" {
			if i+1 >= len(params) {
				return nil, fmt.Errorf("wrong arity: '&' must be followed by a rest parameter")
			}
			var rest []types.Expression
			if i < len(args) {
				rest = args[i:]
			}
			e.Set(params[i+1], types.List{Items: append([]types.Expression{}, rest...)})
			return e, nil
		}
		if i >= len(args) {
			return nil, fmt.Errorf("wrong arity: expected %d argument(s), got %d", len(params), len(args))
		}
		e.Set(params[i], args[i])
	}
	if len(args) > len(params) {
		return nil, fmt.Errorf("wrong arity: expected %d argument(s), got %d", len(params), len(args))
	}
	return e, nil
}

// Outer implements types.Environment so Closure can carry its captured
// environment without package types importing package env.
func (e *Environment) Outer() types.Environment {
	if e.outer == nil {
		return nil
	}
	return e.outer
}

// Set defines or overwrites name in this environment's own table only.
func (e *Environment) Set(name string, value types.Expression) types.Expression {
	e.store[name] = value
	return value
}

// Find returns the value bound to name in the nearest enclosing environment
// that has it, or false if no environment in the chain defines it.
func (e *Environment) Find(name string) (types.Expression, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Get is Find, raising "symbol not found" on a miss (spec.md §4.3, §7).
func (e *Environment) Get(name string) (types.Expression, error) {
	if v, ok := e.Find(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("'%s' not found in the environment", name)
}
