// ==============================================================================================
// FILE: env/environment_test.go
// ==============================================================================================
// PURPOSE: Validates environment chaining, lookup, and "&"-variadic parameter binding.
// ==============================================================================================

package env

import (
	"testing"

	"github.com/amoghasbhardwaj/mal-go/types"
)

func TestSetAndGet(t *testing.T) {
	e := New(nil)
	e.Set("x", types.Number{Value: 10})

	v, err := e.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := v.(types.Number); !ok || n.Value != 10 {
		t.Fatalf("expected Number{10}, got %#v", v)
	}
}

func TestGetMissingSymbolErrors(t *testing.T) {
	e := New(nil)
	if _, err := e.Get("missing"); err == nil {
		t.Fatal("expected an error for an unbound symbol")
	}
}

func TestGetWalksOuterChain(t *testing.T) {
	outer := New(nil)
	outer.Set("x", types.Number{Value: 1})
	inner := New(outer)

	v, err := inner.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := v.(types.Number); !ok || n.Value != 1 {
		t.Fatalf("expected Number{1}, got %#v", v)
	}
}

func TestSetShadowsOuterWithoutMutatingIt(t *testing.T) {
	outer := New(nil)
	outer.Set("x", types.Number{Value: 1})
	inner := New(outer)
	inner.Set("x", types.Number{Value: 2})

	innerVal, _ := inner.Get("x")
	outerVal, _ := outer.Get("x")
	if innerVal.(types.Number).Value != 2 {
		t.Fatalf("expected inner x = 2, got %v", innerVal)
	}
	if outerVal.(types.Number).Value != 1 {
		t.Fatalf("expected outer x to remain 1, got %v", outerVal)
	}
}

func TestNewBoundFixedArity(t *testing.T) {
	e, err := NewBound(nil, []string{"a", "b"}, []types.Expression{types.Number{Value: 1}, types.Number{Value: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := e.Get("a")
	b, _ := e.Get("b")
	if a.(types.Number).Value != 1 || b.(types.Number).Value != 2 {
		t.Fatalf("expected a=1 b=2, got a=%v b=%v", a, b)
	}
}

func TestNewBoundWrongArity(t *testing.T) {
	if _, err := NewBound(nil, []string{"a", "b"}, []types.Expression{types.Number{Value: 1}}); err == nil {
		t.Fatal("expected a wrong-arity error for too few arguments")
	}
	if _, err := NewBound(nil, []string{"a"}, []types.Expression{types.Number{Value: 1}, types.Number{Value: 2}}); err == nil {
		t.Fatal("expected a wrong-arity error for too many arguments")
	}
}

func TestNewBoundVariadicRest(t *testing.T) {
	e, err := NewBound(nil, []string{"a", "&", "rest"}, []types.Expression{
		types.Number{Value: 1}, types.Number{Value: 2}, types.Number{Value: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := e.Get("a")
	if a.(types.Number).Value != 1 {
		t.Fatalf("expected a=1, got %v", a)
	}
	rest, _ := e.Get("rest")
	list, ok := rest.(types.List)
	if !ok || len(list.Items) != 2 {
		t.Fatalf("expected rest to be a 2-element list, got %#v", rest)
	}
}

func TestNewBoundVariadicAcceptsZeroRestArgs(t *testing.T) {
	e, err := NewBound(nil, []string{"a", "&", "rest"}, []types.Expression{types.Number{Value: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rest, _ := e.Get("rest")
	list, ok := rest.(types.List)
	if !ok || len(list.Items) != 0 {
		t.Fatalf("expected rest to be an empty list, got %#v", rest)
	}
}

func TestOuterImplementsTypesEnvironment(t *testing.T) {
	outer := New(nil)
	inner := New(outer)

	if inner.Outer() == nil {
		t.Fatal("expected inner.Outer() to be non-nil")
	}
	if outer.Outer() != nil {
		t.Fatal("expected a top-level environment's Outer() to be nil")
	}
}
