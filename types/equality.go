// ==============================================================================================
// FILE: types/equality.go
// ==============================================================================================
package types

// Equal implements MAL's `=` contract (spec.md §4.1):
//   - Numbers/Strings/Symbols/Keywords compare by value/name.
//   - List and Vector compare equal to each other when pairwise equal (the
//     one intentional cross-variant case).
//   - HashMaps compare by key set and pairwise value equality.
//   - Nil/True/False equal only themselves.
//   - Atoms compare by identity (same cell).
//   - Callables (Builtin, Closure) never compare equal except to themselves.
func Equal(a, b Expression) bool {
	aSeq, aIsSeq := asSequence(a)
	bSeq, bIsSeq := asSequence(b)
	if aIsSeq && bIsSeq {
		return sequenceEqual(aSeq, bSeq)
	}

	switch av := a.(type) {
	case NilV:
		_, ok := b.(NilV)
		return ok
	case TrueV:
		_, ok := b.(TrueV)
		return ok
	case FalseV:
		_, ok := b.(FalseV)
		return ok
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case Str:
		bv, ok := b.(Str)
		return ok && av.Value == bv.Value
	case Symbol:
		bv, ok := b.(Symbol)
		return ok && av.Value == bv.Value
	case Keyword:
		bv, ok := b.(Keyword)
		return ok && av.Value == bv.Value
	case HashMap:
		bv, ok := b.(HashMap)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for k, v := range av.Pairs {
			other, present := bv.Pairs[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	case *Atom:
		bv, ok := b.(*Atom)
		return ok && av == bv
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av == bv
	case *Closure:
		bv, ok := b.(*Closure)
		return ok && av == bv
	}
	return false
}

// asSequence returns the element slice for List/Vector, and whether e is one.
func asSequence(e Expression) ([]Expression, bool) {
	switch v := e.(type) {
	case List:
		return v.Items, true
	case Vector:
		return v.Items, true
	}
	return nil, false
}

func sequenceEqual(a, b []Expression) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
