package lenses

// compose chains outer (a single-value lens) with inner.
//
// Reads stop at the first absent level. Writes synthesize an empty record for a
// missing or non-record intermediate value, so setting through a composite creates
// the path as needed.
func compose(outer, inner Lens) Lens {
	return Lens{
		kind:  KindComposite,
		arity: inner.arity,
		roots: outer.roots,
		tuple: inner.tuple,
		name:  outer.name + separator + inner.name,
		get: func(r Record) any {
			b, ok := asRecord(outer.get(r))
			if !ok {
				return nil
			}
			return inner.get(b)
		},
		set: func(r Record, values []any) Record {
			b, ok := asRecord(outer.get(r))
			if !ok {
				b = Record{}
			}
			return outer.set(r, []any{inner.set(b, values)})
		},
	}
}

// Composition left-folds the given lenses into a single lens.
//
// Composition(l0, l1, l2) is Composition(Composition(l0, l1), l2). A single lens is
// returned as is. Every lens except the last must focus on a single value: composing
// through a projection fails with a *CompositionError. An empty argument list fails
// with an *EmptyCompositionError.
func Composition(lenses ...Lens) (Lens, error) {
	if len(lenses) == 0 {
		return Lens{}, &EmptyCompositionError{}
	}
	for i, l := range lenses {
		switch {
		case !l.valid():
			return Lens{}, &CompositionError{Index: i, Reason: "zero lens"}
		case l.tuple && i < len(lenses)-1:
			return Lens{}, &CompositionError{Index: i, Lens: l.name, Reason: "cannot compose through a tuple lens"}
		}
	}

	acc := lenses[0]
	for _, l := range lenses[1:] {
		acc = compose(acc, l)
	}
	return acc, nil
}
