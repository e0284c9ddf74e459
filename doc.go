// Package lenses provides composable lens optics over tree-shaped records.
//
// A Record is a map[string]any following the JSON data model. A Lens focuses on a
// path inside a record and exposes a pure getter and a copy-on-write setter: Set
// never mutates its input, copies only the levels on the write path and shares every
// untouched branch with the original record.
//
// Lenses are built through three entry points:
//
//	name := lenses.MustOf("user.profile.name")           // leaf chain from a dotted path
//	deep, err := lenses.Composition(base, name)          // left fold of lenses
//	both := lenses.Projection(name, lenses.MustOf("id")) // fan-out over a flat tuple
//
// A projection reads and writes the values of all its children as one flat ordered
// tuple. Nested projections are flattened, so
//
//	lenses.Projection(a, lenses.Projection(b, c))
//
// behaves exactly like lenses.Projection(a, b, c). Projections may also sit behind a
// composite lens, in which case their tuple is spliced into the enclosing projection:
//
//	l := lenses.Projection(
//		lenses.MustOf("x"),
//		lenses.MustOf("base").Project(lenses.MustOf("y"), lenses.MustOf("z")),
//	)
//	out, _ := l.Set(lenses.Record{}, 1, 2, 3)
//	// out == {"x": 1, "base": {"y": 2, "z": 3}}
//	l.Get(out) // []any{1, 2, 3}
//
// Missing data is never an error: Get returns nil as soon as a traversed property is
// absent. Caller errors (malformed paths, empty compositions, arity mismatches) are
// reported as typed errors matching the Err* sentinels.
package lenses
