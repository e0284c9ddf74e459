package lenses

import (
	"maps"
	"strings"
)

// Projection combines lenses into one lens over the flat tuple of their values.
//
// Projections given as arguments are flattened: their children are spliced in place,
// so no projector ever contains another projector. The arity of the result is the sum
// of the children's arities; Get returns a []any of that length and Set takes that
// many values, each child consuming its own contiguous slice in argument order.
//
// Projection of no lenses has arity 0. Projection panics if given a zero Lens.
func Projection(lenses ...Lens) Lens {
	parts := make([]Lens, 0, len(lenses))
	for _, l := range lenses {
		if !l.valid() {
			panic(ErrZeroLens)
		}
		if l.kind == KindProjector {
			parts = append(parts, l.parts...)
			continue
		}
		parts = append(parts, l)
	}
	return project(parts)
}

func project(parts []Lens) Lens {
	// offsets[i] is the index of the first value owned by parts[i].
	offsets := make([]int, len(parts))
	arity := 0
	var roots []string
	names := make([]string, len(parts))
	for i, p := range parts {
		offsets[i] = arity
		arity += p.arity
		roots = append(roots, p.roots...)
		names[i] = p.name
	}

	return Lens{
		kind:  KindProjector,
		arity: arity,
		roots: roots,
		tuple: true,
		name:  "(" + strings.Join(names, ", ") + ")",
		parts: parts,
		get: func(r Record) any {
			if r == nil {
				return nil
			}
			result := make([]any, arity)
			for i, p := range parts {
				v := p.get(r)
				if !p.tuple {
					result[offsets[i]] = v
					continue
				}
				// An absent tuple leaves its slots nil.
				vs, _ := v.([]any)
				copy(result[offsets[i]:offsets[i]+p.arity], vs)
			}
			return result
		},
		set: func(r Record, values []any) Record {
			result := shallowCopy(r, len(roots))
			// Sub-records come from result, not r: children sharing a root must see
			// the writes of earlier children or those writes are lost in the merge.
			for i, p := range parts {
				sub := make(Record, len(p.roots))
				for _, root := range p.roots {
					if v := result[root]; v != nil {
						sub[root] = v
					} else {
						sub[root] = Record{}
					}
				}
				maps.Copy(result, p.set(sub, values[offsets[i]:offsets[i]+p.arity]))
			}
			return result
		},
	}
}
