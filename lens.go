package lenses

import (
	"errors"
	"slices"
)

// Kind identifies the variant of a Lens.
type Kind uint8

const (
	// KindLeaf focuses on a single named property.
	KindLeaf Kind = iota + 1
	// KindComposite chains an outer lens with an inner lens.
	KindComposite
	// KindProjector fans out over several lenses as one flat tuple.
	KindProjector
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindComposite:
		return "composite"
	case KindProjector:
		return "projector"
	default:
		return "invalid"
	}
}

// ErrZeroLens is returned when operating on a Lens that was not built by this package.
var ErrZeroLens = errors.New("lenses: zero lens")

// Lens focuses on a fixed substructure of a Record.
//
// Lenses are immutable values built with Of, MustOf, Composition and Projection. They
// hold no mutable state and may be shared between goroutines. The zero Lens is not
// usable.
type Lens struct {
	kind  Kind
	arity int
	roots []string
	tuple bool
	name  string
	parts []Lens

	get func(Record) any
	set func(Record, []any) Record
}

// Kind returns the lens variant.
func (l Lens) Kind() Kind { return l.kind }

// Arity returns the number of flat values the lens reads and writes.
func (l Lens) Arity() int { return l.arity }

// Roots returns the top-level keys of a record this lens may read or write.
func (l Lens) Roots() []string { return slices.Clone(l.roots) }

// IsTuple reports whether Get yields a []any of length Arity rather than a single value.
func (l Lens) IsTuple() bool { return l.tuple }

// String renders the lens as a path, e.g. "base.(foo, bar.baz)".
func (l Lens) String() string { return l.name }

func (l Lens) valid() bool { return l.get != nil && l.set != nil }

// Get returns the focused value, or nil if any property on the path is absent.
//
// Tuple lenses return a []any of length Arity.
func (l Lens) Get(r Record) any {
	if !l.valid() {
		return nil
	}
	return l.get(r)
}

// Set returns a new record with the focused values replaced.
//
// r is never modified. Every level on the write path is copied, missing levels are
// created and untouched branches are shared with r. Set fails with an
// *ArityMismatchError unless exactly Arity values are given.
func (l Lens) Set(r Record, values ...any) (Record, error) {
	if !l.valid() {
		return nil, ErrZeroLens
	}
	if len(values) != l.arity {
		return nil, &ArityMismatchError{Lens: l.name, Want: l.arity, Got: len(values)}
	}
	return l.set(r, values), nil
}

// Modify applies fn to the flat values of the lens and writes the result back.
func (l Lens) Modify(r Record, fn func(values []any) []any) (Record, error) {
	return l.Set(r, fn(Values(l, r))...)
}

// Compose chains inner after l.
//
// Compose panics if l yields a tuple; use Composition to get an error instead.
func (l Lens) Compose(inner Lens) Lens {
	c, err := Composition(l, inner)
	if err != nil {
		panic(err)
	}
	return c
}

// Focus narrows l to a dotted path below it.
//
// Focus panics on a malformed path, like MustOf.
func (l Lens) Focus(path string) Lens {
	return l.Compose(MustOf(path))
}

// Project chains a projection of the given lenses after l.
func (l Lens) Project(lenses ...Lens) Lens {
	return l.Compose(Projection(lenses...))
}
