package lenses

import "strings"

const separator = "."

// property builds a leaf lens over a single key.
func property(name string) Lens {
	return Lens{
		kind:  KindLeaf,
		arity: 1,
		roots: []string{name},
		name:  name,
		get: func(r Record) any {
			return r[name]
		},
		set: func(r Record, values []any) Record {
			result := shallowCopy(r, 1)
			result[name] = values[0]
			return result
		},
	}
}

// Of builds a lens from a dot-separated path such as "foo.bar.baz".
//
// Each segment is a property name; the lens is the left fold of one leaf lens per
// segment. An empty path or an empty segment yields an *InvalidPathError.
func Of(path string) (Lens, error) {
	segments, err := splitPath(path)
	if err != nil {
		return Lens{}, err
	}

	l := property(segments[0])
	for _, segment := range segments[1:] {
		l = compose(l, property(segment))
	}
	return l, nil
}

// MustOf is like Of but panics on a malformed path.
func MustOf(path string) Lens {
	l, err := Of(path)
	if err != nil {
		panic(err)
	}
	return l
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, &InvalidPathError{Path: path, Index: -1, Reason: "empty path"}
	}
	segments := strings.Split(path, separator)
	for i, segment := range segments {
		if segment == "" {
			return nil, &InvalidPathError{Path: path, Index: i, Reason: "empty segment"}
		}
	}
	return segments, nil
}
