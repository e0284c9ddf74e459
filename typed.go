package lenses

// GetAs reads the focused value as a T.
// The second result is false when the value is absent or of another type.
func GetAs[T any](l Lens, r Record) (T, bool) {
	v, ok := l.Get(r).(T)
	return v, ok
}

// Values returns the focused values as a flat slice of length l.Arity().
//
// Absent values are nil. The slice is freshly allocated and may be modified.
func Values(l Lens, r Record) []any {
	if !l.tuple {
		if l.arity == 0 {
			return []any{}
		}
		return []any{l.Get(r)}
	}
	result := make([]any, l.arity)
	vs, _ := l.Get(r).([]any)
	copy(result, vs)
	return result
}
