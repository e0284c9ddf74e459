package lenses

import "maps"

// Record is a tree-shaped keyed structure. Nested records are map[string]any values;
// sequences are []any; everything else is a scalar.
type Record = map[string]any

// asRecord reports whether v is a non-nil nested record.
func asRecord(v any) (Record, bool) {
	r, ok := v.(map[string]any)
	if !ok || r == nil {
		return nil, false
	}
	return r, true
}

// shallowCopy returns a new record holding the same entries as r.
func shallowCopy(r Record, extra int) Record {
	result := make(Record, len(r)+extra)
	maps.Copy(result, r)
	return result
}
