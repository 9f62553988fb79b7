package docstore

import "reflect"

// Filter selects documents by field. Every entry must match for a document
// to be selected; a nil or empty filter matches every document.
type Filter map[string]Match

// Match is one field-level criterion.
type Match struct {
	value    any
	contains bool
}

// Eq matches documents whose field equals value.
func Eq(value any) Match {
	return Match{value: value}
}

// Contains matches documents whose field is an array containing value.
func Contains(value any) Match {
	return Match{value: value, contains: true}
}

// Matches reports whether the decoded document fields satisfy the filter.
func (f Filter) Matches(fields map[string]any) bool {
	for key, m := range f {
		got, ok := fields[key]
		if !ok {
			return false
		}
		if m.contains {
			arr, ok := got.([]any)
			if !ok {
				return false
			}
			found := false
			for _, el := range arr {
				if valueEqual(el, m.value) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		} else if !valueEqual(got, m.value) {
			return false
		}
	}
	return true
}

// valueEqual compares a decoded JSON value against a filter value,
// normalizing numbers so int filters match float64 document fields.
func valueEqual(got, want any) bool {
	if gf, ok := toFloat(got); ok {
		if wf, ok := toFloat(want); ok {
			return gf == wf
		}
		return false
	}
	return reflect.DeepEqual(got, want)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
