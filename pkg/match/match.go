// Package match implements the partial-match predicate used to filter hooks.
package match

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Matches reports whether candidate partially satisfies criteria. Every key of
// a criteria map must match: map and slice values recurse, anything else needs
// strict equality. Keys missing from criteria are not inspected. An empty (or
// nil) criteria falls back to comparing the JSON encoding of both sides.
func Matches(candidate, criteria any) bool {
	switch c := criteria.(type) {
	case map[string]any:
		if len(c) == 0 {
			return sameJSON(candidate, c)
		}
		for key, want := range c {
			got, ok := field(candidate, key)
			if !ok || !matchValue(got, want) {
				return false
			}
		}
		return true
	case []any:
		if len(c) == 0 {
			return sameJSON(candidate, c)
		}
		items, ok := sequence(candidate)
		if !ok || len(items) < len(c) {
			return false
		}
		for i, want := range c {
			if !matchValue(items[i], want) {
				return false
			}
		}
		return true
	case nil:
		return sameJSON(candidate, nil)
	}

	if normalized, ok := normalize(criteria); ok {
		return Matches(candidate, normalized)
	}
	return equal(candidate, criteria)
}

func matchValue(got, want any) bool {
	if isRecord(want) {
		return Matches(got, want)
	}
	return equal(got, want)
}

func isRecord(value any) bool {
	if value == nil {
		return true
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

// field reads key from a map-shaped candidate. Candidates exposing Fields()
// (such as *model.Hook) are flattened first.
func field(candidate any, key string) (any, bool) {
	switch c := candidate.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case fielder:
		v, ok := c.Fields()[key]
		return v, ok
	}

	rv := reflect.ValueOf(candidate)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

type fielder interface {
	Fields() map[string]any
}

func sequence(candidate any) ([]any, bool) {
	if items, ok := candidate.([]any); ok {
		return items, true
	}
	if candidate == nil {
		return nil, false
	}
	rv := reflect.ValueOf(candidate)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// normalize converts typed maps and slices (model.Criteria, []string, ...)
// into their generic form.
func normalize(value any) (any, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

func equal(a, b any) (same bool) {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	// structs holding uncomparable interface values still panic on ==
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func sameJSON(a, b any) bool {
	left, err := json.Marshal(a)
	if err != nil {
		return false
	}
	right, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(left, right)
}
