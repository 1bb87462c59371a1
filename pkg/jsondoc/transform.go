package jsondoc

import (
	"fmt"
	"maps"
	"reflect"
)

// UpdateKey sets key to value in m and returns m.
func UpdateKey(m map[string]any, key string, value any) map[string]any {
	m[key] = value

	return m
}

// RemoveKey deletes key from m and returns m. No-op if key is absent.
func RemoveKey(m map[string]any, key string) map[string]any {
	delete(m, key)

	return m
}

// Merge returns a new map with every key from a and b.
//
// The merge is shallow: a top-level key present in both takes b's value
// wholesale, nested values are never deep-merged. Neither input is mutated.
func Merge(a, b map[string]any) map[string]any {
	result := make(map[string]any, len(a)+len(b))
	maps.Copy(result, a)
	maps.Copy(result, b)

	return result
}

// NormalizeKeys returns v with every map key coerced to its string form,
// preserving structure and value types otherwise.
//
// Documents decoded by this package already have string keys; this handles
// documents assembled in memory with other map types (map[int]any and the
// like) before encoding.
func NormalizeKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = NormalizeKeys(child)
		}

		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = NormalizeKeys(child)
		}

		return out
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			out[fmt.Sprint(k.Interface())] = NormalizeKeys(rv.MapIndex(k).Interface())
		}

		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = NormalizeKeys(rv.Index(i).Interface())
		}

		return out
	default:
		return v
	}
}
