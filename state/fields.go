package state

import "sort"

// Clone returns a shallow copy of f. A nil input yields an empty map.
func Clone(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func cloneTree(t Tree) Tree {
	out := make(Tree, len(t))
	for name, f := range t {
		out[name] = Clone(f)
	}
	return out
}

// Value returns f[key] as a T. The second result is false when the key is
// absent or holds a different type.
func Value[T any](f Fields, key string) (T, bool) {
	v, ok := f[key].(T)
	return v, ok
}

// ValueOr returns f[key] as a T, or def when absent or mistyped.
func ValueOr[T any](f Fields, key string, def T) T {
	if v, ok := Value[T](f, key); ok {
		return v
	}
	return def
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Number returns f[key] as a float64 when it holds any integer or float type.
func Number(f Fields, key string) (float64, bool) {
	switch v := f[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
