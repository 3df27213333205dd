// Package optional provides a value type with explicit presence.
package optional

// Value holds a T that may or may not be set.  The zero value is unset.
type Value[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// String treats the empty string as absent.  Command line flags without a
// default arrive as "" when they were not provided.
func String(s string) Value[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

func (v Value[T]) IsSet() bool {
	return v.set
}

// Or returns the value if set and fallback otherwise.
func (v Value[T]) Or(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}
