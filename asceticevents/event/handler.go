package event

import "weak"

// ClosureHandler delivers to observer until the subscription is disposed.
func ClosureHandler[T any](observer Observer[T]) Handler[T] {
	return func(value T) bool {
		observer(value)
		return true
	}
}

// MethodHandler delivers to method while target is alive. Target is held
// weakly; method must not capture it, which a method expression such as
// (*Widget).OnValue never does.
func MethodHandler[T, O any](target *O, method func(*O, T)) Handler[T] {
	ref := weak.Make(target)
	return func(value T) bool {
		t := ref.Value()
		if t == nil {
			return false
		}
		method(t, value)
		return true
	}
}
