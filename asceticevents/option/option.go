package option

import "fmt"

// Option is a value that may be absent. The zero Option is Nothing.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, ok: true}
}

func Nothing[T any]() Option[T] {
	return Option[T]{}
}

// FromPointer returns Nothing for a nil pointer and Some(*p) otherwise.
func FromPointer[T any](p *T) Option[T] {
	if p == nil {
		return Nothing[T]()
	}
	return Some(*p)
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Option[T]) IsSome() bool {
	return o.ok
}

func (o Option[T]) IsNothing() bool {
	return !o.ok
}

func (o Option[T]) UnwrapOr(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

func (o Option[T]) String() string {
	if o.ok {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "Nothing"
}
