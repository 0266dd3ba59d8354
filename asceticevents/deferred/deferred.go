package deferred

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

func Noop[T, R any](_ T) (R, error) {
	var zero R
	return zero, nil
}

type nextDeferred interface {
	resolveAny(any)
	rejectAny(error)
	OccurredErr() error
}

type handler[T any] struct {
	onSuccess func(T) (any, error)
	onError   func(error) (any, error)
	next      nextDeferred
}

// DeferredImp is settled once, by Resolve or Reject, from any goroutine.
// Callbacks run on the goroutine that settles it, or on the goroutine
// registering them when it is already settled.
//
// Chaining follows Promises/A+ 2.2.7: a callback returning an error rejects
// the next deferred, otherwise the next deferred is resolved with the result.
type DeferredImp[T any] struct {
	mu          sync.Mutex
	value       T
	err         error
	occurredErr error
	settled     bool
	rejected    bool
	handlers    []handler[T]
	done        chan struct{}
}

func New[T any]() *DeferredImp[T] {
	return &DeferredImp[T]{done: make(chan struct{})}
}

func (d *DeferredImp[T]) resolveAny(v any) {
	var t T
	if v != nil {
		t = v.(T)
	}
	d.Resolve(t)
}

func (d *DeferredImp[T]) rejectAny(err error) {
	d.Reject(err)
}

// Resolve settles d with value. Calls after d is settled are ignored.
func (d *DeferredImp[T]) Resolve(value T) {
	handlers, ok := d.settle(value, nil, false)
	if !ok {
		return
	}
	for _, h := range handlers {
		d.resolveHandler(h)
	}
}

func (d *DeferredImp[T]) Reject(err error) {
	var zero T
	handlers, ok := d.settle(zero, err, true)
	if !ok {
		return
	}
	for _, h := range handlers {
		d.rejectHandler(h)
	}
}

func (d *DeferredImp[T]) settle(value T, err error, rejected bool) ([]handler[T], bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.settled {
		return nil, false
	}
	d.value = value
	d.err = err
	d.settled = true
	d.rejected = rejected
	close(d.doneChan())
	return append([]handler[T](nil), d.handlers...), true
}

func (d *DeferredImp[T]) doneChan() chan struct{} {
	if d.done == nil {
		d.done = make(chan struct{})
	}
	return d.done
}

func (d *DeferredImp[T]) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doneChan()
}

// Await blocks until d is settled or ctx is done.
func (d *DeferredImp[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-d.Done():
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, errors.Wrap(ctx.Err(), "deferred: await")
	}
}

func (d *DeferredImp[T]) addHandler(h handler[T]) {
	d.mu.Lock()
	d.handlers = append(d.handlers, h)
	settled, rejected := d.settled, d.rejected
	d.mu.Unlock()
	if !settled {
		return
	}
	if rejected {
		d.rejectHandler(h)
	} else {
		d.resolveHandler(h)
	}
}

func (d *DeferredImp[T]) Then(onSuccess func(T) (any, error), onError func(error) (any, error)) Deferred[any] {
	next := New[any]()
	d.addHandler(handler[T]{
		onSuccess: onSuccess,
		onError:   onError,
		next:      next,
	})
	return next
}

// Then is the typed form of DeferredImp.Then. Go methods cannot declare
// their own type parameters, so it is a free function.
func Then[T, R any](d *DeferredImp[T], onSuccess func(T) (R, error), onError func(error) (R, error)) *DeferredImp[R] {
	next := New[R]()
	d.addHandler(handler[T]{
		onSuccess: func(v T) (any, error) { return onSuccess(v) },
		onError:   func(err error) (any, error) { return onError(err) },
		next:      next,
	})
	return next
}

func (d *DeferredImp[T]) resolveHandler(h handler[T]) {
	d.mu.Lock()
	value := d.value
	d.mu.Unlock()
	result, err := h.onSuccess(value)
	d.forward(h, result, err)
}

func (d *DeferredImp[T]) rejectHandler(h handler[T]) {
	d.mu.Lock()
	reason := d.err
	d.mu.Unlock()
	result, err := h.onError(reason)
	d.forward(h, result, err)
}

func (d *DeferredImp[T]) forward(h handler[T], result any, err error) {
	if err == nil {
		h.next.resolveAny(result)
		return
	}
	d.mu.Lock()
	d.occurredErr = multierror.Append(d.occurredErr, err)
	d.mu.Unlock()
	h.next.rejectAny(err)
}

func (d *DeferredImp[T]) OccurredErr() error {
	d.mu.Lock()
	err := d.occurredErr
	handlers := append([]handler[T](nil), d.handlers...)
	d.mu.Unlock()
	for _, h := range handlers {
		nestedErr := h.next.OccurredErr()
		if nestedErr != nil {
			err = multierror.Append(err, nestedErr)
		}
	}
	return err
}

// All resolves with every value, in input order, once all deferreds resolve,
// or rejects with the first rejection.
func All[T any](deferreds []Deferred[T]) *DeferredImp[[]T] {
	result := New[[]T]()

	if len(deferreds) == 0 {
		result.Resolve([]T{})
		return result
	}

	var mu sync.Mutex
	count := len(deferreds)
	values := make([]T, count)
	resolvedCount := 0

	for i, d := range deferreds {
		idx := i
		d.Then(func(value T) (any, error) {
			mu.Lock()
			values[idx] = value
			resolvedCount++
			complete := resolvedCount == count
			mu.Unlock()
			if complete {
				result.Resolve(values)
			}
			return nil, nil
		}, func(err error) (any, error) {
			result.Reject(err)
			return nil, nil
		})
	}

	return result
}
