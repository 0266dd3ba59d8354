package event

import (
	"log/slog"
	"reflect"
	"weak"

	"github.com/google/uuid"

	"github.com/krew-solutions/ascetic-events-go/asceticevents/dispatcher"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/disposable"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/metrics"
)

// EventImp fans emitted values out to its subscriptions. It stores no value.
// Emit, Subscribe and Dispose are safe for concurrent use; a subscription
// added while an Emit is in progress may or may not receive that value.
type EventImp[T any] struct {
	container container[T]
	opts      options
}

func NewEvent[T any](opts ...Option) *EventImp[T] {
	e := &EventImp[T]{}
	for _, opt := range opts {
		opt(&e.opts)
	}
	if e.opts.name == "" {
		e.opts.name = reflect.TypeFor[T]().String()
	}
	if e.opts.logger == nil {
		e.opts.logger = slog.Default()
	}
	if e.opts.metrics == nil {
		e.opts.metrics = metrics.Nop{}
	}
	return e
}

func (e *EventImp[T]) Name() string {
	return e.opts.name
}

// Emit delivers value to every subscription present when the walk starts,
// each through its own dispatcher.
func (e *EventImp[T]) Emit(value T) {
	e.opts.metrics.Emitted(e.opts.name)
	for _, s := range e.container.snapshot() {
		s.Deliver(value)
	}
}

func (e *EventImp[T]) Subscribe(observer Observer[T]) disposable.Disposable {
	return e.SubscribeHandler(dispatcher.Immediate, ClosureHandler(observer))
}

func (e *EventImp[T]) SubscribeOn(d dispatcher.Dispatcher, observer Observer[T]) disposable.Disposable {
	return e.SubscribeHandler(d, ClosureHandler(observer))
}

// SubscribeHandler registers handler and returns the new record. A nil
// dispatcher means dispatcher.Immediate.
func (e *EventImp[T]) SubscribeHandler(d dispatcher.Dispatcher, handler Handler[T]) *Subscription[T] {
	if d == nil {
		d = dispatcher.Immediate
	}
	s := &Subscription[T]{
		id:         uuid.New(),
		dispatcher: d,
		handler:    handler,
		owner:      weak.Make(e),
	}
	count := e.container.add(s)
	e.opts.metrics.Subscribers(e.opts.name, count)
	e.opts.logger.Debug("event: subscription added", "event", e.opts.name, "subscription", s.id)
	return s
}

// Len returns the number of live subscriptions.
func (e *EventImp[T]) Len() int {
	return e.container.len()
}

func (e *EventImp[T]) remove(s *Subscription[T]) {
	removed, count := e.container.remove(s)
	if !removed {
		return
	}
	e.opts.metrics.Subscribers(e.opts.name, count)
	e.opts.logger.Debug("event: subscription disposed", "event", e.opts.name, "subscription", s.id)
}

// SubscribeMethod subscribes method on target with immediate delivery.
// The subscription does not keep target alive and removes itself at the
// first delivery after target has been collected.
func SubscribeMethod[T, O any](e *EventImp[T], target *O, method func(*O, T)) disposable.Disposable {
	return e.SubscribeHandler(dispatcher.Immediate, MethodHandler(target, method))
}

func SubscribeMethodOn[T, O any](e *EventImp[T], d dispatcher.Dispatcher, target *O, method func(*O, T)) disposable.Disposable {
	return e.SubscribeHandler(d, MethodHandler(target, method))
}
