package event

import (
	"sync/atomic"
	"weak"

	"github.com/google/uuid"

	"github.com/krew-solutions/ascetic-events-go/asceticevents/dispatcher"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/disposable"
)

// Subscription is the record behind one subscribe call. It refers to its
// event weakly, so holding a Subscription does not keep the event alive.
type Subscription[T any] struct {
	id         uuid.UUID
	dispatcher dispatcher.Dispatcher
	handler    Handler[T]
	owner      weak.Pointer[EventImp[T]]
	disposed   atomic.Bool
}

func (s *Subscription[T]) ID() uuid.UUID {
	return s.id
}

func (s *Subscription[T]) IsDisposed() bool {
	return s.disposed.Load()
}

// Deliver hands value to this subscription alone, through its dispatcher.
func (s *Subscription[T]) Deliver(value T) {
	if s.disposed.Load() {
		return
	}
	s.dispatcher.Execute(func() {
		s.invoke(value)
	})
}

func (s *Subscription[T]) invoke(value T) {
	if s.disposed.Load() {
		return
	}
	if !s.handler(value) {
		s.prune()
		return
	}
	if e := s.owner.Value(); e != nil {
		e.opts.metrics.Delivered(e.opts.name)
	}
}

func (s *Subscription[T]) Dispose() {
	if s.disposed.Swap(true) {
		return
	}
	if e := s.owner.Value(); e != nil {
		e.remove(s)
	}
}

func (s *Subscription[T]) DisposeBy(bag *disposable.Bag) error {
	return bag.Add(s)
}

func (s *Subscription[T]) prune() {
	if s.disposed.Load() {
		return
	}
	if e := s.owner.Value(); e != nil {
		e.opts.metrics.Pruned(e.opts.name)
		e.opts.logger.Debug("event: target collected, pruning subscription",
			"event", e.opts.name, "subscription", s.id)
	}
	s.Dispose()
}
