package subject

import (
	"reflect"
	"sync"

	"github.com/krew-solutions/ascetic-events-go/asceticevents/deferred"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/dispatcher"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/disposable"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/event"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/locker"
	"github.com/krew-solutions/ascetic-events-go/asceticevents/option"
)

const defaultLabelPrefix = "asceticevents.subject."

type pendingChange[V, E any] struct {
	change Change[V, E]
	after  func(V)
}

// SubjectImp stores a value and announces its changes.
//
// Modifications run one at a time on a serial queue, so the read-transform-
// write of one Modify never interleaves with another. The committed value is
// guarded by a recursive lock that is never held while subscribers run.
// Changes are emitted in commit order by a single drainer. A Modify that
// commits while another goroutine is emitting hands its change to that
// emitter and returns without waiting, so no caller ever blocks on code
// running inside a subscriber.
type SubjectImp[V, E any] struct {
	lock   locker.RecursiveMutex
	value  V
	queue  *dispatcher.Queue
	event  *event.EventImp[Change[V, E]]
	replay option.Option[E]

	emitMu   sync.Mutex
	pending  []*pendingChange[V, E]
	draining bool
}

func NewSubject[V, E any](value V, opts ...Option) *SubjectImp[V, E] {
	return newSubject(value, option.Nothing[E](), opts)
}

// NewReplaySubject creates a subject that greets every new subscription with
// the current value tagged replayTag.
func NewReplaySubject[V, E any](value V, replayTag E, opts ...Option) *SubjectImp[V, E] {
	return newSubject(value, option.Some(replayTag), opts)
}

func newSubject[V, E any](value V, replay option.Option[E], opts []Option) *SubjectImp[V, E] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.label == "" {
		o.label = defaultLabelPrefix + reflect.TypeFor[V]().String()
	}
	return &SubjectImp[V, E]{
		value:  value,
		queue:  dispatcher.NewQueue(dispatcher.WithLabel(o.label)),
		event:  event.NewEvent[Change[V, E]](o.eventOpts...),
		replay: replay,
	}
}

func (s *SubjectImp[V, E]) Value() V {
	g := locker.Acquire(&s.lock)
	defer g.Release()
	return s.value
}

func (s *SubjectImp[V, E]) Label() string {
	return s.queue.Label()
}

// Len returns the number of live subscriptions.
func (s *SubjectImp[V, E]) Len() int {
	return s.event.Len()
}

// Modify waits for its turn, stores transform(current) and returns it. When
// tag is present the new value is emitted with tag. If no other emission is
// in progress the emission completes before Modify returns; otherwise it is
// delivered by the goroutine already emitting, after the changes committed
// before it. transform must not modify the same subject.
func (s *SubjectImp[V, E]) Modify(tag option.Option[E], transform func(V) V) V {
	var committed V
	var emitting bool
	s.queue.Sync(func() {
		committed, emitting = s.commit(tag, transform, nil)
	})
	if emitting {
		s.flush()
	}
	return committed
}

// Mutate is Modify for in-place changes.
func (s *SubjectImp[V, E]) Mutate(tag option.Option[E], mutate func(*V)) V {
	return s.Modify(tag, func(v V) V {
		mutate(&v)
		return v
	})
}

// ModifyAsync is Modify without waiting. The result resolves with the
// committed value once its emission, if any, has completed. Emission runs on
// the shared pool, never on the serializing queue.
func (s *SubjectImp[V, E]) ModifyAsync(tag option.Option[E], transform func(V) V) *deferred.DeferredImp[V] {
	result := deferred.New[V]()
	s.queue.Execute(func() {
		committed, emitting := s.commit(tag, transform, result.Resolve)
		if !emitting {
			result.Resolve(committed)
			return
		}
		dispatcher.SharedPool().Execute(s.flush)
	})
	return result
}

// commit stores the transformed value and, for a tagged change, queues its
// emission. It runs on the serializing queue.
func (s *SubjectImp[V, E]) commit(tag option.Option[E], transform func(V) V, after func(V)) (V, bool) {
	next := transform(s.Value())
	locker.With(&s.lock, func() {
		s.value = next
	})
	t, ok := tag.Get()
	if !ok {
		return next, false
	}
	s.emitMu.Lock()
	s.pending = append(s.pending, &pendingChange[V, E]{
		change: Change[V, E]{Value: next, Tag: t},
		after:  after,
	})
	s.emitMu.Unlock()
	return next, true
}

// flush emits pending changes in commit order unless another goroutine is
// already doing it. The empty check and the end of draining happen under
// emitMu, so a change queued by commit is never left behind.
func (s *SubjectImp[V, E]) flush() {
	s.emitMu.Lock()
	if s.draining {
		s.emitMu.Unlock()
		return
	}
	s.draining = true
	s.emitMu.Unlock()

	finished := false
	defer func() {
		if !finished {
			// A subscriber panicked; let the next flush take over.
			s.emitMu.Lock()
			s.draining = false
			s.emitMu.Unlock()
		}
	}()

	for {
		s.emitMu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			finished = true
			s.emitMu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending[0] = nil
		s.pending = s.pending[1:]
		s.emitMu.Unlock()

		s.event.Emit(next.change)
		if next.after != nil {
			next.after(next.change.Value)
		}
	}
}

func (s *SubjectImp[V, E]) Subscribe(observer Observer[V, E]) disposable.Disposable {
	return s.subscribe(dispatcher.Immediate, closureHandler(observer))
}

func (s *SubjectImp[V, E]) SubscribeOn(d dispatcher.Dispatcher, observer Observer[V, E]) disposable.Disposable {
	return s.subscribe(d, closureHandler(observer))
}

func (s *SubjectImp[V, E]) subscribe(d dispatcher.Dispatcher, handler event.Handler[Change[V, E]]) disposable.Disposable {
	replayTag, ok := s.replay.Get()
	if !ok {
		return s.event.SubscribeHandler(d, handler)
	}
	var sub *event.Subscription[Change[V, E]]
	var current V
	s.queue.Sync(func() {
		sub = s.event.SubscribeHandler(d, handler)
		current = s.Value()
	})
	sub.Deliver(Change[V, E]{Value: current, Tag: replayTag})
	return sub
}

func closureHandler[V, E any](observer Observer[V, E]) event.Handler[Change[V, E]] {
	return func(c Change[V, E]) bool {
		observer(c.Value, c.Tag)
		return true
	}
}

// SubscribeMethod subscribes method on target with immediate delivery. The
// subscription holds target weakly and removes itself once target is gone.
func SubscribeMethod[V, E, O any](s *SubjectImp[V, E], target *O, method func(*O, V, E)) disposable.Disposable {
	return SubscribeMethodOn(s, dispatcher.Immediate, target, method)
}

func SubscribeMethodOn[V, E, O any](s *SubjectImp[V, E], d dispatcher.Dispatcher, target *O, method func(*O, V, E)) disposable.Disposable {
	return s.subscribe(d, event.MethodHandler(target, func(o *O, c Change[V, E]) {
		method(o, c.Value, c.Tag)
	}))
}
