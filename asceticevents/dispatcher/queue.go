package dispatcher

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/petermattis/goid"
)

const defaultQueueLabelPrefix = "asceticevents.queue."

type QueueOption func(*Queue)

func WithLabel(label string) QueueOption {
	return func(q *Queue) {
		q.label = label
	}
}

// WithTarget makes the queue drain through target instead of a goroutine of
// its own. The queue stays serial whatever the target does.
func WithTarget(target Dispatcher) QueueOption {
	return func(q *Queue) {
		q.target = target
	}
}

// Queue is a serial dispatcher. Work runs one item at a time in submission
// order, off the calling goroutine unless the target says otherwise.
// No goroutine is kept while the queue is empty.
type Queue struct {
	label   string
	target  Dispatcher
	mu      sync.Mutex
	items   []func()
	running bool
	drainer atomic.Int64
}

func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{}
	for _, opt := range opts {
		opt(q)
	}
	if q.label == "" {
		q.label = defaultQueueLabelPrefix + uuid.NewString()
	}
	return q
}

func (q *Queue) Label() string {
	return q.label
}

func (q *Queue) Execute(work func()) {
	q.mu.Lock()
	q.items = append(q.items, work)
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()

	if q.target != nil {
		q.target.Execute(q.drain)
	} else {
		go q.drain()
	}
}

// Sync submits work and waits for it to finish. Called from work already
// running on this queue, it runs work inline instead of deadlocking.
func (q *Queue) Sync(work func()) {
	if q.IsCurrent() {
		work()
		return
	}
	done := make(chan struct{})
	q.Execute(func() {
		defer close(done)
		work()
	})
	<-done
}

// IsCurrent reports whether the calling goroutine is draining this queue.
func (q *Queue) IsCurrent() bool {
	return q.drainer.Load() == goid.Get()
}

func (q *Queue) drain() {
	q.drainer.Store(goid.Get())
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.running = false
			q.drainer.Store(0)
			q.mu.Unlock()
			return
		}
		work := q.items[0]
		q.items[0] = nil
		q.items = q.items[1:]
		q.mu.Unlock()

		work()
	}
}
