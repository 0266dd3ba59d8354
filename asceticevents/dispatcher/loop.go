package dispatcher

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
	"github.com/pkg/errors"
)

var ErrLoopRunning = errors.New("dispatcher: loop is already running")

// Loop is bound to one goroutine at a time: the one inside Run or Pump.
// Work submitted from that goroutine runs immediately; work from any other
// goroutine is queued and run there in FIFO order.
type Loop struct {
	mu    sync.Mutex
	items []func()
	wake  chan struct{}
	owner atomic.Int64
}

func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

var mainLoop = sync.OnceValue(NewLoop)

// Main returns the process-wide loop. The host program chooses the goroutine
// that drives it by calling Run or Pump.
func Main() *Loop {
	return mainLoop()
}

func (l *Loop) Execute(work func()) {
	if l.IsCurrent() {
		work()
		return
	}
	l.mu.Lock()
	l.items = append(l.items, work)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// IsCurrent reports whether the calling goroutine is driving the loop.
func (l *Loop) IsCurrent() bool {
	return l.owner.Load() == goid.Get()
}

// Run binds the loop to the calling goroutine and executes queued work until
// ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if !l.owner.CompareAndSwap(0, goid.Get()) {
		return errors.WithStack(ErrLoopRunning)
	}
	defer l.owner.Store(0)
	for {
		l.runPending()
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "dispatcher: loop stopped")
		case <-l.wake:
		}
	}
}

// Pump executes the work queued so far on the calling goroutine and returns
// how many items ran. It returns 0 when another goroutine drives the loop.
func (l *Loop) Pump() int {
	id := goid.Get()
	if l.owner.Load() != id {
		if !l.owner.CompareAndSwap(0, id) {
			return 0
		}
		defer l.owner.Store(0)
	}
	return l.runPending()
}

func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *Loop) runPending() int {
	l.mu.Lock()
	items := l.items
	l.items = nil
	l.mu.Unlock()
	for _, work := range items {
		work()
	}
	return len(items)
}
