package dispatcher

import (
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool runs work on at most size goroutines at once. Work waits in a FIFO
// list; a worker is started only while fewer than size are running, and it
// exits once the list is empty. Work items may finish in any order.
type Pool struct {
	sem   *semaphore.Weighted
	mu    sync.Mutex
	items []func()
}

func NewPool(size int64) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(size)}
}

func (p *Pool) Execute(work func()) {
	p.mu.Lock()
	p.items = append(p.items, work)
	spawn := p.sem.TryAcquire(1)
	p.mu.Unlock()
	if spawn {
		go p.work()
	}
}

// Len returns the number of items not yet picked up by a worker.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// work runs queued items until none are left. The slot is released under mu,
// so an Execute that failed to start a worker always leaves its item to a
// worker that has not yet checked the list.
func (p *Pool) work() {
	for {
		p.mu.Lock()
		if len(p.items) == 0 {
			p.sem.Release(1)
			p.mu.Unlock()
			return
		}
		work := p.items[0]
		p.items[0] = nil
		p.items = p.items[1:]
		p.mu.Unlock()

		work()
	}
}

var sharedPool = sync.OnceValue(func() *Pool {
	return NewPool(int64(runtime.GOMAXPROCS(0)))
})

// SharedPool is the process-wide pool behind Background queues.
func SharedPool() *Pool {
	return sharedPool()
}

const BackgroundLabel = "asceticevents.background"

// Background returns a new serial queue draining on the shared pool.
// Each call gives an independent queue, so order holds per returned instance.
func Background() *Queue {
	return NewQueue(WithLabel(BackgroundLabel), WithTarget(SharedPool()))
}
