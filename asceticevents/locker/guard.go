package locker

import "sync"

// Guard holds a lock acquired by Acquire until Release. Release is safe to
// call more than once, so `defer g.Release()` may be combined with an early
// explicit Release. A Guard belongs to the goroutine that created it.
type Guard struct {
	lock sync.Locker
	held bool
}

func Acquire(lock sync.Locker) *Guard {
	lock.Lock()
	return &Guard{lock: lock, held: true}
}

func (g *Guard) Release() {
	if !g.held {
		return
	}
	g.held = false
	g.lock.Unlock()
}

func (g *Guard) Relock() {
	if g.held {
		return
	}
	g.lock.Lock()
	g.held = true
}

func (g *Guard) Held() bool {
	return g.held
}

// With runs fn while holding lock and releases it on every exit path,
// including a panic in fn.
func With(lock sync.Locker, fn func()) {
	g := Acquire(lock)
	defer g.Release()
	fn()
}

// WithValue is With for functions producing a value.
func WithValue[T any](lock sync.Locker, fn func() T) T {
	g := Acquire(lock)
	defer g.Release()
	return fn()
}
