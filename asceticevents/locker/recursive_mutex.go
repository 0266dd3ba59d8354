package locker

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// RecursiveMutex is a mutual exclusion lock that the goroutine holding it may
// acquire again. Every Lock must be paired with an Unlock from the same
// goroutine.
type RecursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *RecursiveMutex) Lock() {
	id := goid.Get()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *RecursiveMutex) TryLock() bool {
	id := goid.Get()
	if m.owner.Load() == id {
		m.depth++
		return true
	}
	if !m.mu.TryLock() {
		return false
	}
	m.owner.Store(id)
	m.depth = 1
	return true
}

func (m *RecursiveMutex) Unlock() {
	if m.owner.Load() != goid.Get() {
		panic("locker: unlock of RecursiveMutex not held by this goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// HeldByCurrent reports whether the calling goroutine owns the lock.
func (m *RecursiveMutex) HeldByCurrent() bool {
	return m.owner.Load() == goid.Get()
}
