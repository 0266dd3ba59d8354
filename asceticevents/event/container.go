package event

import (
	"slices"
	"sync"
)

// container keeps subscriptions in delivery order. Its lock is never held
// while a handler or a dispatcher runs.
type container[T any] struct {
	mu            sync.RWMutex
	subscriptions []*Subscription[T]
}

func (c *container[T]) add(s *Subscription[T]) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !slices.Contains(c.subscriptions, s) {
		c.subscriptions = append(c.subscriptions, s)
	}
	return len(c.subscriptions)
}

// remove reports whether s was present.
func (c *container[T]) remove(s *Subscription[T]) (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.Index(c.subscriptions, s)
	if i < 0 {
		return false, len(c.subscriptions)
	}
	c.subscriptions = slices.Delete(c.subscriptions, i, i+1)
	return true, len(c.subscriptions)
}

func (c *container[T]) snapshot() []*Subscription[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.subscriptions)
}

func (c *container[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subscriptions)
}
