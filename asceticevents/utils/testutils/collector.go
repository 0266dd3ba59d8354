package testutils

import (
	"slices"
	"sync"
	"time"

	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

// Collector records values delivered from any goroutine.
type Collector[T any] struct {
	mu     sync.Mutex
	values []T
}

func NewCollector[T any]() *Collector[T] {
	return &Collector[T]{}
}

func (c *Collector[T]) Add(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, value)
}

func (c *Collector[T]) Values() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.values)
}

func (c *Collector[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// WaitLen fails t unless at least n values arrive in time.
func (c *Collector[T]) WaitLen(t require.TestingT, n int) []T {
	require.Eventually(t, func() bool {
		return c.Len() >= n
	}, waitTimeout, time.Millisecond)
	return c.Values()
}

// Drain waits for every item already submitted to a serial dispatcher to run.
func Drain(execute func(func())) {
	done := make(chan struct{})
	execute(func() { close(done) })
	<-done
}
