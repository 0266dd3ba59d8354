package dispatcher

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsAllWork(t *testing.T) {
	p := NewPool(4)
	var count atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		p.Execute(func() {
			defer wg.Done()
			count.Add(1)
		})
	}
	wg.Wait()
	assert.Equal(t, int32(100), count.Load())
}

func TestPool_BoundsConcurrency(t *testing.T) {
	p := NewPool(2)
	var active, maxActive atomic.Int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		p.Execute(func() {
			defer wg.Done()
			n := active.Add(1)
			mu.Lock()
			if n > maxActive.Load() {
				maxActive.Store(n)
			}
			mu.Unlock()
			time.Sleep(2 * time.Millisecond)
			active.Add(-1)
		})
	}
	wg.Wait()
	assert.LessOrEqual(t, maxActive.Load(), int32(2))
}

func TestPool_QueuesWorkBeyondSize(t *testing.T) {
	p := NewPool(2)
	release := make(chan struct{})
	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		p.Execute(func() {
			defer wg.Done()
			started.Add(1)
			<-release
		})
	}

	require.Eventually(t, func() bool { return started.Load() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, 8, p.Len())

	close(release)
	wg.Wait()
	assert.Equal(t, int32(10), started.Load())
	assert.Equal(t, 0, p.Len())
}

func TestNewPool_ClampsSize(t *testing.T) {
	p := NewPool(0)
	done := make(chan struct{})
	p.Execute(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("work did not run")
	}
}

func TestBackground_IndependentOrderedQueues(t *testing.T) {
	b1 := Background()
	b2 := Background()
	assert.NotSame(t, b1, b2)
	assert.Equal(t, BackgroundLabel, b1.Label())

	var mu sync.Mutex
	var order []int
	for i := 0; i < 50; i++ {
		i := i
		b1.Execute(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 50
	}, time.Second, time.Millisecond)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestSharedPool_IsSingleton(t *testing.T) {
	assert.Same(t, SharedPool(), SharedPool())
}
