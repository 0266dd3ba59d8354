package disposable

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBag_DisposesAllInInsertionOrder(t *testing.T) {
	bag := NewBag()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		NewDisposable(func() { order = append(order, i) }).DisposeBy(bag)
	}
	assert.Equal(t, 3, bag.Len())

	bag.Dispose()

	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, bag.Len())
	assert.True(t, bag.IsDisposed())
}

func TestBag_SecondTeardownReleasesNothing(t *testing.T) {
	bag := NewBag()
	callCount := 0
	NewDisposable(func() { callCount++ }).DisposeBy(bag)
	NewDisposable(func() { callCount++ }).DisposeBy(bag)
	bag.Dispose()
	bag.Dispose()
	assert.Equal(t, 2, callCount)
}

func TestBag_AddAfterDisposeRejectsAndDisposes(t *testing.T) {
	bag := NewBag()
	bag.Dispose()

	called := false
	err := bag.Add(NewDisposable(func() { called = true }))

	assert.True(t, errors.Is(err, ErrBagDisposed))
	assert.True(t, called)
	assert.Equal(t, 0, bag.Len())
}

func TestBag_SharedDisposableReleasedOnce(t *testing.T) {
	bag1 := NewBag()
	bag2 := NewBag()
	callCount := 0
	d := NewDisposable(func() { callCount++ })
	d.DisposeBy(bag1)
	d.DisposeBy(bag2)

	bag1.Dispose()
	bag2.Dispose()

	assert.Equal(t, 1, callCount)
}

func TestBag_CloseAggregatesCloserErrors(t *testing.T) {
	bag := NewBag()
	errA := errors.New("a")
	errB := errors.New("b")
	FromCloser(&closerStub{err: errA}).DisposeBy(bag)
	FromCloser(&closerStub{}).DisposeBy(bag)
	FromCloser(&closerStub{err: errB}).DisposeBy(bag)

	err := bag.Close()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errA))
	assert.True(t, errors.Is(err, errB))
}

func TestBag_CloseWithoutErrors(t *testing.T) {
	bag := NewBag()
	FromCloser(&closerStub{}).DisposeBy(bag)
	assert.NoError(t, bag.Close())
}

func TestBag_DisposeByAfterTeardownReportsError(t *testing.T) {
	bag := NewBag()
	require.NoError(t, NewDisposable(func() {}).DisposeBy(bag))
	bag.Dispose()

	called := false
	err := NewDisposable(func() { called = true }).DisposeBy(bag)

	assert.True(t, errors.Is(err, ErrBagDisposed))
	assert.True(t, called)
}

func TestBag_CloseCollectsErrorsFromComposites(t *testing.T) {
	bag := NewBag()
	errA := errors.New("a")
	NewCompositeDisposable(
		NewDisposable(func() {}),
		FromCloser(&closerStub{err: errA}),
	).DisposeBy(bag)

	err := bag.Close()

	require.Error(t, err)
	assert.True(t, errors.Is(err, errA))
}
