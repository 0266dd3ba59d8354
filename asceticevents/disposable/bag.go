package disposable

import (
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-events-go/asceticevents/locker"
)

var ErrBagDisposed = errors.New("disposable: bag already disposed")

// Bag owns disposables and releases all of them, in insertion order, when
// it is disposed. A disposed bag rejects further additions by disposing the
// added item immediately.
type Bag struct {
	mu          sync.Mutex
	disposables []Disposable
	disposed    bool
}

func NewBag() *Bag {
	return &Bag{}
}

// Add takes ownership of d. It returns ErrBagDisposed, after disposing d,
// when the bag has already been torn down.
func (b *Bag) Add(d Disposable) error {
	g := locker.Acquire(&b.mu)
	defer g.Release()
	if b.disposed {
		g.Release()
		d.Dispose()
		return errors.WithStack(ErrBagDisposed)
	}
	b.disposables = append(b.disposables, d)
	return nil
}

func (b *Bag) Len() int {
	return locker.WithValue(&b.mu, func() int {
		return len(b.disposables)
	})
}

func (b *Bag) IsDisposed() bool {
	return locker.WithValue(&b.mu, func() bool {
		return b.disposed
	})
}

func (b *Bag) Dispose() {
	b.release()
}

// Close disposes the bag and reports the errors of the members released by
// this call that implement Failer, such as FromCloser and composites of it.
func (b *Bag) Close() error {
	var result error
	for _, d := range b.release() {
		if f, ok := d.(Failer); ok && f.Err() != nil {
			result = multierror.Append(result, f.Err())
		}
	}
	return result
}

func (b *Bag) release() []Disposable {
	b.mu.Lock()
	disposables := b.disposables
	b.disposables = nil
	b.disposed = true
	b.mu.Unlock()
	for _, d := range disposables {
		d.Dispose()
	}
	return disposables
}
