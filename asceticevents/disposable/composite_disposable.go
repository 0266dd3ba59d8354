package disposable

import (
	"sync"

	"github.com/hashicorp/go-multierror"
)

type CompositeDisposable struct {
	mu          sync.Mutex
	disposables []Disposable
	err         error
}

func NewCompositeDisposable(disposables ...Disposable) *CompositeDisposable {
	return &CompositeDisposable{disposables: disposables}
}

// Dispose releases the members in the order they were given.
func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	disposables := c.disposables
	c.disposables = nil
	c.mu.Unlock()

	var result error
	for _, d := range disposables {
		d.Dispose()
		if f, ok := d.(Failer); ok && f.Err() != nil {
			result = multierror.Append(result, f.Err())
		}
	}
	if result != nil {
		c.mu.Lock()
		c.err = multierror.Append(c.err, result)
		c.mu.Unlock()
	}
}

func (c *CompositeDisposable) DisposeBy(bag *Bag) error {
	return bag.Add(c)
}

// Err reports the failures of the members released so far.
func (c *CompositeDisposable) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
