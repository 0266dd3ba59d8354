package disposable

import (
	"io"
	"sync"
)

type DisposableImp struct {
	once     sync.Once
	callback func()
}

func NewDisposable(callback func()) *DisposableImp {
	return &DisposableImp{callback: callback}
}

func (d *DisposableImp) Dispose() {
	d.once.Do(func() {
		if d.callback != nil {
			d.callback()
		}
		d.callback = nil
	})
}

func (d *DisposableImp) DisposeBy(bag *Bag) error {
	return bag.Add(d)
}

// CloserDisposable adapts an io.Closer. The error of the first Close is kept
// and reported by Err; a Bag collects it on Close.
type CloserDisposable struct {
	once   sync.Once
	closer io.Closer
	err    error
}

func FromCloser(closer io.Closer) *CloserDisposable {
	return &CloserDisposable{closer: closer}
}

func (d *CloserDisposable) Dispose() {
	d.once.Do(func() {
		d.err = d.closer.Close()
		d.closer = nil
	})
}

func (d *CloserDisposable) DisposeBy(bag *Bag) error {
	return bag.Add(d)
}

func (d *CloserDisposable) Err() error {
	return d.err
}
