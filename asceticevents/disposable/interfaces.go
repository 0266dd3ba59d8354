package disposable

// Disposable releases an associated resource exactly once.
// Dispose is idempotent; calls after the first are no-ops.
type Disposable interface {
	Dispose()
	// DisposeBy hands the disposable over to bag, which disposes it on teardown.
	// On a bag that is already torn down it disposes at once and returns
	// ErrBagDisposed.
	DisposeBy(bag *Bag) error
}

// Failer is implemented by disposables whose release can fail. Bag.Close
// collects these errors.
type Failer interface {
	Err() error
}
