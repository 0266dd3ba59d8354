package dispatcher

// ImmediateDispatcher runs work on the calling goroutine before Execute
// returns.
type ImmediateDispatcher struct{}

// Immediate is the default dispatcher of every subscription.
var Immediate Dispatcher = ImmediateDispatcher{}

func (ImmediateDispatcher) Execute(work func()) {
	work()
}
