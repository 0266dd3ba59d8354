package dispatcher

// Dispatcher runs a unit of work eventually and exactly once. Work submitted
// to the same dispatcher instance keeps its submission order, unless the
// implementation documents otherwise.
type Dispatcher interface {
	Execute(work func())
}

// Func adapts an ordinary function to the Dispatcher interface.
type Func func(work func())

func (f Func) Execute(work func()) {
	f(work)
}
