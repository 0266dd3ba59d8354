package metrics

// Recorder observes the traffic of named events. Implementations must be
// safe for concurrent use.
type Recorder interface {
	Emitted(event string)
	Delivered(event string)
	Pruned(event string)
	Subscribers(event string, count int)
}

type Nop struct{}

func (Nop) Emitted(string)          {}
func (Nop) Delivered(string)        {}
func (Nop) Pruned(string)           {}
func (Nop) Subscribers(string, int) {}
