package dispatcher

import "fmt"

type Kind int

const (
	KindImmediate Kind = iota
	KindMain
	KindBackground
	KindQueue
)

func (k Kind) String() string {
	switch k {
	case KindImmediate:
		return "immediate"
	case KindMain:
		return "main"
	case KindBackground:
		return "background"
	case KindQueue:
		return "queue"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Config selects one of the standard dispatchers. Label and Target are used
// by KindQueue only.
type Config struct {
	Kind   Kind
	Label  string
	Target Dispatcher
}

// New resolves cfg. KindBackground and KindQueue produce a fresh queue on
// every call; unknown kinds fall back to Immediate.
func New(cfg Config) Dispatcher {
	switch cfg.Kind {
	case KindMain:
		return Main()
	case KindBackground:
		return Background()
	case KindQueue:
		var opts []QueueOption
		if cfg.Label != "" {
			opts = append(opts, WithLabel(cfg.Label))
		}
		if cfg.Target != nil {
			opts = append(opts, WithTarget(cfg.Target))
		}
		return NewQueue(opts...)
	default:
		return Immediate
	}
}

// Sync executes work on d and waits for it. Dispatchers that know how to
// avoid waiting on themselves, such as Queue, handle the call.
func Sync(d Dispatcher, work func()) {
	if s, ok := d.(interface{ Sync(func()) }); ok {
		s.Sync(work)
		return
	}
	done := make(chan struct{})
	d.Execute(func() {
		defer close(done)
		work()
	})
	<-done
}
