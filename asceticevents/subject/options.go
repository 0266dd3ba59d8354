package subject

import "github.com/krew-solutions/ascetic-events-go/asceticevents/event"

type options struct {
	label     string
	eventOpts []event.Option
}

type Option func(*options)

// WithLabel names the queue serializing modifications.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithEventOptions configures the event carrying the changes.
func WithEventOptions(opts ...event.Option) Option {
	return func(o *options) {
		o.eventOpts = append(o.eventOpts, opts...)
	}
}
